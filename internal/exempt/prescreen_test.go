package exempt

import (
	"testing"

	"github.com/creedharan/sourcescore/internal/model"
)

func article(headline, category string, words int) *model.Article {
	return &model.Article{Headline: headline, Category: category, WordCount: words}
}

func TestPrescreenSnippet(t *testing.T) {
	d := Prescreen(article("Council approves new crossing", "News", 90), StandardRules)
	if !d.Exempt || d.Reason != "snippet" {
		t.Fatalf("got %+v, want snippet exemption", d)
	}
}

func TestPrescreenSnippetBeatsBreaking(t *testing.T) {
	// A 140-word breaking story matches two rules; order picks snippet.
	d := Prescreen(article("BREAKING: Town centre evacuated", "News", 140), StandardRules)
	if !d.Exempt || d.Reason != "snippet" {
		t.Fatalf("got %+v, want snippet to win over breaking_news", d)
	}
}

func TestPrescreenBreakingPolicySwap(t *testing.T) {
	a := article("BREAKING: Town centre evacuated", "News", 600)
	if d := Prescreen(a, StandardRules); !d.Exempt || d.Reason != "breaking_news" {
		t.Fatalf("standard: got %+v, want breaking_news", d)
	}
	if d := Prescreen(a, StrictRules); d.Exempt {
		t.Fatalf("strict: got %+v, want breaking news scored", d)
	}
}

func TestPrescreenLiveMarkers(t *testing.T) {
	cases := []struct {
		headline, want string
	}{
		{"Live: Storm Bertha batters the coast", "live_blog"},
		{"Election night as it happened", "live_blog"},
		{"Watch live as the council votes on the budget", "live_stream"},
		{"Video: Inside the flooded depot", "video_only"},
	}
	for _, c := range cases {
		d := Prescreen(article(c.headline, "News", 500), StandardRules)
		if !d.Exempt || d.Reason != c.want {
			t.Errorf("%q: got %+v, want %s", c.headline, d, c.want)
		}
	}
}

func TestPrescreenSportRules(t *testing.T) {
	report := article("Rovers beat United 3-1 at home", "Sport", 450)
	if d := Prescreen(report, StandardRules); !d.Exempt || d.Reason != "match_report" {
		t.Fatalf("report: got %+v", d)
	}
	preview := article("Rovers vs United: team news and kick-off time", "Sport", 450)
	if d := Prescreen(preview, StandardRules); !d.Exempt || d.Reason != "match_preview" {
		t.Fatalf("preview: got %+v", d)
	}
	// The same headlines outside Sport score normally.
	if d := Prescreen(article("Rovers beat United 3-1 at home", "News", 450), StandardRules); d.Exempt {
		t.Fatalf("non-sport report exempted: %+v", d)
	}
}

func TestPrescreenPassThrough(t *testing.T) {
	d := Prescreen(article("Harbour wall repairs to take two years", "News", 700), StandardRules)
	if d.Exempt || d.Reason != "" {
		t.Fatalf("got %+v, want no exemption", d)
	}
}
