// Package exempt implements the prescreen that decides, before any
// classifier call is spent, whether an article is outside scoring scope.
package exempt

import (
	"strings"

	"github.com/creedharan/sourcescore/internal/model"
)

// SnippetWords is the word count below which an article is a snippet,
// regardless of what else its headline claims to be.
const SnippetWords = 150

// Rule is one prescreen check. Rules are evaluated in slice order and
// the first match wins, so two rules never produce conflicting reasons.
type Rule struct {
	Name   string // Stable rule identifier for the audit trail
	Reason string // Exemption reason recorded on the result
	Match  func(a *model.Article) bool
}

func headlineHasAny(a *model.Article, markers ...string) bool {
	h := strings.ToLower(a.Headline)
	for _, m := range markers {
		if strings.Contains(h, m) {
			return true
		}
	}
	return false
}

var snippetRule = Rule{
	Name:   "min_word_count",
	Reason: "snippet",
	Match:  func(a *model.Article) bool { return a.WordCount < SnippetWords },
}

var breakingRule = Rule{
	Name:   "breaking_headline_marker",
	Reason: "breaking_news",
	Match: func(a *model.Article) bool {
		return headlineHasAny(a, "breaking:", "breaking news")
	},
}

var liveBlogRule = Rule{
	Name:   "live_blog_marker",
	Reason: "live_blog",
	Match: func(a *model.Article) bool {
		return headlineHasAny(a, "live:", "live blog", "live updates", "as it happened")
	},
}

var liveStreamRule = Rule{
	Name:   "live_stream_marker",
	Reason: "live_stream",
	Match: func(a *model.Article) bool {
		return headlineHasAny(a, "watch live", "live stream", "livestream")
	},
}

var videoOnlyRule = Rule{
	Name:   "video_only_marker",
	Reason: "video_only",
	Match: func(a *model.Article) bool {
		return headlineHasAny(a, "video:", "watch:", "in pictures:")
	},
}

// Past-tense result verbs mark a finished fixture writeup.
var resultVerbs = []string{
	" beat ", " beats ", " won ", " win over ", " lost ", " lose to ",
	" drew ", " draw with ", " defeated ", " thrashed ", " edged ", " held ",
}

var matchReportRule = Rule{
	Name:   "sport_result_verbs",
	Reason: "match_report",
	Match: func(a *model.Article) bool {
		if a.Category != "Sport" {
			return false
		}
		h := " " + strings.ToLower(a.Headline) + " "
		for _, v := range resultVerbs {
			if strings.Contains(h, v) {
				return true
			}
		}
		return false
	},
}

var matchPreviewRule = Rule{
	Name:   "sport_fixture_phrasing",
	Reason: "match_preview",
	Match: func(a *model.Article) bool {
		if a.Category != "Sport" {
			return false
		}
		if headlineHasAny(a, " vs ", " v ", "preview", "team news", "how to watch") {
			return true
		}
		return false
	},
}

// StandardRules exempts breaking news outright.
var StandardRules = []Rule{
	snippetRule,
	breakingRule,
	liveBlogRule,
	liveStreamRule,
	videoOnlyRule,
	matchReportRule,
	matchPreviewRule,
}

// StrictRules scores breaking news instead of exempting it; everything
// else matches the standard set.
var StrictRules = []Rule{
	snippetRule,
	liveBlogRule,
	liveStreamRule,
	videoOnlyRule,
	matchReportRule,
	matchPreviewRule,
}

// Prescreen runs the ordered rule list against one article. The returned
// decision names the rule that fired; a non-exempt decision carries no
// reason.
func Prescreen(a *model.Article, rules []Rule) model.ExemptionDecision {
	for _, r := range rules {
		if r.Match(a) {
			return model.ExemptionDecision{Exempt: true, Reason: r.Reason, Rule: r.Name}
		}
	}
	return model.ExemptionDecision{}
}
