// Package classify wraps the external semantic classifier that grades
// each quoted voice (gender, role, provenance, attribution completeness)
// and reports the article's contextual-depth signals.
package classify

import (
	"context"
	"fmt"
	"strings"
)

// Classifier is the external judgment interface. Implementations must
// respect ctx cancellation; the pipeline applies the timeout.
type Classifier interface {
	// Name returns the provider name.
	Name() string

	// Classify grades every voice in the request. The response must
	// contain exactly one judgment per requested voice.
	Classify(ctx context.Context, req Request) (*Response, error)

	// IsAvailable checks if the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// QuoteHint pairs a located quote with the resolver's candidate name, so
// the classifier grades the voices we found rather than inventing its own.
type QuoteHint struct {
	Candidate string `json:"candidate"` // Resolved or synthesized name
	Quote     string `json:"quote"`
	Anonymous bool   `json:"anonymous,omitempty"`
}

// Request is the bounded classifier input for one article.
type Request struct {
	ArticleText string      `json:"article_text"` // Normalized, truncated to MaxChars
	Category    string      `json:"category"`
	Quotes      []QuoteHint `json:"quotes"`
}

// SourceJudgment is the classifier's verdict on one voice. Every field is
// validated against its enum before use; out-of-enum values fail the
// whole article.
type SourceJudgment struct {
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	Role        string `json:"role"`
	Provenance  string `json:"provenance"`
	Attribution string `json:"attribution"`
}

// ContextJudgment holds the four contextual-depth signals.
type ContextJudgment struct {
	HasStatistics  bool `json:"has_statistics"`
	HasTimeline    bool `json:"has_timeline"`
	HasComparison  bool `json:"has_comparison"`
	HasExplanation bool `json:"has_explanation"`
}

// Response is the raw classifier output, pre-validation.
type Response struct {
	Sources []SourceJudgment `json:"sources"`
	Context ContextJudgment  `json:"context"`
}

// TruncateText bounds the article text sent to the classifier. Long
// bodies used to push source lists past the model's attention and drop
// late-article voices, so the bound is a correctness control, not only a
// cost one.
func TruncateText(text string, maxChars int) string {
	if maxChars <= 0 || len(text) <= maxChars {
		return text
	}
	return text[:maxChars]
}

// BuildPrompt constructs the classification prompt. The response format
// is pinned to a strict JSON object so parsing never has to guess.
func BuildPrompt(req Request) string {
	var b strings.Builder

	b.WriteString(`You classify quoted sources in a news article. Respond with ONLY a JSON object, no prose, in exactly this shape:
{"sources":[{"name":"...","gender":"male|female|nonbinary|unknown","role":"structural|impact","provenance":"original|probable_original|institutional|wire","attribution":"full|partial|vague|anonymous"}],"context":{"has_statistics":true,"has_timeline":false,"has_comparison":false,"has_explanation":true}}

Rules:
- Return one entry per listed voice, using the exact voice name given.
- gender: only what the text itself supports; otherwise "unknown". Never guess from the name alone.
- role: "structural" for external authorities explaining process or policy, "impact" for people directly affected.
- provenance: "original" when this outlet clearly interviewed the source, "probable_original" for local voices with no secondary markers, "institutional" for spokespeople and press statements, "wire" for material attributed to agencies or other outlets.
- attribution: "full" = name, role and organisation; "partial" = name and role; "vague" = descriptor only; "anonymous" = unnamed.
- context flags: has_statistics for cited numeric data, has_timeline for explicit chronology, has_comparison for comparative language, has_explanation for structural or process explanation.

`)

	fmt.Fprintf(&b, "Category: %s\n\nVoices to classify:\n", req.Category)
	for _, q := range req.Quotes {
		quote := q.Quote
		if len(quote) > 160 {
			quote = quote[:160]
		}
		fmt.Fprintf(&b, "- %s: %q\n", q.Candidate, quote)
	}

	fmt.Fprintf(&b, "\nArticle text:\n%s\n", req.ArticleText)
	return b.String()
}
