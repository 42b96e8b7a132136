package classify

import (
	"context"
	"regexp"
	"strings"
)

// HeuristicClassifier is the offline fallback: deterministic rules over
// the article text, no external call. It is deliberately conservative
// (unknown gender, impact role, probable_original provenance) so scores
// produced without a model never overstate rigour.
type HeuristicClassifier struct{}

// NewHeuristicClassifier creates the rule-based classifier.
func NewHeuristicClassifier() *HeuristicClassifier {
	return &HeuristicClassifier{}
}

// Name returns the provider name.
func (h *HeuristicClassifier) Name() string {
	return "heuristic"
}

// IsAvailable always succeeds; there is nothing to reach.
func (h *HeuristicClassifier) IsAvailable(ctx context.Context) bool {
	return true
}

var (
	statsRe    = regexp.MustCompile(`\d+(?:\.\d+)?%|£\d|\$\d|€\d|\b\d{2,}\b`)
	timelineRe = regexp.MustCompile(`(?i)\b(?:last (?:week|month|year)|in (?:19|20)\d\d|since \d{4}|on (?:Mon|Tues|Wednes|Thurs|Fri|Satur|Sun)day|months? (?:ago|later)|years? (?:ago|later))\b`)
	compareRe  = regexp.MustCompile(`(?i)\b(?:more than|less than|compared (?:to|with)|higher than|lower than|twice as|double the|half the)\b`)
	explainRe  = regexp.MustCompile(`(?i)\b(?:because|which means|as a result|the process|under the (?:scheme|rules|plan)|this is due to)\b`)

	// Markers of secondhand material.
	wireRe = regexp.MustCompile(`(?i)\b(?:press association|reuters|afp|according to reports|told the bbc|told sky news|in a statement to)\b`)
	// Markers of institutional voice.
	institutionalRe = regexp.MustCompile(`(?i)\b(?:spokesperson|spokesman|spokeswoman|in a statement|press release|a statement said)\b`)
)

// Classify grades voices by surface features of the text around them.
func (h *HeuristicClassifier) Classify(ctx context.Context, req Request) (*Response, error) {
	resp := &Response{
		Context: ContextJudgment{
			HasStatistics:  statsRe.MatchString(req.ArticleText),
			HasTimeline:    timelineRe.MatchString(req.ArticleText),
			HasComparison:  compareRe.MatchString(req.ArticleText),
			HasExplanation: explainRe.MatchString(req.ArticleText),
		},
	}

	seen := make(map[string]bool)
	for _, q := range req.Quotes {
		if seen[q.Candidate] {
			continue
		}
		seen[q.Candidate] = true

		sj := SourceJudgment{
			Name:        q.Candidate,
			Gender:      "unknown",
			Role:        "impact",
			Provenance:  "probable_original",
			Attribution: "partial",
		}

		if q.Anonymous {
			sj.Attribution = "anonymous"
			sj.Provenance = "probable_original"
		} else if len(strings.Fields(q.Candidate)) < 2 {
			// A lone forename identifies nobody in particular.
			sj.Attribution = "vague"
		}

		switch {
		case wireRe.MatchString(req.ArticleText):
			sj.Provenance = "wire"
		case institutionalRe.MatchString(req.ArticleText):
			sj.Provenance = "institutional"
			sj.Role = "structural"
		}

		resp.Sources = append(resp.Sources, sj)
	}
	return resp, nil
}
