package model

import "time"

// Status is the terminal state of one article in one scoring run.
type Status string

const (
	StatusScored Status = "scored" // Score present, sources audited
	StatusExempt Status = "exempt" // Score null, exemption reason recorded
	StatusError  Status = "error"  // Score null, human-readable reason for review
)

// ExemptionDecision is the outcome of the deterministic prescreen.
type ExemptionDecision struct {
	Exempt bool   `json:"exempt"`
	Reason string `json:"reason,omitempty"` // "snippet", "breaking_news", "match_report", ...
	Rule   string `json:"rule,omitempty"`   // Name of the rule that fired
}

// Components holds each metric subscore on the 0.0-1.0 scale.
// AR is undefined (not zero) when the article has no sources; ARDefined
// records which case applies so the composite can drop the term entirely.
type Components struct {
	WE        float64 `json:"we"`         // Word Efficiency: min(wc/HW, 1.0)
	SD        float64 `json:"sd"`         // Source Density: qualifying/HS, uncapped
	AR        float64 `json:"ar"`         // Attribution Rigour: mean completeness weight
	ARDefined bool    `json:"ar_defined"`
	CD        float64 `json:"cd"`         // Contextual Depth: signal count / 4
	OI        float64 `json:"oi"`         // Originality Index: mean provenance weight
}

// Gate records a ceiling applied after the raw composite. Gates only ever
// lower the score and are kept alongside the number for auditability.
type Gate struct {
	Name    string  `json:"name"`    // "zero_source_cap", "low_originality_cap"
	Ceiling float64 `json:"ceiling"`
	Applied bool    `json:"applied"` // True when the ceiling actually lowered the score
}

// ScoreComponents is the per-article scoring record: subscores, gates in
// the order they were evaluated, and the final bounded composite. Created
// once per run, never mutated; a re-run produces a new record.
type ScoreComponents struct {
	Policy     string     `json:"policy"`
	Category   string     `json:"category"`
	Components Components `json:"components"`
	RawScore   float64    `json:"raw_score"`   // 100 x mean(components), before gates
	Gates      []Gate     `json:"gates"`
	FinalScore float64    `json:"final_score"` // 0-100 after gates
}

// Result is one article's complete record for the result sink: exactly one
// per article per run, independent and overwrite-by-id.
type Result struct {
	ArticleID  string             `json:"article_id"`
	URL        string             `json:"url"`
	Headline   string             `json:"headline,omitempty"`
	Status     Status             `json:"status"`
	Exemption  *ExemptionDecision `json:"exemption,omitempty"`
	Sources    []Source           `json:"sources,omitempty"`
	Context    *ContextFlags      `json:"context,omitempty"`
	Score      *ScoreComponents   `json:"score,omitempty"`
	FinalScore *float64           `json:"final_score"` // Null unless scored
	Error      string             `json:"error,omitempty"`
	ScoredAt   time.Time          `json:"scored_at"`
}

// RunSummary aggregates one batch run, in the shape the dashboard consumes.
type RunSummary struct {
	Total      int                `json:"total"`
	Scored     int                `json:"scored"`
	Exempt     int                `json:"exempt"`
	Errors     int                `json:"errors"`
	ByCategory map[string]CatStat `json:"by_category,omitempty"`
}

// CatStat is the per-category roll-up of scored articles.
type CatStat struct {
	Count    int     `json:"count"`
	AvgScore float64 `json:"avg_score"`
}
