package model

// Gender is the closed set of gender tags a source may carry.
// Never a pronoun literal: anything the classifier returns outside the
// accepted aliases is a contract violation, and plural pronoun markers
// coerce to GenderUnknown.
type Gender string

const (
	GenderMale      Gender = "male"
	GenderFemale    Gender = "female"
	GenderNonbinary Gender = "nonbinary"
	GenderUnknown   Gender = "unknown"
)

// Role distinguishes who explains the WHY from who describes the WHAT.
type Role string

const (
	RoleStructural Role = "structural" // External authority: experts, officials
	RoleImpact     Role = "impact"     // Internal stake: participants, those affected
)

// Provenance ranks how directly the outlet itself obtained the quote.
type Provenance string

const (
	ProvenanceOriginal         Provenance = "original"          // Interviewed by this outlet
	ProvenanceProbableOriginal Provenance = "probable_original" // Local source, no secondary markers
	ProvenanceInstitutional    Provenance = "institutional"     // Spokesperson, press statement
	ProvenanceWire             Provenance = "wire"              // Secondhand wire/agency attribution
)

// Weight returns the originality weight of a provenance tier.
func (p Provenance) Weight() float64 {
	switch p {
	case ProvenanceOriginal:
		return 1.0
	case ProvenanceProbableOriginal:
		return 0.8
	case ProvenanceInstitutional:
		return 0.6
	case ProvenanceWire:
		return 0.3
	default:
		return 0.0
	}
}

// Attribution grades how completely a source is identified in the text.
type Attribution string

const (
	AttributionFull      Attribution = "full"      // Name + role + organisation
	AttributionPartial   Attribution = "partial"   // Name + role
	AttributionVague     Attribution = "vague"     // Descriptor only ("a resident")
	AttributionAnonymous Attribution = "anonymous" // "Sources said"
)

// Weight returns the rigour weight of an attribution completeness tier.
func (a Attribution) Weight() float64 {
	switch a {
	case AttributionFull:
		return 1.0
	case AttributionPartial:
		return 0.7
	case AttributionVague:
		return 0.4
	case AttributionAnonymous:
		return 0.1
	default:
		return 0.0
	}
}

// Source is one deduplicated quoted voice within one article. Identity is
// unique by canonical name; created by the deduplicator, enriched by the
// classifier, immutable for the rest of the run.
type Source struct {
	Name        string      `json:"name"`        // Canonical, cleaned name
	Gender      Gender      `json:"gender"`
	Role        Role        `json:"role"`
	Provenance  Provenance  `json:"provenance"`
	Attribution Attribution `json:"attribution"`
	QuoteCount  int         `json:"quote_count"`           // Quotes resolved to this voice
	Anonymous   bool        `json:"anonymous,omitempty"`   // Synthesized placeholder name
	Snippet     string      `json:"snippet,omitempty"`     // First attributed quote, for audit
}

// ContextFlags are the four contextual-depth signal categories the
// classifier reports for an article.
type ContextFlags struct {
	HasStatistics  bool `json:"has_statistics"`
	HasTimeline    bool `json:"has_timeline"`
	HasComparison  bool `json:"has_comparison"`
	HasExplanation bool `json:"has_explanation"`
}

// Count returns how many of the four signal categories are present.
func (c ContextFlags) Count() int {
	n := 0
	for _, f := range []bool{c.HasStatistics, c.HasTimeline, c.HasComparison, c.HasExplanation} {
		if f {
			n++
		}
	}
	return n
}
