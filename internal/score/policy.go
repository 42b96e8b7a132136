package score

import (
	"fmt"
	"sort"

	"github.com/creedharan/sourcescore/internal/exempt"
	"github.com/creedharan/sourcescore/internal/model"
)

// Policy is one named scoring variant. All policies share the same
// component primitives; only the knobs below differ.
type Policy struct {
	Name string

	// MinProvenance is the lowest provenance tier that counts toward
	// Source Density. Empty means every unique voice qualifies.
	MinProvenance model.Provenance

	// ZeroSourceCeiling is the hard cap applied when no source qualifies.
	ZeroSourceCeiling float64

	// LowOIThreshold and LowOICeiling cap articles built on secondhand
	// material. The gate fires when OI < threshold.
	LowOIThreshold float64
	LowOICeiling   float64

	// Prescreen is the exemption rule set this policy runs with.
	Prescreen []exempt.Rule
}

// Qualifies reports whether a source counts toward Source Density under
// this policy.
func (p Policy) Qualifies(s model.Source) bool {
	if p.MinProvenance == "" {
		return true
	}
	return s.Provenance.Weight() >= p.MinProvenance.Weight()
}

var registry = map[string]Policy{
	"ssi-standard": {
		Name:              "ssi-standard",
		ZeroSourceCeiling: 40,
		LowOIThreshold:    0.4,
		LowOICeiling:      60,
		Prescreen:         exempt.StandardRules,
	},
	"ssi-strict": {
		Name:              "ssi-strict",
		MinProvenance:     model.ProvenanceProbableOriginal,
		ZeroSourceCeiling: 40,
		LowOIThreshold:    0.5,
		LowOICeiling:      60,
		Prescreen:         exempt.StrictRules,
	},
}

// Lookup returns a registered policy by name.
func Lookup(name string) (Policy, error) {
	p, ok := registry[name]
	if !ok {
		return Policy{}, fmt.Errorf("unknown scoring policy %q (have %v)", name, Names())
	}
	return p, nil
}

// Names lists the registered policy names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
