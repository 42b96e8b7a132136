// Package score implements the deterministic composite scoring engine.
// Every number it produces is reconstructible from the recorded
// components and gates; there is no hidden state.
package score

import (
	"fmt"

	"github.com/creedharan/sourcescore/internal/model"
)

// Engine scores one classified article under one policy.
type Engine struct {
	policy Policy
	cfg    *model.Config
}

// NewEngine creates an engine for the named policy.
func NewEngine(policyName string, cfg *model.Config) (*Engine, error) {
	p, err := Lookup(policyName)
	if err != nil {
		return nil, err
	}
	return &Engine{policy: p, cfg: cfg}, nil
}

// Policy returns the engine's active policy.
func (e *Engine) Policy() Policy { return e.policy }

// Score computes the composite for an article that passed the prescreen
// and came back from the classifier. Fails with ErrMissingCategoryConfig
// when the article's category has no house targets; HW and HS have no
// safe default.
func (e *Engine) Score(a *model.Article, sources []model.Source, ctx model.ContextFlags) (*model.ScoreComponents, error) {
	target, err := e.cfg.Target(a.Category)
	if err != nil {
		return nil, fmt.Errorf("score %s: %w", a.ID, err)
	}

	c := e.components(a, sources, ctx, target)
	raw := composite(c)

	sc := &model.ScoreComponents{
		Policy:     e.policy.Name,
		Category:   a.Category,
		Components: c,
		RawScore:   raw,
		FinalScore: raw,
	}

	// Gates run in fixed order and only ever lower the score.
	zeroGate := model.Gate{Name: "zero_source_cap", Ceiling: e.policy.ZeroSourceCeiling}
	if c.SD == 0 && sc.FinalScore > zeroGate.Ceiling {
		sc.FinalScore = zeroGate.Ceiling
		zeroGate.Applied = true
	}
	sc.Gates = append(sc.Gates, zeroGate)

	oiGate := model.Gate{Name: "low_originality_cap", Ceiling: e.policy.LowOICeiling}
	if c.OI < e.policy.LowOIThreshold && sc.FinalScore > oiGate.Ceiling {
		sc.FinalScore = oiGate.Ceiling
		oiGate.Applied = true
	}
	sc.Gates = append(sc.Gates, oiGate)

	sc.FinalScore = clamp(sc.FinalScore, 0, 100)
	return sc, nil
}

func (e *Engine) components(a *model.Article, sources []model.Source, ctx model.ContextFlags, target model.CategoryTarget) model.Components {
	var c model.Components

	c.WE = float64(a.WordCount) / float64(target.WordCount)
	if c.WE > 1.0 {
		c.WE = 1.0
	}

	qualifying := 0
	for _, s := range sources {
		if e.policy.Qualifies(s) {
			qualifying++
		}
	}
	// Uncapped: more sources than the house target is extra credit.
	c.SD = float64(qualifying) / float64(target.Sources)

	if len(sources) > 0 {
		var ar, oi float64
		for _, s := range sources {
			ar += s.Attribution.Weight()
			oi += s.Provenance.Weight()
		}
		c.AR = ar / float64(len(sources))
		c.ARDefined = true
		c.OI = oi / float64(len(sources))
	}

	c.CD = float64(ctx.Count()) / 4.0
	return c
}

// composite averages the defined components. When no source qualifies,
// AR is dropped from the mean entirely, not filled with a zero: Source
// Density already carries the sourcelessness penalty.
func composite(c model.Components) float64 {
	terms := []float64{c.WE, c.SD, c.CD, c.OI}
	if c.SD > 0 && c.ARDefined {
		terms = append(terms, c.AR)
	}
	var sum float64
	for _, t := range terms {
		sum += t
	}
	return 100 * sum / float64(len(terms))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
