package score

import (
	"errors"
	"math"
	"testing"

	"github.com/creedharan/sourcescore/internal/model"
)

func testArticle(category string, words int) *model.Article {
	return &model.Article{ID: "a1", Category: category, WordCount: words}
}

func namedSource(prov model.Provenance, attr model.Attribution) model.Source {
	return model.Source{
		Name:        "Test Source",
		Gender:      model.GenderUnknown,
		Role:        model.RoleImpact,
		Provenance:  prov,
		Attribution: attr,
	}
}

func mustEngine(t *testing.T, policy string) *Engine {
	t.Helper()
	e, err := NewEngine(policy, model.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return e
}

func TestScoreFullMarks(t *testing.T) {
	e := mustEngine(t, "ssi-standard")
	sources := []model.Source{
		namedSource(model.ProvenanceOriginal, model.AttributionFull),
		{Name: "Second Voice", Provenance: model.ProvenanceOriginal, Attribution: model.AttributionFull},
	}
	ctx := model.ContextFlags{HasStatistics: true, HasTimeline: true, HasComparison: true, HasExplanation: true}
	sc, err := e.Score(testArticle("News", 400), sources, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(sc.FinalScore-100) > 1e-9 {
		t.Errorf("final = %v, want 100", sc.FinalScore)
	}
	for _, g := range sc.Gates {
		if g.Applied {
			t.Errorf("gate %s applied on a full-marks article", g.Name)
		}
	}
}

func TestScoreZeroSourceCapOverridesEverything(t *testing.T) {
	// WE=1.0 and CD=1.0 with zero sources must still cap at 40.
	e := mustEngine(t, "ssi-standard")
	ctx := model.ContextFlags{HasStatistics: true, HasTimeline: true, HasComparison: true, HasExplanation: true}
	sc, err := e.Score(testArticle("News", 2000), nil, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if sc.FinalScore != 40 {
		t.Errorf("final = %v, want 40", sc.FinalScore)
	}
	if sc.Components.ARDefined {
		t.Error("AR should be undefined with zero sources")
	}
	if sc.Gates[0].Name != "zero_source_cap" || !sc.Gates[0].Applied {
		t.Errorf("zero_source_cap not first/applied: %+v", sc.Gates)
	}
}

func TestScoreARDroppedNotZeroed(t *testing.T) {
	// Raw composite with zero sources averages four terms, not five.
	e := mustEngine(t, "ssi-standard")
	sc, err := e.Score(testArticle("News", 350), nil, model.ContextFlags{HasStatistics: true, HasTimeline: true})
	if err != nil {
		t.Fatal(err)
	}
	// WE=1.0, SD=0, CD=0.5, OI=0 -> 100*(1.5/4) = 37.5
	if math.Abs(sc.RawScore-37.5) > 1e-9 {
		t.Errorf("raw = %v, want 37.5 (four-term mean)", sc.RawScore)
	}
}

func TestScoreLowOriginalityCapAfterZeroSourceCap(t *testing.T) {
	e := mustEngine(t, "ssi-standard")
	sources := []model.Source{
		namedSource(model.ProvenanceWire, model.AttributionFull),
		{Name: "Agency Voice", Provenance: model.ProvenanceWire, Attribution: model.AttributionFull},
		{Name: "Third Wire", Provenance: model.ProvenanceWire, Attribution: model.AttributionFull},
		{Name: "Fourth Wire", Provenance: model.ProvenanceWire, Attribution: model.AttributionFull},
	}
	ctx := model.ContextFlags{HasStatistics: true, HasTimeline: true, HasComparison: true, HasExplanation: true}
	sc, err := e.Score(testArticle("News", 400), sources, ctx)
	if err != nil {
		t.Fatal(err)
	}
	// OI = 0.3 < 0.4 threshold; raw = 100*(1+2+1+1+0.3)/5 = 106 uncapped SD
	if sc.FinalScore != 60 {
		t.Errorf("final = %v, want low-originality ceiling 60", sc.FinalScore)
	}
	if sc.Gates[1].Name != "low_originality_cap" || !sc.Gates[1].Applied {
		t.Errorf("low_originality_cap not second/applied: %+v", sc.Gates)
	}
	if sc.Gates[0].Applied {
		t.Error("zero_source_cap applied with qualifying sources present")
	}
}

func TestScoreStrictPolicyProvenanceFloor(t *testing.T) {
	// Wire-only sourcing qualifies under standard but not under strict.
	sources := []model.Source{namedSource(model.ProvenanceWire, model.AttributionFull)}
	ctx := model.ContextFlags{}

	std, err := mustEngine(t, "ssi-standard").Score(testArticle("News", 350), sources, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if std.Components.SD != 0.5 {
		t.Errorf("standard SD = %v, want 0.5", std.Components.SD)
	}

	strict, err := mustEngine(t, "ssi-strict").Score(testArticle("News", 350), sources, ctx)
	if err != nil {
		t.Fatal(err)
	}
	if strict.Components.SD != 0 {
		t.Errorf("strict SD = %v, want 0", strict.Components.SD)
	}
	// WE=1, SD=0, CD=0, OI=0.3, AR dropped: raw 32.5, already under the cap.
	if math.Abs(strict.FinalScore-32.5) > 1e-9 {
		t.Errorf("strict final = %v, want 32.5", strict.FinalScore)
	}
}

func TestScoreSourceDensityUncapped(t *testing.T) {
	e := mustEngine(t, "ssi-standard")
	var sources []model.Source
	for _, n := range []string{"A One", "B Two", "C Three", "D Four", "E Five"} {
		sources = append(sources, model.Source{Name: n, Provenance: model.ProvenanceOriginal, Attribution: model.AttributionFull})
	}
	sc, err := e.Score(testArticle("News", 350), sources, model.ContextFlags{})
	if err != nil {
		t.Fatal(err)
	}
	if sc.Components.SD != 2.5 {
		t.Errorf("SD = %v, want 2.5 (uncapped)", sc.Components.SD)
	}
	if sc.FinalScore < 0 || sc.FinalScore > 100 {
		t.Errorf("final %v out of bounds", sc.FinalScore)
	}
}

func TestScoreMissingCategory(t *testing.T) {
	e := mustEngine(t, "ssi-standard")
	_, err := e.Score(testArticle("Opinion", 500), nil, model.ContextFlags{})
	if !errors.Is(err, model.ErrMissingCategoryConfig) {
		t.Errorf("err = %v, want ErrMissingCategoryConfig", err)
	}
}

func TestLookupUnknownPolicy(t *testing.T) {
	if _, err := Lookup("ssi-experimental"); err == nil {
		t.Error("expected error for unregistered policy")
	}
}

func TestScoreBounds(t *testing.T) {
	e := mustEngine(t, "ssi-standard")
	cases := []struct {
		words   int
		sources []model.Source
		ctx     model.ContextFlags
	}{
		{10, nil, model.ContextFlags{}},
		{350, []model.Source{namedSource(model.ProvenanceOriginal, model.AttributionAnonymous)}, model.ContextFlags{}},
		{5000, []model.Source{namedSource(model.ProvenanceOriginal, model.AttributionFull)}, model.ContextFlags{HasStatistics: true}},
	}
	for i, c := range cases {
		sc, err := e.Score(testArticle("News", c.words), c.sources, c.ctx)
		if err != nil {
			t.Fatal(err)
		}
		if sc.FinalScore < 0 || sc.FinalScore > 100 {
			t.Errorf("case %d: final %v out of [0,100]", i, sc.FinalScore)
		}
	}
}
