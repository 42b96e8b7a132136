package classify

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/creedharan/sourcescore/internal/extract"
	"github.com/creedharan/sourcescore/internal/model"
)

// ParseResponse decodes and validates raw classifier output. Models keep
// wrapping JSON in markdown code fences despite instructions, so fences
// are stripped before decoding. Any parse failure or out-of-enum value
// returns ErrClassifierMalformed; nothing is silently defaulted.
func ParseResponse(raw string) (*Response, error) {
	raw = stripCodeFence(raw)

	var resp Response
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrClassifierMalformed, err)
	}

	for i, sj := range resp.Sources {
		if strings.TrimSpace(sj.Name) == "" {
			return nil, fmt.Errorf("%w: source %d has empty name", model.ErrClassifierMalformed, i)
		}
		if _, ok := extract.CoerceGender(sj.Gender); !ok {
			return nil, fmt.Errorf("%w: source %q gender %q", model.ErrClassifierMalformed, sj.Name, sj.Gender)
		}
		if !validRole(sj.Role) {
			return nil, fmt.Errorf("%w: source %q role %q", model.ErrClassifierMalformed, sj.Name, sj.Role)
		}
		if !validProvenance(sj.Provenance) {
			return nil, fmt.Errorf("%w: source %q provenance %q", model.ErrClassifierMalformed, sj.Name, sj.Provenance)
		}
		if !validAttribution(sj.Attribution) {
			return nil, fmt.Errorf("%w: source %q attribution %q", model.ErrClassifierMalformed, sj.Name, sj.Attribution)
		}
	}
	return &resp, nil
}

// stripCodeFence removes a wrapping ```json ... ``` or ``` ... ``` fence.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func validRole(s string) bool {
	switch model.Role(s) {
	case model.RoleStructural, model.RoleImpact:
		return true
	}
	return false
}

func validProvenance(s string) bool {
	switch model.Provenance(s) {
	case model.ProvenanceOriginal, model.ProvenanceProbableOriginal,
		model.ProvenanceInstitutional, model.ProvenanceWire:
		return true
	}
	return false
}

func validAttribution(s string) bool {
	switch model.Attribution(s) {
	case model.AttributionFull, model.AttributionPartial,
		model.AttributionVague, model.AttributionAnonymous:
		return true
	}
	return false
}

// Merge joins validated judgments onto the deduplicated voices, producing
// the final Source list. A voice the classifier did not judge is a
// contract violation; judgments for unknown names are dropped (the
// resolver, not the model, owns the voice list).
func Merge(voices []extract.Voice, resp *Response) ([]model.Source, error) {
	byName := make(map[string]SourceJudgment, len(resp.Sources))
	for _, sj := range resp.Sources {
		byName[sj.Name] = sj
	}

	sources := make([]model.Source, 0, len(voices))
	for _, v := range voices {
		sj, ok := byName[v.Name]
		if !ok {
			return nil, fmt.Errorf("%w: no judgment for voice %q", model.ErrClassifierMalformed, v.Name)
		}
		gender, _ := extract.CoerceGender(sj.Gender)
		src := model.Source{
			Name:        v.Name,
			Gender:      gender,
			Role:        model.Role(sj.Role),
			Provenance:  model.Provenance(sj.Provenance),
			Attribution: model.Attribution(sj.Attribution),
			QuoteCount:  len(v.Quotes),
			Anonymous:   v.Anonymous,
		}
		if len(v.Quotes) > 0 {
			src.Snippet = v.Quotes[0].Text
		}
		if v.Anonymous {
			src.Attribution = model.AttributionAnonymous
		}
		sources = append(sources, src)
	}
	return sources, nil
}
