package extract

import (
	"strings"

	"github.com/creedharan/sourcescore/internal/model"
)

// pronouns never survive as canonical speaker names.
var pronouns = map[string]bool{
	"he": true, "she": true, "they": true, "it": true,
	"him": true, "her": true, "them": true, "his": true,
	"hers": true, "theirs": true, "who": true, "we": true, "i": true,
}

// CleanName strips attribution-verb leakage and stray punctuation from a
// resolved speaker name. Returns "" when nothing attributable remains.
func CleanName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Trim(name, `.,;:"'`)
	name = leadingVerbRe.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	if pronouns[strings.ToLower(name)] {
		return ""
	}
	return name
}

// CoerceGender maps classifier output onto the fixed enum. Short aliases
// are accepted; a plural pronoun marker collapses to unknown. Anything
// else is rejected so the caller can fail the article.
func CoerceGender(raw string) (model.Gender, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "male", "m":
		return model.GenderMale, true
	case "female", "f":
		return model.GenderFemale, true
	case "non-binary", "nonbinary", "nb":
		return model.GenderNonbinary, true
	case "unknown", "they", "":
		return model.GenderUnknown, true
	default:
		return model.GenderUnknown, false
	}
}

// anonLabel synthesizes a placeholder name for an unattributed quote,
// keyed on a role hint found in the surrounding paragraph.
func anonLabel(context string) string {
	lc := strings.ToLower(context)
	switch {
	case strings.Contains(lc, "victim"):
		return "Anonymous victim"
	case strings.Contains(lc, "witness"):
		return "Unnamed witness"
	default:
		return "Anonymous source"
	}
}

// Voice is one unique speaker after merging, carrying every quote that
// resolved to them.
type Voice struct {
	Name      string
	Anonymous bool
	Quotes    []QuoteSpan
}

// Dedupe merges resolved quotes into unique voices. Matching is exact on
// the post-cleaning name; unattributed quotes are bucketed under
// synthesized anonymous labels.
func Dedupe(doc Document, resolved []ResolvedQuote) []Voice {
	index := make(map[string]int)
	var voices []Voice

	add := func(name string, anon bool, span QuoteSpan) {
		if i, ok := index[name]; ok {
			voices[i].Quotes = append(voices[i].Quotes, span)
			return
		}
		index[name] = len(voices)
		voices = append(voices, Voice{Name: name, Anonymous: anon, Quotes: []QuoteSpan{span}})
	}

	for _, rq := range resolved {
		name := CleanName(rq.Speaker)
		if name == "" {
			add(anonLabel(doc.Paragraphs[rq.Span.Paragraph]), true, rq.Span)
			continue
		}
		add(name, false, rq.Span)
	}
	return voices
}
