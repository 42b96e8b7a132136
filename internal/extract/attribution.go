package extract

import (
	"regexp"
	"strings"
)

// Rank records which rule produced a candidate. Lower is stronger.
type Rank int

const (
	RankSameSentence Rank = iota
	RankSameParagraph
	RankPrevParagraph
	RankNone
)

func (r Rank) String() string {
	switch r {
	case RankSameSentence:
		return "same_sentence"
	case RankSameParagraph:
		return "same_paragraph"
	case RankPrevParagraph:
		return "previous_paragraph"
	default:
		return "none"
	}
}

// AttributionCandidate is a name found near a quote, before dedup.
type AttributionCandidate struct {
	Name     string
	Rank     Rank
	Excluded bool
}

// attributionVerbs is the closed verb list used for adjacency matching.
// "described" covers the "X described the scene" construction.
var attributionVerbs = []string{
	"says", "say", "said", "told", "tells", "added", "adds",
	"explained", "explains", "confirmed", "confirms", "stated", "states",
	"noted", "notes", "revealed", "reveals", "claimed", "claims",
	"described", "describes",
}

const (
	nameToken = `[A-Z][A-Za-z'\-]+`
	// Up to four capitalized tokens covers honorific + given + middle +
	// family ("Dr. Anne Marie Moriarty") without swallowing sentences.
	namePat = `(?:(?:Dr|Mr|Mrs|Ms|Prof|Sir)\.?\s+)?` + nameToken + `(?:\s+` + nameToken + `){0,3}`
)

var (
	verbAlt = `(?i:` + strings.Join(attributionVerbs, "|") + `)`

	// "...," said Maria Keane
	afterVerbName = regexp.MustCompile(`^[,\s]*` + verbAlt + `\s+(` + namePat + `)`)
	// "..." Maria Keane, the town's mayor, said
	afterNameVerb = regexp.MustCompile(`^[,\s]*(` + namePat + `)(?:,\s*[^,"]{1,60},)?\s+` + verbAlt + `\b`)
	// Maria Keane, the town's mayor, said: "..."
	beforeNameVerb = regexp.MustCompile(`(` + namePat + `)(?:,\s*[^,"]{1,60},)?\s+` + verbAlt + `\b[^"]{0,40}$`)
	// He said Maria Keane: "..." style inversion
	beforeVerbName = regexp.MustCompile(`\b` + verbAlt + `\s+(` + namePat + `)[,:]?\s*$`)

	// Paragraph-end introduction: name, appositive title, verb, short
	// embedded quote closing the paragraph. The next paragraph's bare
	// quote inherits this name.
	introWithQuote = regexp.MustCompile(`(` + namePat + `)(?:,\s*[^,"]{1,80},)?\s*` + verbAlt + `\b[^"]*"[^"]{1,160}"[.]?\s*$`)

	anyName = regexp.MustCompile(namePat)

	// Paragraph scanning has no verb anchor, so a lone capitalized word
	// (usually just a sentence opener) is not evidence of a name there.
	multiName = regexp.MustCompile(nameToken + `(?:\s+` + nameToken + `){1,3}`)

	cardinalLead  = regexp.MustCompile(`^(?:Two|Three|Four|Five|Six|Seven|Eight|Nine|Ten|Eleven|Twelve|\d+)\b`)
	leadingVerbRe = regexp.MustCompile(`^(?i:` + strings.Join(attributionVerbs, "|") + `)\s+`)
)

// Resolver finds speakers for located quotes.
type Resolver struct {
	author string // byline name, never a source
}

func NewResolver(author string) *Resolver {
	return &Resolver{author: strings.TrimSpace(author)}
}

// ResolvedQuote joins a quote span to its speaker, or to "" when the
// quote stays unattributed.
type ResolvedQuote struct {
	Span    QuoteSpan
	Speaker string
	Rank    Rank
}

// ResolveAll attributes every span against the document. Spans with no
// acceptable candidate come back with an empty Speaker and RankNone;
// the deduplicator buckets those as anonymous.
func (r *Resolver) ResolveAll(doc Document, spans []QuoteSpan) []ResolvedQuote {
	out := make([]ResolvedQuote, 0, len(spans))
	for _, span := range spans {
		name, rank := r.resolve(doc, span)
		out = append(out, ResolvedQuote{Span: span, Speaker: name, Rank: rank})
	}
	return out
}

func (r *Resolver) resolve(doc Document, span QuoteSpan) (string, Rank) {
	para := doc.Paragraphs[span.Paragraph]

	if name, ok := r.sameSentence(para, span); ok {
		return name, RankSameSentence
	}
	if name, ok := r.sameParagraph(para, span); ok {
		return name, RankSameParagraph
	}
	if span.Paragraph > 0 {
		if name, ok := r.prevParagraph(doc.Paragraphs[span.Paragraph-1], para, span); ok {
			return name, RankPrevParagraph
		}
	}
	return "", RankNone
}

// sameSentence looks at the text directly after the closing delimiter
// and directly before the opener, bounded by the quote's sentence.
func (r *Resolver) sameSentence(para string, span QuoteSpan) (string, bool) {
	sentStart, _ := sentenceAt(para, span.Start)

	// Submatch index pairs locate the candidate at its actual match
	// position; searching for the name text again would find the first
	// occurrence, which is the wrong one for repeated names.
	after := para[span.End+1:]
	afterBase := span.End + 1
	if idx := afterVerbName.FindStringSubmatchIndex(after); idx != nil {
		if name, ok := r.accept(para, afterBase+idx[2], after[idx[2]:idx[3]]); ok {
			return name, true
		}
	}
	if idx := afterNameVerb.FindStringSubmatchIndex(after); idx != nil {
		if name, ok := r.accept(para, afterBase+idx[2], after[idx[2]:idx[3]]); ok {
			return name, true
		}
	}

	before := para[sentStart:span.Start]
	if idx := beforeNameVerb.FindStringSubmatchIndex(before); idx != nil {
		if name, ok := r.accept(para, sentStart+idx[2], before[idx[2]:idx[3]]); ok {
			return name, true
		}
	}
	if idx := beforeVerbName.FindStringSubmatchIndex(before); idx != nil {
		if name, ok := r.accept(para, sentStart+idx[2], before[idx[2]:idx[3]]); ok {
			return name, true
		}
	}
	return "", false
}

// sameParagraph masks all quoted text and takes the acceptable name
// nearest to the span.
func (r *Resolver) sameParagraph(para string, span QuoteSpan) (string, bool) {
	masked := maskQuotes(para)
	var best string
	bestDist := -1
	for _, loc := range multiName.FindAllStringIndex(masked, -1) {
		cand := para[loc[0]:loc[1]]
		name, ok := r.accept(para, loc[0], cand)
		if !ok {
			continue
		}
		dist := loc[0] - span.End
		if dist < 0 {
			dist = span.Start - loc[1]
		}
		if dist < 0 {
			continue
		}
		if bestDist == -1 || dist < bestDist {
			best, bestDist = name, dist
		}
	}
	return best, best != ""
}

// prevParagraph applies the introduction convention: the previous
// paragraph ends with "<Name>, <title>, <verb> ... "<short quote>"."
// and the current paragraph opens with an unattributed full quote.
func (r *Resolver) prevParagraph(prev, cur string, span QuoteSpan) (string, bool) {
	// Only the paragraph's leading standalone quote inherits.
	if strings.TrimSpace(cur[:span.Start]) != "" {
		return "", false
	}
	idx := introWithQuote.FindStringSubmatchIndex(prev)
	if idx == nil {
		return "", false
	}
	return r.accept(prev, idx[2], prev[idx[2]:idx[3]])
}

// accept runs the exclusion rules. offset is the candidate's position
// in text, used for the byline lookback.
func (r *Resolver) accept(text string, offset int, cand string) (string, bool) {
	cand = strings.TrimSpace(cand)
	if cand == "" {
		return "", false
	}
	if offset >= 3 && strings.EqualFold(text[offset-3:offset], "By ") {
		return "", false
	}
	if cardinalLead.MatchString(cand) {
		return "", false
	}
	// Verb leakage: "Says Matt" carries the boundary verb into the
	// name. Strip it and keep what remains.
	if stripped := leadingVerbRe.ReplaceAllString(cand, ""); stripped != cand {
		cand = strings.TrimSpace(stripped)
		if cand == "" || !anyName.MatchString(cand) {
			return "", false
		}
	}
	if r.author != "" && strings.EqualFold(cand, r.author) {
		return "", false
	}
	return cand, true
}

// maskQuotes blanks quoted spans so name scans do not pick names that
// appear inside quoted speech.
func maskQuotes(para string) string {
	b := []byte(para)
	inQuote := false
	for i := range b {
		if b[i] == '"' {
			inQuote = !inQuote
			continue
		}
		if inQuote {
			b[i] = ' '
		}
	}
	return string(b)
}
