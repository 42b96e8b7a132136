package extract

import "strings"

// Document is the paragraph-indexed model the resolver works on. Keeping
// paragraphs separate (rather than one flattened string with a character
// window) is what makes the cross-paragraph attribution rule testable.
type Document struct {
	Paragraphs []string
}

// NewDocument normalizes each paragraph and drops empty blocks.
func NewDocument(paragraphs []string) Document {
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		p = strings.TrimSpace(Normalize(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return Document{Paragraphs: out}
}

// QuoteSpan is one contiguous run of directly quoted text.
type QuoteSpan struct {
	Text          string // Inner text, delimiters excluded
	Paragraph     int    // Index into Document.Paragraphs
	Sentence      int    // 0-based sentence offset within the paragraph
	Start         int    // Byte offset of the opening delimiter
	End           int    // Byte offset of the closing delimiter
	LowConfidence bool   // Scare-quoted fragment with no attributable claim
}

// minConfidentQuote is the shortest inner text treated as an attributable
// claim; shorter spans are retained but flagged low-confidence.
const minConfidentQuote = 15

// LocateQuotes finds every terminated double-quoted span in the document.
// An opening quote with no matching close before the end of its paragraph
// is discarded, not an error.
func LocateQuotes(doc Document) []QuoteSpan {
	var spans []QuoteSpan
	for pi, para := range doc.Paragraphs {
		var positions []int
		for i := 0; i < len(para); i++ {
			if para[i] == '"' {
				positions = append(positions, i)
			}
		}
		// Pair delimiters in order; an odd trailing opener is unterminated.
		for i := 0; i+1 < len(positions); i += 2 {
			open, close := positions[i], positions[i+1]
			inner := para[open+1 : close]
			spans = append(spans, QuoteSpan{
				Text:          inner,
				Paragraph:     pi,
				Sentence:      sentenceIndex(para, open),
				Start:         open,
				End:           close,
				LowConfidence: len(inner) < minConfidentQuote,
			})
		}
	}
	return spans
}

// sentenceIndex counts complete sentences before the given offset.
func sentenceIndex(text string, offset int) int {
	n := 0
	for i := 0; i < offset && i < len(text); i++ {
		if isTerminatorAt(text, i) {
			n++
		}
	}
	return n
}

// isTerminatorAt reports whether text[i] ends a sentence. A terminator
// followed by a space, a closing quote, or end of text is a boundary;
// abbreviation-ish runs like "U.S.A" mid-word are not.
func isTerminatorAt(text string, i int) bool {
	c := text[i]
	if c != '.' && c != '!' && c != '?' {
		return false
	}
	if i+1 >= len(text) {
		return true
	}
	next := text[i+1]
	return next == ' ' || next == '\t' || next == '"'
}

// sentenceBounds returns [start,end) byte ranges of sentences in text.
func sentenceBounds(text string) [][2]int {
	var bounds [][2]int
	start := 0
	for i := 0; i < len(text); i++ {
		if isTerminatorAt(text, i) {
			end := i + 1
			// A closing quote directly after the terminator belongs to
			// the sentence: said staff can "barely survive."
			if end < len(text) && text[end] == '"' {
				end++
			}
			bounds = append(bounds, [2]int{start, end})
			start = end
			for start < len(text) && (text[start] == ' ' || text[start] == '\t') {
				start++
			}
			i = start - 1
		}
	}
	if start < len(text) {
		bounds = append(bounds, [2]int{start, len(text)})
	}
	return bounds
}

// sentenceAt returns the bounds of the sentence containing offset.
func sentenceAt(text string, offset int) (int, int) {
	for _, b := range sentenceBounds(text) {
		if offset >= b[0] && offset < b[1] {
			return b[0], b[1]
		}
	}
	return 0, len(text)
}
