package extract

import (
	"regexp"
	"strings"
)

// punctReplacer maps typographic quotation marks to ASCII. U+2019 maps to
// an apostrophe, never a double quote: it serves both as the apostrophe in
// "college's" and as a closing single quote, and only the clause-promotion
// pass below may turn the latter into a quotation delimiter.
var punctReplacer = strings.NewReplacer(
	"“", `"`, // left double quotation mark
	"”", `"`, // right double quotation mark
	"„", `"`, // low double quotation mark
	"‘", "'", // left single quotation mark
	"’", "'", // right single quotation mark / apostrophe
	"′", "'", // prime
)

// clausePromotion matches a single-quoted span that wraps a whole clause:
// the opener must follow start-of-text or whitespace/bracket, the closer
// must precede whitespace/punctuation/end, and the span must contain at
// least one space. A possessive apostrophe sits between letters on at
// least one side and can never match.
var clausePromotion = regexp.MustCompile(`(^|[\s(\[{])'([^'\n]*[ ][^'\n]*?)'([\s)\].,;:!?]|$)`)

// Normalize canonicalizes quotation punctuation so the quote locator and
// attribution resolver only ever deal with straight double quotes. Pure
// function; unrecognized code points pass through unchanged, and
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(text string) string {
	text = punctReplacer.Replace(text)
	return clausePromotion.ReplaceAllString(text, `$1"$2"$3`)
}
