package extract

import "testing"

func TestNormalizeCurlyDoubles(t *testing.T) {
	in := "“We lost everything,” she said."
	want := `"We lost everything," she said.`
	if got := Normalize(in); got != want {
		t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
	}
}

func TestNormalizeApostropheNotADelimiter(t *testing.T) {
	in := "the college’s budget and St James’ Park"
	want := "the college's budget and St James' Park"
	if got := Normalize(in); got != want {
		t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
	}
}

func TestNormalizeClausePromotion(t *testing.T) {
	in := "The minister called the plan ‘a complete shambles from day one’ on Tuesday."
	want := `The minister called the plan "a complete shambles from day one" on Tuesday.`
	if got := Normalize(in); got != want {
		t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
	}
}

func TestNormalizePossessiveInsideClause(t *testing.T) {
	// A span with an interior apostrophe is ambiguous (the apostrophe
	// could be the real closer), so promotion leaves it alone.
	in := "'the council's own report said as much' was the response"
	if got := Normalize(in); got != in {
		t.Errorf("ambiguous span rewritten: %q", got)
	}
}

func TestNormalizeSingleWordNotPromoted(t *testing.T) {
	in := "the so-called 'upgrade' arrived late"
	if got := Normalize(in); got != in {
		t.Errorf("single-word span promoted: %q", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	in := "“It’s done,” said the ‘interim’ chair of the board’s panel."
	once := Normalize(in)
	if twice := Normalize(once); twice != once {
		t.Errorf("not idempotent: %q vs %q", once, twice)
	}
}
