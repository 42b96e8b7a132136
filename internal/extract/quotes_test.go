package extract

import "testing"

func TestLocateQuotesBasic(t *testing.T) {
	doc := NewDocument([]string{
		`The council approved the plan. "This is a turning point for the town," said Maria Keane.`,
	})
	spans := LocateQuotes(doc)
	if len(spans) != 1 {
		t.Fatalf("expected 1 quote, got %d", len(spans))
	}
	q := spans[0]
	if q.Text != "This is a turning point for the town," {
		t.Errorf("unexpected quote text: %q", q.Text)
	}
	if q.Paragraph != 0 {
		t.Errorf("paragraph = %d, want 0", q.Paragraph)
	}
	if q.Sentence != 1 {
		t.Errorf("sentence = %d, want 1", q.Sentence)
	}
	if q.LowConfidence {
		t.Error("long quote flagged low confidence")
	}
}

func TestLocateQuotesCurlyDelimiters(t *testing.T) {
	doc := NewDocument([]string{
		"“We’re not done yet,” she said.",
	})
	spans := LocateQuotes(doc)
	if len(spans) != 1 {
		t.Fatalf("expected 1 quote, got %d", len(spans))
	}
	if spans[0].Text != "We're not done yet," {
		t.Errorf("expected normalized apostrophe inside quote, got %q", spans[0].Text)
	}
}

func TestLocateQuotesUnterminated(t *testing.T) {
	doc := NewDocument([]string{
		`He opened with "never to be closed and the paragraph just ends here`,
	})
	if spans := LocateQuotes(doc); len(spans) != 0 {
		t.Fatalf("unterminated quote should be discarded, got %d spans", len(spans))
	}
}

func TestLocateQuotesMultiplePerParagraph(t *testing.T) {
	doc := NewDocument([]string{
		`"First statement from the speaker," he said, "and a second one right after."`,
	})
	spans := LocateQuotes(doc)
	if len(spans) != 2 {
		t.Fatalf("expected 2 quotes, got %d", len(spans))
	}
	if spans[0].Text != "First statement from the speaker," {
		t.Errorf("first span: %q", spans[0].Text)
	}
	if spans[1].Text != "and a second one right after." {
		t.Errorf("second span: %q", spans[1].Text)
	}
}

func TestLocateQuotesLowConfidence(t *testing.T) {
	doc := NewDocument([]string{
		`The so-called "super app" launched on Monday to muted reviews.`,
	})
	spans := LocateQuotes(doc)
	if len(spans) != 1 {
		t.Fatalf("expected 1 quote, got %d", len(spans))
	}
	if !spans[0].LowConfidence {
		t.Error("scare quote should be flagged low confidence")
	}
}

func TestSentenceBounds(t *testing.T) {
	text := `First sentence. Second one here! "And a quoted third?" Fourth.`
	b := sentenceBounds(text)
	if len(b) != 4 {
		t.Fatalf("expected 4 sentences, got %d: %v", len(b), b)
	}
	if got := text[b[1][0]:b[1][1]]; got != "Second one here!" {
		t.Errorf("second sentence = %q", got)
	}
}

func TestSentenceBoundsTrailingQuote(t *testing.T) {
	text := `Staff said they can "barely survive." The union agreed.`
	b := sentenceBounds(text)
	if len(b) != 2 {
		t.Fatalf("expected 2 sentences, got %d: %v", len(b), b)
	}
	if got := text[b[0][0]:b[0][1]]; got != `Staff said they can "barely survive."` {
		t.Errorf("first sentence = %q", got)
	}
}
