package model

import "testing"

func TestArticleText(t *testing.T) {
	a := Article{Paragraphs: []string{"First block.", "Second block."}}
	if got, want := a.Text(), "First block.\n\nSecond block."; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}

	if got := (Article{}).Text(); got != "" {
		t.Errorf("empty article Text() = %q, want empty", got)
	}
}
