package model

import "strings"

// Article is the unit of work: one news-style story, paragraph-segmented.
// Supplied by an article collaborator (HTTP fetcher or file loader); the
// scoring core consumes it read-only.
type Article struct {
	ID         string   `json:"id"`                  // Stable identifier, usually the URL slug
	URL        string   `json:"url"`                 // Canonical URL
	Headline   string   `json:"headline"`            // Article headline
	Category   string   `json:"category"`            // "News", "Feature", "Sport", ...
	Paragraphs []string `json:"paragraphs"`          // Ordered body text blocks
	WordCount  int      `json:"word_count"`          // Body word count
	Author     string   `json:"author,omitempty"`    // Byline if known
}

// Text flattens the paragraphs into a single body string with blank-line
// paragraph separators, the form the attribution resolver works on.
func (a Article) Text() string {
	return strings.Join(a.Paragraphs, "\n\n")
}

// CategoryTarget holds the house targets a category is scored against.
type CategoryTarget struct {
	WordCount int `json:"word_count" yaml:"word_count"` // HW: house target word count
	Sources   int `json:"sources" yaml:"sources"`       // HS: house target source count
}
