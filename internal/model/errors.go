package model

import "errors"

// Per-article failure taxonomy. Failures are isolated and recorded with a
// reason; they never abort a batch. Attribution ambiguity is NOT an error:
// it resolves to an anonymous source instead.
var (
	// ErrFetchUnavailable means the article collaborator could not supply
	// the article body. Terminal for the article.
	ErrFetchUnavailable = errors.New("article fetch unavailable")

	// ErrClassifierTimeout means the external classifier did not answer
	// within the configured deadline. Soft failure; retry or review.
	ErrClassifierTimeout = errors.New("classifier timeout")

	// ErrClassifierMalformed means the classifier response failed the
	// contract: unparseable JSON or an out-of-enum field value. The whole
	// article is marked error, never partially scored.
	ErrClassifierMalformed = errors.New("classifier response malformed")

	// ErrMissingCategoryConfig means the article's category has no house
	// targets configured. HW/HS have no safe default.
	ErrMissingCategoryConfig = errors.New("no category targets configured")

	// ErrExemptionAmbiguous is reserved for prescreen rule sets whose
	// ordering would admit conflicting reasons. The shipped rule sets are
	// fully ordered, so this only surfaces from misconfigured custom sets.
	ErrExemptionAmbiguous = errors.New("ambiguous exemption rules")
)
