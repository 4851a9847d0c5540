package deck

import "errors"

var (
	// ErrInputTooShort is returned when the normalized text is below the minimum length.
	ErrInputTooShort = errors.New("input text too short")
	// ErrInsufficientTerms is returned when the text yields fewer than three candidate terms.
	ErrInsufficientTerms = errors.New("not enough key terms in text")
	// ErrInvalidCount is returned for a requested question count below one.
	ErrInvalidCount = errors.New("question count must be at least 1")
)
