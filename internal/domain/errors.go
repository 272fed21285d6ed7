package domain

import "errors"

var (
	// ErrInvalidIndex is returned when a question or option index is out of range.
	ErrInvalidIndex = errors.New("invalid question or option index")
	// ErrNoAnswers is returned when an outcome is requested before any answer was recorded.
	ErrNoAnswers = errors.New("no answers recorded")
	// ErrUnknownOutcome indicates an outcome key absent from the catalog.
	ErrUnknownOutcome = errors.New("unknown outcome")
	// ErrInvalidCatalog wraps every problem found while validating quiz content.
	ErrInvalidCatalog = errors.New("invalid catalog")
	// ErrCatalogNotFound indicates the quiz content could not be loaded.
	ErrCatalogNotFound = errors.New("catalog not found")
	// ErrEmptyFeedback is returned for feedback without any text.
	ErrEmptyFeedback = errors.New("empty feedback")
)
