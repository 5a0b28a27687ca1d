package trivia

import "errors"

var (
	// ErrInvalidQuestion indicates a question failed construction-time validation.
	ErrInvalidQuestion = errors.New("invalid trivia question")
	// ErrMalformedAnswer is returned when a submitted answer is empty after normalization.
	ErrMalformedAnswer = errors.New("malformed answer")
	// ErrInvalidBoolAnswer is returned when a submitted answer cannot be read as true/false.
	ErrInvalidBoolAnswer = errors.New("invalid true/false answer")
	// ErrInvalidOrdinal is returned when a submitted answer cannot be read as a multiple choice ordinal.
	ErrInvalidOrdinal = errors.New("invalid multiple choice ordinal")
	// ErrNoQuestionAvailable is returned by question sources that have nothing to serve.
	ErrNoQuestionAvailable = errors.New("no trivia question available")
	// ErrInvalidAction indicates an action failed validation before any state was touched.
	ErrInvalidAction = errors.New("invalid trivia action")
)
