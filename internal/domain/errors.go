package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrDataUnavailable is returned when the word corpus cannot be loaded.
	// A session cannot start without it.
	ErrDataUnavailable = errors.New("vocabulary data unavailable")

	// ErrInvalidMode is returned for a quiz mode outside definitions,
	// synonyms and fitb.
	ErrInvalidMode = errors.New("invalid quiz mode")

	// ErrEmptyWord is returned when an operation needs a non-empty word.
	ErrEmptyWord = errors.New("word cannot be empty")

	// ErrMalformedProgress is returned by DecodeModeProgress when stored
	// progress could not be fully decoded. The accompanying value is still usable.
	ErrMalformedProgress = errors.New("malformed persisted progress")
)
