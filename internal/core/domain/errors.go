package domain

import "errors"

// Domain errors represent precondition and business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates no normaliser handles a MIME type.
	ErrUnsupportedType = errors.New("unsupported type")

	// ErrInvalidThreshold indicates a threshold outside [MinThreshold, MaxThreshold].
	// It is fatal to a run and is reported before any query is issued.
	ErrInvalidThreshold = errors.New("threshold must be between 0 and 100")

	// ErrNotADirectory indicates the corpus path is missing or not a directory.
	ErrNotADirectory = errors.New("not a directory")

	// ErrIndexExists indicates the temporary index location is already taken.
	ErrIndexExists = errors.New("temporary index already exists")

	// ErrIndexClosed indicates the index has been closed.
	ErrIndexClosed = errors.New("index closed")

	// ErrInvalidSettings indicates a configuration value is out of range.
	ErrInvalidSettings = errors.New("invalid settings")
)
