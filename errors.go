package nms

import "errors"

var (
	// ErrScoreCount is returned when the number of scores passed to Select
	// does not match the number of boxes
	ErrScoreCount = errors.New("score count does not match box count")

	// ErrMalformedBox is returned when a flat coordinate buffer cannot be
	// split into groups of four values
	ErrMalformedBox = errors.New("malformed box buffer")

	// ErrBackendMismatch is returned by CrossCheck when two backends disagree
	// on a selection
	ErrBackendMismatch = errors.New("backends returned different selections")

	// ErrClosed is returned when selecting on a closed backend
	ErrClosed = errors.New("backend is closed")
)
