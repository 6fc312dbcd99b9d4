package bot

import "errors"

var (
	// ErrMaxRetriesExceeded is returned when no unique identity could be
	// negotiated within the configured attempt bound.
	ErrMaxRetriesExceeded = errors.New("no unique bot identity found within the attempt bound")

	// ErrSynthesisFailed is returned when the language model call fails or
	// its completion cannot be parsed into an IdeaContent.
	ErrSynthesisFailed = errors.New("idea synthesis failed")
)
