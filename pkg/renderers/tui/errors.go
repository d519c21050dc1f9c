package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrInvalidAnswer is returned once a question used up its attempts
	// without passing validation.
	ErrInvalidAnswer = errors.New("tui: invalid answer")
)
