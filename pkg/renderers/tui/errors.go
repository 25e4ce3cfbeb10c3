package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrInvalidChoice is returned when a driver reports an out of range
	// selection.
	ErrInvalidChoice = errors.New("tui: invalid choice")
)
