package schedule

import "errors"

var (
	ErrEventNotFound = errors.New("event not found")
	// ErrReadOnly is returned for edits to events derived from tasks.
	ErrReadOnly = errors.New("schedule is derived from the board and read-only")
)
