package repository

import "errors"

var (
	// ErrCorruptDocument is returned when a stored document cannot be decoded
	// or does not match its schema.
	ErrCorruptDocument = errors.New("corrupt document")
)
