package core

import "errors"

// Common errors.
var (
	ErrReadOnly     = errors.New("storage is in read-only mode")
	ErrCorrupt      = errors.New("persisted state is corrupt")
	ErrNotWatchable = errors.New("storage does not support watching")
	ErrInvalidInput = errors.New("invalid input")
)
