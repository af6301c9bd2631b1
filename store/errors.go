package store

import "errors"

// Common store errors
var (
	// ErrInvalidKey indicates an empty or otherwise unusable key
	ErrInvalidKey = errors.New("store: invalid key")

	// ErrContextCanceled indicates the operation's context was canceled
	ErrContextCanceled = errors.New("store: context canceled")
)
