package card

import "errors"

// Sentinel errors
var (
	ErrEmptyText       = errors.New("typewriter source text is empty")
	ErrInvalidInterval = errors.New("typewriter interval must be positive")
	ErrNoItems         = errors.New("carousel needs at least one item")
	ErrNoMedia         = errors.New("no media handle available")
	ErrNoContent       = errors.New("no content to load")
)
