package organizer

import "errors"

// Sentinel errors returned by the organizer. Validation errors are
// raised before any filesystem mutation happens.
var (
	ErrNotFound            = errors.New("directory not found")
	ErrInvalidSizeRange    = errors.New("invalid size range")
	ErrInvalidKeepStrategy = errors.New("invalid keep strategy")
)
