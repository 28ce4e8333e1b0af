package core

import "errors"

// Common errors.
var (
	ErrMissingID      = errors.New("record has no id")
	ErrReservedKey    = errors.New("reserved attribute name")
	ErrUnknownClass   = errors.New("unknown entity class")
	ErrNotFound       = errors.New("entity not found")
	ErrInvalidValue   = errors.New("invalid attribute value")
	ErrUnknownAdapter = errors.New("unknown storage adapter")
)
