package exercise

import "errors"

// ErrInvalidArgument is returned for a non-positive count or an unknown
// operation, tier or source. Callers match it with errors.Is.
var ErrInvalidArgument = errors.New("invalid argument")

// errEnhancedUnavailable marks an enhanced request that produced nothing
// usable. It never leaves this package.
var errEnhancedUnavailable = errors.New("enhanced source unavailable")
