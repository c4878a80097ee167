package moon

import "errors"

// Sentinel errors for the moon package.
var (
	ErrFractionOutOfRange = errors.New("moon: phase fraction out of range")
	ErrUnknownPhase       = errors.New("moon: unknown phase name")
)
