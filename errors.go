package kinetic

import "errors"

// Sentinel errors reported through diagnostics and returned by the
// object-level API. Match them with errors.Is.
var (
	ErrUnknownProperty = errors.New("unknown property")
	ErrValueKind       = errors.New("value kind does not match property")
	ErrNegativeFrame   = errors.New("negative frame")
	ErrNoKeyframes     = errors.New("no keyframes")
	ErrEmptyGroup      = errors.New("empty group")
	ErrNilObject       = errors.New("nil object")
	ErrNilCallback     = errors.New("nil callback")
	ErrTooFewPoints    = errors.New("path needs at least two points")
	ErrInvalidRange    = errors.New("invalid frame range")
	ErrUnknownType     = errors.New("unknown object type")
	ErrUnknownEffect   = errors.New("unknown effect")
	ErrNotFound        = errors.New("object not found")
)
