package gesture

import "errors"

// Sentinel errors for registration. A rejected registration leaves the
// registry untouched.
var (
	// ErrInvalidDirection is returned for a swipe direction other than
	// left, right, up or down.
	ErrInvalidDirection = errors.New("invalid swipe direction")

	// ErrInvalidKind is returned for an unknown gesture kind.
	ErrInvalidKind = errors.New("invalid gesture kind")

	// ErrInvalidFingers is returned for a finger count outside [0,5].
	ErrInvalidFingers = errors.New("finger count out of range")

	// ErrNilSurface is returned when no surface is given.
	ErrNilSurface = errors.New("surface cannot be nil")

	// ErrNotRegistered is returned when unregistering an unknown binding.
	ErrNotRegistered = errors.New("gesture not registered")

	// ErrCallbackPanic is wrapped by PanicError.
	ErrCallbackPanic = errors.New("gesture callback panicked")
)

// PanicError records a recovered callback panic.
type PanicError struct {
	// Key is the binding whose callback panicked.
	Key Key

	// Value is the value passed to panic().
	Value any
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return "gesture callback panic for " + e.Key.String()
}

// Is allows errors.Is to match PanicError with ErrCallbackPanic.
func (e *PanicError) Is(target error) bool {
	return target == ErrCallbackPanic
}
