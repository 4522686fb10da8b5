package app

import (
	"errors"
	"fmt"
)

var (
	// ErrShutdown is returned once Shutdown has been called.
	ErrShutdown = errors.New("application shut down")

	// ErrNoProfile is returned by Watch when the application was started
	// without a profile file.
	ErrNoProfile = errors.New("no profile file")

	ErrDuplicateAction = errors.New("action already handled")
)

// InitError names the component whose startup failed.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("starting %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// ComponentError wraps a failure of a running component, e.g. a script
// error during reload.
type ComponentError struct {
	Component string
	Action    string
	Err       error
}

func (e *ComponentError) Error() string {
	if e.Action == "" {
		return e.Component + ": " + e.Err.Error()
	}
	return e.Component + " " + e.Action + ": " + e.Err.Error()
}

func (e *ComponentError) Unwrap() error { return e.Err }
