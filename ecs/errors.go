package ecs

import "errors"

// ErrResourceExhausted is the class of errors returned when a fixed bound of the World
// is hit. Callers decide whether that is fatal.
var ErrResourceExhausted = errors.New("resource exhausted")

var (
	// ErrEntityLimit is returned by CreateEntity when every entity slot is live.
	ErrEntityLimit = &limitError{what: "max entities reached"}
	// ErrComponentLimit is returned by AddComponent when an entity's component array is full.
	ErrComponentLimit = &limitError{what: "max components reached"}

	ErrInvalidEntity      = errors.New("invalid or dead entity")
	ErrDuplicateComponent = errors.New("component already attached")
	ErrTypeMismatch       = errors.New("component type does not match registered type")
)

// limitError is a capacity error that also matches ErrResourceExhausted.
type limitError struct {
	what string
}

func (e *limitError) Error() string { return e.what }

func (e *limitError) Is(target error) bool {
	return target == ErrResourceExhausted
}
