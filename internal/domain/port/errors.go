// Package port declares the interfaces through which the domain talks
// to persistence, messaging and external capabilities. Concrete
// implementations live in the infrastructure layer.
package port

import "errors"

var (
	// ErrUserNotFound is returned when a user lookup finds no row.
	ErrUserNotFound = errors.New("user not found")
	// ErrApplicationNotFound is returned when an application lookup finds no row.
	ErrApplicationNotFound = errors.New("loan application not found")
	// ErrSessionNotFound is returned when a chat session lookup finds no row.
	ErrSessionNotFound = errors.New("chat session not found")
	// ErrDuplicateEmail is returned when registration hits an existing email.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrVersionConflict is returned when an optimistic-lock save loses the race.
	ErrVersionConflict = errors.New("aggregate version conflict")
)
