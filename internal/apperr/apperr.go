// Package apperr holds the domain error taxonomy. Errors are raised at the
// point of detection with fmt.Errorf("...: %w", apperr.ErrX) and mapped to
// HTTP status codes in one place, the httpserver error handler.
package apperr

import "errors"

var (
	// ErrValidation covers malformed or incomplete request input.
	ErrValidation = errors.New("validation failed")

	// ErrEmailTaken is returned when registering an already known email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown user and wrong password,
	// deliberately indistinguishable to the client.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken means a token could not be decoded at logout.
	ErrInvalidToken = errors.New("invalid token")

	// ErrUnauthenticated covers missing, revoked, expired and malformed
	// tokens on protected routes. The specific reason is logged, not exposed.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrNotFound is returned when the target resource does not exist.
	ErrNotFound = errors.New("not found")
)
