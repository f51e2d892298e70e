// Package domain holds the persistent models, repository contracts and the
// sentinel errors shared by all services. Callers match errors with errors.Is.
package domain

import "errors"

var (
	// Caller's fault (bad or missing input).
	ErrValidation = errors.New("validation error")

	// Registration with an email that already exists.
	ErrDuplicateUser = errors.New("user already exists")

	// Login failure. Deliberately covers both "no such user" and "wrong
	// password" so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// Authn/authz failures.
	ErrInvalidToken = errors.New("invalid token")
	ErrForbidden    = errors.New("forbidden")

	// Missing resource. Also returned for resources that exist but belong to
	// someone else, so existence does not leak across ownership boundaries.
	ErrNotFound = errors.New("not found")

	// An admin tried to change their own role.
	ErrSelfModification = errors.New("cannot change your own role")
)
