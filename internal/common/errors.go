// Package common defines shared constants and sentinel errors used across
// the AutoTransformers backend. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound   = errors.New("not found")
	ErrEmailTaken = errors.New("email already registered")

	// Validation errors surfaced to the client as 400 responses.
	ErrFieldsRequired   = errors.New("all fields are required")
	ErrEmailInvalid     = errors.New("invalid email address")
	ErrPasswordTooShort = errors.New("password too short")

	// Authentication errors. ErrInvalidCredentials deliberately covers both
	// "unknown email" and "wrong password" so the two are indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authenticated")

	// Abuse control.
	ErrRateLimited = errors.New("too many attempts")
)
