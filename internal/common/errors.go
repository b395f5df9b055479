// Package common defines shared constants and sentinel errors used across
// the credbridge server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Validation errors for passive records.
	ErrorIncorrectMetadata = errors.New("incorrect metadata")

	// Public key errors.
	ErrInvalidKeyFormat = errors.New("invalid public key supplied")
	ErrDuplicateKey     = errors.New("public key is already registered")

	// Access token errors. ErrInvalidOperation keeps the wording of the
	// generic record validation failure.
	ErrInvalidOperation = errors.New("token validation failed")
	ErrInvalidObjectKey = errors.New("invalid object key")

	// Caller authentication errors (invalid, malformed or expired JWT).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
