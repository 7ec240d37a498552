// Package common defines shared constants and sentinel errors used across
// client and server layers. Callers should use errors.Is to match these
// values; use-case errors wrap one of the kind errors so that transports can
// map whole families at once.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")

	// Service-level errors (generic/internal flow control).
	ErrorInternal         = errors.New("internal error")
	ErrorUnauthorized     = errors.New("unauthorized")
	ErrorMisconfiguration = errors.New("server misconfiguration")
	ErrorValidation       = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")

	// Use-case errors.
	ErrUserNotFound       = fmt.Errorf("user %w", ErrorNotFound)
	ErrEmailAlreadyInUse  = fmt.Errorf("email is already in use: %w", ErrorConflict)
	ErrAccountCancelled   = fmt.Errorf("account has been cancelled: %w", ErrorUnauthorized)
	ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", ErrorUnauthorized)
	ErrLevelNotConfigured = fmt.Errorf("level is not configured: %w", ErrorMisconfiguration)
)
