// Package client talks to the membership HTTP API.
//
// HTTPClient wraps the /api/auth endpoints. Non-2xx responses come back as
// *APIError, which also matches the shared sentinels in internal/common
// (ErrUserNotFound, ErrEmailAlreadyInUse, ErrAccountCancelled,
// ErrInvalidCredentials) through errors.Is. Transport failures match
// ErrUnavailable.
package client
