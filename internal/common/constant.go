// Package common contains shared constants and sentinel errors used across
// the membership service components.
package common

const (
	// AuthorizationHeaderName carries the session token on requests to
	// protected endpoints.
	AuthorizationHeaderName = "Authorization"

	// TokenType is the scheme prefix of the Authorization header value.
	TokenType = "Bearer"
)
