// Package auth holds the credential collaborators of the membership
// service: the session token issuer and the password hasher.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gymfitness/membership/internal/common"
)

const issuer = "gymfitness"

// Claims is the session token payload: the member's identity and the level
// names held at sign-in time.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string   `json:"user_id"`
	FirstName string   `json:"firstname"`
	Surname   string   `json:"surname"`
	Email     string   `json:"email"`
	Levels    []string `json:"levels"`
}

// TokenIssuer signs and validates HS256 session tokens.
type TokenIssuer struct {
	secretKey        []byte
	validityDuration time.Duration
	now              func() time.Time
}

func NewTokenIssuer(secretKey string, validityDuration time.Duration) *TokenIssuer {
	return &TokenIssuer{secretKey: []byte(secretKey), validityDuration: validityDuration, now: time.Now}
}

// Issue signs a token for claims, stamping subject, issuer and lifetime.
func (i *TokenIssuer) Issue(claims Claims) (string, error) {
	now := i.now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Subject:   claims.Email,
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.validityDuration)),
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secretKey)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// Parse validates the signature, algorithm and expiry of tokenString.
// Any failure is reported as common.ErrInvalidToken.
func (i *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(i.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
