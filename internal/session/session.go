// Package session resolves the identity of the signed-in user. The token is
// issued and verified by the backend; here it is only read for its subject.
package session

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoUser is returned when neither an explicit user id nor a token is available
var ErrNoUser = errors.New("no user id: set USER_ID or provide an API token")

// ResolveUserID returns explicit when set, otherwise the subject claim of token
func ResolveUserID(explicit, token string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if token == "" {
		return "", ErrNoUser
	}
	return SubjectFromToken(token)
}

// SubjectFromToken reads the "sub" claim of a JWT without verifying its signature
func SubjectFromToken(token string) (string, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	if claims.Subject == "" {
		return "", fmt.Errorf("token has no subject claim")
	}
	return claims.Subject, nil
}
