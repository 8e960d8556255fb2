package auth

import "liteboard/internal/domain/models"

// SessionVerifier turns a session token into the claims of its user.
// The middleware only sees this interface, so locally issued sessions and
// tokens from an external identity provider look the same to it.
type SessionVerifier interface {
	// VerifyToken validates a token and returns its claims.
	// Any failure is reported as domain.ErrUnauthorized.
	VerifyToken(tokenString string) (*models.SessionClaims, error)

	// Close releases any resources held by the verifier
	Close() error
}
