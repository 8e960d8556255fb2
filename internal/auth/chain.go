package auth

import (
	"errors"

	"liteboard/internal/domain"
	"liteboard/internal/domain/models"
)

// Chain tries verifiers in order and returns the first accepted claims.
type Chain []SessionVerifier

// VerifyToken implements SessionVerifier
func (c Chain) VerifyToken(tokenString string) (*models.SessionClaims, error) {
	for _, v := range c {
		if claims, err := v.VerifyToken(tokenString); err == nil {
			return claims, nil
		}
	}
	return nil, domain.ErrUnauthorized
}

// Close closes every verifier in the chain
func (c Chain) Close() error {
	var errs []error
	for _, v := range c {
		if err := v.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
