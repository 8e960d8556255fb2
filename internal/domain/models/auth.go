package models

import "github.com/golang-jwt/jwt/v5"

// SessionClaims is the payload of a session token, whether issued by this
// server (HS256) or by an external identity provider behind a JWKS endpoint.
type SessionClaims struct {
	jwt.RegisteredClaims        // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Username             string `json:"username,omitempty"`
	SessionID            string `json:"session_id,omitempty"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *SessionClaims) GetUserID() string {
	return c.Subject
}

// User is the session user reported by the profile endpoint.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// LoginRequest is the body of the dev login.
type LoginRequest struct {
	Username string `json:"username"`
}
