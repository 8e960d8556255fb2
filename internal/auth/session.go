package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"liteboard/internal/domain"
	"liteboard/internal/domain/models"
)

const sessionIssuer = "liteboard"

// userNamespace scopes the user ids derived from usernames
var userNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("liteboard/users"))

// UserIDFor is the stable user id of a username. Dev login and the seeder
// both derive ids this way so seeded boards belong to whoever logs in by name.
func UserIDFor(username string) string {
	return uuid.NewSHA1(userNamespace, []byte(strings.ToLower(username))).String()
}

// SessionManager issues and verifies HS256 session tokens. The token is what
// the server puts in the session cookie.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// NewSessionManager creates a session manager signing with secret
func NewSessionManager(secret string, ttl time.Duration, logger *slog.Logger) (*SessionManager, error) {
	if secret == "" {
		return nil, errors.New("session secret cannot be empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive, got %s", ttl)
	}
	return &SessionManager{
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}, nil
}

// TTL is how long an issued session stays valid
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a new session for a user
func (m *SessionManager) Issue(userID, username string) (string, error) {
	now := m.now()
	claims := models.SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			Issuer:    sessionIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Username:  username,
		SessionID: uuid.NewString(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}

	m.logger.Info("session issued", "user_id", userID, "session_id", claims.SessionID)
	return token, nil
}

// VerifyToken validates a session issued by this manager
func (m *SessionManager) VerifyToken(tokenString string) (*models.SessionClaims, error) {
	claims := &models.SessionClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		m.logger.Debug("session rejected", "error", err)
		return nil, domain.ErrUnauthorized
	}
	if claims.Subject == "" {
		return nil, domain.ErrUnauthorized
	}
	return claims, nil
}

// Close is a no-op; the manager holds no resources
func (m *SessionManager) Close() error {
	return nil
}
