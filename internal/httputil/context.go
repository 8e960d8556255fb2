package httputil

import (
	"context"
	"net/http"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "session"

// Context key type to avoid collisions
type contextKey string

const (
	userIDKey    contextKey = "userID"
	usernameKey  contextKey = "username"
	requestIDKey contextKey = "requestID"
)

// WithUserID adds userID and the display username to the request context
func WithUserID(r *http.Request, userID, username string) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, userID)
	ctx = context.WithValue(ctx, usernameKey, username)
	return r.WithContext(ctx)
}

// GetUserID retrieves userID from context, returns empty string if not found
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}

// GetUsername retrieves the display username, falling back to the user ID
func GetUsername(r *http.Request) string {
	if name, _ := r.Context().Value(usernameKey).(string); name != "" {
		return name
	}
	return GetUserID(r)
}

// WithRequestID adds the request ID to the request context
func WithRequestID(r *http.Request, id string) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), requestIDKey, id))
}

// GetRequestID retrieves the request ID, returns empty string if not found
func GetRequestID(r *http.Request) string {
	id, _ := r.Context().Value(requestIDKey).(string)
	return id
}
