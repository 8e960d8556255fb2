package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"liteboard/internal/auth"
	"liteboard/internal/httputil"
)

// SessionAuth resolves the caller from the session cookie, or from an
// "Authorization: Bearer" header for non-browser clients, and puts the user
// on the request context. Paths in public skip the check; anything else
// without a valid session gets 401 {"error":"not logged in"}.
func SessionAuth(verifier auth.SessionVerifier, logger *slog.Logger, public ...string) func(http.Handler) http.Handler {
	open := make(map[string]bool, len(public))
	for _, p := range public {
		open[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || open[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			token := sessionToken(r)
			if token == "" {
				httputil.RespondError(w, http.StatusUnauthorized, "not logged in")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Debug("session rejected",
					"path", r.URL.Path,
					"request_id", httputil.GetRequestID(r),
				)
				httputil.RespondError(w, http.StatusUnauthorized, "not logged in")
				return
			}

			next.ServeHTTP(w, httputil.WithUserID(r, claims.GetUserID(), claims.Username))
		})
	}
}

func sessionToken(r *http.Request) string {
	if c, err := r.Cookie(httputil.SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}
