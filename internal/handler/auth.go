package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"liteboard/internal/auth"
	"liteboard/internal/config"
	"liteboard/internal/domain"
	"liteboard/internal/domain/models"
	"liteboard/internal/httputil"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

// AuthHandler handles session HTTP requests
type AuthHandler struct {
	sessions      *auth.SessionManager
	devLogin      bool
	secureCookies bool
	logger        *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions *auth.SessionManager, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		sessions:      sessions,
		devLogin:      cfg.DevLoginEnabled(),
		secureCookies: cfg.SecureCookies,
		logger:        logger,
	}
}

// Login issues a session cookie for a username. Development and test only.
// POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.devLogin {
		httputil.RespondError(w, http.StatusNotFound, "not found")
		return
	}

	var req models.LoginRequest
	if !decode(w, r, &req) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if err := validation.ValidateStruct(&req,
		validation.Field(&req.Username,
			validation.Required,
			validation.RuneLength(1, config.MaxUsernameLength),
			validation.Match(usernamePattern),
		),
	); err != nil {
		handleError(w, fmt.Errorf("%w: %v", domain.ErrValidation, err))
		return
	}

	user := models.User{ID: auth.UserIDFor(req.Username), Username: req.Username}
	token, err := h.sessions.Issue(user.ID, user.Username)
	if err != nil {
		h.logger.Error("issue session", "error", err)
		handleError(w, err)
		return
	}

	http.SetCookie(w, h.cookie(token, int(h.sessions.TTL()/time.Second)))
	h.logger.Info("user logged in", "user_id", user.ID, "username", user.Username)
	httputil.RespondJSON(w, http.StatusOK, user)
}

// Logout clears the session cookie
// POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, h.cookie("", -1))
	httputil.RespondMessage(w, http.StatusOK, "logged out")
}

// Profile returns the session user
// GET /api/user/profile
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	httputil.RespondJSON(w, http.StatusOK, models.User{ID: userID, Username: httputil.GetUsername(r)})
}

func (h *AuthHandler) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     httputil.SessionCookie,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteLaxMode,
	}
}
