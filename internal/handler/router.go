package handler

import (
	"log/slog"
	"net/http"

	"liteboard/internal/auth"
	"liteboard/internal/config"
	"liteboard/internal/domain/services"
	"liteboard/internal/httputil"
	"liteboard/internal/middleware"
)

// Services are what the router serves
type Services struct {
	Projects services.ProjectService
	Lists    services.ListService
	Entries  services.EntryService
}

// NewRouter builds the API mux wrapped in its middleware chain.
// Order: RequestID → AccessLog → Recovery → SessionAuth → routes.
func NewRouter(
	svc Services,
	sessions *auth.SessionManager,
	verifier auth.SessionVerifier,
	cfg *config.Config,
	logger *slog.Logger,
) http.Handler {
	projectHandler := NewProjectHandler(svc.Projects, logger)
	listHandler := NewListHandler(svc.Lists, logger)
	entryHandler := NewEntryHandler(svc.Entries, logger)
	authHandler := NewAuthHandler(sessions, cfg, logger)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", HealthCheck)

	mux.HandleFunc("POST /auth/login", authHandler.Login)
	mux.HandleFunc("POST /auth/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/user/profile", authHandler.Profile)

	mux.HandleFunc("GET /api/projects", projectHandler.ListProjects)
	mux.HandleFunc("POST /api/projects", projectHandler.CreateProject)
	mux.HandleFunc("GET /api/projects/{id}", projectHandler.GetProject)
	mux.HandleFunc("PUT /api/projects/{id}", projectHandler.UpdateProject)
	mux.HandleFunc("DELETE /api/projects/{id}", projectHandler.DeleteProject)

	mux.HandleFunc("GET /api/content_lists", listHandler.ListsByProject)
	mux.HandleFunc("POST /api/content_lists", listHandler.CreateList)
	mux.HandleFunc("GET /api/content_lists/{id}", listHandler.GetList)
	mux.HandleFunc("PUT /api/content_lists/{id}", listHandler.UpdateList)
	mux.HandleFunc("DELETE /api/content_lists/{id}", listHandler.DeleteList)

	mux.HandleFunc("GET /api/content_entries", entryHandler.ListEntries)
	mux.HandleFunc("POST /api/content_entries", entryHandler.CreateEntry)
	mux.HandleFunc("GET /api/content_entries/{id}", entryHandler.GetEntry)
	mux.HandleFunc("PUT /api/content_entries/{id}", entryHandler.UpdateEntry)
	mux.HandleFunc("DELETE /api/content_entries/{id}", entryHandler.DeleteEntry)

	var h http.Handler = mux
	h = middleware.SessionAuth(verifier, logger, "/health", "/auth/login", "/auth/logout")(h)
	h = middleware.Recovery(logger)(h)
	h = middleware.AccessLog(logger)(h)
	h = middleware.RequestID(h)
	return h
}

// HealthCheck reports that the server is up
// GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
