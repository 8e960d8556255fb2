package handler

import (
	"log/slog"
	"net/http"

	"liteboard/internal/domain/services"
	"liteboard/internal/httputil"
)

// ListHandler handles content list HTTP requests
type ListHandler struct {
	listService services.ListService
	logger      *slog.Logger
}

// NewListHandler creates a new list handler
func NewListHandler(listService services.ListService, logger *slog.Logger) *ListHandler {
	return &ListHandler{
		listService: listService,
		logger:      logger,
	}
}

// ListsByProject returns the lists of one project
// GET /api/content_lists?projectid={id}
func (h *ListHandler) ListsByProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	projectID, err := httputil.QueryID(r, "projectid")
	if err != nil || projectID == 0 {
		httputil.RespondError(w, http.StatusBadRequest, "projectid is required")
		return
	}

	lists, err := h.listService.ListsByProject(r.Context(), projectID, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, lists)
}

// CreateList creates a list document
// POST /api/content_lists
func (h *ListHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req services.SaveListRequest
	if !decode(w, r, &req) {
		return
	}
	req.UserID = userID

	list, err := h.listService.CreateList(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, list)
}

// GetList retrieves a list by ID
// GET /api/content_lists/{id}
func (h *ListHandler) GetList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r)
	if !ok {
		return
	}

	list, err := h.listService.GetList(r.Context(), id, userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, list)
}

// UpdateList replaces the whole list document
// PUT /api/content_lists/{id}
func (h *ListHandler) UpdateList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r)
	if !ok {
		return
	}

	var req services.SaveListRequest
	if !decode(w, r, &req) {
		return
	}
	req.UserID = userID

	list, err := h.listService.UpdateList(r.Context(), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, list)
}

// DeleteList deletes a list document; its entries stay
// DELETE /api/content_lists/{id}
func (h *ListHandler) DeleteList(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := requirePathID(w, r)
	if !ok {
		return
	}

	if err := h.listService.DeleteList(r.Context(), id, userID); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondMessage(w, http.StatusOK, "deleted")
}
