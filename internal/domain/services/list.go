package services

import (
	"context"

	"liteboard/internal/domain/models"
)

// SaveListRequest is the full list document sent on create and on update.
type SaveListRequest struct {
	UserID    string       `json:"-"`
	Type      string       `json:"type"`
	Title     string       `json:"title"`
	Items     models.Items `json:"items"`
	ProjectID int64        `json:"project_id"`
}

// ListService handles content list business logic
type ListService interface {
	CreateList(ctx context.Context, req *SaveListRequest) (*models.List, error)
	GetList(ctx context.Context, id int64, userID string) (*models.List, error)
	ListsByProject(ctx context.Context, projectID int64, userID string) ([]models.List, error)

	// UpdateList replaces the whole document: title and item sequence
	UpdateList(ctx context.Context, id int64, req *SaveListRequest) (*models.List, error)

	// DeleteList deletes the list document only; referenced entries survive
	DeleteList(ctx context.Context, id int64, userID string) error
}
