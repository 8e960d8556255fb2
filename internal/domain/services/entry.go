package services

import (
	"context"

	"liteboard/internal/domain/models"
)

// SaveEntryRequest is the full entry record sent on create and on update.
type SaveEntryRequest struct {
	UserID    string `json:"-"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	ProjectID int64  `json:"project_id"`
}

// EntryService handles content entry business logic
type EntryService interface {
	CreateEntry(ctx context.Context, req *SaveEntryRequest) (*models.Entry, error)
	GetEntry(ctx context.Context, id int64, userID string) (*models.Entry, error)

	// ListEntries lists the user's entries, restricted to one project when projectID > 0
	ListEntries(ctx context.Context, userID string, projectID int64) ([]models.Entry, error)

	UpdateEntry(ctx context.Context, id int64, req *SaveEntryRequest) (*models.Entry, error)
	DeleteEntry(ctx context.Context, id int64, userID string) error
}
