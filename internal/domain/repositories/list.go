package repositories

import (
	"context"

	"liteboard/internal/domain/models"
)

// ListRepository stores content lists. A list is always written as a whole
// document: title and the complete item sequence.
type ListRepository interface {
	// Create creates a new list and fills in its generated ID and timestamps
	Create(ctx context.Context, list *models.List) error

	// GetByID retrieves a list by ID
	GetByID(ctx context.Context, id int64, userID string) (*models.List, error)

	// ListByProject retrieves the lists of a project in creation order
	ListByProject(ctx context.Context, projectID int64, userID string) ([]models.List, error)

	// Update replaces the title and item sequence of a list
	Update(ctx context.Context, list *models.List) error

	// Delete deletes a list and returns the deleted document.
	// Entries referenced by the list are not touched.
	Delete(ctx context.Context, id int64, userID string) (*models.List, error)

	// DeleteByProject deletes every list of a project
	DeleteByProject(ctx context.Context, projectID int64, userID string) error
}
