package repositories

import (
	"context"

	"liteboard/internal/domain/models"
)

// EntryRepository stores standalone card records.
type EntryRepository interface {
	Create(ctx context.Context, entry *models.Entry) error
	GetByID(ctx context.Context, id int64, userID string) (*models.Entry, error)

	// List retrieves every entry of the user, or of one project when projectID > 0
	List(ctx context.Context, userID string, projectID int64) ([]models.Entry, error)

	Update(ctx context.Context, entry *models.Entry) error
	Delete(ctx context.Context, id int64, userID string) (*models.Entry, error)
	DeleteByProject(ctx context.Context, projectID int64, userID string) error
}
