package repositories

import (
	"context"

	"liteboard/internal/domain/models"
)

// ProjectRepository defines data access operations for projects.
// Every read and write is scoped to the creator.
type ProjectRepository interface {
	// Create creates a new project and fills in its generated ID and timestamps
	Create(ctx context.Context, project *models.Project) error

	// GetByID retrieves a project by ID
	GetByID(ctx context.Context, id int64, userID string) (*models.Project, error)

	// List retrieves all projects for a user, oldest first
	List(ctx context.Context, userID string) ([]models.Project, error)

	// Update updates a project's name, description and updated_at timestamp
	Update(ctx context.Context, project *models.Project) error

	// Delete deletes a project and returns the deleted row
	Delete(ctx context.Context, id int64, userID string) (*models.Project, error)
}
