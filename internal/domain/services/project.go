package services

import (
	"context"

	"liteboard/internal/domain/models"
)

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	UserID      string `json:"-"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateProjectRequest replaces a project's name and description
type UpdateProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ProjectService defines business logic operations for projects
type ProjectService interface {
	CreateProject(ctx context.Context, req *CreateProjectRequest) (*models.Project, error)
	GetProject(ctx context.Context, id int64, userID string) (*models.Project, error)
	ListProjects(ctx context.Context, userID string) ([]models.Project, error)
	UpdateProject(ctx context.Context, id int64, userID string, req *UpdateProjectRequest) (*models.Project, error)

	// DeleteProject deletes the project together with its lists and entries
	DeleteProject(ctx context.Context, id int64, userID string) error
}
