package services

import "context"

// ResourceAuthorizer checks if a user can access resources.
// Services call it before writing a record that names a parent project.
type ResourceAuthorizer interface {
	// CanAccessProject checks if user can access a project
	CanAccessProject(ctx context.Context, userID string, projectID int64) error
}
