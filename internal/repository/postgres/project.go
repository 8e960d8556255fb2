package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"liteboard/internal/domain"
	"liteboard/internal/domain/models"
	"liteboard/internal/domain/repositories"
)

// PostgresProjectRepository implements the ProjectRepository interface
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *RepositoryConfig) repositories.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const projectColumns = `id, creator_id, name, description, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }, p *models.Project) error {
	return row.Scan(&p.ID, &p.CreatorID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)
}

// Create creates a new project
func (r *PostgresProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (creator_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, r.tables.Projects)

	now := time.Now()
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		project.CreatorID,
		project.Name,
		project.Description,
		now,
		now,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)

	if err != nil {
		if IsPgDuplicateError(err) {
			return r.conflict(ctx, project)
		}
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

// GetByID retrieves a project by ID
func (r *PostgresProjectRepository) GetByID(ctx context.Context, id int64, userID string) (*models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND creator_id = $2
	`, projectColumns, r.tables.Projects)

	var project models.Project
	executor := GetExecutor(ctx, r.pool)
	if err := scanProject(executor.QueryRow(ctx, query, id, userID), &project); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get project: %w", err)
	}

	return &project, nil
}

// List retrieves all projects of a user, oldest first
func (r *PostgresProjectRepository) List(ctx context.Context, userID string) ([]models.Project, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE creator_id = $1
		ORDER BY id
	`, projectColumns, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	projects := []models.Project{}
	for rows.Next() {
		var project models.Project
		if err := scanProject(rows, &project); err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate projects: %w", err)
	}

	return projects, nil
}

// Update updates a project's name, description and updated_at timestamp
func (r *PostgresProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, updated_at = $3
		WHERE id = $4 AND creator_id = $5
		RETURNING created_at, updated_at
	`, r.tables.Projects)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		project.Name,
		project.Description,
		time.Now(),
		project.ID,
		project.CreatorID,
	).Scan(&project.CreatedAt, &project.UpdatedAt)

	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("project %d: %w", project.ID, domain.ErrNotFound)
		}
		if IsPgDuplicateError(err) {
			return r.conflict(ctx, project)
		}
		return fmt.Errorf("update project: %w", err)
	}

	return nil
}

// Delete deletes a project and returns the deleted row.
// Lists and entries go with it through ON DELETE CASCADE.
func (r *PostgresProjectRepository) Delete(ctx context.Context, id int64, userID string) (*models.Project, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND creator_id = $2
		RETURNING %s
	`, r.tables.Projects, projectColumns)

	var project models.Project
	executor := GetExecutor(ctx, r.pool)
	if err := scanProject(executor.QueryRow(ctx, query, id, userID), &project); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("delete project: %w", err)
	}

	return &project, nil
}

// conflict builds a ConflictError pointing at the project that already holds the name
func (r *PostgresProjectRepository) conflict(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		SELECT id FROM %s
		WHERE creator_id = $1 AND name = $2
	`, r.tables.Projects)

	var existingID int64
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, project.CreatorID, project.Name).Scan(&existingID); err != nil {
		return fmt.Errorf("project '%s' already exists: %w", project.Name, domain.ErrConflict)
	}

	return &domain.ConflictError{
		Message:      fmt.Sprintf("project '%s' already exists", project.Name),
		ResourceType: "project",
		ResourceID:   existingID,
	}
}
