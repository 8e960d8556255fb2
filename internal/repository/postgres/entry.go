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

// PostgresEntryRepository implements the EntryRepository interface
type PostgresEntryRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(config *RepositoryConfig) repositories.EntryRepository {
	return &PostgresEntryRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const entryColumns = `id, type, title, content, project_id, creator_id, created_at, updated_at`

func scanEntry(row interface{ Scan(...any) error }, e *models.Entry) error {
	return row.Scan(&e.ID, &e.Type, &e.Title, &e.Content, &e.ProjectID, &e.CreatorID, &e.CreatedAt, &e.UpdatedAt)
}

// Create creates a new entry
func (r *PostgresEntryRepository) Create(ctx context.Context, entry *models.Entry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (type, title, content, project_id, creator_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, r.tables.ContentEntries)

	now := time.Now()
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		entry.Type,
		entry.Title,
		entry.Content,
		entry.ProjectID,
		entry.CreatorID,
		now,
		now,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("project %d: %w", entry.ProjectID, domain.ErrNotFound)
		}
		return fmt.Errorf("create entry: %w", err)
	}

	return nil
}

// GetByID retrieves an entry by ID
func (r *PostgresEntryRepository) GetByID(ctx context.Context, id int64, userID string) (*models.Entry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND creator_id = $2
	`, entryColumns, r.tables.ContentEntries)

	var entry models.Entry
	executor := GetExecutor(ctx, r.pool)
	if err := scanEntry(executor.QueryRow(ctx, query, id, userID), &entry); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("entry %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}

	return &entry, nil
}

// List retrieves the user's entries, restricted to one project when projectID > 0
func (r *PostgresEntryRepository) List(ctx context.Context, userID string, projectID int64) ([]models.Entry, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE creator_id = $1 AND ($2::bigint = 0 OR project_id = $2)
		ORDER BY id
	`, entryColumns, r.tables.ContentEntries)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, userID, projectID)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries := []models.Entry{}
	for rows.Next() {
		var entry models.Entry
		if err := scanEntry(rows, &entry); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}

	return entries, nil
}

// Update rewrites an entry's type, title and content
func (r *PostgresEntryRepository) Update(ctx context.Context, entry *models.Entry) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET type = $1, title = $2, content = $3, updated_at = $4
		WHERE id = $5 AND creator_id = $6
		RETURNING project_id, created_at, updated_at
	`, r.tables.ContentEntries)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		entry.Type,
		entry.Title,
		entry.Content,
		time.Now(),
		entry.ID,
		entry.CreatorID,
	).Scan(&entry.ProjectID, &entry.CreatedAt, &entry.UpdatedAt)

	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("entry %d: %w", entry.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("update entry: %w", err)
	}

	return nil
}

// Delete deletes an entry and returns the deleted row
func (r *PostgresEntryRepository) Delete(ctx context.Context, id int64, userID string) (*models.Entry, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND creator_id = $2
		RETURNING %s
	`, r.tables.ContentEntries, entryColumns)

	var entry models.Entry
	executor := GetExecutor(ctx, r.pool)
	if err := scanEntry(executor.QueryRow(ctx, query, id, userID), &entry); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("entry %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("delete entry: %w", err)
	}

	return &entry, nil
}

// DeleteByProject deletes every entry of a project
func (r *PostgresEntryRepository) DeleteByProject(ctx context.Context, projectID int64, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE project_id = $1 AND creator_id = $2
	`, r.tables.ContentEntries)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, projectID, userID); err != nil {
		return fmt.Errorf("delete entries of project %d: %w", projectID, err)
	}
	return nil
}
