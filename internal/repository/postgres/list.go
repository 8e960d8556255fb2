package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"liteboard/internal/domain"
	"liteboard/internal/domain/models"
	"liteboard/internal/domain/repositories"
)

// PostgresListRepository stores content lists with their item sequence as JSONB
type PostgresListRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewListRepository creates a new list repository
func NewListRepository(config *RepositoryConfig) repositories.ListRepository {
	return &PostgresListRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

const listColumns = `id, type, title, items, project_id, creator_id, created_at, updated_at`

func scanList(row interface{ Scan(...any) error }, l *models.List) error {
	var items []byte
	if err := row.Scan(&l.ID, &l.Type, &l.Title, &items, &l.ProjectID, &l.CreatorID, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return err
	}
	if err := json.Unmarshal(items, &l.Items); err != nil {
		return fmt.Errorf("decode items of list %d: %w", l.ID, err)
	}
	return nil
}

// Create creates a new list
func (r *PostgresListRepository) Create(ctx context.Context, list *models.List) error {
	items, err := json.Marshal(list.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (type, title, items, project_id, creator_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`, r.tables.ContentLists)

	now := time.Now()
	executor := GetExecutor(ctx, r.pool)
	err = executor.QueryRow(ctx, query,
		list.Type,
		list.Title,
		items,
		list.ProjectID,
		list.CreatorID,
		now,
		now,
	).Scan(&list.ID, &list.CreatedAt, &list.UpdatedAt)

	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("project %d: %w", list.ProjectID, domain.ErrNotFound)
		}
		return fmt.Errorf("create list: %w", err)
	}

	return nil
}

// GetByID retrieves a list by ID
func (r *PostgresListRepository) GetByID(ctx context.Context, id int64, userID string) (*models.List, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE id = $1 AND creator_id = $2
	`, listColumns, r.tables.ContentLists)

	var list models.List
	executor := GetExecutor(ctx, r.pool)
	if err := scanList(executor.QueryRow(ctx, query, id, userID), &list); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("list %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get list: %w", err)
	}

	return &list, nil
}

// ListByProject retrieves the lists of a project in creation order
func (r *PostgresListRepository) ListByProject(ctx context.Context, projectID int64, userID string) ([]models.List, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE project_id = $1 AND creator_id = $2
		ORDER BY id
	`, listColumns, r.tables.ContentLists)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, projectID, userID)
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	defer rows.Close()

	lists := []models.List{}
	for rows.Next() {
		var list models.List
		if err := scanList(rows, &list); err != nil {
			return nil, fmt.Errorf("scan list: %w", err)
		}
		lists = append(lists, list)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lists: %w", err)
	}

	return lists, nil
}

// Update replaces the title and item sequence of a list
func (r *PostgresListRepository) Update(ctx context.Context, list *models.List) error {
	items, err := json.Marshal(list.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, items = $2, updated_at = $3
		WHERE id = $4 AND creator_id = $5
		RETURNING type, project_id, created_at, updated_at
	`, r.tables.ContentLists)

	executor := GetExecutor(ctx, r.pool)
	err = executor.QueryRow(ctx, query,
		list.Title,
		items,
		time.Now(),
		list.ID,
		list.CreatorID,
	).Scan(&list.Type, &list.ProjectID, &list.CreatedAt, &list.UpdatedAt)

	if err != nil {
		if IsPgNoRowsError(err) {
			return fmt.Errorf("list %d: %w", list.ID, domain.ErrNotFound)
		}
		return fmt.Errorf("update list: %w", err)
	}

	return nil
}

// Delete deletes a list and returns the deleted document
func (r *PostgresListRepository) Delete(ctx context.Context, id int64, userID string) (*models.List, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE id = $1 AND creator_id = $2
		RETURNING %s
	`, r.tables.ContentLists, listColumns)

	var list models.List
	executor := GetExecutor(ctx, r.pool)
	if err := scanList(executor.QueryRow(ctx, query, id, userID), &list); err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("list %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("delete list: %w", err)
	}

	return &list, nil
}

// DeleteByProject deletes every list of a project
func (r *PostgresListRepository) DeleteByProject(ctx context.Context, projectID int64, userID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE project_id = $1 AND creator_id = $2
	`, r.tables.ContentLists)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, projectID, userID); err != nil {
		return fmt.Errorf("delete lists of project %d: %w", projectID, err)
	}
	return nil
}
