package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EnsureSchema creates the tables and indexes if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames, prefix string) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + tables.Projects + ` (
			id BIGSERIAL PRIMARY KEY,
			creator_id TEXT NOT NULL,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE(creator_id, name)
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.ContentLists + ` (
			id BIGSERIAL PRIMARY KEY,
			project_id BIGINT NOT NULL REFERENCES ` + tables.Projects + `(id) ON DELETE CASCADE,
			creator_id TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT 'list',
			title TEXT NOT NULL,
			items JSONB NOT NULL DEFAULT '[]',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS ` + tables.ContentEntries + ` (
			id BIGSERIAL PRIMARY KEY,
			project_id BIGINT NOT NULL REFERENCES ` + tables.Projects + `(id) ON DELETE CASCADE,
			creator_id TEXT NOT NULL,
			type TEXT NOT NULL DEFAULT 'task',
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `content_lists_project ON ` + tables.ContentLists + `(project_id, creator_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `content_entries_project ON ` + tables.ContentEntries + `(project_id, creator_id)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// DropSchema drops every table, children first.
func DropSchema(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	all := tables.All()
	for i := len(all) - 1; i >= 0; i-- {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+all[i]+" CASCADE"); err != nil {
			return fmt.Errorf("drop %s: %w", all[i], err)
		}
	}
	return nil
}

// ClearData deletes all rows but keeps the tables.
func ClearData(ctx context.Context, pool *pgxpool.Pool, tables *TableNames) error {
	query := fmt.Sprintf("TRUNCATE %s, %s, %s RESTART IDENTITY CASCADE",
		tables.ContentEntries, tables.ContentLists, tables.Projects)
	if _, err := pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("clear data: %w", err)
	}
	return nil
}
