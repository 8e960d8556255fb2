package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"liteboard/internal/domain/repositories"
)

// RepositoryConfig holds what every repository implementation needs
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds the prefixed table names of one environment
type TableNames struct {
	Projects       string
	ContentLists   string
	ContentEntries string
}

// NewTableNames creates table names with the given prefix ("dev_", "test_", or "" for prod)
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Projects:       fmt.Sprintf("%sprojects", prefix),
		ContentLists:   fmt.Sprintf("%scontent_lists", prefix),
		ContentEntries: fmt.Sprintf("%scontent_entries", prefix),
	}
}

// All returns the tables in dependency order, parents first.
func (t *TableNames) All() []string {
	return []string{t.Projects, t.ContentLists, t.ContentEntries}
}

// CreateConnectionPool opens a pgx pool and pings it.
//
// Port 6543 is a transaction-mode PgBouncer, which cannot hold prepared
// statements. There the pool switches to QueryExecModeCacheDescribe, which
// keeps the extended protocol (needed for JSONB parameters) without preparing.
// A default_query_exec_mode in the URL wins over the auto-detection.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for PgBouncer compatibility", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the transaction stored in ctx, or the pool when there is none.
// Repositories call it for every query so they join an ExecTx transparently.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
