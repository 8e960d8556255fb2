package postgres

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"liteboard/internal/domain"
	"liteboard/internal/domain/models"
)

func TestNewTableNames(t *testing.T) {
	tests := []struct {
		prefix string
		want   TableNames
	}{
		{"", TableNames{"projects", "content_lists", "content_entries"}},
		{"test_", TableNames{"test_projects", "test_content_lists", "test_content_entries"}},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("prefix %q", tt.prefix), func(t *testing.T) {
			if got := *NewTableNames(tt.prefix); got != tt.want {
				t.Errorf("NewTableNames(%q) = %+v", tt.prefix, got)
			}
		})
	}
}

func TestErrorClassifiers(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})
	fk := &pgconn.PgError{Code: "23503"}

	if !IsPgDuplicateError(dup) || IsPgDuplicateError(fk) {
		t.Error("IsPgDuplicateError misclassified")
	}
	if !IsPgForeignKeyError(fk) || IsPgForeignKeyError(dup) {
		t.Error("IsPgForeignKeyError misclassified")
	}
	if !IsPgNoRowsError(fmt.Errorf("get: %w", pgx.ErrNoRows)) || IsPgNoRowsError(dup) {
		t.Error("IsPgNoRowsError misclassified")
	}
}

// TestRepositories_Postgres runs against a real database when TEST_DATABASE_URL is set.
func TestRepositories_Postgres(t *testing.T) {
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	pool, err := CreateConnectionPool(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer pool.Close()

	tables := NewTableNames("repotest_")
	if err := DropSchema(ctx, pool, tables); err != nil {
		t.Fatal(err)
	}
	if err := EnsureSchema(ctx, pool, tables, "repotest_"); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = DropSchema(context.Background(), pool, tables) })

	cfg := &RepositoryConfig{Pool: pool, Tables: tables, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	projects := NewProjectRepository(cfg)
	lists := NewListRepository(cfg)
	entries := NewEntryRepository(cfg)
	tx := NewTransactionManager(pool, cfg.Logger)

	project := &models.Project{Name: "Board", CreatorID: "alice"}
	if err := projects.Create(ctx, project); err != nil {
		t.Fatal(err)
	}
	if err := projects.Create(ctx, &models.Project{Name: "Board", CreatorID: "alice"}); !errors.Is(err, domain.ErrConflict) {
		t.Errorf("duplicate name: %v", err)
	}

	entry := &models.Entry{Type: models.EntryType, Title: "Write spec", Content: "Write spec", ProjectID: project.ID, CreatorID: "alice"}
	if err := entries.Create(ctx, entry); err != nil {
		t.Fatal(err)
	}

	list := &models.List{
		Type:      models.ListType,
		Title:     "Todo",
		Items:     models.Items{models.EntryItem{Entry: *entry}},
		ProjectID: project.ID,
		CreatorID: "alice",
	}
	if err := lists.Create(ctx, list); err != nil {
		t.Fatal(err)
	}

	got, err := lists.GetByID(ctx, list.ID, "alice")
	if err != nil {
		t.Fatal(err)
	}
	if got.Title != "Todo" || got.IndexOfEntry(entry.ID) != 0 {
		t.Errorf("round trip = %+v", got)
	}
	if _, err := lists.GetByID(ctx, list.ID, "bob"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("other user's list: %v", err)
	}

	list.Items = models.Items{}
	list.Title = "Done"
	if err := lists.Update(ctx, list); err != nil {
		t.Fatal(err)
	}
	if _, err := lists.Delete(ctx, list.ID, "alice"); err != nil {
		t.Fatal(err)
	}
	if _, err := entries.GetByID(ctx, entry.ID, "alice"); err != nil {
		t.Errorf("entry removed with its list: %v", err)
	}

	err = tx.ExecTx(ctx, func(ctx context.Context) error {
		if err := entries.DeleteByProject(ctx, project.ID, "alice"); err != nil {
			return err
		}
		return errors.New("abort")
	})
	if err == nil {
		t.Fatal("expected abort")
	}
	if all, _ := entries.List(ctx, "alice", project.ID); len(all) != 1 {
		t.Errorf("rolled back delete removed entries: %d left", len(all))
	}
}
