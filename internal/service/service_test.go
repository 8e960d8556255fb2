package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"liteboard/internal/domain"
	"liteboard/internal/domain/models"
	"liteboard/internal/domain/repositories"
	"liteboard/internal/domain/services"
	"liteboard/internal/repository/memory"
	"liteboard/internal/service/auth"
)

type fixture struct {
	projects services.ProjectService
	lists    services.ListService
	entries  services.EntryService
}

func newFixture(t *testing.T) fixture {
	return newFixtureWithTx(t, nil)
}

func newFixtureWithTx(t *testing.T, tx repositories.TransactionManager) fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	projectRepo := memory.NewProjectRepository(store)
	listRepo := memory.NewListRepository(store)
	entryRepo := memory.NewEntryRepository(store)
	if tx == nil {
		tx = memory.NewTransactionManager(store)
	}
	authorizer := auth.NewOwnerBasedAuthorizer(projectRepo)

	return fixture{
		projects: NewProjectService(projectRepo, listRepo, entryRepo, tx, logger),
		lists:    NewListService(listRepo, authorizer, logger),
		entries:  NewEntryService(entryRepo, authorizer, logger),
	}
}

func (f fixture) project(t *testing.T, user string) *models.Project {
	t.Helper()
	p, err := f.projects.CreateProject(context.Background(), &services.CreateProjectRequest{UserID: user, Name: "Board " + user})
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	return p
}

func TestProjectService_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  services.CreateProjectRequest
	}{
		{"blank name", services.CreateProjectRequest{UserID: "alice", Name: "   "}},
		{"no user", services.CreateProjectRequest{Name: "Board"}},
		{"name too long", services.CreateProjectRequest{UserID: "alice", Name: strings.Repeat("n", 256)}},
		{"description too long", services.CreateProjectRequest{UserID: "alice", Name: "x", Description: strings.Repeat("d", 2001)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			if _, err := f.projects.CreateProject(ctx, &req); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("err = %v, want validation error", err)
			}
		})
	}
}

func TestProjectService_DeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, "alice")

	e, err := f.entries.CreateEntry(ctx, &services.SaveEntryRequest{UserID: "alice", Title: "card", ProjectID: p.ID})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.lists.CreateList(ctx, &services.SaveListRequest{
		UserID: "alice", Title: "Todo", ProjectID: p.ID,
		Items: models.Items{models.EntryItem{Entry: *e}},
	}); err != nil {
		t.Fatal(err)
	}

	if err := f.projects.DeleteProject(ctx, p.ID, "alice"); err != nil {
		t.Fatalf("DeleteProject: %v", err)
	}

	if _, err := f.projects.GetProject(ctx, p.ID, "alice"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("project still there: %v", err)
	}
	if _, err := f.entries.GetEntry(ctx, e.ID, "alice"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("entry survived its project: %v", err)
	}
	if err := f.projects.DeleteProject(ctx, p.ID, "alice"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete: %v", err)
	}
}

type failingTx struct{ err error }

func (f failingTx) ExecTx(ctx context.Context, fn repositories.TxFn) error { return f.err }

func TestProjectService_DeleteTxFailure(t *testing.T) {
	boom := errors.New("tx failed")
	f := newFixtureWithTx(t, failingTx{err: boom})
	p := f.project(t, "alice")

	if err := f.projects.DeleteProject(context.Background(), p.ID, "alice"); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if _, err := f.projects.GetProject(context.Background(), p.ID, "alice"); err != nil {
		t.Errorf("project gone after failed tx: %v", err)
	}
}

func TestListService_CreateAndUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, "alice")

	list, err := f.lists.CreateList(ctx, &services.SaveListRequest{UserID: "alice", Title: " Todo ", ProjectID: p.ID})
	if err != nil {
		t.Fatalf("CreateList: %v", err)
	}
	if list.Title != "Todo" || list.Type != models.ListType || list.Items == nil {
		t.Errorf("created = %+v", list)
	}

	updated, err := f.lists.UpdateList(ctx, list.ID, &services.SaveListRequest{
		UserID: "alice",
		Title:  "Doing",
		Items:  models.Items{models.EntryItem{Entry: models.Entry{ID: 3, Title: "c"}}},
	})
	if err != nil {
		t.Fatalf("UpdateList: %v", err)
	}
	if updated.ProjectID != p.ID || updated.Title != "Doing" || updated.IndexOfEntry(3) != 0 {
		t.Errorf("updated = %+v", updated)
	}
}

func TestListService_Rejects(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, "alice")
	dup := models.EntryItem{Entry: models.Entry{ID: 1}}

	tests := []struct {
		name string
		req  services.SaveListRequest
		want error
	}{
		{"blank title", services.SaveListRequest{UserID: "alice", Title: "", ProjectID: p.ID}, domain.ErrValidation},
		{"wrong type", services.SaveListRequest{UserID: "alice", Title: "x", Type: "task", ProjectID: p.ID}, domain.ErrValidation},
		{"duplicate card", services.SaveListRequest{UserID: "alice", Title: "x", ProjectID: p.ID, Items: models.Items{dup, dup}}, domain.ErrValidation},
		{"duplicate inside nested list", services.SaveListRequest{UserID: "alice", Title: "x", ProjectID: p.ID, Items: models.Items{
			dup, models.ListItem{List: models.List{Items: models.Items{dup}}},
		}}, domain.ErrValidation},
		{"missing project", services.SaveListRequest{UserID: "alice", Title: "x"}, domain.ErrValidation},
		{"someone else's project", services.SaveListRequest{UserID: "bob", Title: "x", ProjectID: p.ID}, domain.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			if _, err := f.lists.CreateList(ctx, &req); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestListService_DeleteKeepsEntries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, "alice")

	e, err := f.entries.CreateEntry(ctx, &services.SaveEntryRequest{UserID: "alice", Title: "card", ProjectID: p.ID})
	if err != nil {
		t.Fatal(err)
	}
	list, err := f.lists.CreateList(ctx, &services.SaveListRequest{
		UserID: "alice", Title: "Todo", ProjectID: p.ID,
		Items: models.Items{models.EntryItem{Entry: *e}},
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := f.lists.DeleteList(ctx, list.ID, "alice"); err != nil {
		t.Fatal(err)
	}
	if _, err := f.entries.GetEntry(ctx, e.ID, "alice"); err != nil {
		t.Errorf("entry deleted with its list: %v", err)
	}
}

func TestEntryService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p := f.project(t, "alice")

	e, err := f.entries.CreateEntry(ctx, &services.SaveEntryRequest{UserID: "alice", Title: "Write spec", ProjectID: p.ID})
	if err != nil {
		t.Fatal(err)
	}
	if e.Type != models.EntryType {
		t.Errorf("type = %q", e.Type)
	}

	updated, err := f.entries.UpdateEntry(ctx, e.ID, &services.SaveEntryRequest{UserID: "alice", Title: "Write tests", Content: "all of them"})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Title != "Write tests" || updated.ProjectID != p.ID {
		t.Errorf("updated = %+v", updated)
	}

	if _, err := f.entries.UpdateEntry(ctx, e.ID, &services.SaveEntryRequest{UserID: "bob", Title: "x"}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("bob updated alice's entry: %v", err)
	}
	if _, err := f.entries.ListEntries(ctx, "bob", p.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("bob listed alice's project: %v", err)
	}

	all, err := f.entries.ListEntries(ctx, "alice", 0)
	if err != nil || len(all) != 1 {
		t.Errorf("ListEntries = %v, %v", all, err)
	}

	if err := f.entries.DeleteEntry(ctx, e.ID, "alice"); err != nil {
		t.Fatal(err)
	}
	if err := f.entries.DeleteEntry(ctx, e.ID, "alice"); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete: %v", err)
	}
}
