package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"liteboard/internal/auth"
	"liteboard/internal/config"
	"liteboard/internal/domain/models"
	"liteboard/internal/handler"
	"liteboard/internal/remote"
	"liteboard/internal/repository/memory"
	"liteboard/internal/service"
	svcauth "liteboard/internal/service/auth"
)

type harness struct {
	t       *testing.T
	url     string
	profile string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.NewStore()
	projects := memory.NewProjectRepository(store)
	lists := memory.NewListRepository(store)
	entries := memory.NewEntryRepository(store)
	authorizer := svcauth.NewOwnerBasedAuthorizer(projects)
	sessions, err := auth.NewSessionManager("test-secret", time.Hour, logger)
	if err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(handler.NewRouter(handler.Services{
		Projects: service.NewProjectService(projects, lists, entries, memory.NewTransactionManager(store), logger),
		Lists:    service.NewListService(lists, authorizer, logger),
		Entries:  service.NewEntryService(entries, authorizer, logger),
	}, sessions, sessions, &config.Config{Environment: "test"}, logger))
	t.Cleanup(srv.Close)

	t.Setenv("LITEBOARD_URL", "")
	t.Setenv("LITEBOARD_SESSION", "")
	return &harness{t: t, url: srv.URL, profile: filepath.Join(t.TempDir(), "profile.yaml")}
}

// run executes one boardctl invocation with stdin as its input.
func (h *harness) run(stdin string, args ...string) (string, string, error) {
	h.t.Helper()
	var out, errOut bytes.Buffer
	a := newApp(strings.NewReader(stdin), &out, &errOut)
	cmd := a.root()
	cmd.SetArgs(append([]string{"--url", h.url, "--profile", h.profile}, args...))
	err := cmd.ExecuteContext(context.Background())
	if err != nil {
		a.reportError(err)
	}
	return out.String(), errOut.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, errOut, err := h.run("", args...)
	if err != nil {
		h.t.Fatalf("boardctl %v: %v\n%s", args, err, errOut)
	}
	return out
}

// client talks to the store with the session saved in the profile
func (h *harness) client() *remote.Client {
	h.t.Helper()
	p, err := config.LoadProfile(h.profile)
	if err != nil {
		h.t.Fatal(err)
	}
	c, err := remote.New(h.url, remote.WithSessionToken(p.Session))
	if err != nil {
		h.t.Fatal(err)
	}
	return c
}

func (h *harness) listsByTitle(projectID int64) map[string]models.List {
	h.t.Helper()
	lists, err := h.client().ListsByProject(context.Background(), projectID)
	if err != nil {
		h.t.Fatal(err)
	}
	out := make(map[string]models.List, len(lists))
	for _, l := range lists {
		out[l.Title] = l
	}
	return out
}

func id(v int64) string { return strconv.FormatInt(v, 10) }

func TestBoardctl_TodoToDone(t *testing.T) {
	h := newHarness(t)

	if out := h.mustRun("login", "alice"); !strings.Contains(out, "Logged in") {
		t.Errorf("login output = %q", out)
	}
	if out := h.mustRun("whoami"); !strings.HasPrefix(out, "alice ") {
		t.Errorf("whoami = %q", out)
	}

	h.mustRun("project", "create", "Demo")
	projects, err := h.client().ListProjects(context.Background())
	if err != nil || len(projects) != 1 {
		t.Fatalf("projects = %v, %v", projects, err)
	}
	pid := id(projects[0].ID)
	if out := h.mustRun("projects"); !strings.Contains(out, "Demo") {
		t.Errorf("projects output = %q", out)
	}

	h.mustRun("-p", pid, "list", "add", "Todo")
	h.mustRun("-p", pid, "list", "add", "Done")
	lists := h.listsByTitle(projects[0].ID)
	todo, done := lists["Todo"], lists["Done"]

	out := h.mustRun("-p", pid, "card", "add", id(todo.ID), "Write", "spec")
	if !strings.Contains(out, "Write spec") {
		t.Errorf("board after card add:\n%s", out)
	}
	card := h.listsByTitle(projects[0].ID)["Todo"].Entries()[0]
	if card.Content != "Write spec" {
		t.Errorf("card content = %q", card.Content)
	}

	h.mustRun("-p", pid, "move", id(card.ID), id(todo.ID), id(done.ID))
	lists = h.listsByTitle(projects[0].ID)
	if len(lists["Todo"].Entries()) != 0 {
		t.Errorf("Todo = %+v", lists["Todo"].Items)
	}
	if got := lists["Done"].Entries(); len(got) != 1 || got[0].ID != card.ID {
		t.Errorf("Done = %+v", lists["Done"].Items)
	}
}

func TestBoardctl_DeclinedDelete(t *testing.T) {
	h := newHarness(t)
	h.mustRun("login", "alice")
	h.mustRun("project", "create", "Demo")
	projects, _ := h.client().ListProjects(context.Background())
	pid := id(projects[0].ID)
	h.mustRun("-p", pid, "list", "add", "Todo")
	todo := h.listsByTitle(projects[0].ID)["Todo"]

	_, errOut, err := h.run("n\n", "-p", pid, "list", "rm", id(todo.ID))
	if err != nil {
		t.Fatalf("declined delete: %v", err)
	}
	if !strings.Contains(errOut, `Delete list "Todo"?`) {
		t.Errorf("prompt = %q", errOut)
	}
	if _, ok := h.listsByTitle(projects[0].ID)["Todo"]; !ok {
		t.Fatal("declined delete removed the list")
	}

	h.mustRun("--yes", "-p", pid, "list", "rm", id(todo.ID))
	if _, ok := h.listsByTitle(projects[0].ID)["Todo"]; ok {
		t.Error("confirmed delete kept the list")
	}
}

func TestBoardctl_StaleListReportsNotFound(t *testing.T) {
	h := newHarness(t)
	h.mustRun("login", "alice")
	h.mustRun("project", "create", "Demo")
	projects, _ := h.client().ListProjects(context.Background())

	_, errOut, err := h.run("", "-p", id(projects[0].ID), "card", "add", "999", "ghost")
	if err == nil || !strings.Contains(errOut, "not found") {
		t.Errorf("err = %v, stderr = %q", err, errOut)
	}
}

func TestBoardctl_LoggedOut(t *testing.T) {
	h := newHarness(t)
	h.mustRun("login", "alice")
	h.mustRun("logout")

	p, err := config.LoadProfile(h.profile)
	if err != nil || p.Session != "" {
		t.Fatalf("profile after logout = %+v, %v", p, err)
	}

	_, errOut, err := h.run("", "projects")
	if err == nil {
		t.Fatal("projects succeeded without a session")
	}
	if strings.Count(errOut, "session has expired") != 1 || strings.Contains(errOut, "Error:") {
		t.Errorf("stderr = %q", errOut)
	}
}

func TestBoardctl_RequiresProject(t *testing.T) {
	h := newHarness(t)
	h.mustRun("login", "alice")
	if _, errOut, err := h.run("", "board"); err == nil || !strings.Contains(errOut, "--project is required") {
		t.Errorf("err = %v, stderr = %q", err, errOut)
	}
}
