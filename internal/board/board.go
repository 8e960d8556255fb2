// Package board holds the client-side state of one project's kanban board and
// the rules for changing it: optimistic mutations, the drag-and-drop transfer
// protocol and reconciliation by reload.
//
// A Board is owned by a single goroutine. The only concurrency inside the
// package is the pair of list updates issued by a cross-list transfer, and
// those work on copies.
package board

import (
	"context"
	"log/slog"

	"liteboard/internal/domain/models"
)

// Store is the remote store as seen by the board. remote.Client implements it.
type Store interface {
	GetProject(ctx context.Context, id int64) (*models.Project, error)
	ListsByProject(ctx context.Context, projectID int64) ([]models.List, error)
	EntriesByProject(ctx context.Context, projectID int64) ([]models.Entry, error)

	CreateList(ctx context.Context, list *models.List) (*models.List, error)
	UpdateList(ctx context.Context, list *models.List) (*models.List, error)
	DeleteList(ctx context.Context, id int64) error

	CreateEntry(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	UpdateEntry(ctx context.Context, entry *models.Entry) (*models.Entry, error)
	DeleteEntry(ctx context.Context, id int64) error
}

// Board is the local snapshot of one project's lists.
type Board struct {
	store     Store
	projectID int64

	logger  *slog.Logger
	notify  func(msg string)
	confirm func(prompt string) bool

	project  *models.Project
	lists    []models.List
	loaded   []models.List // lists as of the last successful Load
	transfer Transfer
}

// Option configures a Board.
type Option func(*Board)

// WithLogger sets the board's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Board) { b.logger = logger }
}

// WithNotifier sets where user-facing failure messages go
// ("failed to <action>: <detail>"). The default logs them as warnings.
func WithNotifier(fn func(msg string)) Option {
	return func(b *Board) { b.notify = fn }
}

// WithConfirm sets the collaborator asked before destructive operations.
// The default answers yes.
func WithConfirm(fn func(prompt string) bool) Option {
	return func(b *Board) { b.confirm = fn }
}

// New creates an empty board for projectID. Call Load before using it.
func New(store Store, projectID int64, opts ...Option) *Board {
	b := &Board{
		store:     store,
		projectID: projectID,
		logger:    slog.Default(),
		confirm:   func(string) bool { return true },
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.notify == nil {
		b.notify = func(msg string) { b.logger.Warn(msg, "project_id", b.projectID) }
	}
	return b
}

// Load fetches the project, its lists and its entry records, and replaces the
// snapshot only when every fetch succeeded. Card text is taken from the entry
// records so that edits made to a record show up even though the list
// documents still hold an older copy.
func (b *Board) Load(ctx context.Context) error {
	if err := b.load(ctx); err != nil {
		return b.fail(actionLoad, err)
	}
	return nil
}

func (b *Board) load(ctx context.Context) error {
	project, lists, err := b.fetch(ctx)
	if err != nil {
		return err
	}

	b.project = project
	b.lists = lists
	b.checkpoint(lists)
	b.transfer.reset()

	b.logger.Debug("board loaded",
		"project_id", b.projectID,
		"lists", len(lists),
	)
	return nil
}

func (b *Board) fetch(ctx context.Context) (*models.Project, []models.List, error) {
	project, err := b.store.GetProject(ctx, b.projectID)
	if err != nil {
		return nil, nil, err
	}
	lists, err := b.store.ListsByProject(ctx, b.projectID)
	if err != nil {
		return nil, nil, err
	}
	entries, err := b.store.EntriesByProject(ctx, b.projectID)
	if err != nil {
		return nil, nil, err
	}

	records := make(map[int64]models.Entry, len(entries))
	for _, e := range entries {
		records[e.ID] = e
	}
	for i := range lists {
		lists[i].Items = hydrate(lists[i].Items, records)
	}
	if lists == nil {
		lists = []models.List{}
	}
	return project, lists, nil
}

// hydrate replaces embedded entry copies with their standalone records.
// References without a record keep their embedded copy.
func hydrate(items models.Items, records map[int64]models.Entry) models.Items {
	out := make(models.Items, 0, len(items))
	for _, item := range items {
		switch it := item.(type) {
		case models.EntryItem:
			if rec, ok := records[it.Entry.ID]; ok {
				it.Entry = rec
			}
			out = append(out, it)
		case models.ListItem:
			it.List.Items = hydrate(it.List.Items, records)
			out = append(out, it)
		}
	}
	return out
}

// ProjectID returns the id of the project this board shows.
func (b *Board) ProjectID() int64 {
	return b.projectID
}

// Project returns the loaded project, or nil before the first successful Load.
func (b *Board) Project() *models.Project {
	if b.project == nil {
		return nil
	}
	p := *b.project
	return &p
}

// Lists returns copies of the lists in board order.
func (b *Board) Lists() []models.List {
	out := make([]models.List, len(b.lists))
	for i, l := range b.lists {
		out[i] = l.Clone()
	}
	return out
}

// FindList looks a list up by id. Stale ids report false.
func (b *Board) FindList(listID int64) (models.List, bool) {
	l := b.list(listID)
	if l == nil {
		return models.List{}, false
	}
	return l.Clone(), true
}

// FindEntry looks a card up inside one list. Stale ids report false.
func (b *Board) FindEntry(listID, entryID int64) (models.Entry, bool) {
	l := b.list(listID)
	if l == nil {
		return models.Entry{}, false
	}
	i := l.IndexOfEntry(entryID)
	if i < 0 {
		return models.Entry{}, false
	}
	return l.Items[i].(models.EntryItem).Entry, true
}

// Cards returns the cards of a list in order. Nested lists are not cards and
// are skipped.
func (b *Board) Cards(listID int64) []models.Entry {
	l := b.list(listID)
	if l == nil {
		return nil
	}
	return l.Entries()
}

// list returns the live list for in-place mutation.
func (b *Board) list(listID int64) *models.List {
	for i := range b.lists {
		if b.lists[i].ID == listID {
			return &b.lists[i]
		}
	}
	return nil
}

// findEntryAnywhere locates a card by id across all lists.
func (b *Board) findEntryAnywhere(entryID int64) (models.Entry, bool) {
	for i := range b.lists {
		if idx := b.lists[i].IndexOfEntry(entryID); idx >= 0 {
			return b.lists[i].Items[idx].(models.EntryItem).Entry, true
		}
	}
	return models.Entry{}, false
}
