package board

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"

	"liteboard/internal/domain"
	"liteboard/internal/domain/models"
)

// fakeStore is an in-memory Store that records calls and can be told to fail.
type fakeStore struct {
	mu      sync.Mutex
	project *models.Project
	lists   []models.List
	entries map[int64]models.Entry
	nextID  int64

	calls []string
	fail  map[string]error // "Method" or "Method:id"

	// onUpdateList runs before an UpdateList is applied, outside the lock.
	onUpdateList func(list *models.List)
}

func newFakeStore(projectID int64) *fakeStore {
	return &fakeStore{
		project: &models.Project{ID: projectID, Name: "Board"},
		entries: map[int64]models.Entry{},
		nextID:  100,
		fail:    map[string]error{},
	}
}

func (s *fakeStore) record(method string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, fmt.Sprintf("%s:%d", method, id))
	if err, ok := s.fail[fmt.Sprintf("%s:%d", method, id)]; ok {
		return err
	}
	return s.fail[method]
}

func (s *fakeStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *fakeStore) resetCalls() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

func (s *fakeStore) callsTo(method string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, c := range s.calls {
		if len(c) > len(method) && c[:len(method)+1] == method+":" {
			out = append(out, c)
		}
	}
	return out
}

// seedList adds a list holding the given entries, which are also stored as records.
func (s *fakeStore) seedList(title string, entries ...models.Entry) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	l := models.List{ID: s.nextID, Type: models.ListType, Title: title, ProjectID: s.project.ID, Items: models.Items{}}
	for _, e := range entries {
		e.ProjectID = s.project.ID
		s.entries[e.ID] = e
		l.Items = append(l.Items, models.EntryItem{Entry: e})
	}
	s.lists = append(s.lists, l)
	return l.ID
}

func (s *fakeStore) storedList(id int64) (models.List, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.lists {
		if l.ID == id {
			return l.Clone(), true
		}
	}
	return models.List{}, false
}

func (s *fakeStore) storedEntry(id int64) (models.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	return e, ok
}

func (s *fakeStore) GetProject(ctx context.Context, id int64) (*models.Project, error) {
	if err := s.record("GetProject", id); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.project == nil || s.project.ID != id {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("project %d: not found", id)}
	}
	p := *s.project
	return &p, nil
}

func (s *fakeStore) ListsByProject(ctx context.Context, projectID int64) ([]models.List, error) {
	if err := s.record("ListsByProject", projectID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.List, 0, len(s.lists))
	for _, l := range s.lists {
		if l.ProjectID == projectID {
			out = append(out, l.Clone())
		}
	}
	return out, nil
}

func (s *fakeStore) EntriesByProject(ctx context.Context, projectID int64) ([]models.Entry, error) {
	if err := s.record("EntriesByProject", projectID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Entry
	for _, e := range s.entries {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *fakeStore) CreateList(ctx context.Context, list *models.List) (*models.List, error) {
	if err := s.record("CreateList", 0); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	created := list.Clone()
	created.ID = s.nextID
	s.lists = append(s.lists, created)
	return &created, nil
}

func (s *fakeStore) UpdateList(ctx context.Context, list *models.List) (*models.List, error) {
	if s.onUpdateList != nil {
		s.onUpdateList(list)
	}
	if err := s.record("UpdateList", list.ID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lists {
		if s.lists[i].ID == list.ID {
			s.lists[i] = list.Clone()
			updated := list.Clone()
			return &updated, nil
		}
	}
	return nil, &domain.NotFoundError{Message: fmt.Sprintf("list %d: not found", list.ID)}
}

func (s *fakeStore) DeleteList(ctx context.Context, id int64) error {
	if err := s.record("DeleteList", id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.lists {
		if s.lists[i].ID == id {
			s.lists = append(s.lists[:i], s.lists[i+1:]...)
			return nil
		}
	}
	return &domain.NotFoundError{Message: fmt.Sprintf("list %d: not found", id)}
}

func (s *fakeStore) CreateEntry(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	if err := s.record("CreateEntry", 0); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	created := *entry
	created.ID = s.nextID
	s.entries[created.ID] = created
	return &created, nil
}

func (s *fakeStore) UpdateEntry(ctx context.Context, entry *models.Entry) (*models.Entry, error) {
	if err := s.record("UpdateEntry", entry.ID); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[entry.ID]; !ok {
		return nil, &domain.NotFoundError{Message: fmt.Sprintf("entry %d: not found", entry.ID)}
	}
	s.entries[entry.ID] = *entry
	updated := *entry
	return &updated, nil
}

func (s *fakeStore) DeleteEntry(ctx context.Context, id int64) error {
	if err := s.record("DeleteEntry", id); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[id]; !ok {
		return &domain.NotFoundError{Message: fmt.Sprintf("entry %d: not found", id)}
	}
	delete(s.entries, id)
	return nil
}

// recorder collects notifier messages.
type recorder struct {
	mu   sync.Mutex
	msgs []string
}

func (r *recorder) notify(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.msgs = append(r.msgs, msg)
}

func (r *recorder) messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.msgs...)
}

func newTestBoard(t *testing.T, store *fakeStore, opts ...Option) (*Board, *recorder) {
	t.Helper()
	rec := &recorder{}
	opts = append([]Option{
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithNotifier(rec.notify),
	}, opts...)
	b := New(store, store.project.ID, opts...)
	if err := b.Load(context.Background()); err != nil {
		t.Fatalf("initial load: %v", err)
	}
	store.resetCalls()
	return b, rec
}

// entryIDs returns the card ids of a list in order.
func entryIDs(l models.List) []int64 {
	var ids []int64
	for _, e := range l.Entries() {
		ids = append(ids, e.ID)
	}
	return ids
}
