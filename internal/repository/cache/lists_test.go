package cache

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"liteboard/internal/domain/models"
)

type stubLists struct {
	listByProject func(ctx context.Context, projectID int64, userID string) ([]models.List, error)
	calls         int
}

func (s *stubLists) ListByProject(ctx context.Context, projectID int64, userID string) ([]models.List, error) {
	s.calls++
	if s.listByProject == nil {
		return nil, errors.New("unexpected ListByProject call")
	}
	return s.listByProject(ctx, projectID, userID)
}

func (s *stubLists) GetByID(ctx context.Context, id int64, userID string) (*models.List, error) {
	return nil, errors.New("unexpected GetByID call")
}

func (s *stubLists) Create(ctx context.Context, list *models.List) error {
	list.ID = 77
	return nil
}

func (s *stubLists) Update(ctx context.Context, list *models.List) error { return nil }

func (s *stubLists) Delete(ctx context.Context, id int64, userID string) (*models.List, error) {
	return &models.List{ID: id, ProjectID: 1, CreatorID: userID}, nil
}

func (s *stubLists) DeleteByProject(ctx context.Context, projectID int64, userID string) error {
	return nil
}

func newTestCache(t *testing.T, base *stubLists, ttl time.Duration) (*ListCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewListCache(base, client, ttl, slog.New(slog.NewTextHandler(io.Discard, nil))), mr
}

func todoList() []models.List {
	return []models.List{{
		ID:        5,
		Type:      models.ListType,
		Title:     "Todo",
		ProjectID: 1,
		CreatorID: "alice",
		Items: models.Items{
			models.EntryItem{Entry: models.Entry{ID: 9, Type: models.EntryType, Title: "Write spec"}},
		},
	}}
}

func TestListCache_MissThenHit(t *testing.T) {
	base := &stubLists{listByProject: func(ctx context.Context, projectID int64, userID string) ([]models.List, error) {
		return todoList(), nil
	}}
	c, mr := newTestCache(t, base, time.Minute)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		lists, err := c.ListByProject(ctx, 1, "alice")
		if err != nil {
			t.Fatalf("ListByProject: %v", err)
		}
		if len(lists) != 1 || lists[0].IndexOfEntry(9) != 0 {
			t.Fatalf("lists = %+v", lists)
		}
	}
	if base.calls != 1 {
		t.Errorf("backend calls = %d, want 1", base.calls)
	}
	if ttl := mr.TTL(listsKey("alice", 1)); ttl <= 0 || ttl > time.Minute {
		t.Errorf("unexpected TTL: %v", ttl)
	}
}

func TestListCache_WritesEvict(t *testing.T) {
	tests := []struct {
		name  string
		write func(c *ListCache) error
	}{
		{"create", func(c *ListCache) error {
			return c.Create(context.Background(), &models.List{ProjectID: 1, CreatorID: "alice"})
		}},
		{"update", func(c *ListCache) error {
			return c.Update(context.Background(), &models.List{ID: 5, ProjectID: 1, CreatorID: "alice"})
		}},
		{"delete", func(c *ListCache) error {
			_, err := c.Delete(context.Background(), 5, "alice")
			return err
		}},
		{"delete by project", func(c *ListCache) error {
			return c.DeleteByProject(context.Background(), 1, "alice")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base := &stubLists{listByProject: func(ctx context.Context, projectID int64, userID string) ([]models.List, error) {
				return todoList(), nil
			}}
			c, mr := newTestCache(t, base, time.Minute)

			if _, err := c.ListByProject(context.Background(), 1, "alice"); err != nil {
				t.Fatal(err)
			}
			if !mr.Exists(listsKey("alice", 1)) {
				t.Fatal("expected cached entry")
			}
			if err := tt.write(c); err != nil {
				t.Fatal(err)
			}
			if mr.Exists(listsKey("alice", 1)) {
				t.Error("write did not evict")
			}
		})
	}
}

func TestListCache_CorruptEntryFallsBack(t *testing.T) {
	base := &stubLists{listByProject: func(ctx context.Context, projectID int64, userID string) ([]models.List, error) {
		return todoList(), nil
	}}
	c, mr := newTestCache(t, base, time.Minute)
	if err := mr.Set(listsKey("alice", 1), "{not json"); err != nil {
		t.Fatal(err)
	}

	lists, err := c.ListByProject(context.Background(), 1, "alice")
	if err != nil || len(lists) != 1 {
		t.Fatalf("lists = %v, err = %v", lists, err)
	}
	if base.calls != 1 {
		t.Errorf("backend calls = %d", base.calls)
	}
}

func TestListCache_ZeroTTLDoesNotStore(t *testing.T) {
	base := &stubLists{listByProject: func(ctx context.Context, projectID int64, userID string) ([]models.List, error) {
		return todoList(), nil
	}}
	c, mr := newTestCache(t, base, 0)

	if _, err := c.ListByProject(context.Background(), 1, "alice"); err != nil {
		t.Fatal(err)
	}
	if mr.Exists(listsKey("alice", 1)) {
		t.Error("zero TTL stored a value")
	}
}

func TestListCache_BackendErrorIsReturned(t *testing.T) {
	boom := errors.New("db down")
	base := &stubLists{listByProject: func(ctx context.Context, projectID int64, userID string) ([]models.List, error) {
		return nil, boom
	}}
	c, mr := newTestCache(t, base, time.Minute)

	if _, err := c.ListByProject(context.Background(), 1, "alice"); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if mr.Exists(listsKey("alice", 1)) {
		t.Error("error result cached")
	}
}
