// Package memory implements the repositories in process memory. The server
// uses it when no DATABASE_URL is configured, and handler tests use it as
// their backend.
package memory

import (
	"context"
	"sync"

	"liteboard/internal/domain/models"
	"liteboard/internal/domain/repositories"
)

// Store holds every table. Repositories created from the same Store share it.
type Store struct {
	mu       sync.Mutex
	txMu     sync.Mutex
	nextID   int64
	projects map[int64]models.Project
	lists    map[int64]models.List
	entries  map[int64]models.Entry
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		projects: map[int64]models.Project{},
		lists:    map[int64]models.List{},
		entries:  map[int64]models.Entry{},
	}
}

func (s *Store) newID() int64 {
	s.nextID++
	return s.nextID
}

type snapshot struct {
	nextID   int64
	projects map[int64]models.Project
	lists    map[int64]models.List
	entries  map[int64]models.Entry
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		nextID:   s.nextID,
		projects: make(map[int64]models.Project, len(s.projects)),
		lists:    make(map[int64]models.List, len(s.lists)),
		entries:  make(map[int64]models.Entry, len(s.entries)),
	}
	for id, p := range s.projects {
		snap.projects[id] = p
	}
	for id, l := range s.lists {
		snap.lists[id] = l.Clone()
	}
	for id, e := range s.entries {
		snap.entries[id] = e
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID = snap.nextID
	s.projects = snap.projects
	s.lists = snap.lists
	s.entries = snap.entries
}

// TransactionManager gives ExecTx all-or-nothing semantics over a Store.
// Transactions are serialized with each other; a failed one restores the
// state it started from.
type TransactionManager struct {
	store *Store
}

// NewTransactionManager creates a transaction manager over s
func NewTransactionManager(s *Store) repositories.TransactionManager {
	return &TransactionManager{store: s}
}

// ExecTx runs fn and rolls the store back if fn fails
func (tm *TransactionManager) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	tm.store.txMu.Lock()
	defer tm.store.txMu.Unlock()

	snap := tm.store.snapshot()
	if err := fn(ctx); err != nil {
		tm.store.restore(snap)
		return err
	}
	return nil
}
