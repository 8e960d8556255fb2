package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"liteboard/internal/domain"
	"liteboard/internal/domain/models"
	"liteboard/internal/domain/repositories"
)

type entryRepository struct {
	s *Store
}

// NewEntryRepository creates an entry repository backed by s
func NewEntryRepository(s *Store) repositories.EntryRepository {
	return &entryRepository{s: s}
}

func (r *entryRepository) Create(ctx context.Context, entry *models.Entry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.projects[entry.ProjectID]; !ok {
		return fmt.Errorf("project %d: %w", entry.ProjectID, domain.ErrNotFound)
	}

	now := time.Now()
	entry.ID = r.s.newID()
	entry.CreatedAt, entry.UpdatedAt = now, now
	r.s.entries[entry.ID] = *entry
	return nil
}

func (r *entryRepository) GetByID(ctx context.Context, id int64, userID string) (*models.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.entries[id]
	if !ok || e.CreatorID != userID {
		return nil, fmt.Errorf("entry %d: %w", id, domain.ErrNotFound)
	}
	return &e, nil
}

func (r *entryRepository) List(ctx context.Context, userID string, projectID int64) ([]models.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []models.Entry{}
	for _, e := range r.s.entries {
		if e.CreatorID != userID {
			continue
		}
		if projectID > 0 && e.ProjectID != projectID {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *entryRepository) Update(ctx context.Context, entry *models.Entry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.entries[entry.ID]
	if !ok || current.CreatorID != entry.CreatorID {
		return fmt.Errorf("entry %d: %w", entry.ID, domain.ErrNotFound)
	}

	current.Type = entry.Type
	current.Title = entry.Title
	current.Content = entry.Content
	current.UpdatedAt = time.Now()
	r.s.entries[entry.ID] = current
	*entry = current
	return nil
}

func (r *entryRepository) Delete(ctx context.Context, id int64, userID string) (*models.Entry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	e, ok := r.s.entries[id]
	if !ok || e.CreatorID != userID {
		return nil, fmt.Errorf("entry %d: %w", id, domain.ErrNotFound)
	}
	delete(r.s.entries, id)
	return &e, nil
}

func (r *entryRepository) DeleteByProject(ctx context.Context, projectID int64, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, e := range r.s.entries {
		if e.ProjectID == projectID && e.CreatorID == userID {
			delete(r.s.entries, id)
		}
	}
	return nil
}
