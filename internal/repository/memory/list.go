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

type listRepository struct {
	s *Store
}

// NewListRepository creates a list repository backed by s
func NewListRepository(s *Store) repositories.ListRepository {
	return &listRepository{s: s}
}

func (r *listRepository) Create(ctx context.Context, list *models.List) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.projects[list.ProjectID]; !ok {
		return fmt.Errorf("project %d: %w", list.ProjectID, domain.ErrNotFound)
	}
	if list.Items == nil {
		list.Items = models.Items{}
	}

	now := time.Now()
	list.ID = r.s.newID()
	list.CreatedAt, list.UpdatedAt = now, now
	r.s.lists[list.ID] = list.Clone()
	return nil
}

func (r *listRepository) GetByID(ctx context.Context, id int64, userID string) (*models.List, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l, ok := r.s.lists[id]
	if !ok || l.CreatorID != userID {
		return nil, fmt.Errorf("list %d: %w", id, domain.ErrNotFound)
	}
	out := l.Clone()
	return &out, nil
}

func (r *listRepository) ListByProject(ctx context.Context, projectID int64, userID string) ([]models.List, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []models.List{}
	for _, l := range r.s.lists {
		if l.ProjectID == projectID && l.CreatorID == userID {
			out = append(out, l.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *listRepository) Update(ctx context.Context, list *models.List) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.lists[list.ID]
	if !ok || current.CreatorID != list.CreatorID {
		return fmt.Errorf("list %d: %w", list.ID, domain.ErrNotFound)
	}

	current.Title = list.Title
	current.Items = list.Items.Clone()
	if current.Items == nil {
		current.Items = models.Items{}
	}
	current.UpdatedAt = time.Now()
	r.s.lists[list.ID] = current
	*list = current.Clone()
	return nil
}

func (r *listRepository) Delete(ctx context.Context, id int64, userID string) (*models.List, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	l, ok := r.s.lists[id]
	if !ok || l.CreatorID != userID {
		return nil, fmt.Errorf("list %d: %w", id, domain.ErrNotFound)
	}
	delete(r.s.lists, id)
	return &l, nil
}

func (r *listRepository) DeleteByProject(ctx context.Context, projectID int64, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, l := range r.s.lists {
		if l.ProjectID == projectID && l.CreatorID == userID {
			delete(r.s.lists, id)
		}
	}
	return nil
}
