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

type projectRepository struct {
	s *Store
}

// NewProjectRepository creates a project repository backed by s
func NewProjectRepository(s *Store) repositories.ProjectRepository {
	return &projectRepository{s: s}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if existing, ok := r.byName(project.CreatorID, project.Name); ok {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("project '%s' already exists", project.Name),
			ResourceType: "project",
			ResourceID:   existing,
		}
	}

	now := time.Now()
	project.ID = r.s.newID()
	project.CreatedAt, project.UpdatedAt = now, now
	r.s.projects[project.ID] = *project
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id int64, userID string) (*models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.projects[id]
	if !ok || p.CreatorID != userID {
		return nil, fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}
	return &p, nil
}

func (r *projectRepository) List(ctx context.Context, userID string) ([]models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := []models.Project{}
	for _, p := range r.s.projects {
		if p.CreatorID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.projects[project.ID]
	if !ok || current.CreatorID != project.CreatorID {
		return fmt.Errorf("project %d: %w", project.ID, domain.ErrNotFound)
	}
	if existing, ok := r.byName(project.CreatorID, project.Name); ok && existing != project.ID {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("project name '%s' already exists", project.Name),
			ResourceType: "project",
			ResourceID:   existing,
		}
	}

	current.Name = project.Name
	current.Description = project.Description
	current.UpdatedAt = time.Now()
	r.s.projects[project.ID] = current
	*project = current
	return nil
}

// Delete removes the project. Like the postgres cascade, its lists and
// entries go with it.
func (r *projectRepository) Delete(ctx context.Context, id int64, userID string) (*models.Project, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.projects[id]
	if !ok || p.CreatorID != userID {
		return nil, fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}
	delete(r.s.projects, id)
	for lid, l := range r.s.lists {
		if l.ProjectID == id {
			delete(r.s.lists, lid)
		}
	}
	for eid, e := range r.s.entries {
		if e.ProjectID == id {
			delete(r.s.entries, eid)
		}
	}
	return &p, nil
}

// byName must be called with the lock held
func (r *projectRepository) byName(userID, name string) (int64, bool) {
	for id, p := range r.s.projects {
		if p.CreatorID == userID && p.Name == name {
			return id, true
		}
	}
	return 0, false
}
