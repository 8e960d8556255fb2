package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"liteboard/internal/config"
	"liteboard/internal/domain"
	"liteboard/internal/domain/models"
	"liteboard/internal/domain/repositories"
	"liteboard/internal/domain/services"
)

// listService implements the ListService interface
type listService struct {
	listRepo   repositories.ListRepository
	authorizer services.ResourceAuthorizer
	logger     *slog.Logger
}

// NewListService creates a new list service
func NewListService(
	listRepo repositories.ListRepository,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) services.ListService {
	return &listService{
		listRepo:   listRepo,
		authorizer: authorizer,
		logger:     logger,
	}
}

// CreateList creates a list document in a project the user owns
func (s *listService) CreateList(ctx context.Context, req *services.SaveListRequest) (*models.List, error) {
	s.normalize(req)
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := s.authorizer.CanAccessProject(ctx, req.UserID, req.ProjectID); err != nil {
		return nil, err
	}

	list := &models.List{
		Type:      req.Type,
		Title:     req.Title,
		Items:     req.Items,
		ProjectID: req.ProjectID,
		CreatorID: req.UserID,
	}
	if err := s.listRepo.Create(ctx, list); err != nil {
		return nil, err
	}

	s.logger.Info("list created",
		"id", list.ID,
		"project_id", list.ProjectID,
		"user_id", req.UserID,
	)

	return list, nil
}

// GetList retrieves a list by ID
func (s *listService) GetList(ctx context.Context, id int64, userID string) (*models.List, error) {
	return s.listRepo.GetByID(ctx, id, userID)
}

// ListsByProject retrieves the lists of a project in creation order
func (s *listService) ListsByProject(ctx context.Context, projectID int64, userID string) ([]models.List, error) {
	if err := s.authorizer.CanAccessProject(ctx, userID, projectID); err != nil {
		return nil, err
	}
	return s.listRepo.ListByProject(ctx, projectID, userID)
}

// UpdateList replaces title and items. The list stays in its project.
func (s *listService) UpdateList(ctx context.Context, id int64, req *services.SaveListRequest) (*models.List, error) {
	s.normalize(req)
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	list := &models.List{
		ID:        id,
		Title:     req.Title,
		Items:     req.Items,
		CreatorID: req.UserID,
	}
	if err := s.listRepo.Update(ctx, list); err != nil {
		return nil, err
	}

	s.logger.Info("list updated",
		"id", id,
		"items", len(list.Items),
		"user_id", req.UserID,
	)

	return list, nil
}

// DeleteList deletes a list document. Its entries stay.
func (s *listService) DeleteList(ctx context.Context, id int64, userID string) error {
	list, err := s.listRepo.Delete(ctx, id, userID)
	if err != nil {
		return err
	}

	s.logger.Info("list deleted",
		"id", id,
		"project_id", list.ProjectID,
		"orphaned_entries", len(list.Entries()),
		"user_id", userID,
	)

	return nil
}

func (s *listService) normalize(req *services.SaveListRequest) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Type == "" {
		req.Type = models.ListType
	}
	if req.Items == nil {
		req.Items = models.Items{}
	}
}

func (s *listService) validateCreateRequest(req *services.SaveListRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.ProjectID, validation.Required, validation.Min(int64(1))),
		validation.Field(&req.Type, validation.In(models.ListType)),
		validation.Field(&req.Title,
			validation.Required,
			validation.RuneLength(1, config.MaxTitleLength),
		),
		validation.Field(&req.Items, validation.By(uniqueEntries)),
	)
}

func (s *listService) validateUpdateRequest(req *services.SaveListRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.Type, validation.In(models.ListType)),
		validation.Field(&req.Title,
			validation.Required,
			validation.RuneLength(1, config.MaxTitleLength),
		),
		validation.Field(&req.Items, validation.By(uniqueEntries)),
	)
}

// uniqueEntries rejects an item sequence that holds the same card twice,
// nested lists included.
func uniqueEntries(value interface{}) error {
	items, ok := value.(models.Items)
	if !ok {
		return errors.New("must be an item sequence")
	}
	seen := map[int64]bool{}
	var walk func(models.Items) error
	walk = func(items models.Items) error {
		for _, item := range items {
			switch it := item.(type) {
			case models.EntryItem:
				if seen[it.Entry.ID] {
					return fmt.Errorf("entry %d appears more than once", it.Entry.ID)
				}
				seen[it.Entry.ID] = true
			case models.ListItem:
				if err := walk(it.List.Items); err != nil {
					return err
				}
			}
		}
		return nil
	}
	return walk(items)
}
