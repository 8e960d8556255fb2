package service

import (
	"context"
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

type entryService struct {
	entryRepo  repositories.EntryRepository
	authorizer services.ResourceAuthorizer
	logger     *slog.Logger
}

// NewEntryService creates a new entry service
func NewEntryService(
	entryRepo repositories.EntryRepository,
	authorizer services.ResourceAuthorizer,
	logger *slog.Logger,
) services.EntryService {
	return &entryService{
		entryRepo:  entryRepo,
		authorizer: authorizer,
		logger:     logger,
	}
}

func (s *entryService) CreateEntry(ctx context.Context, req *services.SaveEntryRequest) (*models.Entry, error) {
	s.normalize(req)
	if err := s.validate(req, true); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if err := s.authorizer.CanAccessProject(ctx, req.UserID, req.ProjectID); err != nil {
		return nil, err
	}

	entry := &models.Entry{
		Type:      req.Type,
		Title:     req.Title,
		Content:   req.Content,
		ProjectID: req.ProjectID,
		CreatorID: req.UserID,
	}
	if err := s.entryRepo.Create(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("entry created",
		"id", entry.ID,
		"project_id", entry.ProjectID,
		"user_id", req.UserID,
	)

	return entry, nil
}

func (s *entryService) GetEntry(ctx context.Context, id int64, userID string) (*models.Entry, error) {
	return s.entryRepo.GetByID(ctx, id, userID)
}

func (s *entryService) ListEntries(ctx context.Context, userID string, projectID int64) ([]models.Entry, error) {
	if projectID > 0 {
		if err := s.authorizer.CanAccessProject(ctx, userID, projectID); err != nil {
			return nil, err
		}
	}
	return s.entryRepo.List(ctx, userID, projectID)
}

// UpdateEntry rewrites the record only; lists holding a copy are not touched
func (s *entryService) UpdateEntry(ctx context.Context, id int64, req *services.SaveEntryRequest) (*models.Entry, error) {
	s.normalize(req)
	if err := s.validate(req, false); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	entry := &models.Entry{
		ID:        id,
		Type:      req.Type,
		Title:     req.Title,
		Content:   req.Content,
		CreatorID: req.UserID,
	}
	if err := s.entryRepo.Update(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("entry updated", "id", id, "user_id", req.UserID)
	return entry, nil
}

func (s *entryService) DeleteEntry(ctx context.Context, id int64, userID string) error {
	if _, err := s.entryRepo.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.logger.Info("entry deleted", "id", id, "user_id", userID)
	return nil
}

func (s *entryService) normalize(req *services.SaveEntryRequest) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Type == "" {
		req.Type = models.EntryType
	}
}

func (s *entryService) validate(req *services.SaveEntryRequest, create bool) error {
	projectRules := []validation.Rule{}
	if create {
		projectRules = append(projectRules, validation.Required, validation.Min(int64(1)))
	}
	return validation.ValidateStruct(req,
		validation.Field(&req.UserID, validation.Required),
		validation.Field(&req.ProjectID, projectRules...),
		validation.Field(&req.Title,
			validation.Required,
			validation.RuneLength(1, config.MaxTitleLength),
		),
		validation.Field(&req.Content, validation.RuneLength(0, config.MaxContentLength)),
	)
}
