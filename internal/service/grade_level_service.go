package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/school-api/internal/models"
	appErrors "github.com/noah-isme/school-api/pkg/errors"
	"github.com/noah-isme/school-api/pkg/validation"
)

type gradeLevelRepository interface {
	List(ctx context.Context) ([]models.GradeLevel, error)
	FindByID(ctx context.Context, id int64) (*models.GradeLevel, error)
	Create(ctx context.Context, level *models.GradeLevel) error
	Update(ctx context.Context, level *models.GradeLevel) error
	Delete(ctx context.Context, id int64) error
}

// CreateGradeLevelRequest is the payload for creating or replacing a grade
// level.
type CreateGradeLevelRequest struct {
	Name        string `json:"name" validate:"required,min=3"`
	Description string `json:"description" validate:"required,min=3"`
}

// GradeLevelService orchestrates grade level management.
type GradeLevelService struct {
	repo      gradeLevelRepository
	validator *validation.Validator
	logger    *zap.Logger
}

// NewGradeLevelService constructs a GradeLevelService.
func NewGradeLevelService(repo gradeLevelRepository, validate *validation.Validator, logger *zap.Logger) *GradeLevelService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeLevelService{repo: repo, validator: validate, logger: logger}
}

// List returns every grade level.
func (s *GradeLevelService) List(ctx context.Context) ([]models.GradeLevel, error) {
	levels, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grade levels")
	}
	return levels, nil
}

// Get returns a grade level by id.
func (s *GradeLevelService) Get(ctx context.Context, id int64) (*models.GradeLevel, error) {
	level, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grade level not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade level")
	}
	return level, nil
}

// Create registers a new grade level.
func (s *GradeLevelService) Create(ctx context.Context, req CreateGradeLevelRequest) (*models.GradeLevel, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	level := &models.GradeLevel{Name: req.Name, Description: req.Description}
	if err := s.repo.Create(ctx, level); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create grade level")
	}
	return level, nil
}

// Update fully replaces a grade level.
func (s *GradeLevelService) Update(ctx context.Context, id int64, req CreateGradeLevelRequest) (*models.GradeLevel, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grade level not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade level")
	}

	level := &models.GradeLevel{ID: id, Name: req.Name, Description: req.Description}
	if err := s.repo.Update(ctx, level); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update grade level")
	}
	return level, nil
}

// Delete removes a grade level after confirming it exists.
func (s *GradeLevelService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "grade level not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade level")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete grade level")
	}
	return nil
}
