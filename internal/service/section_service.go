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

type sectionRepository interface {
	List(ctx context.Context) ([]models.SectionWithGradeLevel, error)
	FindByID(ctx context.Context, id int64) (*models.SectionWithGradeLevel, error)
	ListByGradeLevel(ctx context.Context, gradeLevelID int64) ([]models.Section, error)
	Create(ctx context.Context, section *models.Section) error
	Update(ctx context.Context, section *models.Section) error
	Delete(ctx context.Context, id int64) error
}

// CreateSectionRequest is the payload for creating or replacing a section.
type CreateSectionRequest struct {
	Name         string `json:"name" validate:"required,min=3"`
	GradeLevelID int64  `json:"grade_level_id" validate:"required,gt=0"`
}

// SectionService orchestrates section management.
type SectionService struct {
	repo        sectionRepository
	gradeLevels gradeLevelReader
	validator   *validation.Validator
	logger      *zap.Logger
}

// NewSectionService constructs a SectionService.
func NewSectionService(repo sectionRepository, gradeLevels gradeLevelReader, validate *validation.Validator, logger *zap.Logger) *SectionService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SectionService{repo: repo, gradeLevels: gradeLevels, validator: validate, logger: logger}
}

// List returns all sections with their grade level name.
func (s *SectionService) List(ctx context.Context) ([]models.SectionWithGradeLevel, error) {
	sections, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sections")
	}
	return sections, nil
}

// Get returns one section with its grade level name.
func (s *SectionService) Get(ctx context.Context, id int64) (*models.SectionWithGradeLevel, error) {
	section, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load section")
	}
	return section, nil
}

// ListByGradeLevel returns a grade level's sections; empty is not-found.
func (s *SectionService) ListByGradeLevel(ctx context.Context, gradeLevelID int64) ([]models.Section, error) {
	sections, err := s.repo.ListByGradeLevel(ctx, gradeLevelID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sections by grade level")
	}
	if len(sections) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no sections found for this grade level")
	}
	return sections, nil
}

// Create registers a section after confirming its grade level exists.
func (s *SectionService) Create(ctx context.Context, req CreateSectionRequest) (*models.Section, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if err := s.ensureGradeLevelExists(ctx, req.GradeLevelID); err != nil {
		return nil, err
	}

	section := &models.Section{Name: req.Name, GradeLevelID: req.GradeLevelID}
	if err := s.repo.Create(ctx, section); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create section")
	}
	return section, nil
}

// Update fully replaces a section.
func (s *SectionService) Update(ctx context.Context, id int64, req CreateSectionRequest) (*models.Section, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "section not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load section")
	}
	if err := s.ensureGradeLevelExists(ctx, req.GradeLevelID); err != nil {
		return nil, err
	}

	section := &models.Section{ID: id, Name: req.Name, GradeLevelID: req.GradeLevelID}
	if err := s.repo.Update(ctx, section); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update section")
	}
	return section, nil
}

// Delete removes a section after confirming it exists.
func (s *SectionService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "section not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load section")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete section")
	}
	return nil
}

func (s *SectionService) ensureGradeLevelExists(ctx context.Context, gradeLevelID int64) error {
	if _, err := s.gradeLevels.FindByID(ctx, gradeLevelID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "grade level not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade level")
	}
	return nil
}
