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

type teacherSubjectRepository interface {
	ListByTeacher(ctx context.Context, teacherID int64) ([]models.TeacherSubjectDetail, error)
	Exists(ctx context.Context, teacherID, subjectID int64) (bool, error)
	Create(ctx context.Context, assignment *models.TeacherSubject) error
	Delete(ctx context.Context, teacherID, subjectID int64) error
}

type subjectReader interface {
	FindByID(ctx context.Context, id int64) (*models.Subject, error)
}

// AssignSubjectRequest is the payload assigning a subject to a teacher
// within a section.
type AssignSubjectRequest struct {
	TeacherID int64 `json:"teacher_id" validate:"required,gt=0"`
	SubjectID int64 `json:"subject_id" validate:"required,gt=0"`
	SectionID int64 `json:"section_id" validate:"required,gt=0"`
}

// TeacherSubjectService manages subject assignments. Preconditions run in a
// fixed order before every insert: teacher exists, subject exists, the
// (teacher, subject) pair is unassigned. The checks and the insert are
// separate statements, so a concurrent delete between them can still leave a
// dangling reference.
type TeacherSubjectService struct {
	assignments teacherSubjectRepository
	teachers    teacherRepository
	subjects    subjectReader
	validator   *validation.Validator
	logger      *zap.Logger
}

// NewTeacherSubjectService constructs a TeacherSubjectService.
func NewTeacherSubjectService(assignments teacherSubjectRepository, teachers teacherRepository, subjects subjectReader, validate *validation.Validator, logger *zap.Logger) *TeacherSubjectService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherSubjectService{
		assignments: assignments,
		teachers:    teachers,
		subjects:    subjects,
		validator:   validate,
		logger:      logger,
	}
}

// ListByTeacher returns the subject assignments owned by the teacher.
func (s *TeacherSubjectService) ListByTeacher(ctx context.Context, teacherID int64) ([]models.TeacherSubjectDetail, error) {
	if _, err := s.teachers.FindByID(ctx, teacherID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	details, err := s.assignments.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teacher subjects")
	}
	return details, nil
}

// Assign creates a new teacher-subject-section assignment.
func (s *TeacherSubjectService) Assign(ctx context.Context, req AssignSubjectRequest) (*models.TeacherSubject, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	if _, err := s.teachers.FindByID(ctx, req.TeacherID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}

	if _, err := s.subjects.FindByID(ctx, req.SubjectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}

	exists, err := s.assignments.Exists(ctx, req.TeacherID, req.SubjectID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check assignment uniqueness")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "subject is already assigned to this teacher")
	}

	assignment := &models.TeacherSubject{
		TeacherID: req.TeacherID,
		SubjectID: req.SubjectID,
		SectionID: req.SectionID,
	}
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}
	return assignment, nil
}

// Remove deletes the assignment for a (teacher, subject) pair.
func (s *TeacherSubjectService) Remove(ctx context.Context, teacherID, subjectID int64) error {
	if err := s.assignments.Delete(ctx, teacherID, subjectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignment")
	}
	return nil
}
