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

type studentRepository interface {
	List(ctx context.Context) ([]models.Student, error)
	FindByID(ctx context.Context, id int64) (*models.Student, error)
	ListBySection(ctx context.Context, sectionID int64) ([]models.StudentWithUser, error)
	ListByTeacher(ctx context.Context, teacherCode string) ([]models.TeacherRosterEntry, error)
	Create(ctx context.Context, student *models.Student) error
	Update(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) error
}

type gradeLevelReader interface {
	FindByID(ctx context.Context, id int64) (*models.GradeLevel, error)
}

type sectionReader interface {
	FindByID(ctx context.Context, id int64) (*models.SectionWithGradeLevel, error)
}

// CreateStudentRequest is the payload for creating or replacing a student.
type CreateStudentRequest struct {
	Name         string `json:"name" validate:"required,min=3"`
	StudentID    string `json:"student_id" validate:"required,min=3"`
	UserID       int64  `json:"user_id" validate:"required,gt=0"`
	GradeLevelID int64  `json:"grade_level_id" validate:"required,gt=0"`
	SectionID    int64  `json:"section_id" validate:"required,gt=0"`
}

// StudentService orchestrates student records.
type StudentService struct {
	repo        studentRepository
	users       userReader
	gradeLevels gradeLevelReader
	sections    sectionReader
	validator   *validation.Validator
	logger      *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(repo studentRepository, users userReader, gradeLevels gradeLevelReader, sections sectionReader, validate *validation.Validator, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{
		repo:        repo,
		users:       users,
		gradeLevels: gradeLevels,
		sections:    sections,
		validator:   validate,
		logger:      logger,
	}
}

// List returns every student.
func (s *StudentService) List(ctx context.Context) ([]models.Student, error) {
	students, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	return students, nil
}

// Get returns a student by id.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}

// ListBySection returns the students in a section. An empty roster is
// reported as not-found: the listing doubles as the section existence check.
func (s *StudentService) ListBySection(ctx context.Context, sectionID int64) ([]models.StudentWithUser, error) {
	students, err := s.repo.ListBySection(ctx, sectionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students by section")
	}
	if len(students) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no students found for this section")
	}
	return students, nil
}

// ListByTeacher returns the roster visible to a teacher, looked up by the
// teacher business key. An empty roster is reported as not-found.
func (s *StudentService) ListByTeacher(ctx context.Context, teacherCode string) ([]models.TeacherRosterEntry, error) {
	roster, err := s.repo.ListByTeacher(ctx, teacherCode)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students by teacher")
	}
	if len(roster) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no students found for this teacher")
	}
	return roster, nil
}

// Create registers a student after confirming every referenced row exists.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if err := s.ensureReferences(ctx, req); err != nil {
		return nil, err
	}

	student := &models.Student{
		Name:         req.Name,
		StudentID:    req.StudentID,
		UserID:       req.UserID,
		GradeLevelID: req.GradeLevelID,
		SectionID:    req.SectionID,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}
	return student, nil
}

// Update fully replaces a student record.
func (s *StudentService) Update(ctx context.Context, id int64, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if err := s.ensureReferences(ctx, req); err != nil {
		return nil, err
	}

	student := &models.Student{
		ID:           id,
		Name:         req.Name,
		StudentID:    req.StudentID,
		UserID:       req.UserID,
		GradeLevelID: req.GradeLevelID,
		SectionID:    req.SectionID,
	}
	if err := s.repo.Update(ctx, student); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update student")
	}
	return student, nil
}

// Delete removes a student after confirming it exists.
func (s *StudentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete student")
	}
	return nil
}

func (s *StudentService) ensureReferences(ctx context.Context, req CreateStudentRequest) error {
	if _, err := s.users.FindByID(ctx, req.UserID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	if _, err := s.gradeLevels.FindByID(ctx, req.GradeLevelID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "grade level not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade level")
	}
	if _, err := s.sections.FindByID(ctx, req.SectionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "section not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load section")
	}
	return nil
}
