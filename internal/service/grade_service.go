package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/school-api/internal/models"
	appErrors "github.com/noah-isme/school-api/pkg/errors"
	"github.com/noah-isme/school-api/pkg/export"
	"github.com/noah-isme/school-api/pkg/validation"
)

type gradeRepository interface {
	List(ctx context.Context) ([]models.GradeDetail, error)
	FindByID(ctx context.Context, id int64) (*models.GradeDetail, error)
	ListByStudent(ctx context.Context, studentID int64) ([]models.GradeDetail, error)
	ListByTeacher(ctx context.Context, teacherID int64) ([]models.GradeDetail, error)
	Create(ctx context.Context, grade *models.Grade) error
	Update(ctx context.Context, grade *models.Grade) error
	Delete(ctx context.Context, id int64) error
}

type studentReader interface {
	FindByID(ctx context.Context, id int64) (*models.Student, error)
}

type teacherReader interface {
	FindByID(ctx context.Context, id int64) (*models.TeacherWithUser, error)
}

type cacheStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

const gradeListCacheKey = "grades:list"

// CreateGradeRequest is the payload recording or replacing a grade.
type CreateGradeRequest struct {
	StudentID  int64   `json:"student_id" validate:"required,gt=0"`
	SubjectID  int64   `json:"subject_id" validate:"required,gt=0"`
	TeacherID  int64   `json:"teacher_id" validate:"required,gt=0"`
	Quarter1   float64 `json:"quarter1" validate:"required,gt=0"`
	Quarter2   float64 `json:"quarter2" validate:"required,gt=0"`
	Quarter3   float64 `json:"quarter3" validate:"required,gt=0"`
	Quarter4   float64 `json:"quarter4" validate:"required,gt=0"`
	FinalGrade float64 `json:"final_grade" validate:"required,gt=0"`
	Remarks    string  `json:"remarks" validate:"required,min=3"`
}

// GradeService orchestrates grade records, their reference checks, optional
// list caching and report exports.
type GradeService struct {
	repo      gradeRepository
	students  studentReader
	subjects  subjectReader
	teachers  teacherReader
	cache     cacheStore
	cacheTTL  time.Duration
	metrics   *MetricsService
	validator *validation.Validator
	logger    *zap.Logger
}

// NewGradeService constructs a GradeService. Pass a nil cache to disable
// list caching and a nil metrics service to skip cache instrumentation.
func NewGradeService(repo gradeRepository, students studentReader, subjects subjectReader, teachers teacherReader, cache cacheStore, cacheTTL time.Duration, metrics *MetricsService, validate *validation.Validator, logger *zap.Logger) *GradeService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{
		repo:      repo,
		students:  students,
		subjects:  subjects,
		teachers:  teachers,
		cache:     cache,
		cacheTTL:  cacheTTL,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
	}
}

// List returns every grade with display names, served from cache when the
// cache is enabled and warm.
func (s *GradeService) List(ctx context.Context) ([]models.GradeDetail, error) {
	if s.cache != nil {
		var cached []models.GradeDetail
		if err := s.cache.Get(ctx, gradeListCacheKey, &cached); err == nil {
			s.metrics.RecordCacheOperation(true)
			return cached, nil
		}
		s.metrics.RecordCacheOperation(false)
	}

	grades, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, gradeListCacheKey, grades, s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache grade list", zap.Error(err))
		}
	}
	return grades, nil
}

// Get returns one grade with display names.
func (s *GradeService) Get(ctx context.Context, id int64) (*models.GradeDetail, error) {
	grade, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grade not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade")
	}
	return grade, nil
}

// ListByStudent returns a student's grades; empty is not-found.
func (s *GradeService) ListByStudent(ctx context.Context, studentID int64) ([]models.GradeDetail, error) {
	grades, err := s.repo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades by student")
	}
	if len(grades) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "grades not found for this student")
	}
	return grades, nil
}

// ListByTeacher returns the grades a teacher recorded; empty is not-found.
func (s *GradeService) ListByTeacher(ctx context.Context, teacherID int64) ([]models.GradeDetail, error) {
	grades, err := s.repo.ListByTeacher(ctx, teacherID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades by teacher")
	}
	if len(grades) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "grades not found for this teacher")
	}
	return grades, nil
}

// Create records a grade after confirming every referenced row exists.
func (s *GradeService) Create(ctx context.Context, req CreateGradeRequest) (*models.Grade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}
	if err := s.ensureReferences(ctx, req); err != nil {
		return nil, err
	}

	grade := &models.Grade{
		StudentID:  req.StudentID,
		SubjectID:  req.SubjectID,
		TeacherID:  req.TeacherID,
		Quarter1:   req.Quarter1,
		Quarter2:   req.Quarter2,
		Quarter3:   req.Quarter3,
		Quarter4:   req.Quarter4,
		FinalGrade: req.FinalGrade,
		Remarks:    req.Remarks,
	}
	if err := s.repo.Create(ctx, grade); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create grade")
	}
	s.invalidateCache(ctx)
	return grade, nil
}

// Update fully replaces a grade.
func (s *GradeService) Update(ctx context.Context, id int64, req CreateGradeRequest) (*models.Grade, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "grade not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade")
	}
	if err := s.ensureReferences(ctx, req); err != nil {
		return nil, err
	}

	grade := &models.Grade{
		ID:         id,
		StudentID:  req.StudentID,
		SubjectID:  req.SubjectID,
		TeacherID:  req.TeacherID,
		Quarter1:   req.Quarter1,
		Quarter2:   req.Quarter2,
		Quarter3:   req.Quarter3,
		Quarter4:   req.Quarter4,
		FinalGrade: req.FinalGrade,
		Remarks:    req.Remarks,
	}
	if err := s.repo.Update(ctx, grade); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update grade")
	}
	s.invalidateCache(ctx)
	return grade, nil
}

// Delete removes a grade after confirming it exists.
func (s *GradeService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "grade not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grade")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete grade")
	}
	s.invalidateCache(ctx)
	return nil
}

// StudentReport renders a student's grades as a CSV or PDF report card.
// It returns the document bytes together with the content type and a
// suggested filename.
func (s *GradeService) StudentReport(ctx context.Context, studentID int64, format string) ([]byte, string, string, error) {
	switch format {
	case "", "csv", "pdf":
	default:
		return nil, "", "", appErrors.Validation([]appErrors.FieldError{
			{Field: "format", Message: "Format must be one of: csv, pdf"},
		})
	}

	grades, err := s.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, "", "", err
	}

	dataset := export.Dataset{
		Headers: []string{"Subject", "Teacher", "Q1", "Q2", "Q3", "Q4", "Final", "Remarks"},
	}
	for _, g := range grades {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Subject": g.SubjectName,
			"Teacher": g.TeacherName,
			"Q1":      formatScore(g.Quarter1),
			"Q2":      formatScore(g.Quarter2),
			"Q3":      formatScore(g.Quarter3),
			"Q4":      formatScore(g.Quarter4),
			"Final":   formatScore(g.FinalGrade),
			"Remarks": g.Remarks,
		})
	}

	base := fmt.Sprintf("report-card-%d", studentID)
	if format == "pdf" {
		payload, err := export.RenderPDF(dataset, fmt.Sprintf("Report Card - %s", grades[0].StudentName))
		if err != nil {
			return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
		}
		return payload, "application/pdf", base + ".pdf", nil
	}

	payload, err := export.RenderCSV(dataset)
	if err != nil {
		return nil, "", "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
	}
	return payload, "text/csv", base + ".csv", nil
}

func (s *GradeService) ensureReferences(ctx context.Context, req CreateGradeRequest) error {
	if _, err := s.students.FindByID(ctx, req.StudentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if _, err := s.subjects.FindByID(ctx, req.SubjectID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load subject")
	}
	if _, err := s.teachers.FindByID(ctx, req.TeacherID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	return nil
}

func (s *GradeService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, "grades:*"); err != nil {
		s.logger.Warn("failed to invalidate grade cache", zap.Error(err))
	}
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
