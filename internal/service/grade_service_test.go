package service

import (
	"context"
	"database/sql"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-api/internal/models"
	appErrors "github.com/noah-isme/school-api/pkg/errors"
)

type mockGradeRepo struct {
	grades    map[int64]models.GradeDetail
	byStudent map[int64][]models.GradeDetail
	byTeacher map[int64][]models.GradeDetail
	created   *models.Grade
	updated   *models.Grade
	deleted   []int64
	listCalls int
}

func (m *mockGradeRepo) List(ctx context.Context) ([]models.GradeDetail, error) {
	m.listCalls++
	out := make([]models.GradeDetail, 0, len(m.grades))
	for _, g := range m.grades {
		out = append(out, g)
	}
	return out, nil
}

func (m *mockGradeRepo) FindByID(ctx context.Context, id int64) (*models.GradeDetail, error) {
	if g, ok := m.grades[id]; ok {
		return &g, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockGradeRepo) ListByStudent(ctx context.Context, studentID int64) ([]models.GradeDetail, error) {
	return m.byStudent[studentID], nil
}

func (m *mockGradeRepo) ListByTeacher(ctx context.Context, teacherID int64) ([]models.GradeDetail, error) {
	return m.byTeacher[teacherID], nil
}

func (m *mockGradeRepo) Create(ctx context.Context, grade *models.Grade) error {
	grade.ID = 30
	m.created = grade
	return nil
}

func (m *mockGradeRepo) Update(ctx context.Context, grade *models.Grade) error {
	m.updated = grade
	return nil
}

func (m *mockGradeRepo) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type mockStudentReader struct {
	students map[int64]models.Student
}

func (m *mockStudentReader) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	if s, ok := m.students[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

type mockCache struct {
	store       map[string][]models.GradeDetail
	invalidated []string
}

func (m *mockCache) Get(ctx context.Context, key string, dest interface{}) error {
	cached, ok := m.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	out, ok := dest.(*[]models.GradeDetail)
	if !ok {
		return appErrors.ErrCacheMiss
	}
	*out = cached
	return nil
}

func (m *mockCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	grades, ok := value.([]models.GradeDetail)
	if !ok {
		return nil
	}
	if m.store == nil {
		m.store = map[string][]models.GradeDetail{}
	}
	m.store[key] = grades
	return nil
}

func (m *mockCache) DeleteByPattern(ctx context.Context, pattern string) error {
	m.invalidated = append(m.invalidated, pattern)
	m.store = map[string][]models.GradeDetail{}
	return nil
}

func gradeDetail(id int64, student, subject, teacher string) models.GradeDetail {
	return models.GradeDetail{
		Grade: models.Grade{
			ID: id, StudentID: 4, SubjectID: 5, TeacherID: 6,
			Quarter1: 88.5, Quarter2: 90, Quarter3: 85, Quarter4: 92,
			FinalGrade: 88.9, Remarks: "Passed",
		},
		StudentName: student,
		SubjectName: subject,
		TeacherName: teacher,
	}
}

func validGradeRequest() CreateGradeRequest {
	return CreateGradeRequest{
		StudentID: 4, SubjectID: 5, TeacherID: 6,
		Quarter1: 88.5, Quarter2: 90, Quarter3: 85, Quarter4: 92,
		FinalGrade: 88.9, Remarks: "Passed",
	}
}

func newGradeService(repo *mockGradeRepo, cacheStore cacheStore) *GradeService {
	students := &mockStudentReader{students: map[int64]models.Student{4: {ID: 4, Name: "Alice Reyes"}}}
	subjects := &mockSubjectReader{subjects: map[int64]models.Subject{5: {ID: 5, Code: "MATH101"}}}
	teachers := &mockTeacherRepo{teachers: map[int64]models.TeacherWithUser{6: {Teacher: models.Teacher{ID: 6}}}}
	return NewGradeService(repo, students, subjects, teachers, cacheStore, time.Minute, nil, nil, nil)
}

func TestGradeServiceListServesFromCache(t *testing.T) {
	repo := &mockGradeRepo{grades: map[int64]models.GradeDetail{
		1: gradeDetail(1, "Alice Reyes", "Mathematics", "Mr. Cruz"),
	}}
	cacheStore := &mockCache{}
	svc := newGradeService(repo, cacheStore)

	first, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, repo.listCalls)

	// second call must not touch the repository
	second, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Equal(t, 1, repo.listCalls)
}

func TestGradeServiceCreateInvalidatesCache(t *testing.T) {
	repo := &mockGradeRepo{}
	cacheStore := &mockCache{store: map[string][]models.GradeDetail{
		gradeListCacheKey: {gradeDetail(1, "Alice Reyes", "Mathematics", "Mr. Cruz")},
	}}
	svc := newGradeService(repo, cacheStore)

	_, err := svc.Create(context.Background(), validGradeRequest())
	require.NoError(t, err)
	assert.Equal(t, []string{"grades:*"}, cacheStore.invalidated)
}

func TestGradeServiceCreateMissingStudent(t *testing.T) {
	repo := &mockGradeRepo{}
	svc := newGradeService(repo, nil)

	req := validGradeRequest()
	req.StudentID = 99
	_, err := svc.Create(context.Background(), req)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "student not found", appErr.Message)
	assert.Nil(t, repo.created)
}

func TestGradeServiceListByStudentEmptyIsNotFound(t *testing.T) {
	svc := newGradeService(&mockGradeRepo{byStudent: map[int64][]models.GradeDetail{}}, nil)

	_, err := svc.ListByStudent(context.Background(), 4)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestGradeServiceUpdateMissingGrade(t *testing.T) {
	svc := newGradeService(&mockGradeRepo{grades: map[int64]models.GradeDetail{}}, nil)

	_, err := svc.Update(context.Background(), 77, validGradeRequest())
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestGradeServiceStudentReportCSV(t *testing.T) {
	repo := &mockGradeRepo{byStudent: map[int64][]models.GradeDetail{
		4: {gradeDetail(1, "Alice Reyes", "Mathematics", "Mr. Cruz")},
	}}
	svc := newGradeService(repo, nil)

	payload, contentType, filename, err := svc.StudentReport(context.Background(), 4, "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)
	assert.Equal(t, "report-card-4.csv", filename)

	body := string(payload)
	assert.True(t, strings.HasPrefix(body, "Subject,Teacher,Q1,Q2,Q3,Q4,Final,Remarks"))
	assert.Contains(t, body, "Mathematics,Mr. Cruz,88.50,90.00,85.00,92.00,88.90,Passed")
}

func TestGradeServiceStudentReportBadFormat(t *testing.T) {
	svc := newGradeService(&mockGradeRepo{}, nil)

	_, _, _, err := svc.StudentReport(context.Background(), 4, "xlsx")
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, "format", appErr.Fields[0].Field)
}
