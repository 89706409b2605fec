package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-api/internal/models"
	appErrors "github.com/noah-isme/school-api/pkg/errors"
)

type mockStudentRepo struct {
	students  map[int64]models.Student
	bySection map[int64][]models.StudentWithUser
	byTeacher map[string][]models.TeacherRosterEntry
	created   *models.Student
	deleted   []int64
}

func (m *mockStudentRepo) List(ctx context.Context) ([]models.Student, error) {
	out := make([]models.Student, 0, len(m.students))
	for _, s := range m.students {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockStudentRepo) FindByID(ctx context.Context, id int64) (*models.Student, error) {
	if s, ok := m.students[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockStudentRepo) ListBySection(ctx context.Context, sectionID int64) ([]models.StudentWithUser, error) {
	return m.bySection[sectionID], nil
}

func (m *mockStudentRepo) ListByTeacher(ctx context.Context, teacherCode string) ([]models.TeacherRosterEntry, error) {
	return m.byTeacher[teacherCode], nil
}

func (m *mockStudentRepo) Create(ctx context.Context, student *models.Student) error {
	student.ID = 20
	m.created = student
	return nil
}

func (m *mockStudentRepo) Update(ctx context.Context, student *models.Student) error { return nil }

func (m *mockStudentRepo) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

type mockUserReader struct {
	users map[int64]models.User
}

func (m *mockUserReader) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return &u, nil
	}
	return nil, sql.ErrNoRows
}

type mockGradeLevelReader struct {
	levels map[int64]models.GradeLevel
}

func (m *mockGradeLevelReader) FindByID(ctx context.Context, id int64) (*models.GradeLevel, error) {
	if gl, ok := m.levels[id]; ok {
		return &gl, nil
	}
	return nil, sql.ErrNoRows
}

type mockSectionReader struct {
	sections map[int64]models.SectionWithGradeLevel
}

func (m *mockSectionReader) FindByID(ctx context.Context, id int64) (*models.SectionWithGradeLevel, error) {
	if s, ok := m.sections[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func newStudentTestService(repo *mockStudentRepo) *StudentService {
	users := &mockUserReader{users: map[int64]models.User{10: {ID: 10, Name: "Alice Reyes"}}}
	levels := &mockGradeLevelReader{levels: map[int64]models.GradeLevel{2: {ID: 2, Name: "Grade 7"}}}
	sections := &mockSectionReader{sections: map[int64]models.SectionWithGradeLevel{3: {Section: models.Section{ID: 3, Name: "Section A"}}}}
	return NewStudentService(repo, users, levels, sections, nil, nil)
}

func validStudentRequest() CreateStudentRequest {
	return CreateStudentRequest{Name: "Alice Reyes", StudentID: "S-001", UserID: 10, GradeLevelID: 2, SectionID: 3}
}

func TestStudentServiceCreateSuccess(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := newStudentTestService(repo)

	student, err := svc.Create(context.Background(), validStudentRequest())
	require.NoError(t, err)
	assert.Equal(t, int64(20), student.ID)
	assert.Equal(t, "S-001", repo.created.StudentID)
}

func TestStudentServiceCreateMissingSection(t *testing.T) {
	repo := &mockStudentRepo{}
	svc := newStudentTestService(repo)

	req := validStudentRequest()
	req.SectionID = 99
	_, err := svc.Create(context.Background(), req)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "section not found", appErr.Message)
	assert.Nil(t, repo.created)
}

func TestStudentServiceListBySectionEmptyIsNotFound(t *testing.T) {
	svc := newStudentTestService(&mockStudentRepo{bySection: map[int64][]models.StudentWithUser{}})

	_, err := svc.ListBySection(context.Background(), 3)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestStudentServiceListByTeacherEmptyIsNotFound(t *testing.T) {
	svc := newStudentTestService(&mockStudentRepo{byTeacher: map[string][]models.TeacherRosterEntry{}})

	_, err := svc.ListByTeacher(context.Background(), "T-100")
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestStudentServiceListByTeacherRoster(t *testing.T) {
	repo := &mockStudentRepo{byTeacher: map[string][]models.TeacherRosterEntry{
		"T-100": {
			{StudentID: 1, StudentCode: "S-001", StudentName: "Alice Reyes", GradeLevel: "Grade 7", Section: "Section A"},
		},
	}}
	svc := newStudentTestService(repo)

	roster, err := svc.ListByTeacher(context.Background(), "T-100")
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "Section A", roster[0].Section)
}

func TestStudentServiceDeleteMissing(t *testing.T) {
	svc := newStudentTestService(&mockStudentRepo{students: map[int64]models.Student{}})

	err := svc.Delete(context.Background(), 99)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}
