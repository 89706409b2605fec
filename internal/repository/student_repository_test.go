package repository

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-api/internal/models"
)

func TestStudentRepositoryListBySection(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "name", "student_id", "user_id", "grade_level_id", "section_id", "user_name"}).
		AddRow(1, "Alice Reyes", "S-001", 10, 2, 3, "Alice Reyes")
	mock.ExpectQuery("FROM students s").
		WithArgs(int64(3)).
		WillReturnRows(rows)

	students, err := repo.ListBySection(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "S-001", students[0].StudentID)
	assert.Equal(t, "Alice Reyes", students[0].UserName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListByTeacherUsesBusinessKey(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	rows := sqlmock.NewRows([]string{"student_id", "student_code", "student_name", "grade_level", "section"}).
		AddRow(1, "S-001", "Alice Reyes", "Grade 7", "Section A").
		AddRow(2, "S-002", "Ben Santos", "Grade 7", "Section A")
	mock.ExpectQuery("FROM teachers t").
		WithArgs("T-100").
		WillReturnRows(rows)

	roster, err := repo.ListByTeacher(context.Background(), "T-100")
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "S-002", roster[1].StudentCode)
	assert.Equal(t, "Section A", roster[1].Section)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreateReturnsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery("INSERT INTO students").
		WithArgs("Alice Reyes", "S-001", int64(10), int64(2), int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	student := &models.Student{Name: "Alice Reyes", StudentID: "S-001", UserID: 10, GradeLevelID: 2, SectionID: 3}
	require.NoError(t, repo.Create(context.Background(), student))
	assert.Equal(t, int64(7), student.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
