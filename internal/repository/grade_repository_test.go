package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-api/internal/models"
)

var gradeDetailTestColumns = []string{
	"id", "student_id", "subject_id", "teacher_id",
	"quarter1", "quarter2", "quarter3", "quarter4",
	"final_grade", "remarks", "created_at", "updated_at",
	"student_name", "subject_name", "teacher_name",
}

func TestGradeRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(gradeDetailTestColumns).
		AddRow(1, 4, 5, 6, 88.5, 90.0, 85.0, 92.0, 88.9, "Passed", now, now, "Alice", "Mathematics", "Mr. Cruz")
	mock.ExpectQuery("FROM grades g").
		WithArgs(int64(4)).
		WillReturnRows(rows)

	grades, err := repo.ListByStudent(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.Equal(t, "Alice", grades[0].StudentName)
	assert.Equal(t, "Mathematics", grades[0].SubjectName)
	assert.Equal(t, "Mr. Cruz", grades[0].TeacherName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectQuery("FROM grades g").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeRepositoryCreateReturnsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectQuery("INSERT INTO grades").
		WithArgs(int64(4), int64(5), int64(6), 88.5, 90.0, 85.0, 92.0, 88.9, "Passed").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	grade := &models.Grade{
		StudentID: 4, SubjectID: 5, TeacherID: 6,
		Quarter1: 88.5, Quarter2: 90.0, Quarter3: 85.0, Quarter4: 92.0,
		FinalGrade: 88.9, Remarks: "Passed",
	}
	require.NoError(t, repo.Create(context.Background(), grade))
	assert.Equal(t, int64(11), grade.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGradeRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectExec("UPDATE grades").
		WithArgs(int64(4), int64(5), int64(6), 80.0, 81.0, 82.0, 83.0, 81.5, "Passed", int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	grade := &models.Grade{
		ID: 11, StudentID: 4, SubjectID: 5, TeacherID: 6,
		Quarter1: 80.0, Quarter2: 81.0, Quarter3: 82.0, Quarter4: 83.0,
		FinalGrade: 81.5, Remarks: "Passed",
	}
	require.NoError(t, repo.Update(context.Background(), grade))
	assert.NoError(t, mock.ExpectationsWereMet())
}
