package validation

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/school-api/pkg/errors"
)

type samplePayload struct {
	Name         string  `json:"name" validate:"required,min=3"`
	Email        string  `json:"email" validate:"required,email"`
	Role         string  `json:"role" validate:"required,oneof=admin teacher"`
	GradeLevelID int64   `json:"grade_level_id" validate:"gt=0"`
	Score        float64 `json:"score" validate:"max=100"`
}

func TestStructValid(t *testing.T) {
	v := New()
	err := v.Struct(samplePayload{
		Name:         "Alice",
		Email:        "alice@school.test",
		Role:         "teacher",
		GradeLevelID: 1,
		Score:        88.5,
	})
	assert.NoError(t, err)
}

func TestStructCollectsAllFieldErrors(t *testing.T) {
	v := New()
	err := v.Struct(samplePayload{
		Name:  "Al",
		Email: "not-an-email",
		Role:  "student",
		Score: 120,
	})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	require.Equal(t, http.StatusBadRequest, appErr.Status)
	require.Len(t, appErr.Fields, 5)

	byField := map[string]string{}
	for _, fe := range appErr.Fields {
		byField[fe.Field] = fe.Message
	}
	assert.Equal(t, "Name must be at least 3 characters long", byField["name"])
	assert.Equal(t, "Invalid email address", byField["email"])
	assert.Equal(t, "Role must be one of: admin, teacher", byField["role"])
	assert.Equal(t, "Grade Level ID must be a positive number", byField["grade_level_id"])
	assert.Equal(t, "Score must be at most 100", byField["score"])
}

func TestStructReportsJSONNames(t *testing.T) {
	v := New()
	err := v.Struct(struct {
		StudentID int64 `json:"student_id" validate:"required,gt=0"`
	}{})
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, "student_id", appErr.Fields[0].Field)
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Grade Level ID", humanize("grade_level_id"))
	assert.Equal(t, "Name", humanize("name"))
	assert.Equal(t, "ID", humanize("id"))
}
