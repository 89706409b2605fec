package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/school-api/internal/models"
	"github.com/noah-isme/school-api/internal/service"
)

type subjectRepoMock struct {
	subjects map[int64]models.Subject
	byCode   map[string]models.Subject
	created  *models.Subject
}

func (m *subjectRepoMock) List(ctx context.Context) ([]models.Subject, error) {
	out := make([]models.Subject, 0, len(m.subjects))
	for _, s := range m.subjects {
		out = append(out, s)
	}
	return out, nil
}

func (m *subjectRepoMock) FindByID(ctx context.Context, id int64) (*models.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *subjectRepoMock) FindByCode(ctx context.Context, code string) (*models.Subject, error) {
	if s, ok := m.byCode[code]; ok {
		return &s, nil
	}
	return nil, sql.ErrNoRows
}

func (m *subjectRepoMock) Create(ctx context.Context, subject *models.Subject) error {
	subject.ID = 5
	m.created = subject
	return nil
}

func (m *subjectRepoMock) Update(ctx context.Context, subject *models.Subject) error { return nil }
func (m *subjectRepoMock) Delete(ctx context.Context, id int64) error                { return nil }

func newSubjectTestHandler(repo *subjectRepoMock) *SubjectHandler {
	return NewSubjectHandler(service.NewSubjectService(repo, nil, nil))
}

func TestSubjectHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newSubjectTestHandler(&subjectRepoMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(map[string]string{
		"name":        "Mathematics",
		"code":        "MATH101",
		"description": "Algebra and geometry",
	})
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/subjects/create", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "Subject created successfully", payload["message"])
}

func TestSubjectHandlerCreateValidationErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &subjectRepoMock{}
	handler := newSubjectTestHandler(repo)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	body, _ := json.Marshal(map[string]string{"name": "Ma"})
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/subjects/create", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var payload struct {
		Errors []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Len(t, payload.Errors, 3)
	assert.Nil(t, repo.created)
}

func TestSubjectHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newSubjectTestHandler(&subjectRepoMock{subjects: map[int64]models.Subject{}})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/subjects/99", nil)
	c.Params = gin.Params{{Key: "id", Value: "99"}}

	handler.Get(c)
	require.Equal(t, http.StatusNotFound, w.Code)

	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "NOT_FOUND", payload.Error.Code)
	assert.Equal(t, "subject not found", payload.Error.Message)
}

func TestSubjectHandlerGetBadID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newSubjectTestHandler(&subjectRepoMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/subjects/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	handler.Get(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubjectHandlerGetByCode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newSubjectTestHandler(&subjectRepoMock{byCode: map[string]models.Subject{
		"MATH101": {ID: 5, Name: "Mathematics", Code: "MATH101"},
	}})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/subjects/by-code/MATH101", nil)
	c.Params = gin.Params{{Key: "code", Value: "MATH101"}}

	handler.GetByCode(c)
	require.Equal(t, http.StatusOK, w.Code)

	var subject models.Subject
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &subject))
	assert.Equal(t, int64(5), subject.ID)
}
