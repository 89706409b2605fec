package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/school-api/internal/models"
	appErrors "github.com/noah-isme/school-api/pkg/errors"
)

type mockAuthUsers struct {
	byEmail map[string]models.User
}

func (m *mockAuthUsers) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return &u, nil
	}
	return nil, sql.ErrNoRows
}

type mockTeacherProfiles struct {
	byUser map[int64]models.Teacher
}

func (m *mockTeacherProfiles) FindByUserID(ctx context.Context, userID int64) (*models.Teacher, error) {
	if t, ok := m.byUser[userID]; ok {
		return &t, nil
	}
	return nil, sql.ErrNoRows
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func newAuthService(users *mockAuthUsers, teachers *mockTeacherProfiles) *AuthService {
	return NewAuthService(users, teachers, nil, nil, AuthConfig{Secret: "test-secret", Expiration: time.Hour})
}

func TestAuthServiceLoginUnknownEmail(t *testing.T) {
	svc := newAuthService(&mockAuthUsers{byEmail: map[string]models.User{}}, &mockTeacherProfiles{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "ghost@school.test", Password: "secret123"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	users := &mockAuthUsers{byEmail: map[string]models.User{
		"alice@school.test": {ID: 1, Email: "alice@school.test", Password: hashFor(t, "correct123")},
	}}
	svc := newAuthService(users, &mockTeacherProfiles{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "alice@school.test", Password: "wrong1234"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusUnauthorized, appErr.Status)
}

func TestAuthServiceLoginTeacherMergesProfile(t *testing.T) {
	users := &mockAuthUsers{byEmail: map[string]models.User{
		"cruz@school.test": {ID: 2, Name: "Mr. Cruz", Email: "cruz@school.test", Role: models.RoleTeacher, Password: hashFor(t, "secret123")},
	}}
	teachers := &mockTeacherProfiles{byUser: map[int64]models.Teacher{
		2: {ID: 7, TeacherID: "T-100", UserID: 2},
	}}
	svc := newAuthService(users, teachers)

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "cruz@school.test", Password: "secret123"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	require.NotNil(t, res.User.Teacher)
	assert.Equal(t, "T-100", res.User.Teacher.TeacherID)

	claims, err := svc.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(2), claims.UserID)
	require.NotNil(t, claims.Teacher)
	assert.Equal(t, int64(7), claims.Teacher.ID)
}

func TestAuthServiceLoginTeacherWithoutProfile(t *testing.T) {
	users := &mockAuthUsers{byEmail: map[string]models.User{
		"new@school.test": {ID: 3, Role: models.RoleTeacher, Password: hashFor(t, "secret123")},
	}}
	svc := newAuthService(users, &mockTeacherProfiles{byUser: map[int64]models.Teacher{}})

	res, err := svc.Login(context.Background(), models.LoginRequest{Email: "new@school.test", Password: "secret123"})
	require.NoError(t, err)
	assert.Nil(t, res.User.Teacher)
}

func TestAuthServiceValidateTokenRejectsTampering(t *testing.T) {
	svc := newAuthService(&mockAuthUsers{}, &mockTeacherProfiles{})
	token, err := svc.GenerateToken(&models.User{ID: 1, Role: models.RoleAdmin}, nil)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token + "x")
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusForbidden, appErr.Status)
}

func TestAuthServiceValidateTokenExpired(t *testing.T) {
	svc := NewAuthService(&mockAuthUsers{}, &mockTeacherProfiles{}, nil, nil, AuthConfig{Secret: "test-secret", Expiration: time.Nanosecond})

	token, err := svc.GenerateToken(&models.User{ID: 4}, nil)
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)

	_, err = svc.ValidateToken(token)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusForbidden, appErr.Status)
}
