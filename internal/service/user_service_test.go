package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/school-api/internal/models"
	appErrors "github.com/noah-isme/school-api/pkg/errors"
)

type mockUserRepo struct {
	users   map[int64]models.User
	byEmail map[string]models.User
	created *models.User
	updated *models.User
	deleted []int64
}

func (m *mockUserRepo) List(ctx context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepo) FindByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := m.users[id]; ok {
		return &u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := m.byEmail[email]; ok {
		return &u, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockUserRepo) ExistsByEmail(ctx context.Context, email string, excludeID int64) (bool, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return false, nil
	}
	if excludeID > 0 && u.ID == excludeID {
		return false, nil
	}
	return true, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	user.ID = 100
	m.created = user
	return nil
}

func (m *mockUserRepo) Update(ctx context.Context, user *models.User) error {
	m.updated = user
	return nil
}

func (m *mockUserRepo) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	return nil
}

func TestUserServiceSignupHashesPassword(t *testing.T) {
	repo := &mockUserRepo{byEmail: map[string]models.User{}}
	svc := NewUserService(repo, nil, nil)

	user, err := svc.Signup(context.Background(), SignupRequest{
		Name:     "Alice Reyes",
		Email:    "alice@school.test",
		Password: "secret123",
		Role:     "student",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), user.ID)
	assert.Equal(t, models.RoleStudent, user.Role)
	assert.NotEqual(t, "secret123", repo.created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created.Password), []byte("secret123")))
}

func TestUserServiceSignupConflict(t *testing.T) {
	repo := &mockUserRepo{byEmail: map[string]models.User{
		"taken@school.test": {ID: 1, Email: "taken@school.test"},
	}}
	svc := NewUserService(repo, nil, nil)

	_, err := svc.Signup(context.Background(), SignupRequest{
		Name:     "Bob Santos",
		Email:    "taken@school.test",
		Password: "secret123",
		Role:     "teacher",
	})
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusConflict, appErr.Status)
	assert.Nil(t, repo.created)
}

func TestUserServiceSignupValidation(t *testing.T) {
	svc := NewUserService(&mockUserRepo{}, nil, nil)

	_, err := svc.Signup(context.Background(), SignupRequest{
		Name:     "Al",
		Email:    "not-an-email",
		Password: "123",
		Role:     "principal",
	})
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
	assert.Len(t, appErr.Fields, 4)
}

func TestUserServiceUpdateAllowsOwnEmail(t *testing.T) {
	repo := &mockUserRepo{
		users: map[int64]models.User{
			5: {ID: 5, Name: "Alice", Email: "alice@school.test", Role: models.RoleStudent},
		},
		byEmail: map[string]models.User{
			"alice@school.test": {ID: 5, Email: "alice@school.test"},
		},
	}
	svc := NewUserService(repo, nil, nil)

	user, err := svc.Update(context.Background(), 5, SignupRequest{
		Name:     "Alice Reyes",
		Email:    "alice@school.test",
		Password: "secret123",
		Role:     "student",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice Reyes", user.Name)
	require.NotNil(t, repo.updated)
}

func TestUserServiceDeleteMissing(t *testing.T) {
	svc := NewUserService(&mockUserRepo{users: map[int64]models.User{}}, nil, nil)

	err := svc.Delete(context.Background(), 99)
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}

func TestUserServiceGetByEmailNotFound(t *testing.T) {
	svc := NewUserService(&mockUserRepo{byEmail: map[string]models.User{}}, nil, nil)

	_, err := svc.GetByEmail(context.Background(), SearchByEmailRequest{Email: "ghost@school.test"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
}
