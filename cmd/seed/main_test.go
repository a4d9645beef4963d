package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "herohome/internal/errors"
	"herohome/internal/model"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) (*model.InsertResult, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InsertResult), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, id primitive.ObjectID, role string) (*model.User, error) {
	args := m.Called(ctx, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type recordingCache struct {
	deleted []string
}

func (c *recordingCache) Delete(_ context.Context, key string) error {
	c.deleted = append(c.deleted, key)
	return nil
}

func TestSeedAdmin_PromotesAndDropsCachedRole(t *testing.T) {
	user := &model.User{ID: primitive.NewObjectID(), Email: "boss@example.com", Role: model.RoleUser}
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, user.Email).Return(user, nil)
	users.On("UpdateRole", mock.Anything, user.ID, model.RoleAdmin).Return(user, nil)
	roles := &recordingCache{}

	require.NoError(t, seedAdmin(context.Background(), users, roles, user.Email, ""))
	assert.Equal(t, []string{"role:boss@example.com"}, roles.deleted)
	users.AssertExpectations(t)
}

func TestSeedAdmin_CreatesWithPassword(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "new@example.com").Return(nil, apperrors.ErrUserNotFound)
	users.On("Create", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "new@example.com" && u.Role == model.RoleAdmin && u.PasswordHash != "" && u.PasswordHash != "secret"
	})).Return(&model.InsertResult{Acknowledged: true}, nil)
	roles := &recordingCache{}

	require.NoError(t, seedAdmin(context.Background(), users, roles, "new@example.com", "secret"))
	assert.Equal(t, []string{"role:new@example.com"}, roles.deleted)
	users.AssertExpectations(t)
}

func TestSeedAdmin_AlreadyAdminIsNoop(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByEmail", mock.Anything, "a@example.com").
		Return(&model.User{ID: primitive.NewObjectID(), Email: "a@example.com", Role: model.RoleAdmin}, nil)

	require.NoError(t, seedAdmin(context.Background(), users, &recordingCache{}, "a@example.com", ""))
	users.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestLoadServices_ComputesAggregates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "services.json")
	require.NoError(t, os.WriteFile(path, []byte(`[
		{"title": "Deep clean", "provider": {"email": "p@example.com"},
		 "averageRating": 1, "reviews": [{"rating": 5, "date": "2025-01-20"}, {"rating": 3}]},
		{"title": "Plumbing"}
	]`), 0o600))

	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	services, err := loadServices(path, now)
	require.NoError(t, err)
	require.Len(t, services, 2)

	assert.Equal(t, 4.0, services[0].AverageRating)
	assert.Equal(t, 2, services[0].ReviewCount)
	assert.Equal(t, now, services[0].Reviews[1].Date)
	assert.Equal(t, "p@example.com", services[0].Provider.Email)
	assert.Equal(t, 0, services[1].ReviewCount)
}

func TestLoadServices_RequiresTitle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "services.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"category": "x"}]`), 0o600))

	_, err := loadServices(path, time.Now())
	assert.Error(t, err)
}
