package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"herohome/internal/auth"
	apperrors "herohome/internal/errors"
	"herohome/internal/model"
)

func TestAuthService_Login(t *testing.T) {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("password123"), 10)
	userID := primitive.NewObjectID()

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository, *MockTokenStore)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "admin@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "admin@example.com").Return(&model.User{
					ID:           userID,
					Email:        "admin@example.com",
					Role:         model.RoleAdmin,
					PasswordHash: string(hashedPassword),
				}, nil)
				mToken.On("StoreRefreshToken", mock.Anything, mock.Anything, userID.Hex(), "admin@example.com", auth.RefreshTokenExpiry).Return(nil)
			},
		},
		{
			name:     "wrong password",
			email:    "admin@example.com",
			password: "nope",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "admin@example.com").Return(&model.User{
					ID:           userID,
					Email:        "admin@example.com",
					PasswordHash: string(hashedPassword),
				}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "registered without password",
			email:    "social@example.com",
			password: "anything",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "social@example.com").Return(&model.User{
					ID:    userID,
					Email: "social@example.com",
				}, nil)
			},
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			email:    "notfound@example.com",
			password: "password123",
			setupMock: func(mRepo *MockUserRepository, mToken *MockTokenStore) {
				mRepo.On("FindByEmail", mock.Anything, "notfound@example.com").Return(nil, apperrors.ErrUserNotFound)
			},
			expectedError: ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			mockTokenStore := new(MockTokenStore)
			tt.setupMock(mockRepo, mockTokenStore)

			service := NewAuthService(mockRepo, auth.NewJWTService("test-secret"), mockTokenStore)
			accessToken, refreshToken, user, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Empty(t, accessToken)
				assert.Empty(t, refreshToken)
				assert.Nil(t, user)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, accessToken)
				assert.NotEmpty(t, refreshToken)
				assert.Equal(t, tt.email, user.Email)
			}

			mockRepo.AssertExpectations(t)
			mockTokenStore.AssertExpectations(t)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken("user-1", "a@example.com")
	require.NoError(t, err)

	t.Run("stored token", func(t *testing.T) {
		store := new(MockTokenStore)
		store.On("GetRefreshToken", mock.Anything, tokenID).Return("user-1", "a@example.com", nil)

		access, err := NewAuthService(new(MockUserRepository), jwtService, store).RefreshToken(context.Background(), refreshToken)
		require.NoError(t, err)
		claims, err := jwtService.ValidateToken(access)
		require.NoError(t, err)
		assert.Equal(t, "a@example.com", claims.Email)
	})

	t.Run("revoked token", func(t *testing.T) {
		store := new(MockTokenStore)
		store.On("GetRefreshToken", mock.Anything, tokenID).Return("", "", assert.AnError)

		_, err := NewAuthService(new(MockUserRepository), jwtService, store).RefreshToken(context.Background(), refreshToken)
		assert.Equal(t, ErrInvalidRefreshToken, err)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := NewAuthService(new(MockUserRepository), jwtService, new(MockTokenStore)).RefreshToken(context.Background(), "not-a-jwt")
		assert.Equal(t, ErrInvalidRefreshToken, err)
	})
}

func TestAuthService_LogoutRevokesAccessToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	tokenID, refreshToken, err := jwtService.GenerateRefreshToken("user-1", "a@example.com")
	require.NoError(t, err)
	accessToken, err := jwtService.GenerateAccessToken("user-1", "a@example.com")
	require.NoError(t, err)
	accessClaims, err := jwtService.ValidateToken(accessToken)
	require.NoError(t, err)

	store := new(MockTokenStore)
	store.On("DeleteRefreshToken", mock.Anything, tokenID).Return(nil)
	store.On("BlacklistAccessToken", mock.Anything, accessClaims.ID, mock.AnythingOfType("time.Duration")).Return(nil)
	store.On("IsAccessTokenBlacklisted", mock.Anything, accessClaims.ID).Return(true, nil)

	service := NewAuthService(new(MockUserRepository), jwtService, store)
	require.NoError(t, service.Logout(context.Background(), refreshToken, accessClaims))

	_, err = service.ValidateAccessToken(context.Background(), accessToken)
	assert.Equal(t, ErrInvalidAccessToken, err)
	store.AssertExpectations(t)
}

func TestAuthService_ValidateAccessToken(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret")
	accessToken, err := jwtService.GenerateAccessToken("user-1", "a@example.com")
	require.NoError(t, err)

	store := new(MockTokenStore)
	store.On("IsAccessTokenBlacklisted", mock.Anything, mock.Anything).Return(false, nil)

	claims, err := NewAuthService(new(MockUserRepository), jwtService, store).ValidateAccessToken(context.Background(), accessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}
