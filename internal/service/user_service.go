package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"herohome/internal/cache"
	apperrors "herohome/internal/errors"
	"herohome/internal/model"
	"herohome/internal/repository"
)

const (
	bcryptCost   = 10
	roleCacheTTL = 5 * time.Minute
)

// ErrUserAlreadyExists is returned when registering an email that is already stored.
var ErrUserAlreadyExists = errors.New("user already exists")

// UserService handles identities and roles.
type UserService interface {
	Register(ctx context.Context, doc model.Fields) (*model.InsertResult, error)
	RoleOf(ctx context.Context, email string) (string, error)
	SetRole(ctx context.Context, id, role string) (*model.UpdateResult, error)
	ListUsers(ctx context.Context) ([]model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService creates a user service. cache may be nil.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

// RoleCacheKey is the Redis key holding the cached role of email.
func RoleCacheKey(email string) string {
	return "role:" + email
}

// Register creates the identity on first login. An existing email is not an
// error for the caller; it is reported as ErrUserAlreadyExists so the handler
// can answer with a null insert. A concurrent duplicate that slips past the
// lookup is caught by the unique email index.
func (s *userService) Register(ctx context.Context, doc model.Fields) (*model.InsertResult, error) {
	user := model.NewUser(doc, time.Now().UTC())
	if user.Email == "" {
		return nil, apperrors.ErrEmailRequired
	}

	existing, err := s.repo.FindByEmail(ctx, user.Email)
	if err == nil && existing != nil {
		return nil, ErrUserAlreadyExists
	}
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	if password := doc.String("password"); password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hashed)
	}

	res, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return res, nil
}

// RoleOf returns the stored role, or the default role for unknown emails.
func (s *userService) RoleOf(ctx context.Context, email string) (string, error) {
	if data, _ := s.cache.Get(ctx, RoleCacheKey(email)); data != nil {
		return string(data), nil
	}

	role := model.RoleUser
	user, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil && user.Role != "":
		role = user.Role
	case err != nil && !errors.Is(err, apperrors.ErrUserNotFound):
		return "", fmt.Errorf("find user role: %w", err)
	}

	_ = s.cache.Set(ctx, RoleCacheKey(email), []byte(role), roleCacheTTL)
	return role, nil
}

// SetRole overwrites the role of the user with the given id.
func (s *userService) SetRole(ctx context.Context, id, role string) (*model.UpdateResult, error) {
	if !model.IsValidRole(role) {
		return nil, apperrors.ErrInvalidRole
	}
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	before, err := s.repo.UpdateRole(ctx, oid, role)
	if err != nil {
		return nil, err
	}
	_ = s.cache.Delete(ctx, RoleCacheKey(before.Email))

	res := &model.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if before.Role != role {
		res.ModifiedCount = 1
	}
	return res, nil
}

// ListUsers returns every stored identity.
func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.repo.List(ctx)
}
