package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/superhostingvip/portal_backend/internal/apperrors"
	"github.com/superhostingvip/portal_backend/internal/core/domain"
	"github.com/superhostingvip/portal_backend/internal/core/ports"
	"github.com/superhostingvip/portal_backend/internal/utils"
)

// UserService provides account lookup and credential verification.
type UserService struct {
	userRepo ports.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo ports.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// Authenticate verifies the credentials and returns the matching user.
// Unknown usernames and bad passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", apperrors.ErrValidation)
	}

	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}

	return user, nil
}

// GetUserByID retrieves a user by its ID.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// CreateUser provisions a new portal account with a hashed password. The
// role claim is parsed here so an unknown role silently becomes the default.
func (s *UserService) CreateUser(ctx context.Context, username, password, name, role string) (*domain.User, error) {
	if username == "" || password == "" || name == "" {
		return nil, fmt.Errorf("%w: username, password and name are required", apperrors.ErrValidation)
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		PasswordHash: hash,
		Name:         name,
		Role:         domain.ParseRole(role),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return &user, nil
}
