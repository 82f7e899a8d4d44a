package services

import (
	"context"

	"github.com/superhostingvip/portal_backend/internal/core/domain"
)

// UserSvcFacade is the user surface consumed by the auth handler.
type UserSvcFacade interface {
	// Authenticate verifies the credentials and returns the user, or
	// apperrors.ErrUnauthorized when they do not match.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	// CreateUser provisions an account; an unknown role string becomes the
	// default role rather than an error.
	CreateUser(ctx context.Context, username, password, name, role string) (*domain.User, error)
}

// ProfileSvcFacade is the profile surface consumed by handlers.
type ProfileSvcFacade interface {
	// GetProfile returns the profile, creating an empty default row when the
	// user has none yet.
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateProfile(ctx context.Context, profile domain.Profile) (*domain.Profile, error)
}

// RoleResolverFacade resolves the effective role for an authenticated caller.
type RoleResolverFacade interface {
	ResolveRole(ctx context.Context, roleClaim string) domain.Role
}
