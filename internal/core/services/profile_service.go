package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/superhostingvip/portal_backend/internal/apperrors"
	"github.com/superhostingvip/portal_backend/internal/core/domain"
	"github.com/superhostingvip/portal_backend/internal/core/ports"
)

// ProfileService provides customer profile lookups and updates.
type ProfileService struct {
	profileRepo ports.ProfileRepository
}

// NewProfileService creates a new ProfileService.
func NewProfileService(profileRepo ports.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// GetProfile returns the user's profile. A user without a profile row gets
// an empty default created on first access.
func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	profile, err := s.profileRepo.FindProfileByID(ctx, userID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	blank := domain.Profile{ProfileID: userID, Name: ""}
	if cerr := s.profileRepo.CreateProfile(ctx, blank); cerr != nil {
		return nil, fmt.Errorf("failed to create default profile: %w", cerr)
	}
	return s.profileRepo.FindProfileByID(ctx, userID)
}

// UpdateProfile mutates the profile and returns the row as written.
func (s *ProfileService) UpdateProfile(ctx context.Context, profile domain.Profile) (*domain.Profile, error) {
	if profile.ProfileID == "" {
		return nil, fmt.Errorf("%w: profile ID is required", apperrors.ErrValidation)
	}
	return s.profileRepo.UpdateProfile(ctx, profile)
}
