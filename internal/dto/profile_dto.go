package dto

import (
	"time"

	"github.com/superhostingvip/portal_backend/internal/core/domain"
)

// UpdateProfileRequest defines the mutable profile fields.
type UpdateProfileRequest struct {
	Name      string  `json:"name" binding:"required"`
	AvatarURL *string `json:"avatarURL"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
}

// ProfileResponse defines the API shape of a customer profile.
type ProfileResponse struct {
	ProfileID string    `json:"profileID"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatarURL,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ToProfileResponse converts a domain.Profile to its response DTO
func ToProfileResponse(p *domain.Profile) ProfileResponse {
	return ProfileResponse{
		ProfileID: p.ProfileID,
		Name:      p.Name,
		AvatarURL: p.AvatarURL,
		Phone:     p.Phone,
		Address:   p.Address,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
