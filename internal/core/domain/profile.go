package domain

import "time"

// Profile is the customer-facing profile record. It shares its primary key
// with the owning user and doubles as the store's health-probe table.
type Profile struct {
	ProfileID string    `json:"profileID"`
	Name      string    `json:"name"`
	AvatarURL *string   `json:"avatarURL,omitempty"`
	Phone     *string   `json:"phone,omitempty"`
	Address   *string   `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
