package models

import "time"

// Profile maps a row of the profiles table.
type Profile struct {
	ProfileID string    `db:"profile_id"`
	Name      string    `db:"name"`
	AvatarURL *string   `db:"avatar_url"`
	Phone     *string   `db:"phone"`
	Address   *string   `db:"address"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
