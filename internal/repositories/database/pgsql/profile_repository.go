package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/superhostingvip/portal_backend/internal/apperrors"
	"github.com/superhostingvip/portal_backend/internal/core/domain"
	"github.com/superhostingvip/portal_backend/internal/models"
	"github.com/superhostingvip/portal_backend/internal/utils/mapping"
)

const profileColumns = `profile_id, name, avatar_url, phone, address, created_at, updated_at`

// PgxProfileRepository implements ports.ProfileRepository using pgxpool.
type PgxProfileRepository struct {
	BaseRepository
}

// NewPgxProfileRepository creates a new PgxProfileRepository.
func NewPgxProfileRepository(db *pgxpool.Pool) *PgxProfileRepository {
	return &PgxProfileRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// FindProfileByID retrieves a profile by its ID.
func (r *PgxProfileRepository) FindProfileByID(ctx context.Context, profileID string) (*domain.Profile, error) {
	var m models.Profile
	err := r.Pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE profile_id = $1`,
		profileID,
	).Scan(&m.ProfileID, &m.Name, &m.AvatarURL, &m.Phone, &m.Address, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("profile " + profileID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find profile", err)
	}
	profile := mapping.ToDomainProfile(m)
	return &profile, nil
}

// CreateProfile inserts a new profile row.
func (r *PgxProfileRepository) CreateProfile(ctx context.Context, profile domain.Profile) error {
	now := time.Now().UTC()
	_, err := r.Pool.Exec(ctx,
		`INSERT INTO profiles (profile_id, name, avatar_url, phone, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)`,
		profile.ProfileID, profile.Name, profile.AvatarURL, profile.Phone, profile.Address, now,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to create profile", err)
	}
	return nil
}

// UpdateProfile mutates a profile and returns the row as written.
func (r *PgxProfileRepository) UpdateProfile(ctx context.Context, profile domain.Profile) (*domain.Profile, error) {
	var m models.Profile
	err := r.Pool.QueryRow(ctx,
		`UPDATE profiles
		SET name = $1, avatar_url = $2, phone = $3, address = $4, updated_at = $5
		WHERE profile_id = $6
		RETURNING `+profileColumns,
		profile.Name, profile.AvatarURL, profile.Phone, profile.Address, time.Now().UTC(), profile.ProfileID,
	).Scan(&m.ProfileID, &m.Name, &m.AvatarURL, &m.Phone, &m.Address, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("profile " + profile.ProfileID + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to update profile", err)
	}
	updated := mapping.ToDomainProfile(m)
	return &updated, nil
}
