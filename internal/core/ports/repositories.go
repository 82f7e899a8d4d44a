package ports

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/superhostingvip/portal_backend/internal/core/domain"
)

// Note: repositories perform no retries; transient-fault handling is layered
// above them by the currency rate service and below them by the connection
// manager's own health-check logic.

// CurrencyRateRepository defines persistence operations for currency rate
// pairs and their audit history.
type CurrencyRateRepository interface {
	// FindAllRates returns every pair ordered by (from_currency, to_currency).
	FindAllRates(ctx context.Context) ([]domain.CurrencyRate, error)
	// FindRate returns the pair or apperrors.ErrNotFound.
	FindRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.CurrencyRate, error)
	// UpdateRate mutates an existing pair and appends a history row in the
	// same transaction. Missing pair is apperrors.ErrNotFound.
	UpdateRate(ctx context.Context, fromCurrency, toCurrency string, rate decimal.Decimal, actorID string) (*domain.CurrencyRate, error)
	// CreateRate inserts a new pair (and its initial history row) and fails
	// with apperrors.ErrDuplicate when the pair exists.
	CreateRate(ctx context.Context, fromCurrency, toCurrency string, rate decimal.Decimal, actorID string) (*domain.CurrencyRate, error)
	// ListRateHistory returns history rows for a pair, newest first.
	ListRateHistory(ctx context.Context, fromCurrency, toCurrency string) ([]domain.CurrencyRateHistory, error)
}

// UserRepository defines persistence operations for portal users.
type UserRepository interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	SaveUser(ctx context.Context, user domain.User) error
}

// ProfileRepository defines persistence operations for customer profiles.
type ProfileRepository interface {
	FindProfileByID(ctx context.Context, profileID string) (*domain.Profile, error)
	CreateProfile(ctx context.Context, profile domain.Profile) error
	UpdateProfile(ctx context.Context, profile domain.Profile) (*domain.Profile, error)
}
