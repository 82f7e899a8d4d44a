package pgsql

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/superhostingvip/portal_backend/internal/apperrors"
	"github.com/superhostingvip/portal_backend/internal/core/domain"
	"github.com/superhostingvip/portal_backend/internal/models"
	"github.com/superhostingvip/portal_backend/internal/utils/mapping"
)

const pgUniqueViolation = "23505"

const rateColumns = `id, from_currency, to_currency, rate, created_at, updated_at, created_by, updated_by`

// PgxCurrencyRateRepository implements ports.CurrencyRateRepository using pgxpool.
// It owns all access to the currency_rates and currency_rate_history tables.
type PgxCurrencyRateRepository struct {
	BaseRepository
}

// NewPgxCurrencyRateRepository creates a new PgxCurrencyRateRepository.
func NewPgxCurrencyRateRepository(db *pgxpool.Pool) *PgxCurrencyRateRepository {
	return &PgxCurrencyRateRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// FindAllRates returns every currency pair ordered by (from_currency,
// to_currency) so listings are deterministic.
func (r *PgxCurrencyRateRepository) FindAllRates(ctx context.Context) ([]domain.CurrencyRate, error) {
	query := `
		SELECT ` + rateColumns + `
		FROM currency_rates
		ORDER BY from_currency, to_currency;
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list currency rates", err)
	}
	defer rows.Close()

	rates := make([]domain.CurrencyRate, 0)
	for rows.Next() {
		var modelRate models.CurrencyRate
		if err := scanRate(rows, &modelRate); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan currency rate", err)
		}
		rates = append(rates, mapping.ToDomainCurrencyRate(modelRate))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating currency rates", err)
	}

	return rates, nil
}

// FindRate retrieves a single directional pair.
func (r *PgxCurrencyRateRepository) FindRate(ctx context.Context, fromCurrency, toCurrency string) (*domain.CurrencyRate, error) {
	from := strings.ToUpper(fromCurrency)
	to := strings.ToUpper(toCurrency)

	query := `
		SELECT ` + rateColumns + `
		FROM currency_rates
		WHERE from_currency = $1 AND to_currency = $2;
	`

	var modelRate models.CurrencyRate
	err := scanRate(r.Pool.QueryRow(ctx, query, from, to), &modelRate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("currency rate " + from + " to " + to + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find currency rate", err)
	}

	domainRate := mapping.ToDomainCurrencyRate(modelRate)
	return &domainRate, nil
}

// UpdateRate mutates an existing pair and appends the audit history row in
// the same transaction, so the returned row matches exactly what was written.
func (r *PgxCurrencyRateRepository) UpdateRate(ctx context.Context, fromCurrency, toCurrency string, rate decimal.Decimal, actorID string) (*domain.CurrencyRate, error) {
	from := strings.ToUpper(fromCurrency)
	to := strings.ToUpper(toCurrency)

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}

	var rateID string
	var oldRate decimal.Decimal
	err = tx.QueryRow(ctx,
		`SELECT id, rate FROM currency_rates
		WHERE from_currency = $1 AND to_currency = $2
		FOR UPDATE`,
		from, to,
	).Scan(&rateID, &oldRate)
	if err != nil {
		_ = r.Rollback(ctx, tx)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("currency rate " + from + " to " + to + " not found")
		}
		return nil, apperrors.NewAppError(500, "failed to lock currency rate", err)
	}

	now := time.Now().UTC()
	var modelRate models.CurrencyRate
	err = scanRate(tx.QueryRow(ctx,
		`UPDATE currency_rates
		SET rate = $1, updated_at = $2, updated_by = $3
		WHERE id = $4
		RETURNING `+rateColumns,
		rate, now, actorID, rateID,
	), &modelRate)
	if err != nil {
		_ = r.Rollback(ctx, tx)
		return nil, apperrors.NewAppError(500, "failed to update currency rate", err)
	}

	if err := insertHistory(ctx, tx, rateID, oldRate, rate, now, actorID); err != nil {
		_ = r.Rollback(ctx, tx)
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	domainRate := mapping.ToDomainCurrencyRate(modelRate)
	return &domainRate, nil
}

// CreateRate inserts a new pair. Callers that must assert non-existence rely
// on the unique constraint surfacing as ErrDuplicate.
func (r *PgxCurrencyRateRepository) CreateRate(ctx context.Context, fromCurrency, toCurrency string, rate decimal.Decimal, actorID string) (*domain.CurrencyRate, error) {
	from := strings.ToUpper(fromCurrency)
	to := strings.ToUpper(toCurrency)

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rateID := uuid.NewString()

	var modelRate models.CurrencyRate
	err = scanRate(tx.QueryRow(ctx,
		`INSERT INTO currency_rates (
			id, from_currency, to_currency, rate,
			created_at, updated_at, created_by, updated_by
		) VALUES ($1, $2, $3, $4, $5, $5, $6, $6)
		RETURNING `+rateColumns,
		rateID, from, to, rate, now, actorID,
	), &modelRate)
	if err != nil {
		_ = r.Rollback(ctx, tx)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperrors.NewAppError(409, "currency rate "+from+" to "+to+" already exists", apperrors.ErrDuplicate)
		}
		return nil, apperrors.NewAppError(500, "failed to create currency rate", err)
	}

	// First history entry records the initial value; old and new are equal.
	if err := insertHistory(ctx, tx, rateID, rate, rate, now, actorID); err != nil {
		_ = r.Rollback(ctx, tx)
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	domainRate := mapping.ToDomainCurrencyRate(modelRate)
	return &domainRate, nil
}

// ListRateHistory returns the audit trail for a pair, newest first. The join
// is by currency codes so callers never need the surrogate id.
func (r *PgxCurrencyRateRepository) ListRateHistory(ctx context.Context, fromCurrency, toCurrency string) ([]domain.CurrencyRateHistory, error) {
	from := strings.ToUpper(fromCurrency)
	to := strings.ToUpper(toCurrency)

	query := `
		SELECT h.id, h.rate_id, h.old_rate, h.new_rate, h.changed_at, h.changed_by
		FROM currency_rate_history h
		JOIN currency_rates r ON r.id = h.rate_id
		WHERE r.from_currency = $1 AND r.to_currency = $2
		ORDER BY h.changed_at DESC;
	`

	rows, err := r.Pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list currency rate history", err)
	}
	defer rows.Close()

	history := make([]domain.CurrencyRateHistory, 0)
	for rows.Next() {
		var modelRow models.CurrencyRateHistory
		if err := rows.Scan(
			&modelRow.HistoryID, &modelRow.RateID, &modelRow.OldRate,
			&modelRow.NewRate, &modelRow.ChangedAt, &modelRow.ChangedBy,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan currency rate history", err)
		}
		history = append(history, mapping.ToDomainCurrencyRateHistory(modelRow))
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating currency rate history", err)
	}

	return history, nil
}

func scanRate(row pgx.Row, m *models.CurrencyRate) error {
	return row.Scan(
		&m.RateID, &m.FromCurrency, &m.ToCurrency, &m.Rate,
		&m.CreatedAt, &m.UpdatedAt, &m.CreatedBy, &m.UpdatedBy,
	)
}

func insertHistory(ctx context.Context, tx pgx.Tx, rateID string, oldRate, newRate decimal.Decimal, changedAt time.Time, actorID string) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO currency_rate_history (id, rate_id, old_rate, new_rate, changed_at, changed_by)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		uuid.NewString(), rateID, oldRate, newRate, changedAt, actorID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to append currency rate history", err)
	}
	return nil
}
