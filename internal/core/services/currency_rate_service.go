package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/superhostingvip/portal_backend/internal/apperrors"
	"github.com/superhostingvip/portal_backend/internal/core/domain"
	"github.com/superhostingvip/portal_backend/internal/core/ports"
)

// Reconnector is the slice of the connection manager the service drives
// between retry attempts.
type Reconnector interface {
	Reconnect(ctx context.Context) error
}

const (
	retryAttempts  = 3
	retryBaseDelay = time.Second
)

// CurrencyRateService provides the business logic for currency rates:
// conversion, inverse-rate maintenance and retry wrapping. Write
// authorization happens at the HTTP boundary; the service trusts its caller.
type CurrencyRateService struct {
	rateRepo  ports.CurrencyRateRepository
	conn      Reconnector
	logger    *slog.Logger
	attempts  int
	baseDelay time.Duration
}

// CurrencyRateOption customizes a CurrencyRateService.
type CurrencyRateOption func(*CurrencyRateService)

// WithRetryBaseDelay overrides the backoff unit between retry attempts.
func WithRetryBaseDelay(d time.Duration) CurrencyRateOption {
	return func(s *CurrencyRateService) { s.baseDelay = d }
}

// NewCurrencyRateService creates a new CurrencyRateService.
func NewCurrencyRateService(rateRepo ports.CurrencyRateRepository, conn Reconnector, logger *slog.Logger, opts ...CurrencyRateOption) *CurrencyRateService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &CurrencyRateService{
		rateRepo:  rateRepo,
		conn:      conn,
		logger:    logger,
		attempts:  retryAttempts,
		baseDelay: retryBaseDelay,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// retryOperation runs op up to the attempt ceiling. Between attempts it
// waits attempt×baseDelay and proactively reconnects the store session.
// Validation, not-found and duplicate failures are caller errors and are
// never retried. The last failure is returned unchanged.
func retryOperation[T any](ctx context.Context, s *CurrencyRateService, op func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= s.attempts; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if errors.Is(err, apperrors.ErrValidation) ||
			errors.Is(err, apperrors.ErrNotFound) ||
			errors.Is(err, apperrors.ErrDuplicate) {
			return zero, err
		}
		if attempt < s.attempts {
			select {
			case <-time.After(time.Duration(attempt) * s.baseDelay):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
			if rerr := s.conn.Reconnect(ctx); rerr != nil {
				s.logger.Warn("reconnect before retry failed", slog.String("error", rerr.Error()))
			}
		}
	}

	return zero, lastErr
}

// GetAllRates returns every stored pair. An empty store is not an error.
func (s *CurrencyRateService) GetAllRates(ctx context.Context) ([]domain.CurrencyRate, error) {
	return retryOperation(ctx, s, func(ctx context.Context) ([]domain.CurrencyRate, error) {
		rates, err := s.rateRepo.FindAllRates(ctx)
		if err != nil {
			return nil, err
		}
		if rates == nil {
			rates = []domain.CurrencyRate{}
		}
		return rates, nil
	})
}

// UpdateRate sets the rate for (from,to), creating the pair on first use.
// The inverse pair (to,from) is maintained at 1/rate on a best-effort basis:
// its write failure is logged and swallowed, and a missing inverse is only
// created when the primary pair itself is new. The two writes are separate
// transactions; a crash between them can leave the pair set inconsistent.
func (s *CurrencyRateService) UpdateRate(ctx context.Context, fromCurrency, toCurrency string, rate decimal.Decimal, actorID string) (*domain.CurrencyRate, error) {
	from := strings.ToUpper(strings.TrimSpace(fromCurrency))
	to := strings.ToUpper(strings.TrimSpace(toCurrency))
	if from == "" || to == "" || actorID == "" {
		return nil, fmt.Errorf("%w: missing required parameters", apperrors.ErrValidation)
	}
	if from == to {
		return nil, fmt.Errorf("%w: from and to currencies cannot be the same", apperrors.ErrValidation)
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: rate must be greater than 0", apperrors.ErrValidation)
	}

	return retryOperation(ctx, s, func(ctx context.Context) (*domain.CurrencyRate, error) {
		existing, err := s.rateRepo.FindRate(ctx, from, to)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}

		if existing != nil {
			updated, err := s.rateRepo.UpdateRate(ctx, from, to, rate, actorID)
			if err != nil {
				return nil, err
			}
			s.updateInverseRate(ctx, from, to, rate, actorID)
			return updated, nil
		}

		created, err := s.rateRepo.CreateRate(ctx, from, to, rate, actorID)
		if err != nil {
			return nil, err
		}
		s.createInverseRate(ctx, from, to, rate, actorID)
		return created, nil
	})
}

func (s *CurrencyRateService) updateInverseRate(ctx context.Context, fromCurrency, toCurrency string, rate decimal.Decimal, actorID string) {
	if _, err := s.rateRepo.UpdateRate(ctx, toCurrency, fromCurrency, inverseOf(rate), actorID); err != nil {
		s.logger.Error("failed to update inverse rate",
			slog.String("from_currency", toCurrency),
			slog.String("to_currency", fromCurrency),
			slog.String("error", err.Error()),
		)
	}
}

func (s *CurrencyRateService) createInverseRate(ctx context.Context, fromCurrency, toCurrency string, rate decimal.Decimal, actorID string) {
	if _, err := s.rateRepo.CreateRate(ctx, toCurrency, fromCurrency, inverseOf(rate), actorID); err != nil {
		s.logger.Error("failed to create inverse rate",
			slog.String("from_currency", toCurrency),
			slog.String("to_currency", fromCurrency),
			slog.String("error", err.Error()),
		)
	}
}

// GetRateHistory returns the audit trail for a pair, newest first.
func (s *CurrencyRateService) GetRateHistory(ctx context.Context, fromCurrency, toCurrency string) ([]domain.CurrencyRateHistory, error) {
	from := strings.ToUpper(strings.TrimSpace(fromCurrency))
	to := strings.ToUpper(strings.TrimSpace(toCurrency))
	if from == "" || to == "" {
		return nil, fmt.Errorf("%w: missing required parameters", apperrors.ErrValidation)
	}

	return retryOperation(ctx, s, func(ctx context.Context) ([]domain.CurrencyRateHistory, error) {
		history, err := s.rateRepo.ListRateHistory(ctx, from, to)
		if err != nil {
			return nil, err
		}
		if history == nil {
			history = []domain.CurrencyRateHistory{}
		}
		return history, nil
	})
}

// ConvertAmount converts amount from one currency to another using the
// direct rate, falling back to the inverse pair at 1/rate. The result is
// rounded to 2 decimal places, half away from zero; the stored rate itself
// is never rounded. Equal currencies short-circuit without touching the store.
func (s *CurrencyRateService) ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string) (decimal.Decimal, error) {
	from := strings.ToUpper(strings.TrimSpace(fromCurrency))
	to := strings.ToUpper(strings.TrimSpace(toCurrency))
	if from == "" || to == "" {
		return decimal.Zero, fmt.Errorf("%w: missing required parameters", apperrors.ErrValidation)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	}
	if from == to {
		return amount, nil
	}

	return retryOperation(ctx, s, func(ctx context.Context) (decimal.Decimal, error) {
		direct, err := s.rateRepo.FindRate(ctx, from, to)
		if err == nil {
			return amount.Mul(direct.Rate).Round(2), nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, err
		}

		inverse, invErr := s.rateRepo.FindRate(ctx, to, from)
		if invErr != nil || inverse.Rate.IsZero() {
			if invErr == nil || errors.Is(invErr, apperrors.ErrNotFound) {
				return decimal.Zero, fmt.Errorf("%w: no conversion rate found for %s to %s", apperrors.ErrNotFound, from, to)
			}
			return decimal.Zero, invErr
		}

		return amount.Div(inverse.Rate).Round(2), nil
	})
}

func inverseOf(rate decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Div(rate)
}
