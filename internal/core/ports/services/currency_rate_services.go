package services

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/superhostingvip/portal_backend/internal/core/domain"
)

// CurrencyRateSvcFacade is the currency rate surface consumed by handlers.
type CurrencyRateSvcFacade interface {
	GetAllRates(ctx context.Context) ([]domain.CurrencyRate, error)
	UpdateRate(ctx context.Context, fromCurrency, toCurrency string, rate decimal.Decimal, actorID string) (*domain.CurrencyRate, error)
	GetRateHistory(ctx context.Context, fromCurrency, toCurrency string) ([]domain.CurrencyRateHistory, error)
	ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCurrency, toCurrency string) (decimal.Decimal, error)
}
