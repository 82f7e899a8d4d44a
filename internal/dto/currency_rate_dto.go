package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/superhostingvip/portal_backend/internal/core/domain"
)

// UpdateCurrencyRateRequest defines the body for setting a pair's rate.
// The pair itself comes from the route path.
type UpdateCurrencyRateRequest struct {
	Rate decimal.Decimal `json:"rate" binding:"required"`
}

// CurrencyPairURI binds the /:from/:to route segments.
type CurrencyPairURI struct {
	From string `uri:"from" binding:"required,currencycode"`
	To   string `uri:"to" binding:"required,currencycode"`
}

// ConvertAmountQuery binds the conversion query string. Amount stays a
// string until the handler parses it into a decimal.
type ConvertAmountQuery struct {
	Amount string `form:"amount" binding:"required"`
	From   string `form:"from" binding:"required,currencycode"`
	To     string `form:"to" binding:"required,currencycode"`
}

// CurrencyRateResponse defines the API shape of a currency rate pair.
type CurrencyRateResponse struct {
	RateID       string          `json:"rateID"`
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Rate         decimal.Decimal `json:"rate"`
	CreatedAt    time.Time       `json:"createdAt"`
	CreatedBy    *string         `json:"createdBy,omitempty"`
	UpdatedAt    time.Time       `json:"updatedAt"`
	UpdatedBy    *string         `json:"updatedBy,omitempty"`
}

// ToCurrencyRateResponse converts a domain.CurrencyRate to its response DTO
func ToCurrencyRateResponse(rate *domain.CurrencyRate) CurrencyRateResponse {
	return CurrencyRateResponse{
		RateID:       rate.RateID,
		FromCurrency: rate.FromCurrency,
		ToCurrency:   rate.ToCurrency,
		Rate:         rate.Rate,
		CreatedAt:    rate.CreatedAt,
		CreatedBy:    rate.CreatedBy,
		UpdatedAt:    rate.UpdatedAt,
		UpdatedBy:    rate.UpdatedBy,
	}
}

// ToListCurrencyRateResponse converts a slice of domain rates to DTOs.
func ToListCurrencyRateResponse(rates []domain.CurrencyRate) []CurrencyRateResponse {
	responses := make([]CurrencyRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToCurrencyRateResponse(&rates[i])
	}
	return responses
}

// CurrencyRateHistoryResponse defines the API shape of one audit entry.
type CurrencyRateHistoryResponse struct {
	HistoryID string          `json:"historyID"`
	RateID    string          `json:"rateID"`
	OldRate   decimal.Decimal `json:"oldRate"`
	NewRate   decimal.Decimal `json:"newRate"`
	ChangedAt time.Time       `json:"changedAt"`
	ChangedBy *string         `json:"changedBy,omitempty"`
}

// ToListCurrencyRateHistoryResponse converts domain history rows to DTOs.
func ToListCurrencyRateHistoryResponse(history []domain.CurrencyRateHistory) []CurrencyRateHistoryResponse {
	responses := make([]CurrencyRateHistoryResponse, len(history))
	for i, h := range history {
		responses[i] = CurrencyRateHistoryResponse{
			HistoryID: h.HistoryID,
			RateID:    h.RateID,
			OldRate:   h.OldRate,
			NewRate:   h.NewRate,
			ChangedAt: h.ChangedAt,
			ChangedBy: h.ChangedBy,
		}
	}
	return responses
}

// ConvertAmountResponse defines the conversion result. Amount is formatted
// with two decimal places, matching fixed-point currency display.
type ConvertAmountResponse struct {
	FromCurrency string `json:"fromCurrency"`
	ToCurrency   string `json:"toCurrency"`
	Amount       string `json:"amount"`
}
