package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyRate is a directional conversion factor between two currencies.
// The pair (FromCurrency, ToCurrency) is unique; the reverse direction is a
// separate row whose rate the service keeps at 1/rate on a best-effort basis.
type CurrencyRate struct {
	RateID       string          `json:"rateID"`
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Rate         decimal.Decimal `json:"rate"`
	AuditFields
}

// CurrencyRateHistory is one append-only audit entry for a rate change.
type CurrencyRateHistory struct {
	HistoryID string          `json:"historyID"`
	RateID    string          `json:"rateID"`
	OldRate   decimal.Decimal `json:"oldRate"`
	NewRate   decimal.Decimal `json:"newRate"`
	ChangedAt time.Time       `json:"changedAt"`
	ChangedBy *string         `json:"changedBy,omitempty"`
}
