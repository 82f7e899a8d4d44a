package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CurrencyRate maps a row of the currency_rates table.
// Note: Rate uses a precise decimal type; the NUMERIC(18,8) column keeps
// eight fractional digits so computed inverse rates survive round-trips.
type CurrencyRate struct {
	RateID       string          `db:"id"`
	FromCurrency string          `db:"from_currency"`
	ToCurrency   string          `db:"to_currency"`
	Rate         decimal.Decimal `db:"rate"`
	AuditFields
}

// CurrencyRateHistory maps a row of the currency_rate_history table.
type CurrencyRateHistory struct {
	HistoryID string          `db:"id"`
	RateID    string          `db:"rate_id"`
	OldRate   decimal.Decimal `db:"old_rate"`
	NewRate   decimal.Decimal `db:"new_rate"`
	ChangedAt time.Time       `db:"changed_at"`
	ChangedBy *string         `db:"changed_by"`
}
