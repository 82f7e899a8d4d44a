package mapping

import (
	"github.com/superhostingvip/portal_backend/internal/core/domain"
	"github.com/superhostingvip/portal_backend/internal/models"
)

// ToModelCurrencyRate converts a domain CurrencyRate to a model CurrencyRate
func ToModelCurrencyRate(d domain.CurrencyRate) models.CurrencyRate {
	return models.CurrencyRate{
		RateID:       d.RateID,
		FromCurrency: d.FromCurrency,
		ToCurrency:   d.ToCurrency,
		Rate:         d.Rate,
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			CreatedBy: d.CreatedBy,
			UpdatedAt: d.UpdatedAt,
			UpdatedBy: d.UpdatedBy,
		},
	}
}

// ToDomainCurrencyRate converts a model CurrencyRate to a domain CurrencyRate
func ToDomainCurrencyRate(m models.CurrencyRate) domain.CurrencyRate {
	return domain.CurrencyRate{
		RateID:       m.RateID,
		FromCurrency: m.FromCurrency,
		ToCurrency:   m.ToCurrency,
		Rate:         m.Rate,
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			CreatedBy: m.CreatedBy,
			UpdatedAt: m.UpdatedAt,
			UpdatedBy: m.UpdatedBy,
		},
	}
}

// ToDomainCurrencyRateHistory converts a model history row to its domain form
func ToDomainCurrencyRateHistory(m models.CurrencyRateHistory) domain.CurrencyRateHistory {
	return domain.CurrencyRateHistory{
		HistoryID: m.HistoryID,
		RateID:    m.RateID,
		OldRate:   m.OldRate,
		NewRate:   m.NewRate,
		ChangedAt: m.ChangedAt,
		ChangedBy: m.ChangedBy,
	}
}
