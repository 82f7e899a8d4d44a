package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/superhostingvip/portal_backend/internal/core/domain"
	portssvc "github.com/superhostingvip/portal_backend/internal/core/ports/services"
	"github.com/superhostingvip/portal_backend/internal/dto"
	"github.com/superhostingvip/portal_backend/internal/middleware"
)

// currencyRateHandler handles HTTP requests related to currency rates.
type currencyRateHandler struct {
	rateService portssvc.CurrencyRateSvcFacade
}

func newCurrencyRateHandler(rateService portssvc.CurrencyRateSvcFacade) *currencyRateHandler {
	return &currencyRateHandler{rateService: rateService}
}

// RegisterCurrencyRateRoutes registers routes related to currency rates.
// Writes are gated on the manage_currency permission at this boundary; the
// service itself trusts its caller.
func RegisterCurrencyRateRoutes(rg *gin.RouterGroup, rateService portssvc.CurrencyRateSvcFacade, resolver portssvc.RoleResolverFacade) {
	h := newCurrencyRateHandler(rateService)

	rates := rg.Group("/currency-rates")
	{
		rates.GET("", h.listRates)
		rates.GET("/convert", h.convertAmount)
		rates.GET("/:from/:to/history", h.getRateHistory)
		rates.PUT("/:from/:to", middleware.RequirePermission(resolver, domain.PermManageCurrency), h.updateRate)
	}
}

func (h *currencyRateHandler) listRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	rates, err := h.rateService.GetAllRates(c.Request.Context())
	if err != nil {
		logger.Error("Failed to list currency rates", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListCurrencyRateResponse(rates))
}

func (h *currencyRateHandler) updateRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var pair dto.CurrencyPairURI
	if err := c.ShouldBindUri(&pair); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid currency pair: " + err.Error()})
		return
	}

	var req dto.UpdateCurrencyRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Actor user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	rate, err := h.rateService.UpdateRate(c.Request.Context(), pair.From, pair.To, req.Rate, actorID)
	if err != nil {
		logger.Error("Failed to update currency rate",
			slog.String("from", pair.From),
			slog.String("to", pair.To),
			slog.String("error", err.Error()),
		)
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCurrencyRateResponse(rate))
}

func (h *currencyRateHandler) getRateHistory(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var pair dto.CurrencyPairURI
	if err := c.ShouldBindUri(&pair); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid currency pair: " + err.Error()})
		return
	}

	history, err := h.rateService.GetRateHistory(c.Request.Context(), pair.From, pair.To)
	if err != nil {
		logger.Error("Failed to get currency rate history", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListCurrencyRateHistoryResponse(history))
}

func (h *currencyRateHandler) convertAmount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.ConvertAmountQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query: " + err.Error()})
		return
	}

	amount, err := decimal.NewFromString(query.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount: " + query.Amount})
		return
	}

	converted, err := h.rateService.ConvertAmount(c.Request.Context(), amount, query.From, query.To)
	if err != nil {
		logger.Error("Failed to convert amount",
			slog.String("from", query.From),
			slog.String("to", query.To),
			slog.String("error", err.Error()),
		)
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ConvertAmountResponse{
		FromCurrency: query.From,
		ToCurrency:   query.To,
		Amount:       converted.StringFixed(2),
	})
}
