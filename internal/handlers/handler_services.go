package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/superhostingvip/portal_backend/internal/clients/enhance"
	"github.com/superhostingvip/portal_backend/internal/clients/whmcs"
	"github.com/superhostingvip/portal_backend/internal/middleware"
)

// servicesHandler exposes the customer's hosting services, invoices and
// websites as read-only pass-throughs over the external billing and
// provisioning APIs. No portal logic lives here.
type servicesHandler struct {
	billing      *whmcs.Client
	provisioning *enhance.Client
}

// RegisterServiceRoutes registers the pass-through service routes.
func RegisterServiceRoutes(rg *gin.RouterGroup, billing *whmcs.Client, provisioning *enhance.Client) {
	h := &servicesHandler{billing: billing, provisioning: provisioning}

	rg.GET("/services", h.listServices)
	rg.GET("/invoices", h.listInvoices)
	rg.GET("/tickets", h.listTickets)
	rg.GET("/websites", h.listWebsites)
}

func (h *servicesHandler) listServices(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	body, err := h.billing.GetClientProducts(c.Request.Context(), userID)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Billing API call failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Billing service unavailable"})
		return
	}
	c.JSON(http.StatusOK, body)
}

func (h *servicesHandler) listInvoices(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	body, err := h.billing.GetInvoices(c.Request.Context(), userID)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Billing API call failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Billing service unavailable"})
		return
	}
	c.JSON(http.StatusOK, body)
}

func (h *servicesHandler) listTickets(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	body, err := h.billing.GetTickets(c.Request.Context(), userID)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Billing API call failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Billing service unavailable"})
		return
	}
	c.JSON(http.StatusOK, body)
}

func (h *servicesHandler) listWebsites(c *gin.Context) {
	body, err := h.provisioning.ListWebsites(c.Request.Context())
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Provisioning API call failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": "Provisioning service unavailable"})
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}
