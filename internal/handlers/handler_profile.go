package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/superhostingvip/portal_backend/internal/core/domain"
	portssvc "github.com/superhostingvip/portal_backend/internal/core/ports/services"
	"github.com/superhostingvip/portal_backend/internal/dto"
	"github.com/superhostingvip/portal_backend/internal/middleware"
)

// profileHandler handles HTTP requests for the caller's own profile.
type profileHandler struct {
	profileService portssvc.ProfileSvcFacade
}

// RegisterProfileRoutes registers profile routes.
func RegisterProfileRoutes(rg *gin.RouterGroup, profileService portssvc.ProfileSvcFacade) {
	h := &profileHandler{profileService: profileService}

	profile := rg.Group("/profile")
	{
		profile.GET("", h.getProfile)
		profile.PUT("", h.updateProfile)
	}
}

func (h *profileHandler) getProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to get profile", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(profile))
}

func (h *profileHandler) updateProfile(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	updated, err := h.profileService.UpdateProfile(c.Request.Context(), domain.Profile{
		ProfileID: userID,
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if err != nil {
		logger.Error("Failed to update profile", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProfileResponse(updated))
}
