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

// userHandler handles account provisioning for administrators.
type userHandler struct {
	userService portssvc.UserSvcFacade
}

// RegisterUserRoutes registers the admin-only user management routes.
func RegisterUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, resolver portssvc.RoleResolverFacade) {
	h := &userHandler{userService: userService}

	users := rg.Group("/users", middleware.RequirePermission(resolver, domain.PermManageUsers))
	{
		users.POST("", h.createUser)
		users.GET("/:userID", h.getUser)
	}
}

func (h *userHandler) createUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.CreateUser(c.Request.Context(), req.Username, req.Password, req.Name, req.Role)
	if err != nil {
		logger.Error("Failed to create user", slog.String("username", req.Username), slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

func (h *userHandler) getUser(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	user, err := h.userService.GetUserByID(c.Request.Context(), c.Param("userID"))
	if err != nil {
		logger.Error("Failed to get user", slog.String("error", err.Error()))
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
