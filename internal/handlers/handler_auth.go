package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/superhostingvip/portal_backend/internal/core/ports/services"
	"github.com/superhostingvip/portal_backend/internal/dto"
	"github.com/superhostingvip/portal_backend/internal/middleware"
	"github.com/superhostingvip/portal_backend/internal/platform/config"
	"github.com/superhostingvip/portal_backend/internal/utils"
)

// SessionNotifier receives session lifecycle events from the auth layer so
// the connection manager can re-initialize on sign-in and reset on sign-out.
type SessionNotifier interface {
	HandleSignIn(ctx context.Context)
	HandleSignOut()
}

// authHandler handles login and logout.
type authHandler struct {
	userService portssvc.UserSvcFacade
	sessions    SessionNotifier
	cfg         *config.Config
}

func newAuthHandler(userService portssvc.UserSvcFacade, sessions SessionNotifier, cfg *config.Config) *authHandler {
	return &authHandler{userService: userService, sessions: sessions, cfg: cfg}
}

// RegisterAuthRoutes registers the public login route.
func RegisterAuthRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, sessions SessionNotifier, cfg *config.Config) {
	h := newAuthHandler(userService, sessions, cfg)
	rg.POST("/login", h.login)
}

// RegisterLogoutRoute registers logout behind the auth middleware.
func RegisterLogoutRoute(rg *gin.RouterGroup, userService portssvc.UserSvcFacade, sessions SessionNotifier, cfg *config.Config) {
	h := newAuthHandler(userService, sessions, cfg)
	rg.POST("/logout", h.logout)
}

func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		logger.Warn("Login failed", slog.String("username", req.Username))
		respondWithError(c, err)
		return
	}

	roleClaim := strings.ToLower(string(user.Role))
	token, err := utils.GenerateJWT(user.UserID, roleClaim, h.cfg.JWTSecret, h.cfg.JWTExpiryDuration, h.cfg.JWTIssuer)
	if err != nil {
		logger.Error("Failed to generate access token", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	h.sessions.HandleSignIn(c.Request.Context())

	c.JSON(http.StatusOK, dto.LoginResponse{
		AccessToken: token,
		ExpiresAt:   time.Now().Add(h.cfg.JWTExpiryDuration),
		UserID:      user.UserID,
		Role:        roleClaim,
	})
}

func (h *authHandler) logout(c *gin.Context) {
	h.sessions.HandleSignOut()
	c.Status(http.StatusNoContent)
}
