package services

import (
	"context"
	"log/slog"

	"github.com/superhostingvip/portal_backend/internal/core/domain"
)

// HealthChecker is the slice of the connection manager the resolver consults
// before honoring a privileged role claim.
type HealthChecker interface {
	HealthCheck(ctx context.Context) bool
}

// AccessResolver derives the effective role from the session's role claim.
// Privileged claims are only honored while the backing store is verifiably
// reachable; on any doubt the resolver fails closed to the default role.
type AccessResolver struct {
	health HealthChecker
	logger *slog.Logger
}

// NewAccessResolver creates a new AccessResolver.
func NewAccessResolver(health HealthChecker, logger *slog.Logger) *AccessResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &AccessResolver{health: health, logger: logger}
}

// ResolveRole parses the raw claim and returns the effective role.
func (r *AccessResolver) ResolveRole(ctx context.Context, roleClaim string) domain.Role {
	role := domain.ParseRole(roleClaim)
	if role == domain.RoleUser {
		return role
	}

	if !r.health.HealthCheck(ctx) {
		r.logger.Warn("role verification failed, falling back to least privilege",
			slog.String("claimed_role", string(role)),
		)
		return domain.RoleUser
	}

	return role
}
