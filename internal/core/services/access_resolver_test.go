package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/superhostingvip/portal_backend/internal/core/domain"
	"github.com/superhostingvip/portal_backend/internal/core/services"
)

// --- Mock HealthChecker ---
type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

// --- Test Suite ---
type AccessResolverTestSuite struct {
	suite.Suite
	mockHealth *MockHealthChecker
	resolver   *services.AccessResolver
}

func (suite *AccessResolverTestSuite) SetupTest() {
	suite.mockHealth = new(MockHealthChecker)
	suite.resolver = services.NewAccessResolver(suite.mockHealth, nil)
}

func (suite *AccessResolverTestSuite) TestUserClaimSkipsHealthCheck() {
	ctx := context.Background()

	role := suite.resolver.ResolveRole(ctx, "user")

	suite.Equal(domain.RoleUser, role)
	suite.mockHealth.AssertNotCalled(suite.T(), "HealthCheck", mock.Anything)
}

func (suite *AccessResolverTestSuite) TestUnknownClaimSkipsHealthCheck() {
	ctx := context.Background()

	role := suite.resolver.ResolveRole(ctx, "operator")

	suite.Equal(domain.RoleUser, role)
	suite.mockHealth.AssertNotCalled(suite.T(), "HealthCheck", mock.Anything)
}

func (suite *AccessResolverTestSuite) TestAdminClaimHonoredWhenHealthy() {
	ctx := context.Background()
	suite.mockHealth.On("HealthCheck", ctx).Return(true).Once()

	role := suite.resolver.ResolveRole(ctx, "admin")

	suite.Equal(domain.RoleAdmin, role)
	suite.mockHealth.AssertExpectations(suite.T())
}

func (suite *AccessResolverTestSuite) TestSuperAdminClaimHonoredWhenHealthy() {
	ctx := context.Background()
	suite.mockHealth.On("HealthCheck", ctx).Return(true).Once()

	role := suite.resolver.ResolveRole(ctx, "SUPERADMIN")

	suite.Equal(domain.RoleSuperAdmin, role)
}

func (suite *AccessResolverTestSuite) TestPrivilegedClaimFailsClosedWhenUnhealthy() {
	ctx := context.Background()
	suite.mockHealth.On("HealthCheck", ctx).Return(false).Twice()

	suite.Equal(domain.RoleUser, suite.resolver.ResolveRole(ctx, "admin"))
	suite.Equal(domain.RoleUser, suite.resolver.ResolveRole(ctx, "superadmin"))
	suite.mockHealth.AssertExpectations(suite.T())
}

func TestAccessResolverTestSuite(t *testing.T) {
	suite.Run(t, new(AccessResolverTestSuite))
}
