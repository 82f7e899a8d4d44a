package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/superhostingvip/portal_backend/internal/core/domain"
)

func TestParseRole(t *testing.T) {
	testCases := []struct {
		name     string
		claim    string
		expected domain.Role
	}{
		{"superadmin lowercase", "superadmin", domain.RoleSuperAdmin},
		{"superadmin uppercase", "SUPERADMIN", domain.RoleSuperAdmin},
		{"admin", "admin", domain.RoleAdmin},
		{"admin with whitespace", "  Admin  ", domain.RoleAdmin},
		{"user", "user", domain.RoleUser},
		{"empty defaults to user", "", domain.RoleUser},
		{"unknown defaults to user", "operator", domain.RoleUser},
		{"garbage defaults to user", "admin;drop table", domain.RoleUser},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, domain.ParseRole(tc.claim))
		})
	}
}

func TestRolePermissionsAreCumulative(t *testing.T) {
	userPerms := domain.RoleUser.Permissions()
	adminPerms := domain.RoleAdmin.Permissions()
	superPerms := domain.RoleSuperAdmin.Permissions()

	for _, p := range userPerms {
		assert.True(t, domain.RoleAdmin.HasPermission(p), "admin missing user permission %s", p)
	}
	for _, p := range adminPerms {
		assert.True(t, domain.RoleSuperAdmin.HasPermission(p), "superadmin missing admin permission %s", p)
	}
	assert.Greater(t, len(superPerms), len(adminPerms))
	assert.Greater(t, len(adminPerms), len(userPerms))
}

func TestHasPermission(t *testing.T) {
	assert.True(t, domain.RoleAdmin.HasPermission(domain.PermManageCurrency))
	assert.True(t, domain.RoleSuperAdmin.HasPermission(domain.PermManageCurrency))
	assert.False(t, domain.RoleUser.HasPermission(domain.PermManageCurrency))

	assert.True(t, domain.RoleSuperAdmin.HasPermission(domain.PermManageRoles))
	assert.False(t, domain.RoleAdmin.HasPermission(domain.PermManageRoles))
	assert.False(t, domain.RoleAdmin.HasPermission(domain.PermManagePermissions))
}

func TestAdminFlags(t *testing.T) {
	assert.False(t, domain.RoleUser.IsAdmin())
	assert.True(t, domain.RoleAdmin.IsAdmin())
	assert.True(t, domain.RoleSuperAdmin.IsAdmin())

	assert.False(t, domain.RoleAdmin.IsSuperAdmin())
	assert.True(t, domain.RoleSuperAdmin.IsSuperAdmin())
}
