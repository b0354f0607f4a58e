package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleAuthorities(t *testing.T) {
	assert.Equal(t, "ROLE_ADMIN", RoleAdmin.Authority())
	assert.Equal(t, []string{"ROLE_USER", "ROLE_ADMIN"}, Authorities([]Role{RoleUser, RoleAdmin}))
	assert.Empty(t, Authorities(nil))
}

func TestParseRoles(t *testing.T) {
	assert.Nil(t, ParseRoles(nil))
	roles := ParseRoles([]string{" admin", "USER"})
	assert.Equal(t, []Role{RoleAdmin, RoleUser}, roles)
	assert.True(t, roles[0].Valid())
	assert.False(t, Role("ROOT").Valid())
	assert.Equal(t, []string{"ADMIN", "USER"}, RoleLabels(roles))
}

func TestUserHasRole(t *testing.T) {
	u := &User{Roles: []Role{RoleUser}}
	assert.True(t, u.HasRole(RoleUser))
	assert.False(t, u.HasRole(RoleAdmin))
}
