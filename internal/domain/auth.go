package domain

import "strings"

// Role is a coarse permission label attached to a user.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// AuthorityPrefix is prepended to a role to form its authority label.
const AuthorityPrefix = "ROLE_"

// Authority returns the authority label for the role, e.g. ROLE_ADMIN.
func (r Role) Authority() string {
	return AuthorityPrefix + string(r)
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

// Authorities maps roles to authority labels, preserving order.
func Authorities(roles []Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, r.Authority())
	}
	return out
}

// ParseRoles converts raw labels to roles. Labels are trimmed and upper-cased.
func ParseRoles(labels []string) []Role {
	if len(labels) == 0 {
		return nil
	}
	roles := make([]Role, 0, len(labels))
	for _, l := range labels {
		roles = append(roles, Role(strings.ToUpper(strings.TrimSpace(l))))
	}
	return roles
}

// RoleLabels converts roles back to raw strings for storage.
func RoleLabels(roles []Role) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, string(r))
	}
	return out
}
