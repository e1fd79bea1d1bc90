// Package auth holds the principal model, the canonical role set and session tokens.
package auth

import "strings"

// Role is a canonical role name.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "USER"
)

// Principal is the authenticated caller.
type Principal struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// IsAdmin is the one authorization predicate. Nil means anonymous.
func IsAdmin(p *Principal) bool {
	return p != nil && p.Role == RoleAdmin
}

// Roles maps raw role claims onto canonical roles.
type Roles struct {
	adminAliases map[string]struct{}
}

// NewRoles returns a Roles treating every alias as RoleAdmin. Matching is case-insensitive.
func NewRoles(adminAliases ...string) Roles {
	m := make(map[string]struct{}, len(adminAliases)+1)
	m[string(RoleAdmin)] = struct{}{}
	for _, a := range adminAliases {
		if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
			m[a] = struct{}{}
		}
	}
	return Roles{adminAliases: m}
}

// Normalize returns RoleAdmin for any admin alias and RoleUser for anything else.
func (r Roles) Normalize(raw string) Role {
	if _, ok := r.adminAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return RoleAdmin
	}
	return RoleUser
}
