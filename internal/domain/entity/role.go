package entity

import "strings"

// Role is the portal role carried by a session.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// ParseRole normalizes a stored or requested role name. Unknown names are
// kept lowercased so comparisons stay case-insensitive.
func ParseRole(s string) Role {
	return Role(strings.ToLower(strings.TrimSpace(s)))
}

// Matches reports whether r equals other ignoring case.
func (r Role) Matches(other string) bool {
	return strings.EqualFold(string(r), strings.TrimSpace(other))
}

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}
