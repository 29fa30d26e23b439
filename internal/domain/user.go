package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of account roles. Handlers compare against these
// constants rather than raw strings.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleStore Role = "STORE"
	RoleUser  Role = "USER"
)

// ParseRole converts a wire-level role string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleStore, RoleUser:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// Valid reports whether the role is one of the known constants.
func (r Role) Valid() bool {
	_, err := ParseRole(string(r))
	return err == nil
}

// User represents an account record. PasswordHash is opaque to everything
// outside the auth package.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Address      string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
