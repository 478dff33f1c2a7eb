package models

import (
	"fmt"
	"strings"
)

// Role is the canonical role carried by users and tokens.
type Role string

const (
	RoleUser       Role = "USER"
	RoleStoreOwner Role = "STORE_OWNER"
	RoleAdmin      Role = "ADMIN"
)

// ParseRole normalizes a role string ("admin", " Store_Owner ") to the canonical enum.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleStoreOwner, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
