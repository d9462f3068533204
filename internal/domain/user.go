package domain

import (
	"strings"
	"time"
)

// Role is the flat authorization role carried in tokens. Roles serialize as
// their canonical uppercase name, never an ordinal, so adding a role never
// shifts the meaning of existing tokens.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// ParseRole resolves a role by name, case-insensitively. Unknown values
// report false.
func ParseRole(value string) (Role, bool) {
	switch Role(strings.ToUpper(value)) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleUser:
		return RoleUser, true
	default:
		return "", false
	}
}

// User is the domain model for shop accounts. Username is the unique
// subject identifier embedded in tokens.
type User struct {
	ID           int64
	Username     string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
