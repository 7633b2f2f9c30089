package domain

import (
	"errors"
	"time"
)

// Role determines which routes and actions a session is permitted to use.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleClient   Role = "client"

	// RoleNone marks an account whose profile has no role assigned yet.
	// The gate middleware treats it exactly like an anonymous request.
	RoleNone Role = ""
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidRole = errors.New("invalid role")
var ErrInvalidAccessCode = errors.New("invalid access code")
var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrChallengeNotFound = errors.New("challenge not found")
var ErrForbidden = errors.New("access forbidden")
var ErrSelfDemotion = errors.New("cannot change own admin role")

// ValidRole reports whether r is one of the three assignable roles.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleEmployee || r == RoleClient
}

// PrivilegedRole reports whether r is gated behind an access code.
func PrivilegedRole(r Role) bool {
	return r == RoleAdmin || r == RoleEmployee
}

// UserProfile is an account together with its role document. A profile whose
// Role is RoleNone has been authenticated before but never assigned a role.
type UserProfile struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
