package domain

import (
	"errors"
	"time"
)

// Role is the closed set of roles a user can hold. A role is attached at
// registration and immutable afterwards.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleStudent Role = "STUDENT"
)

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleStudent
}

// Authority returns the permission label derived from the role.
func (r Role) Authority() string {
	return "ROLE_" + string(r)
}

var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrEmailTaken = errors.New("email is already taken")
var ErrUserNotFound = errors.New("user not found")
var ErrTooManyAttempts = errors.New("too many login attempts")

// User models a registered account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
