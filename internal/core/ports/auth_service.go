package ports

import (
	"context"

	"github.com/freeedu/auth-service/internal/core/domain"
)

// RegisterInput carries the validated registration payload plus request
// metadata used for auditing.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	RemoteIP  string
}

// LoginInput carries the validated login payload plus request metadata.
type LoginInput struct {
	Email    string
	Password string
	RemoteIP string
}

// AuthResult is the outcome of a successful registration or login.
type AuthResult struct {
	Token string      `json:"token"`
	Role  domain.Role `json:"role"`
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
}
