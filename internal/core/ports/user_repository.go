package ports

import (
	"context"

	"github.com/freeedu/auth-service/internal/core/domain"
)

// UserRepository defines the persistence operations for user accounts,
// keyed by email.
type UserRepository interface {
	// FindByEmail returns the user with the given email, or
	// domain.ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// ExistsByEmail reports whether an account with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Create persists a new user and returns it with its assigned ID.
	// Returns domain.ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
