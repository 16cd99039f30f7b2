package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the data-access contract for users
type Repository interface {
	// Create inserts a new user.
	// Returns ErrEmailAlreadyExists / ErrUsernameAlreadyExists on conflict.
	Create(ctx context.Context, u *User) (*User, error)

	// FindByID returns ErrUserNotFound when missing
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail is used for login; returns ErrUserNotFound when missing
	FindByEmail(ctx context.Context, email string) (*User, error)
}
