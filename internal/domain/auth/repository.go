package auth

import (
	"context"
)

// Repository defines persistence for users.
type Repository interface {
	// GetByUsername retrieves a user by username.
	GetByUsername(ctx context.Context, username string) (*User, error)
}
