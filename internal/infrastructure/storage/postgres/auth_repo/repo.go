// Package auth_repo provides PostgreSQL persistence for user accounts.
package auth_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"bagostock/internal/core/apperror"
	"bagostock/internal/domain/auth"
	"bagostock/internal/infrastructure/storage/postgres"
)

var _ auth.Repository = (*Repo)(nil)

// Repo stores user accounts.
type Repo struct {
	txm *postgres.TxManager
}

func NewRepo(txm *postgres.TxManager) *Repo {
	return &Repo{txm: txm}
}

// GetByUsername retrieves a user account.
func (r *Repo) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	query := `SELECT id, username, password_hash, role, created_at
		FROM users
		WHERE username = $1`

	var user auth.User
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &user, query, username); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("user", username)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// Create inserts a user account. Used by the admin seeding path.
func (r *Repo) Create(ctx context.Context, user *auth.User) error {
	query := `INSERT INTO users (id, username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.txm.GetQuerier(ctx).Exec(ctx, query,
		user.ID, user.Username, user.PasswordHash, user.Role, user.CreatedAt)
	if err != nil {
		return postgres.MapError(err, "user")
	}
	return nil
}
