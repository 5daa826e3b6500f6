package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bagostock/internal/core/apperror"
)

func TestMapError(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, MapError(nil, "unit"))
	})

	t.Run("no rows becomes not found", func(t *testing.T) {
		err := MapError(pgx.ErrNoRows, "unit")
		assert.True(t, apperror.IsNotFound(err))
	})

	t.Run("unique violation becomes duplicate", func(t *testing.T) {
		pgErr := &pgconn.PgError{
			Code:           pgUniqueViolation,
			ConstraintName: "units_active_identity_idx",
		}
		err := MapError(pgErr, "unit")
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
		assert.Equal(t, "units_active_identity_idx", appErr.Details["constraint"])
	})

	t.Run("check violation", func(t *testing.T) {
		pgErr := &pgconn.PgError{
			Code:           pgCheckViolation,
			ConstraintName: "units_quantity_check",
		}
		err := MapError(pgErr, "unit")
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeCheckViolation, appErr.Code)
	})

	t.Run("foreign key violation names the parent", func(t *testing.T) {
		pgErr := &pgconn.PgError{
			Code:           pgForeignKeyViolation,
			ConstraintName: "units_supplier_id_fkey",
		}
		err := MapError(pgErr, "unit")
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeForeignKeyViolation, appErr.Code)
		assert.Contains(t, appErr.Message, "supplier")
	})

	t.Run("wrapped pg errors are still mapped", func(t *testing.T) {
		pgErr := &pgconn.PgError{Code: pgUniqueViolation}
		err := MapError(fmt.Errorf("insert unit: %w", pgErr), "unit")
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
	})

	t.Run("unknown errors become internal", func(t *testing.T) {
		err := MapError(errors.New("connection reset"), "unit")
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeInternal, appErr.Code)
	})
}

func TestViolationPredicates(t *testing.T) {
	unique := &pgconn.PgError{Code: pgUniqueViolation}
	fk := &pgconn.PgError{Code: pgForeignKeyViolation}

	assert.True(t, IsUniqueViolation(unique))
	assert.False(t, IsUniqueViolation(fk))
	assert.False(t, IsUniqueViolation(errors.New("other")))

	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsForeignKeyViolation(unique))
	assert.False(t, IsForeignKeyViolation(nil))
}
