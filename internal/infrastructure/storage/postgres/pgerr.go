package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"bagostock/internal/core/apperror"
)

// Postgres error codes we translate into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// MapError translates low-level pgx errors into apperror values.
// entity names the row being written, for duplicate messages.
// Unknown errors are wrapped as internal so handlers never leak SQL details.
func MapError(err error, entity string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NewNotFound(entity, nil)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperror.NewDuplicate(entity, constraintField(pgErr), pgErr.Detail).
				WithDetail("constraint", pgErr.ConstraintName)
		case pgCheckViolation:
			return apperror.NewCheckViolation(pgErr.ConstraintName)
		case pgForeignKeyViolation:
			return apperror.NewForeignKeyViolation(fmt.Sprintf("referenced %s does not exist", referencedEntity(pgErr))).
				WithDetail("constraint", pgErr.ConstraintName)
		}
	}

	return apperror.NewInternal(err)
}

// constraintField derives a user-facing field name from a unique constraint.
// Index names follow the <table>_<field>_... convention in our migrations.
func constraintField(pgErr *pgconn.PgError) string {
	switch pgErr.ConstraintName {
	case "units_active_identity_idx":
		return "imei"
	case "users_username_key":
		return "username"
	}
	return "identity"
}

// referencedEntity names the missing parent row for foreign key errors.
func referencedEntity(pgErr *pgconn.PgError) string {
	switch pgErr.ConstraintName {
	case "units_supplier_id_fkey", "special_orders_supplier_id_fkey":
		return "supplier"
	case "sales_client_id_fkey", "invoices_client_id_fkey", "special_orders_client_id_fkey":
		return "client"
	case "sale_items_sale_id_fkey":
		return "sale"
	case "sale_items_unit_id_fkey", "returns_unit_id_fkey", "replacements_replacement_unit_id_fkey":
		return "unit"
	case "replacements_return_id_fkey":
		return "return"
	}
	return "entity"
}

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// IsForeignKeyViolation reports whether err is a foreign key violation.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation
}
