// Package product_repo provides PostgreSQL persistence for the unit store.
package product_repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"bagostock/internal/core/apperror"
	"bagostock/internal/core/id"
	"bagostock/internal/core/types"
	"bagostock/internal/domain/products"
	"bagostock/internal/infrastructure/storage/postgres"
)

var _ products.Repository = (*Repo)(nil)

// Repo stores units.
type Repo struct {
	txm *postgres.TxManager
}

func NewRepo(txm *postgres.TxManager) *Repo {
	return &Repo{txm: txm}
}

func (r *Repo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

const unitRowColumns = `u.id, u.brand, u.model, u.storage, u.type, u.carton_quality,
	u.imei, u.quantity, u.sale_price, u.purchase_price, u.status, u.date_added,
	u.supplier_id, s.name AS supplier_name`

// Insert stores a new unit. Constraint violations come back as typed
// apperror values: duplicates for the active identity index, foreign key
// violations for unknown suppliers.
func (r *Repo) Insert(ctx context.Context, u *products.Unit) error {
	data := postgres.StructToMap(u)

	sql, args, err := r.builder().
		Insert("units").
		SetMap(data).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "unit")
	}
	return nil
}

// GetByID retrieves a unit with its supplier name.
func (r *Repo) GetByID(ctx context.Context, unitID id.ID) (*products.UnitRow, error) {
	query := `SELECT ` + unitRowColumns + `
		FROM units u
		LEFT JOIN suppliers s ON s.id = u.supplier_id
		WHERE u.id = $1`

	var row products.UnitRow
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &row, query, unitID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("unit", unitID.String())
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return &row, nil
}

// List returns all units newest first, with supplier names.
func (r *Repo) List(ctx context.Context) ([]products.UnitRow, error) {
	query := `SELECT ` + unitRowColumns + `
		FROM units u
		LEFT JOIN suppliers s ON s.id = u.supplier_id
		ORDER BY u.date_added DESC, u.id DESC`

	var rows []products.UnitRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, query); err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	return rows, nil
}

// Update overwrites all mutable fields of a unit.
func (r *Repo) Update(ctx context.Context, u *products.Unit) error {
	sql, args, err := r.builder().
		Update("units").
		SetMap(map[string]any{
			"brand":          u.Brand,
			"model":          u.Model,
			"storage":        u.Storage,
			"type":           u.Type,
			"carton_quality": u.CartonQuality,
			"imei":           u.IMEI,
			"quantity":       u.Quantity,
			"sale_price":     u.SalePrice,
			"purchase_price": u.PurchasePrice,
			"status":         u.Status,
			"supplier_id":    u.SupplierID,
		}).
		Where(squirrel.Eq{"id": u.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "unit")
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("unit", u.ID.String())
	}
	return nil
}

// UpdatePricesBySignature sets sale and purchase price on every unit sharing
// the signature. NULL storage and quality match only NULL.
func (r *Repo) UpdatePricesBySignature(ctx context.Context, sig products.Signature, salePrice, purchasePrice types.Money) ([]products.UnitRow, error) {
	query := `UPDATE units SET sale_price = $1, purchase_price = $2
		WHERE brand = $3
		  AND model = $4
		  AND (storage = $5 OR (storage IS NULL AND $5::text IS NULL))
		  AND type = $6
		  AND (carton_quality = $7 OR (carton_quality IS NULL AND $7::text IS NULL))
		RETURNING id, brand, model, storage, type, carton_quality, imei, quantity,
			sale_price, purchase_price, status, date_added, supplier_id,
			NULL::text AS supplier_name`

	var rows []products.UnitRow
	err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, query,
		salePrice, purchasePrice, sig.Brand, sig.Model, sig.Storage, sig.Type, sig.CartonQuality)
	if err != nil {
		return nil, fmt.Errorf("update prices by signature: %w", err)
	}
	return rows, nil
}

// Delete removes a unit.
func (r *Repo) Delete(ctx context.Context, unitID id.ID) error {
	sql, args, err := r.builder().
		Delete("units").
		Where(squirrel.Eq{"id": unitID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "unit")
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("unit", unitID.String())
	}
	return nil
}

// HasSales reports whether any sale item references the unit.
func (r *Repo) HasSales(ctx context.Context, unitID id.ID) (bool, error) {
	var one int
	err := r.txm.GetQuerier(ctx).
		QueryRow(ctx, `SELECT 1 FROM sale_items WHERE unit_id = $1 LIMIT 1`, unitID).
		Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check unit sales: %w", err)
	}
	return true, nil
}

// ExistsByIMEI reports whether any unit, in any status, carries the IMEI.
func (r *Repo) ExistsByIMEI(ctx context.Context, imei string) (bool, error) {
	var one int
	err := r.txm.GetQuerier(ctx).
		QueryRow(ctx, `SELECT 1 FROM units WHERE imei = $1 LIMIT 1`, imei).
		Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check imei: %w", err)
	}
	return true, nil
}

// Reactivate puts a repaired unit back in stock. Refreshing date_added makes
// the unit count as added on the day it came back.
func (r *Repo) Reactivate(ctx context.Context, unitID id.ID) error {
	result, err := r.txm.GetQuerier(ctx).Exec(ctx,
		`UPDATE units SET status = 'active', quantity = 1, date_added = NOW() WHERE id = $1`,
		unitID)
	if err != nil {
		return postgres.MapError(err, "unit")
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("unit", unitID.String())
	}
	return nil
}
