package products

import (
	"context"

	"bagostock/internal/core/id"
	"bagostock/internal/core/types"
)

// UnitRow is a Unit joined with its supplier's display name.
type UnitRow struct {
	Unit
	SupplierName *string `db:"supplier_name" json:"supplierName,omitempty"`
}

// Repository defines persistence for the unit store.
type Repository interface {
	// Insert stores a new unit. Unique, check and foreign key violations
	// come back as typed apperror values.
	Insert(ctx context.Context, u *Unit) error

	// GetByID retrieves a unit with its supplier name.
	GetByID(ctx context.Context, unitID id.ID) (*UnitRow, error)

	// List returns all units, newest first, with supplier names.
	List(ctx context.Context) ([]UnitRow, error)

	// Update overwrites all mutable fields of a unit.
	// Returns not-found when no row matches.
	Update(ctx context.Context, u *Unit) error

	// UpdatePricesBySignature sets sale and purchase price on every unit
	// sharing the signature, NULL-safe on storage and quality.
	// Returns the affected units.
	UpdatePricesBySignature(ctx context.Context, sig Signature, salePrice, purchasePrice types.Money) ([]UnitRow, error)

	// Delete removes a unit. Returns not-found when no row matches.
	Delete(ctx context.Context, unitID id.ID) error

	// HasSales reports whether any sale item references the unit.
	HasSales(ctx context.Context, unitID id.ID) (bool, error)

	// ExistsByIMEI reports whether any unit carries the normalized IMEI.
	ExistsByIMEI(ctx context.Context, imei string) (bool, error)

	// Reactivate puts a unit back in stock: status active, quantity 1,
	// date_added refreshed to now.
	Reactivate(ctx context.Context, unitID id.ID) error
}
