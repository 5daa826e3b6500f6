package specialorders

import (
	"context"

	"bagostock/internal/core/id"
	"bagostock/internal/core/types"
)

// Repository defines persistence for special orders.
type Repository interface {
	Insert(ctx context.Context, o *Order) error

	// List returns all orders with client and supplier contacts, newest first.
	List(ctx context.Context) ([]OrderRow, error)

	// Update overwrites all mutable fields. Returns not-found when no row
	// matches.
	Update(ctx context.Context, o *Order) error

	// UpdateStatus sets the status, optional cancellation reason and bumps
	// the status change timestamp.
	UpdateStatus(ctx context.Context, orderID id.ID, status Status, reason *string) (*Order, error)

	// GetClientPriceForUpdate reads the order's client price under a row
	// lock, guarding concurrent payment updates against lost writes.
	GetClientPriceForUpdate(ctx context.Context, orderID id.ID) (types.Money, error)

	// UpdatePayment writes the recomputed payment state.
	UpdatePayment(ctx context.Context, orderID id.ID, paid, remaining types.Money, status Status) (*Order, error)

	// Delete removes an order. Returns not-found when no row matches.
	Delete(ctx context.Context, orderID id.ID) error
}
