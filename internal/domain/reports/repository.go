package reports

import (
	"context"
	"time"

	"bagostock/internal/domain/products"
)

// Repository defines report data access. Implementations must scope all
// "today" filters to the day argument, never to their own clock, so one
// dashboard response is computed against a single captured day.
type Repository interface {
	// StockSummary returns active stock grouped by product signature.
	StockSummary(ctx context.Context) ([]StockSummaryRow, error)

	// TypeCounters returns the stock level and day's movement counts for
	// one type category.
	TypeCounters(ctx context.Context, day time.Time, unitType products.UnitType) (MovementCounters, error)

	// SignatureMovements returns per-signature stock and the day's
	// movements, omitting signatures with no stock and no movement.
	SignatureMovements(ctx context.Context, day time.Time) ([]SignatureMovement, error)

	// LifetimeTotals returns the all-time dashboard counters.
	LifetimeTotals(ctx context.Context) (LifetimeTotals, error)

	// InvoiceTotals aggregates sale items whose invoice is dated day.
	InvoiceTotals(ctx context.Context, day time.Time, unitType products.UnitType) (InvoiceTotals, error)
}
