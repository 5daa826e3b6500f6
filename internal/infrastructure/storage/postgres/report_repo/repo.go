// Package report_repo provides PostgreSQL aggregation queries for reports.
package report_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"

	"bagostock/internal/domain/products"
	"bagostock/internal/domain/reports"
	"bagostock/internal/infrastructure/storage/postgres"
)

var _ reports.Repository = (*Repo)(nil)

// Counter predicates, shared by the dashboard and the daily comparison:
// sold counts sum quantity_sold over active items keyed on the sale date,
// returns count only confirmed rows, give-backs sum quantity_sold keyed on
// the give-back date. Items that flipped to given_back drop out of sold.
const (
	stockSummaryQuery = `SELECT brand, model, storage, type, carton_quality,
			COALESCE(SUM(quantity), 0)::int AS total_in_stock
		FROM units
		WHERE status = 'active'
		GROUP BY brand, model, storage, type, carton_quality
		ORDER BY brand, model, storage NULLS FIRST`

	typeCountersQuery = `SELECT
		COALESCE((SELECT SUM(quantity) FROM units
			WHERE status = 'active' AND type = $2), 0)::int AS current_stock,
		(SELECT COUNT(*) FROM units
			WHERE date_added::date = $1::date AND type = $2)::int AS added_today,
		COALESCE((SELECT SUM(si.quantity_sold) FROM sale_items si
			JOIN sales s ON s.id = si.sale_id
			WHERE s.sale_date::date = $1::date
			  AND si.sale_status = 'active'
			  AND si.type = $2), 0)::int AS sold_today,
		(SELECT COUNT(*) FROM returns rt
			JOIN units u ON u.id = rt.unit_id
			WHERE rt.return_date::date = $1::date
			  AND rt.status = 'returned'
			  AND u.type = $2)::int AS returned_today,
		COALESCE((SELECT SUM(si.quantity_sold) FROM sale_items si
			WHERE si.sale_status = 'given_back'
			  AND si.given_back_date::date = $1::date
			  AND si.type = $2), 0)::int AS given_back_today`

	signatureMovementsQuery = `WITH sold AS (
			SELECT si.unit_id, SUM(si.quantity_sold) AS c
			FROM sale_items si
			JOIN sales s ON s.id = si.sale_id
			WHERE s.sale_date::date = $1::date
			  AND si.sale_status = 'active'
			GROUP BY si.unit_id
		), returned AS (
			SELECT rt.unit_id, COUNT(*) AS c
			FROM returns rt
			WHERE rt.return_date::date = $1::date
			  AND rt.status = 'returned'
			GROUP BY rt.unit_id
		), given_back AS (
			SELECT si.unit_id, SUM(si.quantity_sold) AS c
			FROM sale_items si
			WHERE si.sale_status = 'given_back'
			  AND si.given_back_date::date = $1::date
			GROUP BY si.unit_id
		)
		SELECT u.brand, u.model, u.storage, u.type, u.carton_quality,
			COALESCE(SUM(u.quantity) FILTER (WHERE u.status = 'active'), 0)::int AS current_stock,
			COUNT(*) FILTER (WHERE u.date_added::date = $1::date)::int AS added_today,
			COALESCE(SUM(sold.c), 0)::int AS sold_today,
			COALESCE(SUM(returned.c), 0)::int AS returned_today,
			COALESCE(SUM(given_back.c), 0)::int AS given_back_today
		FROM units u
		LEFT JOIN sold ON sold.unit_id = u.id
		LEFT JOIN returned ON returned.unit_id = u.id
		LEFT JOIN given_back ON given_back.unit_id = u.id
		GROUP BY u.brand, u.model, u.storage, u.type, u.carton_quality
		HAVING COALESCE(SUM(u.quantity) FILTER (WHERE u.status = 'active'), 0) > 0
		    OR COUNT(*) FILTER (WHERE u.date_added::date = $1::date) > 0
		    OR COALESCE(SUM(sold.c), 0) > 0
		    OR COALESCE(SUM(returned.c), 0) > 0
		    OR COALESCE(SUM(given_back.c), 0) > 0
		ORDER BY u.brand, u.model, u.storage NULLS FIRST`

	lifetimeTotalsQuery = `SELECT
		COALESCE((SELECT SUM(quantity_sold) FROM sale_items
			WHERE sale_status = 'active'), 0)::int AS total_sold,
		(SELECT COUNT(*) FROM returns
			WHERE status = 'returned')::int AS total_returned,
		(SELECT COUNT(*) FROM replacements)::int AS total_sent_to_supplier,
		COALESCE((SELECT SUM(quantity_sold) FROM sale_items
			WHERE sale_status = 'given_back'), 0)::int AS total_given_back`

	invoiceTotalsQuery = `SELECT
		COUNT(*)::int AS count,
		COALESCE(SUM(si.unit_sale_price * si.quantity_sold), 0) AS amount
		FROM sale_items si
		JOIN invoices i ON i.sale_id = si.sale_id
		WHERE i.invoice_date::date = $1::date
		  AND si.sale_status = 'active'
		  AND si.type = $2`
)

// Repo computes report aggregates. All queries take the report day as a
// parameter so one response is consistent across queries.
type Repo struct {
	txm *postgres.TxManager
}

func NewRepo(txm *postgres.TxManager) *Repo {
	return &Repo{txm: txm}
}

// StockSummary returns active stock grouped by product signature.
func (r *Repo) StockSummary(ctx context.Context) ([]reports.StockSummaryRow, error) {
	var rows []reports.StockSummaryRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, stockSummaryQuery); err != nil {
		return nil, fmt.Errorf("stock summary: %w", err)
	}
	return rows, nil
}

// TypeCounters returns the stock level and day's movement counts for one
// type category. Sold counts key on the sale date; given-back counts key on
// the give-back date.
func (r *Repo) TypeCounters(ctx context.Context, day time.Time, unitType products.UnitType) (reports.MovementCounters, error) {
	var counters reports.MovementCounters
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &counters, typeCountersQuery, day, unitType); err != nil {
		return counters, fmt.Errorf("type counters: %w", err)
	}
	return counters, nil
}

// SignatureMovements returns per-signature stock and the day's movements.
// Signatures with neither stock nor movement are omitted. NULL storage and
// quality group together.
func (r *Repo) SignatureMovements(ctx context.Context, day time.Time) ([]reports.SignatureMovement, error) {
	var rows []reports.SignatureMovement
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, signatureMovementsQuery, day); err != nil {
		return nil, fmt.Errorf("signature movements: %w", err)
	}
	return rows, nil
}

// LifetimeTotals returns the all-time dashboard counters, computed from the
// event tables rather than unit statuses: a resolved replacement or a
// reactivated unit must not shrink its counter after the fact.
func (r *Repo) LifetimeTotals(ctx context.Context) (reports.LifetimeTotals, error) {
	var totals reports.LifetimeTotals
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &totals, lifetimeTotalsQuery); err != nil {
		return totals, fmt.Errorf("lifetime totals: %w", err)
	}
	return totals, nil
}

// InvoiceTotals aggregates active sale items whose invoice is dated day.
// The line type snapshot on sale_items keeps the totals correct even if the
// unit's type is edited later.
func (r *Repo) InvoiceTotals(ctx context.Context, day time.Time, unitType products.UnitType) (reports.InvoiceTotals, error) {
	var totals reports.InvoiceTotals
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &totals, invoiceTotalsQuery, day, unitType); err != nil {
		return totals, fmt.Errorf("invoice totals: %w", err)
	}
	return totals, nil
}
