// Package order_repo provides PostgreSQL persistence for special orders.
package order_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"bagostock/internal/core/apperror"
	"bagostock/internal/core/id"
	"bagostock/internal/core/types"
	"bagostock/internal/domain/specialorders"
	"bagostock/internal/infrastructure/storage/postgres"
)

var _ specialorders.Repository = (*Repo)(nil)

// Repo stores special orders.
type Repo struct {
	txm *postgres.TxManager
}

func NewRepo(txm *postgres.TxManager) *Repo {
	return &Repo{txm: txm}
}

func (r *Repo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

const orderColumns = `o.id, o.client_id, o.supplier_id, o.brand, o.model,
	o.storage, o.type, o.carton_quality, o.imei, o.supplier_price,
	o.client_price, o.amount_paid, o.amount_remaining, o.order_date,
	o.status, o.cancellation_reason, o.status_changed_at`

func (r *Repo) Insert(ctx context.Context, o *specialorders.Order) error {
	data := postgres.StructToMap(o)

	sql, args, err := r.builder().
		Insert("special_orders").
		SetMap(data).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "special order")
	}
	return nil
}

// List returns all orders with client and supplier contacts, newest first.
func (r *Repo) List(ctx context.Context) ([]specialorders.OrderRow, error) {
	query := `SELECT ` + orderColumns + `,
			c.name AS client_name, c.phone AS client_phone,
			s.name AS supplier_name, s.phone AS supplier_phone
		FROM special_orders o
		JOIN clients c ON c.id = o.client_id
		JOIN suppliers s ON s.id = o.supplier_id
		ORDER BY o.order_date DESC, o.id DESC`

	var rows []specialorders.OrderRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, query); err != nil {
		return nil, fmt.Errorf("list special orders: %w", err)
	}
	return rows, nil
}

// Update overwrites all mutable fields of an order.
func (r *Repo) Update(ctx context.Context, o *specialorders.Order) error {
	sql, args, err := r.builder().
		Update("special_orders").
		SetMap(map[string]any{
			"client_id":           o.ClientID,
			"supplier_id":         o.SupplierID,
			"brand":               o.Brand,
			"model":               o.Model,
			"storage":             o.Storage,
			"type":                o.Type,
			"carton_quality":      o.CartonQuality,
			"imei":                o.IMEI,
			"supplier_price":      o.SupplierPrice,
			"client_price":        o.ClientPrice,
			"amount_paid":         o.AmountPaid,
			"amount_remaining":    o.AmountRemaining,
			"status":              o.Status,
			"cancellation_reason": o.CancellationReason,
			"status_changed_at":   squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": o.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "special order")
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("special order", o.ID.String())
	}
	return nil
}

// UpdateStatus sets the status and optional cancellation reason.
func (r *Repo) UpdateStatus(ctx context.Context, orderID id.ID, status specialorders.Status, reason *string) (*specialorders.Order, error) {
	query := `UPDATE special_orders AS o
		SET status = $2,
		    cancellation_reason = $3,
		    status_changed_at = NOW()
		WHERE o.id = $1
		RETURNING ` + orderColumns

	var row specialorders.Order
	err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &row, query, orderID, status, reason)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("special order", orderID.String())
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return &row, nil
}

// GetClientPriceForUpdate reads the client price under FOR UPDATE so two
// concurrent payment updates serialize instead of losing one.
func (r *Repo) GetClientPriceForUpdate(ctx context.Context, orderID id.ID) (types.Money, error) {
	query := `SELECT client_price FROM special_orders WHERE id = $1 FOR UPDATE`

	var price types.Money
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &price, query, orderID); err != nil {
		if pgxscan.NotFound(err) {
			return price, apperror.NewNotFound("special order", orderID.String())
		}
		return price, fmt.Errorf("lock order: %w", err)
	}
	return price, nil
}

// UpdatePayment writes the recomputed payment state.
func (r *Repo) UpdatePayment(ctx context.Context, orderID id.ID, paid, remaining types.Money, status specialorders.Status) (*specialorders.Order, error) {
	query := `UPDATE special_orders AS o
		SET amount_paid = $2,
		    amount_remaining = $3,
		    status = $4,
		    status_changed_at = NOW()
		WHERE o.id = $1
		RETURNING ` + orderColumns

	var row specialorders.Order
	err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &row, query, orderID, paid, remaining, status)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("special order", orderID.String())
		}
		return nil, fmt.Errorf("update order payment: %w", err)
	}
	return &row, nil
}

// Delete removes an order.
func (r *Repo) Delete(ctx context.Context, orderID id.ID) error {
	sql, args, err := r.builder().
		Delete("special_orders").
		Where(squirrel.Eq{"id": orderID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "special order")
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("special order", orderID.String())
	}
	return nil
}
