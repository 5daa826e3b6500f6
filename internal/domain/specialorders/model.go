// Package specialorders handles client pre-orders sourced on demand from a
// supplier, with partial payment tracking.
package specialorders

import (
	"context"
	"strings"
	"time"

	"bagostock/internal/core/apperror"
	"bagostock/internal/core/id"
	"bagostock/internal/core/types"
	"bagostock/internal/domain/products"
)

// Status values follow the shop's own vocabulary.
type Status string

const (
	StatusPending       Status = "en_attente"
	StatusPartiallyPaid Status = "paiement_partiel"
	StatusSold          Status = "vendu"
	StatusCancelled     Status = "annule"
)

// StatusForPayment derives the order status from the paid amount.
func StatusForPayment(paid, clientPrice types.Money) Status {
	switch {
	case paid.GreaterThanOrEqual(clientPrice):
		return StatusSold
	case paid.IsPositive():
		return StatusPartiallyPaid
	default:
		return StatusPending
	}
}

// Order is one special order.
type Order struct {
	ID                 id.ID             `db:"id" json:"id"`
	ClientID           id.ID             `db:"client_id" json:"clientId"`
	SupplierID         id.ID             `db:"supplier_id" json:"supplierId"`
	Brand              string            `db:"brand" json:"brand"`
	Model              string            `db:"model" json:"model"`
	Storage            *string           `db:"storage" json:"storage,omitempty"`
	Type               products.UnitType `db:"type" json:"type"`
	CartonQuality      *string           `db:"carton_quality" json:"cartonQuality,omitempty"`
	IMEI               *string           `db:"imei" json:"imei,omitempty"`
	SupplierPrice      types.Money       `db:"supplier_price" json:"supplierPrice"`
	ClientPrice        types.Money       `db:"client_price" json:"clientPrice"`
	AmountPaid         types.Money       `db:"amount_paid" json:"amountPaid"`
	AmountRemaining    types.Money       `db:"amount_remaining" json:"amountRemaining"`
	OrderDate          time.Time         `db:"order_date" json:"orderDate"`
	Status             Status            `db:"status" json:"status"`
	CancellationReason *string           `db:"cancellation_reason" json:"cancellationReason,omitempty"`
	StatusChangedAt    time.Time         `db:"status_changed_at" json:"statusChangedAt"`
}

// OrderRow is an Order joined with its client and supplier contact details.
type OrderRow struct {
	Order
	ClientName    string  `db:"client_name" json:"clientName"`
	ClientPhone   *string `db:"client_phone" json:"clientPhone,omitempty"`
	SupplierName  string  `db:"supplier_name" json:"supplierName"`
	SupplierPhone *string `db:"supplier_phone" json:"supplierPhone,omitempty"`
}

// Validate implements the Validatable interface.
func (o *Order) Validate(ctx context.Context) error {
	if strings.TrimSpace(o.Brand) == "" || strings.TrimSpace(o.Model) == "" {
		return apperror.NewValidation("brand and model are required")
	}
	if o.Type != products.TypeCarton && o.Type != products.TypeArrivage {
		return apperror.NewValidation("type must be CARTON or ARRIVAGE").
			WithDetail("value", string(o.Type))
	}
	if !o.ClientPrice.GreaterThan(o.SupplierPrice) {
		return apperror.NewValidation("client price must be strictly greater than supplier price").
			WithDetail("clientPrice", o.ClientPrice.String()).
			WithDetail("supplierPrice", o.SupplierPrice.String())
	}
	if o.AmountPaid.IsNegative() {
		return apperror.NewValidation("amount paid cannot be negative")
	}
	return nil
}
