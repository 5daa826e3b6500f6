package dto

import (
	"bagostock/internal/core/types"
	"bagostock/internal/domain/specialorders"
)

// CreateSpecialOrderRequest for POST /special-orders. Parties are referenced
// by name and resolved against their catalogs.
type CreateSpecialOrderRequest struct {
	ClientName    string      `json:"clientName" binding:"required"`
	SupplierName  string      `json:"supplierName" binding:"required"`
	Brand         string      `json:"brand" binding:"required"`
	Model         string      `json:"model" binding:"required"`
	Storage       *string     `json:"storage"`
	Type          string      `json:"type" binding:"required"`
	CartonQuality *string     `json:"cartonQuality"`
	IMEI          *string     `json:"imei"`
	SupplierPrice types.Money `json:"supplierPrice"`
	ClientPrice   types.Money `json:"clientPrice"`
	AmountPaid    types.Money `json:"amountPaid"`
}

// ToCreateRequest maps the request to the domain create.
func (r CreateSpecialOrderRequest) ToCreateRequest() specialorders.CreateRequest {
	return specialorders.CreateRequest{
		ClientName:    r.ClientName,
		SupplierName:  r.SupplierName,
		Brand:         r.Brand,
		Model:         r.Model,
		Storage:       r.Storage,
		Type:          r.Type,
		CartonQuality: r.CartonQuality,
		IMEI:          r.IMEI,
		SupplierPrice: r.SupplierPrice,
		ClientPrice:   r.ClientPrice,
		AmountPaid:    r.AmountPaid,
	}
}

// UpdateSpecialOrderRequest for PUT /special-orders/:id.
type UpdateSpecialOrderRequest struct {
	CreateSpecialOrderRequest
	Status             string  `json:"status"`
	CancellationReason *string `json:"cancellationReason"`
}

// ToUpdateRequest maps the request to the domain update.
func (r UpdateSpecialOrderRequest) ToUpdateRequest() specialorders.UpdateRequest {
	return specialorders.UpdateRequest{
		CreateRequest:      r.CreateSpecialOrderRequest.ToCreateRequest(),
		Status:             specialorders.Status(r.Status),
		CancellationReason: r.CancellationReason,
	}
}

// UpdateOrderStatusRequest for PUT /special-orders/:id/update-status.
type UpdateOrderStatusRequest struct {
	Status             string  `json:"status" binding:"required"`
	CancellationReason *string `json:"cancellationReason"`
}

// UpdateOrderPaymentRequest for PUT /special-orders/:id/update-payment.
// NewAmountPaid is the new total paid, not a delta.
type UpdateOrderPaymentRequest struct {
	NewAmountPaid types.Money `json:"newAmountPaid"`
}
