package dto

import (
	"bagostock/internal/core/types"
	"bagostock/internal/domain/products"
	"bagostock/internal/domain/replacements"
)

// NewUnitDetailsRequest is the unit the supplier sent back as a replacement.
type NewUnitDetailsRequest struct {
	Brand         string      `json:"brand"`
	Model         string      `json:"model"`
	Storage       *string     `json:"storage"`
	Type          string      `json:"type"`
	CartonQuality *string     `json:"cartonQuality"`
	IMEI          string      `json:"imei"`
	PurchasePrice types.Money `json:"purchasePrice"`
	SalePrice     types.Money `json:"salePrice"`
}

// ReceiveFromSupplierRequest for POST /remplacements/receive-from-supplier.
type ReceiveFromSupplierRequest struct {
	RemplacerID       string                 `json:"remplacerId" binding:"required"`
	ResolutionType    string                 `json:"resolutionType" binding:"required"`
	NewProductDetails *NewUnitDetailsRequest `json:"newProductDetails"`
}

// ToNewUnitDetails maps the nested details, nil when absent.
func (r ReceiveFromSupplierRequest) ToNewUnitDetails() *replacements.NewUnitDetails {
	if r.NewProductDetails == nil {
		return nil
	}
	d := r.NewProductDetails
	return &replacements.NewUnitDetails{
		Brand:         d.Brand,
		Model:         d.Model,
		Storage:       d.Storage,
		Type:          products.UnitType(d.Type),
		CartonQuality: d.CartonQuality,
		IMEI:          d.IMEI,
		PurchasePrice: d.PurchasePrice,
		SalePrice:     d.SalePrice,
	}
}

// ReceiveFromSupplierResponse reports the resolution outcome.
type ReceiveFromSupplierResponse struct {
	Message     string                    `json:"message"`
	Replacement *replacements.Replacement `json:"replacement"`
	NewUnitID   *string                   `json:"newProductId,omitempty"`
}
