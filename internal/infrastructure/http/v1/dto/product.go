package dto

import (
	"bagostock/internal/core/id"
	"bagostock/internal/core/types"
	"bagostock/internal/domain/products"
)

// BatchCreateRequest for POST /products/batch: shared product fields plus one
// raw IMEI per unit.
type BatchCreateRequest struct {
	Brand         string      `json:"brand" binding:"required"`
	Model         string      `json:"model" binding:"required"`
	Storage       *string     `json:"storage"`
	Type          string      `json:"type" binding:"required"`
	CartonQuality *string     `json:"cartonQuality"`
	IMEIs         []string    `json:"imeis" binding:"required"`
	SalePrice     types.Money `json:"salePrice"`
	PurchasePrice types.Money `json:"purchasePrice"`
	SupplierID    id.ID       `json:"supplierId"`
}

// ToBatchRequest maps the request to the domain batch.
func (r BatchCreateRequest) ToBatchRequest() products.BatchRequest {
	return products.BatchRequest{
		Brand:         r.Brand,
		Model:         r.Model,
		Storage:       r.Storage,
		Type:          products.UnitType(r.Type),
		CartonQuality: r.CartonQuality,
		IMEIs:         r.IMEIs,
		SalePrice:     r.SalePrice,
		PurchasePrice: r.PurchasePrice,
		SupplierID:    r.SupplierID,
	}
}

// UpdateProductRequest for PUT /products/:id. With AllSameProducts only the
// prices are written, propagated across the unit's signature group.
type UpdateProductRequest struct {
	Brand           string      `json:"brand" binding:"required"`
	Model           string      `json:"model" binding:"required"`
	Storage         *string     `json:"storage"`
	Type            string      `json:"type" binding:"required"`
	CartonQuality   *string     `json:"cartonQuality"`
	IMEI            string      `json:"imei" binding:"required"`
	Quantity        int         `json:"quantity"`
	SalePrice       types.Money `json:"salePrice"`
	PurchasePrice   types.Money `json:"purchasePrice"`
	SupplierID      id.ID       `json:"supplierId"`
	AllSameProducts bool        `json:"updateAllSameProducts"`
}

// ToUpdateRequest maps the request to the domain update.
func (r UpdateProductRequest) ToUpdateRequest() products.UpdateRequest {
	return products.UpdateRequest{
		Brand:           r.Brand,
		Model:           r.Model,
		Storage:         r.Storage,
		Type:            products.UnitType(r.Type),
		CartonQuality:   r.CartonQuality,
		IMEI:            r.IMEI,
		Quantity:        r.Quantity,
		SalePrice:       r.SalePrice,
		PurchasePrice:   r.PurchasePrice,
		SupplierID:      r.SupplierID,
		AllSameProducts: r.AllSameProducts,
	}
}
