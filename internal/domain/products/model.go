// Package products provides the unit store: physical phone units tracked by
// IMEI through acquisition, stocking, sale, return and replacement states.
package products

import (
	"context"
	"regexp"
	"strings"
	"time"

	"bagostock/internal/core/apperror"
	"bagostock/internal/core/id"
	"bagostock/internal/core/types"
)

var imeiRE = regexp.MustCompile(`^\d{6}$`)

// UnitType classifies how a unit arrived in stock.
type UnitType string

const (
	TypeCarton   UnitType = "CARTON"
	TypeArrivage UnitType = "ARRIVAGE"
)

// UnitStatus tracks a unit through its lifecycle.
type UnitStatus string

const (
	StatusActive         UnitStatus = "active"
	StatusSold           UnitStatus = "sold"
	StatusReturned       UnitStatus = "returned"
	StatusSentToSupplier UnitStatus = "sent_to_supplier"
	StatusGivenBack      UnitStatus = "given_back"
	StatusReplaced       UnitStatus = "replaced"
)

// Unit is one physical phone or accessory instance.
type Unit struct {
	ID            id.ID       `db:"id" json:"id"`
	Brand         string      `db:"brand" json:"brand"`
	Model         string      `db:"model" json:"model"`
	Storage       *string     `db:"storage" json:"storage,omitempty"`
	Type          UnitType    `db:"type" json:"type"`
	CartonQuality *string     `db:"carton_quality" json:"cartonQuality,omitempty"`
	IMEI          string      `db:"imei" json:"imei"`
	Quantity      int         `db:"quantity" json:"quantity"`
	SalePrice     types.Money `db:"sale_price" json:"salePrice"`
	PurchasePrice types.Money `db:"purchase_price" json:"purchasePrice"`
	Status        UnitStatus  `db:"status" json:"status"`
	DateAdded     time.Time   `db:"date_added" json:"dateAdded"`
	SupplierID    *id.ID      `db:"supplier_id" json:"supplierId,omitempty"`
}

// Signature is the grouping key for aggregate stock. Two signatures with
// NULL storage or quality compare equal on those fields.
type Signature struct {
	Brand         string   `db:"brand" json:"brand"`
	Model         string   `db:"model" json:"model"`
	Storage       *string  `db:"storage" json:"storage,omitempty"`
	Type          UnitType `db:"type" json:"type"`
	CartonQuality *string  `db:"carton_quality" json:"cartonQuality,omitempty"`
}

// Signature returns the unit's product signature.
func (u *Unit) Signature() Signature {
	return Signature{
		Brand:         u.Brand,
		Model:         u.Model,
		Storage:       u.Storage,
		Type:          u.Type,
		CartonQuality: u.CartonQuality,
	}
}

// NormalizeIMEI keeps the last 6 characters of raw IMEIs longer than 6;
// shorter values pass through unchanged. Validation happens separately.
func NormalizeIMEI(raw string) string {
	if len(raw) > 6 {
		return raw[len(raw)-6:]
	}
	return raw
}

// ValidIMEI reports whether a normalized IMEI is exactly 6 ASCII digits.
func ValidIMEI(imei string) bool {
	return imeiRE.MatchString(imei)
}

// IsIPhone reports whether the unit's brand is iPhone, case-insensitively.
func IsIPhone(brand string) bool {
	return strings.EqualFold(brand, "iPhone")
}

// Validate implements the Validatable interface. It checks structural
// invariants only; whitelist checks live in the batch validator, which
// owns the catalog rules.
func (u *Unit) Validate(ctx context.Context) error {
	if strings.TrimSpace(u.Brand) == "" {
		return apperror.NewValidation("brand is required").WithDetail("field", "brand")
	}
	if strings.TrimSpace(u.Model) == "" {
		return apperror.NewValidation("model is required").WithDetail("field", "model")
	}
	if u.Type != TypeCarton && u.Type != TypeArrivage {
		return apperror.NewValidation("type must be CARTON or ARRIVAGE").
			WithDetail("field", "type").
			WithDetail("value", string(u.Type))
	}
	if !ValidIMEI(u.IMEI) {
		return apperror.NewValidation("IMEI must be exactly 6 digits after processing").
			WithDetail("field", "imei").
			WithDetail("value", u.IMEI)
	}
	if u.Quantity < 0 {
		return apperror.NewValidation("quantity cannot be negative").
			WithDetail("field", "quantity")
	}
	return nil
}
