// Package replacements tracks defective units sent to a supplier and the
// round-trip resolution when they come back repaired or replaced.
package replacements

import (
	"time"

	"bagostock/internal/core/id"
	"bagostock/internal/core/types"
	"bagostock/internal/domain/products"
)

// ResolutionStatus tracks a replacement through its supplier round-trip.
type ResolutionStatus string

const (
	ResolutionPending  ResolutionStatus = "PENDING"
	ResolutionRepaired ResolutionStatus = "REPAIRED"
	ResolutionReplaced ResolutionStatus = "REPLACED"
)

// Outcome is the resolution requested by the caller.
type Outcome string

const (
	OutcomeRepaired Outcome = "repaired"
	OutcomeReplaced Outcome = "replaced"
)

// Status returns the stored resolution status for the outcome.
func (o Outcome) Status() ResolutionStatus {
	if o == OutcomeReplaced {
		return ResolutionReplaced
	}
	return ResolutionRepaired
}

// Replacement is one unit's supplier round-trip. It snapshots the product
// signature at send time, so the listing survives later unit edits.
type Replacement struct {
	ID                 id.ID             `db:"id" json:"id"`
	ReturnID           id.ID             `db:"return_id" json:"returnId"`
	Brand              string            `db:"brand" json:"brand"`
	Model              string            `db:"model" json:"model"`
	Storage            *string           `db:"storage" json:"storage,omitempty"`
	Type               *products.UnitType `db:"type" json:"type,omitempty"`
	CartonQuality      *string           `db:"carton_quality" json:"cartonQuality,omitempty"`
	IMEI               *string           `db:"imei" json:"imei,omitempty"`
	DateSentToSupplier time.Time         `db:"date_sent_to_supplier" json:"dateSentToSupplier"`
	ResolutionStatus   ResolutionStatus  `db:"resolution_status" json:"resolutionStatus"`
	ReceivedDate       *time.Time        `db:"received_date" json:"receivedDate,omitempty"`
	ReplacementUnitID  *id.ID            `db:"replacement_unit_id" json:"replacementUnitId,omitempty"`
}

// NewUnitDetails describes the brand-new unit a supplier sends back when it
// replaces rather than repairs.
type NewUnitDetails struct {
	Brand         string
	Model         string
	Storage       *string
	Type          products.UnitType
	CartonQuality *string
	IMEI          string
	PurchasePrice types.Money
	SalePrice     types.Money
}
