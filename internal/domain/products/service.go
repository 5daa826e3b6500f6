package products

import (
	"context"
	"fmt"
	"strings"

	"bagostock/internal/core/apperror"
	"bagostock/internal/core/id"
	"bagostock/internal/core/tx"
	"bagostock/internal/core/types"
	"bagostock/pkg/logger"
)

// SupplierDirectory is the slice of the supplier catalog the validator needs:
// the set of known supplier ids, pre-fetched once per import call.
type SupplierDirectory interface {
	ListIDs(ctx context.Context) (map[id.ID]struct{}, error)
}

// BatchRequest is a manual multi-row insertion: shared product fields plus
// one raw IMEI per unit to create.
type BatchRequest struct {
	Brand         string
	Model         string
	Storage       *string
	Type          UnitType
	CartonQuality *string
	IMEIs         []string
	SalePrice     types.Money
	PurchasePrice types.Money
	SupplierID    id.ID
}

// RowFailure is a per-row rejection with its reason. Row is the source line
// for file imports, zero for manual batches.
type RowFailure struct {
	Row    int    `json:"row,omitempty"`
	IMEI   string `json:"imei"`
	Reason string `json:"error"`
}

// BatchResult partitions a batch call into created units and failed rows.
// Both can be non-empty in the same call: partial success is a designed
// outcome, not an accident.
type BatchResult struct {
	Created      []*Unit      `json:"successProducts"`
	Failed       []RowFailure `json:"failedProducts,omitempty"`
	SuccessCount int          `json:"successCount"`
}

// Service provides business logic for the unit store, including batch
// ingestion validation.
type Service struct {
	repo      Repository
	suppliers SupplierDirectory
	txManager tx.NestedManager
	rules     CatalogRules
}

// NewService creates a unit store service.
func NewService(repo Repository, suppliers SupplierDirectory, txManager tx.NestedManager, rules CatalogRules) *Service {
	return &Service{
		repo:      repo,
		suppliers: suppliers,
		txManager: txManager,
		rules:     rules,
	}
}

// List returns all units, newest first.
func (s *Service) List(ctx context.Context) ([]UnitRow, error) {
	return s.repo.List(ctx)
}

// GetByID returns one unit.
func (s *Service) GetByID(ctx context.Context, unitID id.ID) (*UnitRow, error) {
	return s.repo.GetByID(ctx, unitID)
}

// BatchCreate validates and commits a manual batch. Shared-field problems
// fail the whole call; per-row problems (IMEI shape, uniqueness, missing
// supplier) fail only their row. All successful rows commit in one
// transaction.
func (s *Service) BatchCreate(ctx context.Context, req BatchRequest) (*BatchResult, error) {
	if err := s.validateShared(req); err != nil {
		return nil, err
	}

	result := &BatchResult{}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, rawIMEI := range req.IMEIs {
			imei := NormalizeIMEI(strings.TrimSpace(rawIMEI))
			if !ValidIMEI(imei) {
				result.Failed = append(result.Failed, RowFailure{
					IMEI:   rawIMEI,
					Reason: "IMEI must contain exactly 6 digits after processing",
				})
				continue
			}

			unit := s.newUnit(req, imei)

			// Savepoint per row: a constraint violation rolls back this row
			// only, and later rows still observe earlier rows' inserts.
			insertErr := s.txManager.RunNested(ctx, func(ctx context.Context) error {
				return s.repo.Insert(ctx, unit)
			})
			if insertErr != nil {
				result.Failed = append(result.Failed, RowFailure{
					IMEI:   rawIMEI,
					Reason: rowFailureReason(insertErr),
				})
				continue
			}
			result.Created = append(result.Created, unit)
		}
		return nil
	})
	if err != nil {
		// Transaction-level failure: nothing was committed.
		return nil, err
	}
	result.SuccessCount = len(result.Created)

	logger.Info(ctx, "batch create finished",
		"created", len(result.Created), "failed", len(result.Failed))
	return result, nil
}

// validateShared checks the fields every row of a manual batch shares.
func (s *Service) validateShared(req BatchRequest) error {
	if strings.TrimSpace(req.Brand) == "" || strings.TrimSpace(req.Model) == "" {
		return apperror.NewValidation("brand, model, type, prices, supplier and at least one IMEI are required")
	}
	if len(req.IMEIs) == 0 {
		return apperror.NewValidation("at least one IMEI is required")
	}
	if id.IsNil(req.SupplierID) {
		return apperror.NewValidation("supplier is required").WithDetail("field", "supplierId")
	}
	if err := s.validateType(req.Type, req.Brand, req.CartonQuality); err != nil {
		return err
	}
	return s.validatePrices(req.SalePrice, req.PurchasePrice)
}

// validateType enforces the type enum and the iPhone quality policy.
func (s *Service) validateType(t UnitType, brand string, quality *string) error {
	if t != TypeCarton && t != TypeArrivage {
		return apperror.NewValidation("type must be CARTON or ARRIVAGE").
			WithDetail("field", "type").
			WithDetail("value", string(t))
	}

	q := ""
	if quality != nil {
		q = strings.TrimSpace(*quality)
	}

	if IsIPhone(brand) {
		switch t {
		case TypeCarton:
			if q == "" {
				return apperror.NewValidation("carton quality is required for iPhone CARTON units")
			}
			if !s.rules.ValidCartonQuality(q) {
				return apperror.NewValidation("invalid carton quality for iPhone CARTON (expected GW, ORG, ACTIVE, NO ACTIVE, ESIM ACTIVE or ESIM NO ACTIVE)").
					WithDetail("value", q)
			}
		case TypeArrivage:
			if q == "" {
				return apperror.NewValidation("arrivage quality (SM/MSG) is required for iPhone ARRIVAGE units")
			}
			if !s.rules.ValidArrivageQuality(q) {
				return apperror.NewValidation("invalid arrivage quality for iPhone ARRIVAGE (expected SM or MSG)").
					WithDetail("value", q)
			}
		}
		return nil
	}

	if q != "" {
		return apperror.NewValidation("carton quality only applies to iPhone units").
			WithDetail("value", q)
	}
	return nil
}

func (s *Service) validatePrices(sale, purchase types.Money) error {
	if !sale.GreaterThan(purchase) {
		return apperror.NewValidation("sale price must be strictly greater than purchase price").
			WithDetail("salePrice", sale.String()).
			WithDetail("purchasePrice", purchase.String())
	}
	return nil
}

func (s *Service) newUnit(req BatchRequest, imei string) *Unit {
	supplierID := req.SupplierID
	return &Unit{
		ID:            id.New(),
		Brand:         req.Brand,
		Model:         req.Model,
		Storage:       normalizeOptional(req.Storage),
		Type:          req.Type,
		CartonQuality: normalizeOptional(req.CartonQuality),
		IMEI:          imei,
		Quantity:      1,
		SalePrice:     req.SalePrice,
		PurchasePrice: req.PurchasePrice,
		Status:        StatusActive,
		SupplierID:    &supplierID,
	}
}

// UpdateRequest carries a full unit update. When AllSameProducts is set only
// the prices are written, propagated to every unit sharing the original
// unit's signature.
type UpdateRequest struct {
	Brand           string
	Model           string
	Storage         *string
	Type            UnitType
	CartonQuality   *string
	IMEI            string
	Quantity        int
	SalePrice       types.Money
	PurchasePrice   types.Money
	SupplierID      id.ID
	AllSameProducts bool
}

// Update modifies one unit, or the prices of its whole signature group.
// Editing a unit always puts it back in stock.
func (s *Service) Update(ctx context.Context, unitID id.ID, req UpdateRequest) ([]UnitRow, error) {
	imei := NormalizeIMEI(strings.TrimSpace(req.IMEI))

	if !req.AllSameProducts {
		if !ValidIMEI(imei) {
			return nil, apperror.NewValidation("IMEI must contain exactly 6 digits after processing").
				WithDetail("value", req.IMEI)
		}
		if err := s.validateType(req.Type, req.Brand, req.CartonQuality); err != nil {
			return nil, err
		}
	}

	var updated []UnitRow
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if req.AllSameProducts {
			original, err := s.repo.GetByID(ctx, unitID)
			if err != nil {
				return err
			}
			rows, err := s.repo.UpdatePricesBySignature(ctx, original.Signature(), req.SalePrice, req.PurchasePrice)
			if err != nil {
				return err
			}
			updated = rows
			return nil
		}

		supplierID := req.SupplierID
		unit := &Unit{
			ID:            unitID,
			Brand:         req.Brand,
			Model:         req.Model,
			Storage:       normalizeOptional(req.Storage),
			Type:          req.Type,
			CartonQuality: normalizeOptional(req.CartonQuality),
			IMEI:          imei,
			Quantity:      req.Quantity,
			SalePrice:     req.SalePrice,
			PurchasePrice: req.PurchasePrice,
			Status:        StatusActive,
			SupplierID:    &supplierID,
		}
		if err := s.repo.Update(ctx, unit); err != nil {
			return err
		}
		row, err := s.repo.GetByID(ctx, unitID)
		if err != nil {
			return err
		}
		updated = []UnitRow{*row}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes a unit unless a sale item references it.
func (s *Service) Delete(ctx context.Context, unitID id.ID) (*UnitRow, error) {
	var deleted *UnitRow
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		hasSales, err := s.repo.HasSales(ctx, unitID)
		if err != nil {
			return err
		}
		if hasSales {
			return apperror.NewConflict("unit is referenced by one or more sales; delete those sales first").
				WithDetail("id", unitID.String())
		}

		row, err := s.repo.GetByID(ctx, unitID)
		if err != nil {
			return err
		}
		if err := s.repo.Delete(ctx, unitID); err != nil {
			return err
		}
		deleted = row
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

// rowFailureReason flattens an insert error into the per-row message the
// caller reports back.
func rowFailureReason(err error) string {
	appErr, ok := apperror.AsAppError(err)
	if !ok {
		return fmt.Sprintf("internal error: %v", err)
	}
	switch appErr.Code {
	case apperror.CodeDuplicate:
		return "IMEI already exists for this product combination"
	case apperror.CodeForeignKeyViolation:
		return "supplier not found"
	case apperror.CodeCheckViolation:
		return appErr.Message
	default:
		return appErr.Message
	}
}

func normalizeOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
