package replacements

import (
	"context"
	"strings"

	"bagostock/internal/core/apperror"
	"bagostock/internal/core/id"
	"bagostock/internal/core/tx"
	"bagostock/internal/domain/products"
	"bagostock/pkg/logger"
)

// UnitStore is the slice of the unit store the resolver needs.
type UnitStore interface {
	Insert(ctx context.Context, u *products.Unit) error
	ExistsByIMEI(ctx context.Context, imei string) (bool, error)
	Reactivate(ctx context.Context, unitID id.ID) error
}

// Service resolves supplier round-trips.
type Service struct {
	repo      Repository
	units     UnitStore
	txManager tx.Manager
}

// NewService creates a replacements service.
func NewService(repo Repository, units UnitStore, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		units:     units,
		txManager: txManager,
	}
}

// List returns all replacements.
func (s *Service) List(ctx context.Context) ([]Replacement, error) {
	return s.repo.List(ctx)
}

// GetByID returns one replacement.
func (s *Service) GetByID(ctx context.Context, replacementID id.ID) (*Replacement, error) {
	return s.repo.GetByID(ctx, replacementID)
}

// ResolveResult reports what a resolution did.
type ResolveResult struct {
	Replacement *Replacement
	NewUnitID   *id.ID
}

// Resolve receives a unit back from the supplier. Repaired puts the original
// unit back in stock; replaced inserts a brand-new unit. Either way the
// replacement row flips out of PENDING exactly once: a repeat call loses the
// conditional update and gets not-found, so no duplicate unit is created.
// All writes commit in one transaction.
func (s *Service) Resolve(ctx context.Context, replacementID id.ID, outcome Outcome, details *NewUnitDetails) (*ResolveResult, error) {
	if outcome != OutcomeRepaired && outcome != OutcomeReplaced {
		return nil, apperror.NewValidation("resolution type must be 'repaired' or 'replaced'").
			WithDetail("value", string(outcome))
	}
	if outcome == OutcomeReplaced {
		if details == nil || details.Brand == "" || details.Model == "" || details.IMEI == "" {
			return nil, apperror.NewValidation("new unit details (brand, model, imei) are required for a replacement")
		}
	}

	result := &ResolveResult{}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var newUnitID *id.ID

		switch outcome {
		case OutcomeRepaired:
			originalID, err := s.repo.OriginalUnitID(ctx, replacementID)
			if err != nil {
				return err
			}
			// Reactivation refreshes date_added, so the repaired unit counts
			// as added today in the reconciliation arithmetic.
			if err := s.units.Reactivate(ctx, originalID); err != nil {
				return err
			}

		case OutcomeReplaced:
			unit, err := s.buildReplacementUnit(ctx, details)
			if err != nil {
				return err
			}
			if err := s.units.Insert(ctx, unit); err != nil {
				return err
			}
			newUnitID = &unit.ID
		}

		resolved, err := s.repo.ResolvePending(ctx, replacementID, outcome.Status(), newUnitID)
		if err != nil {
			return err
		}
		result.Replacement = resolved
		result.NewUnitID = newUnitID
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "replacement resolved",
		"replacement_id", replacementID, "outcome", string(outcome))
	return result, nil
}

func (s *Service) buildReplacementUnit(ctx context.Context, details *NewUnitDetails) (*products.Unit, error) {
	if details.Type != products.TypeCarton && details.Type != products.TypeArrivage {
		return nil, apperror.NewValidation("type must be CARTON or ARRIVAGE").
			WithDetail("value", string(details.Type))
	}

	imei := products.NormalizeIMEI(strings.TrimSpace(details.IMEI))
	if !products.ValidIMEI(imei) {
		return nil, apperror.NewValidation("IMEI must contain exactly 6 digits after processing").
			WithDetail("value", details.IMEI)
	}

	exists, err := s.units.ExistsByIMEI(ctx, imei)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.NewValidation("the new IMEI already exists in stock").
			WithDetail("imei", imei)
	}

	return &products.Unit{
		ID:            id.New(),
		Brand:         details.Brand,
		Model:         details.Model,
		Storage:       details.Storage,
		Type:          details.Type,
		CartonQuality: details.CartonQuality,
		IMEI:          imei,
		Quantity:      1,
		PurchasePrice: details.PurchasePrice,
		SalePrice:     details.SalePrice,
		Status:        products.StatusActive,
	}, nil
}
