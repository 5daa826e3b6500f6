package specialorders

import (
	"context"
	"time"

	"bagostock/internal/core/apperror"
	"bagostock/internal/core/id"
	"bagostock/internal/core/tx"
	"bagostock/internal/core/types"
	"bagostock/internal/domain/catalogs/client"
	"bagostock/internal/domain/catalogs/supplier"
	"bagostock/internal/domain/products"
)

// Service provides business logic for special orders. Clients and suppliers
// are referenced by name on the wire and resolved against their catalogs.
type Service struct {
	repo      Repository
	clients   *client.Service
	suppliers *supplier.Service
	txManager tx.Manager
}

// NewService creates a special orders service.
func NewService(repo Repository, clients *client.Service, suppliers *supplier.Service, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		clients:   clients,
		suppliers: suppliers,
		txManager: txManager,
	}
}

// List returns all orders.
func (s *Service) List(ctx context.Context) ([]OrderRow, error) {
	return s.repo.List(ctx)
}

// CreateRequest carries a new order keyed by party names.
type CreateRequest struct {
	ClientName    string
	SupplierName  string
	Brand         string
	Model         string
	Storage       *string
	Type          string
	CartonQuality *string
	IMEI          *string
	SupplierPrice types.Money
	ClientPrice   types.Money
	AmountPaid    types.Money
}

// Create registers a new special order. The initial status is derived from
// the amount already paid.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Order, error) {
	var order *Order
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		cl, err := s.clients.ResolveByName(ctx, req.ClientName)
		if err != nil {
			return err
		}
		sup, err := s.suppliers.ResolveByName(ctx, req.SupplierName)
		if err != nil {
			return err
		}

		now := time.Now()
		order = &Order{
			ID:              id.New(),
			ClientID:        cl.ID,
			SupplierID:      sup.ID,
			Brand:           req.Brand,
			Model:           req.Model,
			Storage:         req.Storage,
			Type:            products.UnitType(req.Type),
			CartonQuality:   req.CartonQuality,
			IMEI:            req.IMEI,
			SupplierPrice:   req.SupplierPrice,
			ClientPrice:     req.ClientPrice,
			AmountPaid:      req.AmountPaid,
			AmountRemaining: req.ClientPrice.Sub(req.AmountPaid),
			OrderDate:       now,
			Status:          StatusForPayment(req.AmountPaid, req.ClientPrice),
			StatusChangedAt: now,
		}
		if err := order.Validate(ctx); err != nil {
			return err
		}
		return s.repo.Insert(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateRequest carries a full order rewrite.
type UpdateRequest struct {
	CreateRequest
	Status             Status
	CancellationReason *string
}

// Update overwrites an order.
func (s *Service) Update(ctx context.Context, orderID id.ID, req UpdateRequest) (*Order, error) {
	var order *Order
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		cl, err := s.clients.ResolveByName(ctx, req.ClientName)
		if err != nil {
			return err
		}
		sup, err := s.suppliers.ResolveByName(ctx, req.SupplierName)
		if err != nil {
			return err
		}

		order = &Order{
			ID:                 orderID,
			ClientID:           cl.ID,
			SupplierID:         sup.ID,
			Brand:              req.Brand,
			Model:              req.Model,
			Storage:            req.Storage,
			Type:               products.UnitType(req.Type),
			CartonQuality:      req.CartonQuality,
			IMEI:               req.IMEI,
			SupplierPrice:      req.SupplierPrice,
			ClientPrice:        req.ClientPrice,
			AmountPaid:         req.AmountPaid,
			AmountRemaining:    req.ClientPrice.Sub(req.AmountPaid),
			Status:             req.Status,
			CancellationReason: req.CancellationReason,
		}
		if err := order.Validate(ctx); err != nil {
			return err
		}
		return s.repo.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus sets the status directly, for cancellations and manual fixes.
func (s *Service) UpdateStatus(ctx context.Context, orderID id.ID, status Status, reason *string) (*Order, error) {
	if status == "" {
		return nil, apperror.NewValidation("status is required")
	}
	var order *Order
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.repo.UpdateStatus(ctx, orderID, status, reason)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdatePayment records a new total paid amount. The client price is read
// under a row lock so two concurrent payments cannot both compute a state
// from the same stale value. Status derives from the new amount: fully paid
// orders become sold, zero drops back to pending.
func (s *Service) UpdatePayment(ctx context.Context, orderID id.ID, newAmountPaid types.Money) (*Order, error) {
	if newAmountPaid.IsNegative() {
		return nil, apperror.NewValidation("amount paid must be zero or positive").
			WithDetail("value", newAmountPaid.String())
	}

	var order *Order
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		clientPrice, err := s.repo.GetClientPriceForUpdate(ctx, orderID)
		if err != nil {
			return err
		}

		if newAmountPaid.GreaterThan(clientPrice) {
			return apperror.NewValidation("amount paid cannot exceed the order's client price").
				WithDetail("amountPaid", newAmountPaid.String()).
				WithDetail("clientPrice", clientPrice.String())
		}

		remaining := clientPrice.Sub(newAmountPaid)
		status := StatusForPayment(newAmountPaid, clientPrice)

		order, err = s.repo.UpdatePayment(ctx, orderID, newAmountPaid, remaining, status)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// Delete removes an order.
func (s *Service) Delete(ctx context.Context, orderID id.ID) error {
	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, orderID)
	})
}

