package supplier

import (
	"context"

	"bagostock/internal/core/apperror"
	"bagostock/internal/core/tx"
	"bagostock/internal/domain"
)

// Service provides business logic for the Supplier catalog.
type Service struct {
	*domain.CatalogService[*Supplier]
	repo Repository
}

// NewService creates a Supplier service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService[*Supplier](repo, txManager, "supplier"),
		repo:           repo,
	}
}

// ResolveByName looks up a supplier by its exact name.
// Used by special orders, which reference suppliers by name on the wire.
func (s *Service) ResolveByName(ctx context.Context, name string) (*Supplier, error) {
	sup, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("supplier", name)
		}
		return nil, err
	}
	return sup, nil
}
