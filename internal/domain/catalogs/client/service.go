package client

import (
	"context"

	"bagostock/internal/core/apperror"
	"bagostock/internal/core/tx"
	"bagostock/internal/domain"
)

// Service provides business logic for the Client catalog.
type Service struct {
	*domain.CatalogService[*Client]
	repo Repository
}

// NewService creates a Client service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService[*Client](repo, txManager, "client"),
		repo:           repo,
	}
}

// ResolveByName looks up a client by its exact name.
func (s *Service) ResolveByName(ctx context.Context, name string) (*Client, error) {
	cl, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("client", name)
		}
		return nil, err
	}
	return cl, nil
}
