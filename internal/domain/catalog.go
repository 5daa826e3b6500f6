// Package domain provides shared business logic interfaces and types.
package domain

import (
	"context"

	"bagostock/internal/core/id"
)

// Validatable is implemented by entities that can validate their own invariants.
type Validatable interface {
	Validate(ctx context.Context) error
}

// ListFilter describes common listing parameters for catalog entities.
type ListFilter struct {
	Search string
	IDs    []id.ID
	Limit  int
	Offset int

	// OrderBy accepts a column name, optionally prefixed with "-" for DESC.
	OrderBy string
}

// ListResult is a paginated catalog listing.
type ListResult[T any] struct {
	Items      []T
	TotalCount int
	Limit      int
	Offset     int
}

// CatalogRepository defines persistence operations shared by catalog entities.
type CatalogRepository[T Validatable] interface {
	Create(ctx context.Context, entity T) error
	Update(ctx context.Context, entity T) error
	GetByID(ctx context.Context, entityID id.ID) (T, error)
	GetByName(ctx context.Context, name string) (T, error)
	List(ctx context.Context, filter ListFilter) (ListResult[T], error)
	Exists(ctx context.Context, entityID id.ID) (bool, error)
	Delete(ctx context.Context, entityID id.ID) error
}
