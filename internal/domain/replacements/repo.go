package replacements

import (
	"context"

	"bagostock/internal/core/id"
)

// Repository defines persistence for replacement events.
type Repository interface {
	// List returns all replacements, newest sent first.
	List(ctx context.Context) ([]Replacement, error)

	// GetByID retrieves a replacement.
	GetByID(ctx context.Context, replacementID id.ID) (*Replacement, error)

	// OriginalUnitID resolves the unit a replacement was opened for, through
	// its return event.
	OriginalUnitID(ctx context.Context, replacementID id.ID) (id.ID, error)

	// ResolvePending sets the resolution status, received date and optional
	// replacement unit link, but only while the row is still PENDING.
	// Returns not-found when the row does not exist or was already resolved.
	ResolvePending(ctx context.Context, replacementID id.ID, status ResolutionStatus, replacementUnitID *id.ID) (*Replacement, error)
}
