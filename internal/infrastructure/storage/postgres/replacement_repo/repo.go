// Package replacement_repo provides PostgreSQL persistence for supplier
// round-trip replacements.
package replacement_repo

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"bagostock/internal/core/apperror"
	"bagostock/internal/core/id"
	"bagostock/internal/domain/replacements"
	"bagostock/internal/infrastructure/storage/postgres"
)

var _ replacements.Repository = (*Repo)(nil)

// Repo stores replacement events.
type Repo struct {
	txm *postgres.TxManager
}

func NewRepo(txm *postgres.TxManager) *Repo {
	return &Repo{txm: txm}
}

const replacementColumns = `id, return_id, brand, model, storage, type,
	carton_quality, imei, date_sent_to_supplier, resolution_status,
	received_date, replacement_unit_id`

// List returns all replacements, newest sent first.
func (r *Repo) List(ctx context.Context) ([]replacements.Replacement, error) {
	query := `SELECT ` + replacementColumns + `
		FROM replacements
		ORDER BY date_sent_to_supplier DESC, id DESC`

	var rows []replacements.Replacement
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, query); err != nil {
		return nil, fmt.Errorf("list replacements: %w", err)
	}
	return rows, nil
}

// GetByID retrieves a replacement.
func (r *Repo) GetByID(ctx context.Context, replacementID id.ID) (*replacements.Replacement, error) {
	query := `SELECT ` + replacementColumns + ` FROM replacements WHERE id = $1`

	var row replacements.Replacement
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &row, query, replacementID); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("replacement", replacementID.String())
		}
		return nil, fmt.Errorf("get replacement: %w", err)
	}
	return &row, nil
}

// OriginalUnitID resolves the unit the replacement was opened for, through
// its return event.
func (r *Repo) OriginalUnitID(ctx context.Context, replacementID id.ID) (id.ID, error) {
	query := `SELECT rt.unit_id
		FROM replacements rp
		JOIN returns rt ON rt.id = rp.return_id
		WHERE rp.id = $1`

	var unitID id.ID
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &unitID, query, replacementID); err != nil {
		if pgxscan.NotFound(err) {
			return id.ID{}, apperror.NewNotFound("replacement", replacementID.String())
		}
		return id.ID{}, fmt.Errorf("resolve original unit: %w", err)
	}
	return unitID, nil
}

// ResolvePending sets the resolution while the row is still PENDING. The
// status guard in the WHERE clause makes a second resolution attempt scan
// zero rows, which comes back as not-found.
func (r *Repo) ResolvePending(ctx context.Context, replacementID id.ID, status replacements.ResolutionStatus, replacementUnitID *id.ID) (*replacements.Replacement, error) {
	query := `UPDATE replacements
		SET resolution_status = $2,
		    received_date = NOW(),
		    replacement_unit_id = $3
		WHERE id = $1
		  AND resolution_status = 'PENDING'
		RETURNING ` + replacementColumns

	var row replacements.Replacement
	err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &row, query, replacementID, status, replacementUnitID)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("pending replacement", replacementID.String())
		}
		return nil, fmt.Errorf("resolve replacement: %w", err)
	}
	return &row, nil
}
