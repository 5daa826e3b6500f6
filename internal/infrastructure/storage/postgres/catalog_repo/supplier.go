package catalog_repo

import (
	"context"
	"fmt"

	"bagostock/internal/core/id"
	"bagostock/internal/domain/catalogs/supplier"
	"bagostock/internal/infrastructure/storage/postgres"
)

var _ supplier.Repository = (*SupplierRepo)(nil)

// SupplierRepo stores suppliers.
type SupplierRepo struct {
	*BaseCatalogRepo[*supplier.Supplier]
}

func NewSupplierRepo(txm *postgres.TxManager) *SupplierRepo {
	return &SupplierRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			"suppliers",
			"supplier",
			func() *supplier.Supplier { return &supplier.Supplier{} },
		),
	}
}

// ListIDs returns the set of all supplier IDs. Used to pre-validate
// supplier references during bulk product ingestion.
func (r *SupplierRepo) ListIDs(ctx context.Context) (map[id.ID]struct{}, error) {
	sql, args, err := r.Builder().
		Select("id").
		From("suppliers").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.txm.GetQuerier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list supplier ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[id.ID]struct{})
	for rows.Next() {
		var supplierID id.ID
		if err := rows.Scan(&supplierID); err != nil {
			return nil, fmt.Errorf("scan supplier id: %w", err)
		}
		ids[supplierID] = struct{}{}
	}
	return ids, rows.Err()
}
