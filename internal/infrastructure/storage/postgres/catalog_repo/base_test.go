package catalog_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bagostock/internal/core/apperror"
	"bagostock/internal/domain/catalogs/supplier"
)

func TestParseOrderBy(t *testing.T) {
	repo := NewBaseCatalogRepo[*supplier.Supplier](nil, "suppliers", "supplier",
		func() *supplier.Supplier { return &supplier.Supplier{} })

	tests := []struct {
		name    string
		orderBy string
		want    string
		wantErr bool
	}{
		{"default", "", "name ASC", false},
		{"ascending column", "created_at", "created_at ASC", false},
		{"descending column", "-name", "name DESC", false},
		{"unknown column rejected", "password", "", true},
		{"injection rejected", "name; DROP TABLE suppliers", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.parseOrderBy(tt.orderBy)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperror.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectColumnsFromTags(t *testing.T) {
	repo := NewBaseCatalogRepo[*supplier.Supplier](nil, "suppliers", "supplier",
		func() *supplier.Supplier { return &supplier.Supplier{} })

	assert.Equal(t, []string{"id", "name", "phone", "created_at"}, repo.selectCols)

	sql, _, err := repo.baseSelect().ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id, name, phone, created_at FROM suppliers", sql)
}
