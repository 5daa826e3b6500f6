package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bagostock/internal/core/id"
	"bagostock/internal/domain/catalogs/supplier"
	"bagostock/internal/domain/products"
)

func TestExtractDBColumns_Supplier(t *testing.T) {
	cols := ExtractDBColumns[supplier.Supplier]()
	assert.Equal(t, []string{"id", "name", "phone", "created_at"}, cols)
}

func TestExtractDBColumns_EmbeddedStruct(t *testing.T) {
	cols := ExtractDBColumns[products.UnitRow]()

	for _, expected := range []string{"id", "brand", "model", "imei", "supplier_name"} {
		assert.Contains(t, cols, expected)
	}
}

func TestStructToMap_Unit(t *testing.T) {
	storage := "128GB"
	supplierID := id.New()
	added := time.Now().UTC()
	u := products.Unit{
		ID:         id.New(),
		Brand:      "iPhone",
		Model:      "13 PRO",
		Storage:    &storage,
		Type:       products.TypeCarton,
		IMEI:       "123456",
		Quantity:   1,
		Status:     products.StatusActive,
		DateAdded:  added,
		SupplierID: &supplierID,
	}

	m := StructToMap(u)

	assert.Equal(t, u.ID, m["id"])
	assert.Equal(t, "iPhone", m["brand"])
	assert.Equal(t, &storage, m["storage"])
	assert.Equal(t, products.TypeCarton, m["type"])
	assert.Equal(t, "123456", m["imei"])
	assert.Equal(t, &supplierID, m["supplier_id"])
	assert.Equal(t, added, m["date_added"])
}

func TestStructToMap_Pointer(t *testing.T) {
	s := supplier.New("TechSource", nil)
	m := StructToMap(s)

	assert.Equal(t, s.ID, m["id"])
	assert.Equal(t, "TechSource", m["name"])
	assert.Nil(t, m["phone"])
}
