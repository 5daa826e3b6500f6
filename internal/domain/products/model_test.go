package products

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"bagostock/internal/core/apperror"
	"bagostock/internal/core/id"
	"bagostock/internal/core/types"
)

func TestNormalizeIMEI(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"full 15-digit IMEI", "123456789012345", "012345"},
		{"12 digits keeps last 6", "123456789012", "789012"},
		{"exactly 6 digits unchanged", "654321", "654321"},
		{"shorter passes through", "999", "999"},
		{"empty passes through", "", ""},
		{"seven digits", "1234567", "234567"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeIMEI(tt.raw))
		})
	}
}

func TestValidIMEI(t *testing.T) {
	tests := []struct {
		imei string
		want bool
	}{
		{"123456", true},
		{"000000", true},
		{"999", false},
		{"1234567", false},
		{"12345a", false},
		{"", false},
		{" 12345", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidIMEI(tt.imei), "imei %q", tt.imei)
	}
}

func TestIsIPhone(t *testing.T) {
	assert.True(t, IsIPhone("iPhone"))
	assert.True(t, IsIPhone("IPHONE"))
	assert.True(t, IsIPhone("iphone"))
	assert.False(t, IsIPhone("Samsung"))
	assert.False(t, IsIPhone(""))
}

func TestUnitValidate(t *testing.T) {
	ctx := context.Background()

	valid := func() *Unit {
		supplierID := id.New()
		return &Unit{
			ID:            id.New(),
			Brand:         "iPhone",
			Model:         "13 PRO",
			Type:          TypeCarton,
			IMEI:          "123456",
			Quantity:      1,
			SalePrice:     types.MustMoney("900"),
			PurchasePrice: types.MustMoney("700"),
			Status:        StatusActive,
			SupplierID:    &supplierID,
		}
	}

	t.Run("valid unit", func(t *testing.T) {
		assert.NoError(t, valid().Validate(ctx))
	})

	t.Run("missing brand", func(t *testing.T) {
		u := valid()
		u.Brand = "  "
		err := u.Validate(ctx)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("missing model", func(t *testing.T) {
		u := valid()
		u.Model = ""
		assert.True(t, apperror.IsValidation(u.Validate(ctx)))
	})

	t.Run("bad type", func(t *testing.T) {
		u := valid()
		u.Type = "BOX"
		assert.True(t, apperror.IsValidation(u.Validate(ctx)))
	})

	t.Run("bad imei", func(t *testing.T) {
		u := valid()
		u.IMEI = "12345"
		assert.True(t, apperror.IsValidation(u.Validate(ctx)))
	})

	t.Run("negative quantity", func(t *testing.T) {
		u := valid()
		u.Quantity = -1
		assert.True(t, apperror.IsValidation(u.Validate(ctx)))
	})
}

func TestSignatureNullFields(t *testing.T) {
	storage := "128GB"
	a := &Unit{Brand: "iPhone", Model: "13 PRO", Storage: &storage, Type: TypeCarton}
	b := &Unit{Brand: "iPhone", Model: "13 PRO", Type: TypeCarton}

	assert.NotEqual(t, a.Signature(), b.Signature())
	assert.Equal(t, b.Signature(), (&Unit{Brand: "iPhone", Model: "13 PRO", Type: TypeCarton}).Signature())
}
