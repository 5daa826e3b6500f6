package products

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bagostock/internal/core/apperror"
	"bagostock/internal/core/id"
)

const importHeader = "brand,model,storage,type,carton_quality,imei,sale_price,purchase_price,supplier_id"

func TestImport_ValidFile(t *testing.T) {
	repo := newFakeRepo()
	supplierID := id.New()
	svc := newTestService(repo, supplierID)

	file := strings.Join([]string{
		importHeader,
		fmt.Sprintf("iPhone,13 PRO,128GB,CARTON,GW,123456789012345,900,700,%s", supplierID),
		fmt.Sprintf("Samsung,Galaxy S22,,ARRIVAGE,,111111,500,400,%s", supplierID),
	}, "\n")

	res, err := svc.Import(context.Background(), strings.NewReader(file))
	require.NoError(t, err)
	assert.Equal(t, 2, res.SuccessCount)
	assert.Empty(t, res.Failed)
	assert.Len(t, repo.units, 2)
}

func TestImport_HeaderValidation(t *testing.T) {
	supplierID := id.New()

	tests := []struct {
		name string
		file string
	}{
		{"empty file", ""},
		{"unknown column", "brand,model,type,imei,sale_price,purchase_price,supplier_id,color\niPhone,13 PRO,CARTON,111111,900,700,x,red"},
		{"duplicate column", "brand,brand,model,type,imei,sale_price,purchase_price,supplier_id\na,b,c,d,e,f,g,h"},
		{"missing required column", "brand,model,type,imei,sale_price,purchase_price\niPhone,13 PRO,CARTON,111111,900,700"},
		{"header only", importHeader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newFakeRepo(), supplierID)
			_, err := svc.Import(context.Background(), strings.NewReader(tt.file))
			assert.True(t, apperror.IsValidation(err), "want validation error, got %v", err)
		})
	}
}

func TestImport_RowFailures(t *testing.T) {
	supplierID := id.New()

	rows := []struct {
		name   string
		row    string
		reason string
	}{
		{
			"missing fields",
			",13 PRO,128GB,CARTON,GW,111111,900,700," + supplierID.String(),
			"missing required fields",
		},
		{
			"bad imei",
			"iPhone,13 PRO,128GB,CARTON,GW,12a456,900,700," + supplierID.String(),
			"invalid",
		},
		{
			"non numeric price",
			"iPhone,13 PRO,128GB,CARTON,GW,111111,abc,700," + supplierID.String(),
			"not a number",
		},
		{
			"sale below purchase",
			"iPhone,13 PRO,128GB,CARTON,GW,111111,700,900," + supplierID.String(),
			"cannot be lower",
		},
		{
			"unknown brand",
			"Nokia,3310,,CARTON,,111111,900,700," + supplierID.String(),
			"unknown brand",
		},
		{
			"model not in brand catalog",
			"iPhone,99 ULTRA,,CARTON,GW,111111,900,700," + supplierID.String(),
			"not valid for brand",
		},
		{
			"iPhone carton without quality",
			"iPhone,13 PRO,,CARTON,,111111,900,700," + supplierID.String(),
			"carton quality is required",
		},
		{
			"malformed supplier id",
			"iPhone,13 PRO,,CARTON,GW,111111,900,700,not-a-uuid",
			"not valid",
		},
		{
			"unknown supplier id",
			"iPhone,13 PRO,,CARTON,GW,111111,900,700," + id.New().String(),
			"not found",
		},
	}

	for _, tt := range rows {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(newFakeRepo(), supplierID)
			file := importHeader + "\n" + tt.row
			res, err := svc.Import(context.Background(), strings.NewReader(file))
			require.NoError(t, err)
			assert.Equal(t, 0, res.SuccessCount)
			require.Len(t, res.Failed, 1)
			assert.Equal(t, 2, res.Failed[0].Row)
			assert.Contains(t, res.Failed[0].Reason, tt.reason)
		})
	}
}

func TestImport_PartialSuccess(t *testing.T) {
	repo := newFakeRepo()
	supplierID := id.New()
	svc := newTestService(repo, supplierID)

	file := strings.Join([]string{
		importHeader,
		fmt.Sprintf("iPhone,13 PRO,128GB,CARTON,GW,111111,900,700,%s", supplierID),
		fmt.Sprintf("iPhone,13 PRO,128GB,CARTON,GW,111111,900,700,%s", supplierID),
		fmt.Sprintf("iPhone,13 PRO,256GB,CARTON,ORG,222222,950,750,%s", supplierID),
	}, "\n")

	res, err := svc.Import(context.Background(), strings.NewReader(file))
	require.NoError(t, err)
	assert.Equal(t, 2, res.SuccessCount)
	require.Len(t, res.Failed, 1)
	assert.Equal(t, 3, res.Failed[0].Row)
	assert.Contains(t, res.Failed[0].Reason, "already exists")
}
