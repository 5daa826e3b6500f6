package products

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"bagostock/internal/core/apperror"
	"bagostock/internal/core/id"
	"bagostock/internal/core/types"
	"bagostock/pkg/logger"
)

// Declared import schema. Headers are matched case-insensitively after
// trimming, and anything outside this set is a validation error rather than
// a silently ignored column.
var importColumns = map[string]bool{
	"brand":          true,
	"model":          true,
	"storage":        false,
	"type":           true,
	"carton_quality": false,
	"imei":           true,
	"sale_price":     true,
	"purchase_price": true,
	"supplier_id":    true,
}

// ImportResult reports a file import outcome.
type ImportResult struct {
	SuccessCount int          `json:"successCount"`
	Failed       []RowFailure `json:"failedProducts,omitempty"`
}

// importRow is one parsed data line addressed by declared column name.
type importRow struct {
	line   int
	values map[string]string
}

func (r importRow) get(col string) string {
	return strings.TrimSpace(r.values[col])
}

// Import reads a CSV stream and ingests its rows with the same per-row
// semantics as BatchCreate, plus the brand/model whitelist. The header must
// match the declared schema.
func (s *Service) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	rows, err := parseImportFile(r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperror.NewValidation("file contains no product rows")
	}

	// Supplier existence is checked in memory against one pre-fetched set,
	// not per-row queries.
	supplierIDs, err := s.suppliers.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load suppliers: %w", err)
	}

	result := &ImportResult{}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for _, row := range rows {
			unit, reason := s.validateImportRow(row, supplierIDs)
			if reason != "" {
				result.Failed = append(result.Failed, RowFailure{
					Row:    row.line,
					IMEI:   row.get("imei"),
					Reason: reason,
				})
				continue
			}

			insertErr := s.txManager.RunNested(ctx, func(ctx context.Context) error {
				return s.repo.Insert(ctx, unit)
			})
			if insertErr != nil {
				result.Failed = append(result.Failed, RowFailure{
					Row:    row.line,
					IMEI:   row.get("imei"),
					Reason: rowFailureReason(insertErr),
				})
				continue
			}
			result.SuccessCount++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "import finished",
		"created", result.SuccessCount, "failed", len(result.Failed))
	return result, nil
}

// parseImportFile reads the CSV and maps columns by the declared schema.
func parseImportFile(r io.Reader) ([]importRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, apperror.NewValidation("file is empty")
	}
	if err != nil {
		return nil, apperror.NewValidation("could not read file, check its format").
			WithDetail("cause", err.Error())
	}

	positions := make(map[string]int, len(header))
	for i, cell := range header {
		name := strings.ToLower(strings.TrimSpace(cell))
		if _, known := importColumns[name]; !known {
			return nil, apperror.NewValidation("unknown column in header").
				WithDetail("column", cell)
		}
		if _, dup := positions[name]; dup {
			return nil, apperror.NewValidation("duplicate column in header").
				WithDetail("column", cell)
		}
		positions[name] = i
	}
	for name, required := range importColumns {
		if !required {
			continue
		}
		if _, ok := positions[name]; !ok {
			return nil, apperror.NewValidation("missing required column").
				WithDetail("column", name)
		}
	}

	var rows []importRow
	line := 1 // header is line 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperror.NewValidation("could not read file, check its format").
				WithDetail("cause", err.Error())
		}
		line++

		values := make(map[string]string, len(positions))
		for name, pos := range positions {
			if pos < len(record) {
				values[name] = record[pos]
			}
		}
		rows = append(rows, importRow{line: line, values: values})
	}

	return rows, nil
}

// validateImportRow applies the full row policy and returns the unit to
// insert, or a rejection reason.
func (s *Service) validateImportRow(row importRow, supplierIDs map[id.ID]struct{}) (*Unit, string) {
	brand := row.get("brand")
	model := row.get("model")
	unitType := UnitType(row.get("type"))
	rawIMEI := row.get("imei")
	rawSale := row.get("sale_price")
	rawPurchase := row.get("purchase_price")
	rawSupplier := row.get("supplier_id")

	if brand == "" || model == "" || unitType == "" || rawIMEI == "" || rawSale == "" || rawPurchase == "" || rawSupplier == "" {
		return nil, "missing required fields (brand, model, type, imei, sale_price, purchase_price, supplier_id)"
	}

	imei := NormalizeIMEI(rawIMEI)
	if !ValidIMEI(imei) {
		return nil, fmt.Sprintf("IMEI %q invalid (must contain exactly 6 digits after processing)", rawIMEI)
	}

	salePrice, err := types.NewMoneyFromString(rawSale)
	if err != nil {
		return nil, "sale price or purchase price is not a number"
	}
	purchasePrice, err := types.NewMoneyFromString(rawPurchase)
	if err != nil {
		return nil, "sale price or purchase price is not a number"
	}
	if !salePrice.GreaterThan(purchasePrice) {
		return nil, "sale price cannot be lower than or equal to purchase price"
	}

	if !s.rules.KnownBrand(brand) {
		return nil, fmt.Sprintf("unknown brand %q", brand)
	}
	if !s.rules.KnownModel(brand, model) {
		return nil, fmt.Sprintf("model %q is not valid for brand %q", model, brand)
	}

	quality := row.get("carton_quality")
	var qualityPtr *string
	if quality != "" {
		qualityPtr = &quality
	}
	if err := s.validateType(unitType, brand, qualityPtr); err != nil {
		if appErr, ok := apperror.AsAppError(err); ok {
			return nil, appErr.Message
		}
		return nil, err.Error()
	}

	supplierID, err := id.Parse(rawSupplier)
	if err != nil {
		return nil, fmt.Sprintf("supplier id %q is not valid", rawSupplier)
	}
	if _, ok := supplierIDs[supplierID]; !ok {
		return nil, fmt.Sprintf("supplier id %q not found", rawSupplier)
	}

	var storagePtr *string
	if storage := row.get("storage"); storage != "" {
		storagePtr = &storage
	}

	return &Unit{
		ID:            id.New(),
		Brand:         brand,
		Model:         model,
		Storage:       storagePtr,
		Type:          unitType,
		CartonQuality: qualityPtr,
		IMEI:          imei,
		Quantity:      1,
		SalePrice:     salePrice,
		PurchasePrice: purchasePrice,
		Status:        StatusActive,
		SupplierID:    &supplierID,
	}, ""
}
