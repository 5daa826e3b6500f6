// Package reports provides stock aggregation and the daily reconciliation
// engine behind the dashboard.
package reports

import (
	"time"

	"bagostock/internal/core/types"
	"bagostock/internal/domain/products"
)

// StockSummaryRow is the active on-hand count for one product signature.
type StockSummaryRow struct {
	products.Signature
	TotalInStock int `db:"total_in_stock" json:"totalInStock"`
}

// MovementCounters are one scope's stock level and same-day movement counts.
// The scope is either a type category or a single product signature.
type MovementCounters struct {
	CurrentStock   int `db:"current_stock" json:"currentStock"`
	AddedToday     int `db:"added_today" json:"addedToday"`
	SoldToday      int `db:"sold_today" json:"soldToday"`
	ReturnedToday  int `db:"returned_today" json:"returnedToday"`
	GivenBackToday int `db:"given_back_today" json:"givenBackToday"`
}

// SignatureMovement is MovementCounters keyed by product signature.
type SignatureMovement struct {
	products.Signature
	MovementCounters
}

// DailyComparisonRow is one signature's reconciled line in the daily report.
type DailyComparisonRow struct {
	products.Signature
	CurrentStock   int `json:"currentStock"`
	YesterdayStock int `json:"yesterdayStock"`
	AddedToday     int `json:"addedToday"`
	SoldToday      int `json:"soldToday"`
	ReturnedToday  int `json:"returnedToday"`
	GivenBackToday int `json:"givenBackToday"`
}

// LifetimeTotals are the all-time counters on the dashboard.
type LifetimeTotals struct {
	TotalSold           int `db:"total_sold" json:"totalSold"`
	TotalReturned       int `db:"total_returned" json:"totalReturned"`
	TotalSentToSupplier int `db:"total_sent_to_supplier" json:"totalSentToSupplier"`
	TotalGivenBack      int `db:"total_given_back" json:"totalGivenBack"`
}

// InvoiceTotals aggregate sale items through invoices dated today. This axis
// keys on the invoice date, not the sale date, so it is reported separately
// from the sold-today counters.
type InvoiceTotals struct {
	Count  int         `db:"count" json:"count"`
	Amount types.Money `db:"amount" json:"amount"`
}

// DashboardStats is the full dashboard payload. All counters are computed
// against a single captured day.
type DashboardStats struct {
	Day time.Time `json:"day"`

	TotalCartons        int `json:"totalCartons"`
	TotalArrivage       int `json:"totalArrivage"`
	TotalSold           int `json:"totalSold"`
	TotalReturned       int `json:"totalReturned"`
	TotalSentToSupplier int `json:"totalSentToSupplier"`
	TotalGivenBack      int `json:"totalGivenBack"`

	AddedTodayCarton       int `json:"addedTodayCarton"`
	AddedTodayArrivage     int `json:"addedTodayArrivage"`
	SoldTodayCarton        int `json:"soldTodayCarton"`
	SoldTodayArrivage      int `json:"soldTodayArrivage"`
	ReturnedTodayCarton    int `json:"returnedTodayCarton"`
	ReturnedTodayArrivage  int `json:"returnedTodayArrivage"`
	GivenBackTodayCarton   int `json:"givenBackTodayCarton"`
	GivenBackTodayArrivage int `json:"givenBackTodayArrivage"`

	YesterdayStockCarton   int `json:"yesterdayStockCarton"`
	YesterdayStockArrivage int `json:"yesterdayStockArrivage"`

	InvoiceSalesCartonToday   InvoiceTotals `json:"invoiceSalesCartonToday"`
	InvoiceSalesArrivageToday InvoiceTotals `json:"invoiceSalesArrivageToday"`
}
