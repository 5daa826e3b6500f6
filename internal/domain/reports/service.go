package reports

import (
	"context"
	"fmt"
	"time"

	"bagostock/internal/core/tx"
	"bagostock/internal/domain/products"
)

// Service is the daily reconciliation engine. Both the dashboard and the
// daily comparison report run through it, so the arithmetic lives in exactly
// one place.
type Service struct {
	repo      Repository
	txManager tx.ReadOnlyManager

	// now is swappable for tests.
	now func() time.Time
}

// NewService creates a reports service.
func NewService(repo Repository, txManager tx.ReadOnlyManager) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		now:       time.Now,
	}
}

// YesterdayStock back-computes yesterday's stock from today's level and
// today's movements. Today's stock equals yesterday's minus what left
// (sales) plus what arrived (additions) minus what came back in (returns and
// give-backs), solved for yesterday. The floor absorbs events recorded
// across a day boundary; a negative result is data skew, not an error.
func YesterdayStock(c MovementCounters) int {
	yesterday := c.CurrentStock + c.SoldToday - c.AddedToday + c.ReturnedToday + c.GivenBackToday
	if yesterday < 0 {
		return 0
	}
	return yesterday
}

// StockSummary returns active stock per product signature.
func (s *Service) StockSummary(ctx context.Context) ([]StockSummaryRow, error) {
	var rows []StockSummaryRow
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		rows, err = s.repo.StockSummary(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("stock summary: %w", err)
	}
	return rows, nil
}

// DashboardStats computes the full dashboard payload. The whole aggregation
// runs in one read-only transaction against one captured day, so the
// calendar cannot roll over between counters.
func (s *Service) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	day := s.now()
	stats := &DashboardStats{Day: day}

	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		carton, err := s.repo.TypeCounters(ctx, day, products.TypeCarton)
		if err != nil {
			return fmt.Errorf("carton counters: %w", err)
		}
		arrivage, err := s.repo.TypeCounters(ctx, day, products.TypeArrivage)
		if err != nil {
			return fmt.Errorf("arrivage counters: %w", err)
		}
		lifetime, err := s.repo.LifetimeTotals(ctx)
		if err != nil {
			return fmt.Errorf("lifetime totals: %w", err)
		}
		invoiceCarton, err := s.repo.InvoiceTotals(ctx, day, products.TypeCarton)
		if err != nil {
			return fmt.Errorf("carton invoice totals: %w", err)
		}
		invoiceArrivage, err := s.repo.InvoiceTotals(ctx, day, products.TypeArrivage)
		if err != nil {
			return fmt.Errorf("arrivage invoice totals: %w", err)
		}

		stats.TotalCartons = carton.CurrentStock
		stats.TotalArrivage = arrivage.CurrentStock
		stats.TotalSold = lifetime.TotalSold
		stats.TotalReturned = lifetime.TotalReturned
		stats.TotalSentToSupplier = lifetime.TotalSentToSupplier
		stats.TotalGivenBack = lifetime.TotalGivenBack

		stats.AddedTodayCarton = carton.AddedToday
		stats.AddedTodayArrivage = arrivage.AddedToday
		stats.SoldTodayCarton = carton.SoldToday
		stats.SoldTodayArrivage = arrivage.SoldToday
		stats.ReturnedTodayCarton = carton.ReturnedToday
		stats.ReturnedTodayArrivage = arrivage.ReturnedToday
		stats.GivenBackTodayCarton = carton.GivenBackToday
		stats.GivenBackTodayArrivage = arrivage.GivenBackToday

		stats.YesterdayStockCarton = YesterdayStock(carton)
		stats.YesterdayStockArrivage = YesterdayStock(arrivage)

		stats.InvoiceSalesCartonToday = invoiceCarton
		stats.InvoiceSalesArrivageToday = invoiceArrivage
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// DailyComparison reconciles every product signature with stock or movement
// today, reusing the same arithmetic as the dashboard.
func (s *Service) DailyComparison(ctx context.Context) ([]DailyComparisonRow, error) {
	day := s.now()

	var movements []SignatureMovement
	err := s.txManager.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		movements, err = s.repo.SignatureMovements(ctx, day)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("daily comparison: %w", err)
	}

	rows := make([]DailyComparisonRow, 0, len(movements))
	for _, m := range movements {
		rows = append(rows, DailyComparisonRow{
			Signature:      m.Signature,
			CurrentStock:   m.CurrentStock,
			YesterdayStock: YesterdayStock(m.MovementCounters),
			AddedToday:     m.AddedToday,
			SoldToday:      m.SoldToday,
			ReturnedToday:  m.ReturnedToday,
			GivenBackToday: m.GivenBackToday,
		})
	}
	return rows, nil
}
