package handlers

import (
	"github.com/gin-gonic/gin"

	"bagostock/internal/domain/reports"
)

// ReportHandler handles the dashboard and reconciliation reports.
type ReportHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportHandler creates a new report handler.
func NewReportHandler(base *BaseHandler, service *reports.Service) *ReportHandler {
	return &ReportHandler{
		BaseHandler: base,
		service:     service,
	}
}

// DashboardStats handles GET /dashboard-stats
func (h *ReportHandler) DashboardStats(c *gin.Context) {
	stats, err := h.service.DashboardStats(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, stats)
}

// StockSummary handles GET /reports/stock-summary
func (h *ReportHandler) StockSummary(c *gin.Context) {
	rows, err := h.service.StockSummary(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rows)
}

// DailyComparison handles GET /reports/daily-stock-comparison
func (h *ReportHandler) DailyComparison(c *gin.Context) {
	rows, err := h.service.DailyComparison(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rows)
}

// RegisterRoutes registers report routes.
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard-stats", h.DashboardStats)
	rg.GET("/reports/stock-summary", h.StockSummary)
	rg.GET("/reports/daily-stock-comparison", h.DailyComparison)
}
