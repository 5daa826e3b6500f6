package handlers

import (
	"github.com/gin-gonic/gin"

	"bagostock/internal/domain/specialorders"
	"bagostock/internal/infrastructure/http/v1/dto"
)

// SpecialOrderHandler handles special order endpoints.
type SpecialOrderHandler struct {
	*BaseHandler
	service *specialorders.Service
}

// NewSpecialOrderHandler creates a new special order handler.
func NewSpecialOrderHandler(base *BaseHandler, service *specialorders.Service) *SpecialOrderHandler {
	return &SpecialOrderHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /special-orders
func (h *SpecialOrderHandler) List(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rows)
}

// Create handles POST /special-orders
func (h *SpecialOrderHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateSpecialOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.service.Create(ctx, req.ToCreateRequest())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, order)
}

// Update handles PUT /special-orders/:id
func (h *SpecialOrderHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	orderID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateSpecialOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.service.Update(ctx, orderID, req.ToUpdateRequest())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, order)
}

// UpdateStatus handles PUT /special-orders/:id/update-status
func (h *SpecialOrderHandler) UpdateStatus(c *gin.Context) {
	ctx := c.Request.Context()

	orderID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateOrderStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.service.UpdateStatus(ctx, orderID,
		specialorders.Status(req.Status), req.CancellationReason)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, order)
}

// UpdatePayment handles PUT /special-orders/:id/update-payment.
// The body carries the new total paid amount, not a delta.
func (h *SpecialOrderHandler) UpdatePayment(c *gin.Context) {
	ctx := c.Request.Context()

	orderID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateOrderPaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order, err := h.service.UpdatePayment(ctx, orderID, req.NewAmountPaid)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, order)
}

// Delete handles DELETE /special-orders/:id
func (h *SpecialOrderHandler) Delete(c *gin.Context) {
	orderID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), orderID); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.SuccessResponse{Success: true, Message: "special order deleted"})
}

// RegisterRoutes registers special order routes.
func (h *SpecialOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.PUT("/:id/update-status", h.UpdateStatus)
	rg.PUT("/:id/update-payment", h.UpdatePayment)
	rg.DELETE("/:id", h.Delete)
}
