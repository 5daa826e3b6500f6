package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"bagostock/internal/core/apperror"
	"bagostock/internal/core/id"
	"bagostock/internal/domain/replacements"
	"bagostock/internal/infrastructure/http/v1/dto"
)

// ReplacementHandler handles supplier round-trip endpoints.
type ReplacementHandler struct {
	*BaseHandler
	service *replacements.Service
}

// NewReplacementHandler creates a new replacement handler.
func NewReplacementHandler(base *BaseHandler, service *replacements.Service) *ReplacementHandler {
	return &ReplacementHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /remplacements
func (h *ReplacementHandler) List(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rows)
}

// Get handles GET /remplacements/:id
func (h *ReplacementHandler) Get(c *gin.Context) {
	replacementID, ok := h.ParseID(c)
	if !ok {
		return
	}

	row, err := h.service.GetByID(c.Request.Context(), replacementID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, row)
}

// ReceiveFromSupplier handles POST /remplacements/receive-from-supplier.
// Repaired puts the original unit back in stock; replaced registers a brand
// new unit. Either way the replacement row is resolved exactly once.
func (h *ReplacementHandler) ReceiveFromSupplier(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ReceiveFromSupplierRequest
	if !h.BindJSON(c, &req) {
		return
	}

	replacementID, err := id.Parse(req.RemplacerID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid replacement id").
			WithDetail("remplacerId", req.RemplacerID))
		return
	}

	result, err := h.service.Resolve(ctx, replacementID,
		replacements.Outcome(req.ResolutionType), req.ToNewUnitDetails())
	if err != nil {
		h.Error(c, err)
		return
	}

	resp := dto.ReceiveFromSupplierResponse{
		Message:     fmt.Sprintf("unit marked as %s by supplier", req.ResolutionType),
		Replacement: result.Replacement,
	}
	if result.NewUnitID != nil {
		s := result.NewUnitID.String()
		resp.NewUnitID = &s
	}

	h.OK(c, resp)
}

// RegisterRoutes registers replacement routes.
func (h *ReplacementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("/receive-from-supplier", h.ReceiveFromSupplier)
}
