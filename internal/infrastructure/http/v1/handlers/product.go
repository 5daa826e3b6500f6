package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bagostock/internal/core/apperror"
	"bagostock/internal/domain/products"
	"bagostock/internal/infrastructure/http/v1/dto"
)

// ProductHandler handles unit store endpoints, including batch ingestion.
type ProductHandler struct {
	*BaseHandler
	service *products.Service
}

// NewProductHandler creates a new product handler.
func NewProductHandler(base *BaseHandler, service *products.Service) *ProductHandler {
	return &ProductHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /products
func (h *ProductHandler) List(c *gin.Context) {
	rows, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, rows)
}

// Get handles GET /products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	unitID, ok := h.ParseID(c)
	if !ok {
		return
	}

	row, err := h.service.GetByID(c.Request.Context(), unitID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, row)
}

// BatchCreate handles POST /products/batch.
// 201 when every row succeeded, 207 on partial success, 400 when every row
// failed. The body always reports the per-row partitioning.
func (h *ProductHandler) BatchCreate(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.BatchCreateRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.service.BatchCreate(ctx, req.ToBatchRequest())
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(batchStatus(len(result.Created), len(result.Failed)), result)
}

// batchStatus picks the status code for a batch partitioning.
func batchStatus(created, failed int) int {
	switch {
	case failed == 0:
		return http.StatusCreated
	case created == 0:
		return http.StatusBadRequest
	default:
		return http.StatusMultiStatus
	}
}

// Import handles POST /products/import with a multipart "file" field.
func (h *ProductHandler) Import(c *gin.Context) {
	ctx := c.Request.Context()

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.Error(c, apperror.NewValidation("file is required").WithDetail("field", "file"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.Error(c, apperror.NewValidation("could not read file, check its format"))
		return
	}
	defer file.Close()

	result, err := h.service.Import(ctx, file)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, result)
}

// Update handles PUT /products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	unitID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateProductRequest
	if !h.BindJSON(c, &req) {
		return
	}

	updated, err := h.service.Update(ctx, unitID, req.ToUpdateRequest())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"updatedProducts": updated})
}

// Delete handles DELETE /products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	unitID, ok := h.ParseID(c)
	if !ok {
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), unitID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, gin.H{"deletedProduct": deleted})
}

// RegisterRoutes registers product routes.
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("/batch", h.BatchCreate)
	rg.POST("/import", h.Import)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}
