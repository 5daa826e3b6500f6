package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bagostock/internal/domain"
	"bagostock/internal/infrastructure/http/v1/dto"
)

// CatalogHandler provides generic HTTP handlers for catalog entities
// (suppliers and clients share the exact same surface).
type CatalogHandler[T domain.Validatable] struct {
	*BaseHandler
	service *domain.CatalogService[T]

	// Mapper functions
	mapCreate func(req dto.CreateCatalogRequest) T
	mapUpdate func(req dto.UpdateCatalogRequest, existing T) T
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler[T domain.Validatable](
	base *BaseHandler,
	service *domain.CatalogService[T],
	mapCreate func(req dto.CreateCatalogRequest) T,
	mapUpdate func(req dto.UpdateCatalogRequest, existing T) T,
) *CatalogHandler[T] {
	return &CatalogHandler[T]{
		BaseHandler: base,
		service:     service,
		mapCreate:   mapCreate,
		mapUpdate:   mapUpdate,
	}
}

// List handles GET /{entity} - list with filtering and pagination.
func (h *CatalogHandler[T]) List(c *gin.Context) {
	ctx := c.Request.Context()

	filter := domain.ListFilter{
		Search:  c.Query("search"),
		Limit:   h.ParseIntQuery(c, "limit", 50),
		Offset:  h.ParseIntQuery(c, "offset", 0),
		OrderBy: c.Query("orderBy"),
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ListResponse{
		Items:      result.Items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// Get handles GET /{entity}/:id - get single entity.
func (h *CatalogHandler[T]) Get(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, ok := h.ParseID(c)
	if !ok {
		return
	}

	entity, err := h.service.GetByID(ctx, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, entity)
}

// Create handles POST /{entity} - create new entity.
func (h *CatalogHandler[T]) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateCatalogRequest
	if !h.BindJSON(c, &req) {
		return
	}

	entity := h.mapCreate(req)
	if err := h.service.Create(ctx, entity); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, entity)
}

// Update handles PUT /{entity}/:id - update existing entity.
func (h *CatalogHandler[T]) Update(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, ok := h.ParseID(c)
	if !ok {
		return
	}

	var req dto.UpdateCatalogRequest
	if !h.BindJSON(c, &req) {
		return
	}

	existing, err := h.service.GetByID(ctx, entityID)
	if err != nil {
		h.Error(c, err)
		return
	}

	updated := h.mapUpdate(req, existing)
	if err := h.service.Update(ctx, updated); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, updated)
}

// Delete handles DELETE /{entity}/:id.
func (h *CatalogHandler[T]) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	entityID, ok := h.ParseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(ctx, entityID); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.SuccessResponse{Success: true, Message: "deleted"})
}

// RegisterRoutes registers the standard catalog CRUD surface.
func (h *CatalogHandler[T]) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.POST("", h.Create)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}
