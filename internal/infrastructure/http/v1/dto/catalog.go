package dto

// CreateCatalogRequest creates a supplier or client.
type CreateCatalogRequest struct {
	Name  string  `json:"name" binding:"required"`
	Phone *string `json:"phone"`
}

// UpdateCatalogRequest rewrites a supplier or client.
type UpdateCatalogRequest struct {
	Name  string  `json:"name" binding:"required"`
	Phone *string `json:"phone"`
}
