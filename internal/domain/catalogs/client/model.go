// Package client provides the Client catalog of retail customers.
package client

import (
	"context"
	"regexp"
	"strings"
	"time"

	"bagostock/internal/core/apperror"
	"bagostock/internal/core/id"
)

var phoneRE = regexp.MustCompile(`^\+?[0-9 ]{6,20}$`)

// Client represents a retail customer.
type Client struct {
	ID        id.ID     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// New creates a Client with a fresh identifier.
func New(name string, phone *string) *Client {
	return &Client{
		ID:        id.New(),
		Name:      name,
		Phone:     phone,
		CreatedAt: time.Now(),
	}
}

// Validate implements the Validatable interface.
func (c *Client) Validate(ctx context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("client name is required").
			WithDetail("field", "name")
	}
	if c.Phone != nil && *c.Phone != "" && !phoneRE.MatchString(*c.Phone) {
		return apperror.NewValidation("invalid phone format").
			WithDetail("field", "phone")
	}
	return nil
}
