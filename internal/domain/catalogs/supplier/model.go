// Package supplier provides the Supplier catalog.
// Suppliers are the sources units are purchased from and where defective
// units are sent for repair or replacement.
package supplier

import (
	"context"
	"regexp"
	"strings"
	"time"

	"bagostock/internal/core/apperror"
	"bagostock/internal/core/id"
)

var phoneRE = regexp.MustCompile(`^\+?[0-9 ]{6,20}$`)

// Supplier represents a phone wholesaler.
type Supplier struct {
	ID        id.ID     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// New creates a Supplier with a fresh identifier.
func New(name string, phone *string) *Supplier {
	return &Supplier{
		ID:        id.New(),
		Name:      name,
		Phone:     phone,
		CreatedAt: time.Now(),
	}
}

// Validate implements the Validatable interface.
func (s *Supplier) Validate(ctx context.Context) error {
	if strings.TrimSpace(s.Name) == "" {
		return apperror.NewValidation("supplier name is required").
			WithDetail("field", "name")
	}
	if s.Phone != nil && *s.Phone != "" && !phoneRE.MatchString(*s.Phone) {
		return apperror.NewValidation("invalid phone format").
			WithDetail("field", "phone")
	}
	return nil
}
