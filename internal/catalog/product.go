package catalog

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("product not found")
	// ErrConflict means another writer updated the row since it was read.
	ErrConflict = errors.New("product was modified concurrently")
)

type Product struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	PriceCents int64     `json:"price_cents"`
	Category   string    `json:"category"`
	Available  bool      `json:"available"`
	ImageURL   string    `json:"image_url"`
	Quantity   int       `json:"quantity"`
	Version    int64     `json:"version"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Validate returns field-level messages; an empty slice means the product is
// acceptable for create/update.
func (p *Product) Validate() []string {
	var errs []string
	if p.Name == "" {
		errs = append(errs, "name is required")
	}
	if p.Category == "" {
		errs = append(errs, "category is required")
	}
	if p.PriceCents < 0 {
		errs = append(errs, "price_cents must not be negative")
	}
	if p.Quantity < 0 {
		errs = append(errs, "quantity must not be negative")
	}
	return errs
}
