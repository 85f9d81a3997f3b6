package product

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents a single catalog item. The catalog is supplied at
// process start and never mutated afterwards.
type Product struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Image    string
	Category string
	// Promo marks the product as promotional. This flag is the canonical
	// rule; see IsPromotional for the legacy id-substring shim.
	Promo bool
}

// IsPromotional reports whether the product belongs to the promotions view.
// Legacy catalog rows encode eligibility by embedding "promo" in the id
// instead of setting the flag, so both conventions are honoured.
func (p Product) IsPromotional() bool {
	return p.Promo || strings.Contains(strings.ToLower(p.ID), "promo")
}

// Repository defines read operations for the product catalog.
type Repository interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
}
