// Package memory implements the product catalog source backed by the
// embedded seed file. It is the default source: the catalog is static,
// small, and shipped with the binary.
package memory

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/midnightsystems/linkbio-api/db"
	"github.com/midnightsystems/linkbio-api/internal/domain/product"
)

// productJSON mirrors the seed file rows. Prices are decimal strings in the
// source data, which decimal.Decimal decodes directly.
type productJSON struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Image    string          `json:"image"`
	Category string          `json:"category"`
	IsPromo  bool            `json:"isPromo"`
}

// DecodeCatalog parses a JSON catalog document into domain products,
// preserving document order.
func DecodeCatalog(data []byte) ([]product.Product, error) {
	var rows []productJSON
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, errors.Wrap(err, "parse catalog JSON")
	}

	out := make([]product.Product, len(rows))
	for i, r := range rows {
		out[i] = product.Product{
			ID:       r.ID,
			Name:     r.Name,
			Price:    r.Price,
			Image:    r.Image,
			Category: r.Category,
			Promo:    r.IsPromo,
		}
	}
	return out, nil
}

// DecodeProduct parses a single JSON product object, the row format of
// JSONL catalog exports.
func DecodeProduct(data []byte) (product.Product, error) {
	var r productJSON
	if err := json.Unmarshal(data, &r); err != nil {
		return product.Product{}, errors.Wrap(err, "parse product JSON")
	}
	return product.Product{
		ID:       r.ID,
		Name:     r.Name,
		Price:    r.Price,
		Image:    r.Image,
		Category: r.Category,
		Promo:    r.IsPromo,
	}, nil
}

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository serves the catalog from an in-memory list.
type ProductRepository struct {
	products []product.Product
	byID     map[string]int
}

// NewProductRepository builds a repository over the given list.
func NewProductRepository(products []product.Product) *ProductRepository {
	byID := make(map[string]int, len(products))
	for i, p := range products {
		if _, ok := byID[p.ID]; !ok {
			byID[p.ID] = i
		}
	}
	return &ProductRepository{products: products, byID: byID}
}

// NewEmbeddedRepository builds a repository from the embedded seed catalog.
func NewEmbeddedRepository() (*ProductRepository, error) {
	products, err := DecodeCatalog(db.SeedProducts)
	if err != nil {
		return nil, errors.Wrap(err, "embedded catalog")
	}
	return NewProductRepository(products), nil
}

// List returns the full catalog in seed order.
func (r *ProductRepository) List(_ context.Context) ([]product.Product, error) {
	out := make([]product.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// GetByID returns a single product by its identifier.
func (r *ProductRepository) GetByID(_ context.Context, id string) (*product.Product, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	p := r.products[i]
	return &p, nil
}
