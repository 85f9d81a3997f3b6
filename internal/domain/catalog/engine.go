// Package catalog implements the search and filter engine over the static
// product catalog: a category filter, an exact substring pass, and a fuzzy
// subsequence fallback that only runs when the exact pass finds nothing.
package catalog

import (
	"strings"

	"github.com/midnightsystems/linkbio-api/internal/domain/product"
)

// CategoryAll is the synthetic wildcard category meaning "no filter".
// The UI renders it as the first chip, so the Spanish label is part of
// the contract.
const CategoryAll = "Todos"

// Engine answers search queries against an immutable product list.
// Result order always equals catalog order; there is no relevance scoring
// beyond the two-tier pass/fail. Engine is safe for concurrent readers.
type Engine struct {
	products []product.Product
	byID     map[string]int
}

// NewEngine builds an Engine over the given catalog. The slice is copied;
// later mutations of the argument do not affect the engine.
func NewEngine(products []product.Product) *Engine {
	list := make([]product.Product, len(products))
	copy(list, products)

	byID := make(map[string]int, len(list))
	for i, p := range list {
		if _, ok := byID[p.ID]; !ok {
			byID[p.ID] = i
		}
	}

	return &Engine{products: list, byID: byID}
}

// Products returns the full catalog in original order.
func (e *Engine) Products() []product.Product {
	out := make([]product.Product, len(e.products))
	copy(out, e.products)
	return out
}

// GetByID returns the product with the given id, or product.ErrNotFound.
func (e *Engine) GetByID(id string) (*product.Product, error) {
	i, ok := e.byID[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	p := e.products[i]
	return &p, nil
}

// Categories returns CategoryAll followed by the distinct categories present
// in the catalog, in order of first appearance.
func (e *Engine) Categories() []string {
	seen := make(map[string]struct{}, len(e.products))
	out := []string{CategoryAll}
	for _, p := range e.products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// Search returns the products matching the given free-text query within the
// selected category. CategoryAll (or the empty string) disables the category
// filter. An empty trimmed query returns the category-filtered set unchanged.
//
// The query runs in two tiers: first an exact pass keeping products whose
// case-folded name contains the folded query as a substring, or whose id
// contains it; only when that pass is empty does the fuzzy subsequence
// fallback run. Exact matches therefore never mix with fuzzy ones.
func (e *Engine) Search(query, category string) []product.Product {
	base := e.filterByCategory(category)
	return applyQuery(base, query)
}

// Promotions returns the promo-eligible products matching the query.
// Promotions carry no category dimension.
func (e *Engine) Promotions(query string) []product.Product {
	base := make([]product.Product, 0)
	for _, p := range e.products {
		if p.IsPromotional() {
			base = append(base, p)
		}
	}
	return applyQuery(base, query)
}

func (e *Engine) filterByCategory(category string) []product.Product {
	out := make([]product.Product, 0, len(e.products))
	for _, p := range e.products {
		if category == "" || category == CategoryAll || p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

func applyQuery(base []product.Product, query string) []product.Product {
	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return base
	}

	exact := make([]product.Product, 0, len(base))
	for _, p := range base {
		if strings.Contains(strings.ToLower(p.Name), term) || strings.Contains(p.ID, term) {
			exact = append(exact, p)
		}
	}
	if len(exact) > 0 {
		return exact
	}

	fuzzy := make([]product.Product, 0, len(base))
	for _, p := range base {
		if subsequenceMatch(p.Name, term) {
			fuzzy = append(fuzzy, p)
		}
	}
	return fuzzy
}

// subsequenceMatch reports whether every rune of query appears in name in the
// same relative order, not necessarily contiguously. Whitespace is stripped
// from both sides and comparison is case-folded. This is the typo-tolerant
// fallback: "tzmgc" matches "Tazas Mágicas".
func subsequenceMatch(name, query string) bool {
	q := []rune(strings.ToLower(stripSpaces(query)))
	t := []rune(strings.ToLower(stripSpaces(name)))

	qi := 0
	for ti := 0; ti < len(t) && qi < len(q); ti++ {
		if t[ti] == q[qi] {
			qi++
		}
	}
	return qi == len(q)
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}
