package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/midnightsystems/linkbio-api/internal/domain/product"
)

// SearchProducts runs the two-tier catalog search. Both query parameters are
// optional: absent query returns the category-filtered catalog, absent
// category means no category filter.
func (h *Handler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	results := h.catalog.Search(q.Get("query"), q.Get("category"))

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		h.encodeProducts(e, results)
	})
}

// GetProduct returns a single product by id.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetByID(chi.URLParam(r, "productID"))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		h.encodeProduct(e, *p)
	})
}

// ListCategories returns the category chips in display order, wildcard first.
func (h *Handler) ListCategories(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("categories", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, c := range h.catalog.Categories() {
						e.Str(c)
					}
				})
			})
		})
	})
}

// ListPromotions returns the promo-eligible products matching the optional
// query, searched with the same two-tier engine as the catalog.
func (h *Handler) ListPromotions(w http.ResponseWriter, r *http.Request) {
	results := h.catalog.Promotions(r.URL.Query().Get("query"))

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		h.encodeProducts(e, results)
	})
}

func (h *Handler) encodeProducts(e *jx.Encoder, list []product.Product) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("products", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, p := range list {
					h.encodeProduct(e, p)
				}
			})
		})
	})
}

// encodeProduct writes one product object. Price goes out as a fixed
// two-decimal string, the same representation the order message uses.
func (h *Handler) encodeProduct(e *jx.Encoder, p product.Product) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(p.ID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(p.Name) })
		e.Field("price", func(e *jx.Encoder) { e.Str(p.Price.StringFixed(2)) })
		e.Field("image", func(e *jx.Encoder) { e.Str(h.imageBaseURL + p.Image) })
		e.Field("category", func(e *jx.Encoder) { e.Str(p.Category) })
		e.Field("isPromo", func(e *jx.Encoder) { e.Bool(p.IsPromotional()) })
	})
}
