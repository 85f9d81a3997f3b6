package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/go-faster/sdk/zctx"

	"github.com/midnightsystems/linkbio-api/internal/domain/product"
	"github.com/midnightsystems/linkbio-api/internal/domain/share"
)

// ShareProduct builds the share payload for a product and dispatches it to
// the configured sharing capability. The response always carries the payload
// and the clipboard fallback, so the client can copy even when the outcome
// is unavailable or cancelled.
func (h *Handler) ShareProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.GetByID(chi.URLParam(r, "productID"))
	if err != nil {
		if errors.Is(err, product.ErrNotFound) {
			writeError(w, http.StatusNotFound, "product not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	var payload share.Payload
	switch flavor := r.URL.Query().Get("flavor"); flavor {
	case "", "catalog":
		payload = share.ProductPayload(*p, h.siteURL)
	case "promo":
		payload = share.PromoPayload(*p, h.siteURL)
	default:
		writeError(w, http.StatusBadRequest, "unknown share flavor "+flavor)
		return
	}

	outcome := share.Dispatch(r.Context(), zctx.From(r.Context()), h.sharer, payload)

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("outcome", func(e *jx.Encoder) { e.Str(outcome.String()) })
			e.Field("payload", func(e *jx.Encoder) {
				e.Obj(func(e *jx.Encoder) {
					e.Field("title", func(e *jx.Encoder) { e.Str(payload.Title) })
					e.Field("text", func(e *jx.Encoder) { e.Str(payload.Text) })
					e.Field("url", func(e *jx.Encoder) { e.Str(payload.URL) })
				})
			})
			e.Field("clipboardText", func(e *jx.Encoder) { e.Str(payload.ClipboardText()) })
		})
	})
}
