// Package handler exposes the catalog, profile, and order composer over HTTP.
// It owns the wire format only; business rules live in internal/domain.
package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/midnightsystems/linkbio-api/internal/domain/catalog"
	"github.com/midnightsystems/linkbio-api/internal/domain/order"
	"github.com/midnightsystems/linkbio-api/internal/domain/profile"
	"github.com/midnightsystems/linkbio-api/internal/domain/share"
)

// Config holds non-dependency configuration for the Handler.
type Config struct {
	// ImageBaseURL is prepended to relative image paths in product responses.
	// When empty, image paths are returned as stored in the catalog.
	ImageBaseURL string
	// SiteURL is the public address embedded in share payloads.
	SiteURL string
}

// Handler serves the public API, delegating business logic to the catalog
// engine and the order composer.
type Handler struct {
	catalog      *catalog.Engine
	composer     *order.Composer
	profile      profile.Profile
	sharer       share.Sharer
	imageBaseURL string
	siteURL      string
}

// New constructs a Handler with the required domain dependencies. sharer may
// be nil when no native share integration is configured; share requests then
// report the clipboard fallback.
func New(cfg Config, eng *catalog.Engine, composer *order.Composer, prof profile.Profile, sharer share.Sharer) *Handler {
	return &Handler{
		catalog:      eng,
		composer:     composer,
		profile:      prof,
		sharer:       sharer,
		imageBaseURL: cfg.ImageBaseURL,
		siteURL:      cfg.SiteURL,
	}
}

// Routes mounts every API endpoint on a fresh router.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/profile", h.GetProfile)
		r.Get("/categories", h.ListCategories)
		r.Get("/products", h.SearchProducts)
		r.Get("/products/{productID}", h.GetProduct)
		r.Get("/products/{productID}/share", h.ShareProduct)
		r.Get("/promotions", h.ListPromotions)
		r.Post("/orders/message", h.ComposeOrderMessage)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}
