package handler

import (
	"net/http"

	"github.com/go-faster/jx"
)

// GetProfile returns the landing page identity block and its links.
func (h *Handler) GetProfile(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("name", func(e *jx.Encoder) { e.Str(h.profile.Name) })
			e.Field("username", func(e *jx.Encoder) { e.Str(h.profile.Username) })
			e.Field("bio", func(e *jx.Encoder) { e.Str(h.profile.Bio) })
			e.Field("links", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					for _, l := range h.profile.Links {
						e.Obj(func(e *jx.Encoder) {
							e.Field("id", func(e *jx.Encoder) { e.Str(l.ID) })
							e.Field("title", func(e *jx.Encoder) { e.Str(l.Title) })
							e.Field("url", func(e *jx.Encoder) { e.Str(l.URL) })
							e.Field("kind", func(e *jx.Encoder) { e.Str(string(l.Kind)) })
							e.Field("featured", func(e *jx.Encoder) { e.Bool(l.Featured) })
						})
					}
				})
			})
		})
	})
}
