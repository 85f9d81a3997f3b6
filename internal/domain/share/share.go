// Package share builds the per-product share payloads and models the
// hand-off to an external sharing capability. Failures at that boundary are
// explicit outcomes, never propagated errors: a denied or cancelled share
// must not disturb cart or search state.
package share

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/midnightsystems/linkbio-api/internal/domain/product"
)

// Payload is the structured share content: a title, a text blob, and the
// link back to the site.
type Payload struct {
	Title string
	Text  string
	URL   string
}

// ClipboardText is the fallback blob copied to the clipboard when no native
// share capability is available.
func (p Payload) ClipboardText() string {
	return p.Text + "\n" + p.URL
}

// ProductPayload builds the catalog-flavoured share content for a product.
func ProductPayload(p product.Product, siteURL string) Payload {
	return Payload{
		Title: "MidNight Studio - " + p.Name,
		Text: fmt.Sprintf(
			"¡Mira lo que encontré en MidNight Studio! 🔥\n\n✨ Producto: %s\n💰 Precio: $%s\n🆔 Código: #%s\n\n¿Qué te parece? 👇",
			p.Name, p.Price.StringFixed(2), p.ID,
		),
		URL: siteURL,
	}
}

// PromoPayload builds the promotions-flavoured share content for a product.
func PromoPayload(p product.Product, siteURL string) Payload {
	return Payload{
		Title: "¡PROMO! MidNight Studio - " + p.Name,
		Text: fmt.Sprintf(
			"🔥 ¡Mira esta oferta en MidNight Studio! 🔥\n\n✨ %s\n💰 Precio Especial: $%s\n🆔 Código: #%s\n\n¡Aprovecha antes de que se agote!",
			p.Name, p.Price.StringFixed(2), p.ID,
		),
		URL: siteURL,
	}
}

// Outcome is the result of a share attempt.
type Outcome int

const (
	// OutcomeOK means the payload was handed to the sharing capability.
	OutcomeOK Outcome = iota
	// OutcomeUnavailable means no sharing capability exists; the caller
	// should fall back to the clipboard blob.
	OutcomeUnavailable
	// OutcomeCancelled means the user dismissed the share dialog.
	OutcomeCancelled
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeUnavailable:
		return "unavailable"
	case OutcomeCancelled:
		return "cancelled"
	}
	return "unknown"
}

// ErrCancelled is returned by a Sharer when the user dismisses the dialog.
var ErrCancelled = errors.New("share cancelled")

// Sharer is an external sharing capability.
type Sharer interface {
	Share(ctx context.Context, p Payload) error
}

// Dispatch hands the payload to the sharer and absorbs every failure into an
// Outcome. A nil sharer means the capability is absent. Unexpected errors
// are logged and reported as unavailable so the caller can offer the
// clipboard fallback; nothing escapes this boundary.
func Dispatch(ctx context.Context, lg *zap.Logger, s Sharer, p Payload) Outcome {
	if s == nil {
		return OutcomeUnavailable
	}
	err := s.Share(ctx, p)
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrCancelled):
		return OutcomeCancelled
	default:
		if lg != nil {
			lg.Debug("share failed", zap.String("title", p.Title), zap.Error(err))
		}
		return OutcomeUnavailable
	}
}
