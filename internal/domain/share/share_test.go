package share

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/midnightsystems/linkbio-api/internal/domain/product"
)

type stubSharer struct {
	err    error
	called bool
}

func (s *stubSharer) Share(_ context.Context, _ Payload) error {
	s.called = true
	return s.err
}

func testProduct() product.Product {
	return product.Product{
		ID:    "00001",
		Name:  "Taza Blanca Estampada",
		Price: decimal.RequireFromString("5.00"),
	}
}

func TestProductPayload(t *testing.T) {
	p := ProductPayload(testProduct(), "https://midnight.example")

	assert.Equal(t, "MidNight Studio - Taza Blanca Estampada", p.Title)
	assert.Contains(t, p.Text, "Producto: Taza Blanca Estampada")
	assert.Contains(t, p.Text, "Precio: $5.00")
	assert.Contains(t, p.Text, "Código: #00001")
	assert.Equal(t, "https://midnight.example", p.URL)
}

func TestPromoPayload(t *testing.T) {
	p := PromoPayload(testProduct(), "https://midnight.example")

	assert.Contains(t, p.Title, "¡PROMO!")
	assert.Contains(t, p.Text, "Precio Especial: $5.00")
}

func TestClipboardText(t *testing.T) {
	p := Payload{Text: "hola", URL: "https://midnight.example"}
	assert.Equal(t, "hola\nhttps://midnight.example", p.ClipboardText())
}

func TestDispatch_Outcomes(t *testing.T) {
	lg := zaptest.NewLogger(t)
	payload := ProductPayload(testProduct(), "https://midnight.example")

	assert.Equal(t, OutcomeUnavailable, Dispatch(context.Background(), lg, nil, payload))

	ok := &stubSharer{}
	assert.Equal(t, OutcomeOK, Dispatch(context.Background(), lg, ok, payload))
	assert.True(t, ok.called)

	cancelled := &stubSharer{err: ErrCancelled}
	assert.Equal(t, OutcomeCancelled, Dispatch(context.Background(), lg, cancelled, payload))

	// Unexpected errors are swallowed into an unavailable outcome.
	broken := &stubSharer{err: errors.New("clipboard write denied")}
	assert.Equal(t, OutcomeUnavailable, Dispatch(context.Background(), lg, broken, payload))
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "ok", OutcomeOK.String())
	assert.Equal(t, "unavailable", OutcomeUnavailable.String())
	assert.Equal(t, "cancelled", OutcomeCancelled.String())
}
