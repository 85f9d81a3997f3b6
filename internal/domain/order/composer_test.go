package order

import (
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midnightsystems/linkbio-api/internal/domain/cart"
	"github.com/midnightsystems/linkbio-api/internal/domain/product"
)

func testProduct(id, name, price string) product.Product {
	return product.Product{
		ID:       id,
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Category: "Tazas",
	}
}

func testCustomer() Customer {
	return Customer{
		Name:     "Ana Pérez",
		Phone:    "0424-1234567",
		Address:  "Av. Principal, Caracas",
		Delivery: DeliveryCourier,
		Payment:  PaymentMobile,
	}
}

func testCart() *cart.Cart {
	c := cart.New()
	c.AddQuantity(testProduct("00001", "Taza Blanca", "5.00"), 2)
	return c
}

func newTestComposer() *Composer {
	return NewComposer(Config{Recipient: "584246498029"})
}

func TestCompose_MessageContents(t *testing.T) {
	msg, err := newTestComposer().Compose(testCart(), testCustomer())
	require.NoError(t, err)

	assert.Contains(t, msg.Text, "Taza Blanca (x2) - $10.00")
	assert.Contains(t, msg.Text, "(x2) - $10")
	assert.Contains(t, msg.Text, "TOTAL: $10")
	assert.Contains(t, msg.Text, "Cliente: Ana Pérez")
	assert.Contains(t, msg.Text, "Teléfono: 0424-1234567")
	assert.Contains(t, msg.Text, "Entrega: Delivery")
	assert.Contains(t, msg.Text, "Pago: Pago Móvil")
	assert.True(t, decimal.RequireFromString("10.00").Equal(msg.Total))
}

func TestCompose_FieldOrderIsFixed(t *testing.T) {
	cust := testCustomer()
	cust.Notes = "sin azúcar"
	msg, err := newTestComposer().Compose(testCart(), cust)
	require.NoError(t, err)

	wantOrder := []string{
		"NUEVO PEDIDO",
		"Cliente:",
		"Teléfono:",
		"Dirección:",
		"Entrega:",
		"Pago:",
		"Taza Blanca (x2)",
		"TOTAL:",
		"Nota: sin azúcar",
		"Enviado desde el LinkBio",
	}
	pos := -1
	for _, marker := range wantOrder {
		i := strings.Index(msg.Text, marker)
		require.GreaterOrEqual(t, i, 0, "marker %q missing", marker)
		assert.Greater(t, i, pos, "marker %q out of order", marker)
		pos = i
	}
}

func TestCompose_OmitsNotesLineWhenBlank(t *testing.T) {
	for _, notes := range []string{"", "   "} {
		cust := testCustomer()
		cust.Notes = notes
		msg, err := newTestComposer().Compose(testCart(), cust)
		require.NoError(t, err)
		assert.NotContains(t, msg.Text, "Nota")
	}
}

func TestCompose_MultipleLinesAndTotal(t *testing.T) {
	c := testCart()
	c.AddQuantity(testProduct("00002", "Tazas Mágicas", "8.00"), 3)

	msg, err := newTestComposer().Compose(c, testCustomer())
	require.NoError(t, err)

	assert.Contains(t, msg.Text, "Taza Blanca (x2) - $10.00")
	assert.Contains(t, msg.Text, "Tazas Mágicas (x3) - $24.00")
	assert.Contains(t, msg.Text, "*TOTAL: $34.00*")
}

func TestCompose_MissingMandatoryFields(t *testing.T) {
	tests := []struct {
		field  string
		mutate func(*Customer)
	}{
		{"name", func(c *Customer) { c.Name = "" }},
		{"phone", func(c *Customer) { c.Phone = "   " }},
		{"address", func(c *Customer) { c.Address = "" }},
		{"delivery", func(c *Customer) { c.Delivery = "" }},
		{"payment", func(c *Customer) { c.Payment = "paypal" }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			cust := testCustomer()
			tt.mutate(&cust)
			ct := testCart()

			msg, err := newTestComposer().Compose(ct, cust)

			assert.Nil(t, msg)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)

			// The cart is untouched by a failed submit.
			assert.Equal(t, 1, ct.Len())
			assert.True(t, decimal.RequireFromString("10.00").Equal(ct.Total()))
		})
	}
}

func TestCompose_EmptyCart(t *testing.T) {
	_, err := newTestComposer().Compose(cart.New(), testCustomer())
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCompose_DoesNotClearCart(t *testing.T) {
	ct := testCart()
	_, err := newTestComposer().Compose(ct, testCustomer())
	require.NoError(t, err)

	// Resubmitting produces the same message from the same cart.
	msg, err := newTestComposer().Compose(ct, testCustomer())
	require.NoError(t, err)
	assert.Contains(t, msg.Text, "(x2) - $10.00")
}

func TestCompose_WhatsAppURLRoundTrip(t *testing.T) {
	msg, err := newTestComposer().Compose(testCart(), testCustomer())
	require.NoError(t, err)

	u, err := url.Parse(msg.URL)
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/584246498029", u.Path)

	q, err := url.ParseQuery(u.RawQuery)
	require.NoError(t, err)
	assert.Equal(t, msg.Text, q.Get("text"))
}

func TestParseDeliveryMethod(t *testing.T) {
	m, err := ParseDeliveryMethod("pickup")
	require.NoError(t, err)
	assert.Equal(t, "Pick up", m.Label())

	_, err = ParseDeliveryMethod("drone")
	assert.Error(t, err)
}

func TestParsePaymentMethod(t *testing.T) {
	for wire, label := range map[string]string{
		"cash_usd":       "Efectivo (USD)",
		"mobile_payment": "Pago Móvil",
		"binance":        "Binance",
	} {
		m, err := ParsePaymentMethod(wire)
		require.NoError(t, err)
		assert.Equal(t, label, m.Label())
	}

	_, err := ParsePaymentMethod("zelle")
	assert.Error(t, err)
}
