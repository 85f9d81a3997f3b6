// Package order composes cart contents and customer details into the
// human-readable order message handed off to the external messaging link.
// There is no server-side order record: the composer validates and
// serializes, and delivery of the link is the UI's job.
package order

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/midnightsystems/linkbio-api/internal/domain/cart"
)

// DeliveryMethod enumerates how the customer receives the order.
type DeliveryMethod string

const (
	DeliveryCourier DeliveryMethod = "delivery"
	DeliveryPickup  DeliveryMethod = "pickup"
)

// ParseDeliveryMethod maps a wire value to a DeliveryMethod.
func ParseDeliveryMethod(s string) (DeliveryMethod, error) {
	switch DeliveryMethod(s) {
	case DeliveryCourier, DeliveryPickup:
		return DeliveryMethod(s), nil
	}
	return "", fmt.Errorf("unknown delivery method %q", s)
}

// Label returns the display text used in the order message.
func (m DeliveryMethod) Label() string {
	switch m {
	case DeliveryCourier:
		return "Delivery"
	case DeliveryPickup:
		return "Pick up"
	}
	return string(m)
}

// PaymentMethod enumerates the accepted payment channels.
type PaymentMethod string

const (
	PaymentCashUSD PaymentMethod = "cash_usd"
	PaymentMobile  PaymentMethod = "mobile_payment"
	PaymentBinance PaymentMethod = "binance"
)

// ParsePaymentMethod maps a wire value to a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(s) {
	case PaymentCashUSD, PaymentMobile, PaymentBinance:
		return PaymentMethod(s), nil
	}
	return "", fmt.Errorf("unknown payment method %q", s)
}

// Label returns the display text used in the order message.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCashUSD:
		return "Efectivo (USD)"
	case PaymentMobile:
		return "Pago Móvil"
	case PaymentBinance:
		return "Binance"
	}
	return string(m)
}

// Customer holds the order form fields. Name, Phone and Address are
// mandatory at submit time; Notes is optional.
type Customer struct {
	Name     string
	Phone    string
	Address  string
	Delivery DeliveryMethod
	Payment  PaymentMethod
	Notes    string
}

// ErrEmptyCart is returned when composing an order from a cart with no lines.
var ErrEmptyCart = fmt.Errorf("cart is empty")

// ValidationError indicates a mandatory customer field is blank or invalid.
// It is user-correctable: the cart and customer state are left untouched.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s is required", e.Field)
}

// Message is a fully composed order ready for the messaging hand-off.
type Message struct {
	// Text is the plain multi-line order message.
	Text string
	// URL is the wa.me link with Text percent-encoded into the text parameter.
	URL string
	// Total is the computed order total.
	Total decimal.Decimal
}

// Config holds the copy and destination for composed messages.
type Config struct {
	// Recipient is the WhatsApp number in international format, digits only.
	Recipient string
	// Title overrides the message header line when non-empty.
	Title string
	// Signature overrides the trailing line when non-empty.
	Signature string
}

const (
	defaultTitle     = "*NUEVO PEDIDO - MidNight Studio* 🌙"
	defaultSignature = "Enviado desde el LinkBio de MidNight Studio ✨"
	divider          = "------------------------------"
)

// Composer serializes carts into order messages. It is stateless and safe
// for concurrent use.
type Composer struct {
	cfg Config
}

// NewComposer returns a Composer targeting the configured recipient.
func NewComposer(cfg Config) *Composer {
	if cfg.Title == "" {
		cfg.Title = defaultTitle
	}
	if cfg.Signature == "" {
		cfg.Signature = defaultSignature
	}
	return &Composer{cfg: cfg}
}

// Compose validates the customer fields and serializes the cart into a
// Message. On validation failure no message is produced and both cart and
// customer are left unchanged (they are never mutated here at all).
func (c *Composer) Compose(ct *cart.Cart, cust Customer) (*Message, error) {
	if err := validate(ct, cust); err != nil {
		return nil, err
	}

	total := ct.Total()

	var b strings.Builder
	b.WriteString(c.cfg.Title + "\n\n")
	b.WriteString("👤 Cliente: " + strings.TrimSpace(cust.Name) + "\n")
	b.WriteString("📞 Teléfono: " + strings.TrimSpace(cust.Phone) + "\n")
	b.WriteString("📍 Dirección: " + strings.TrimSpace(cust.Address) + "\n")
	b.WriteString("🛵 Entrega: " + cust.Delivery.Label() + "\n")
	b.WriteString("💳 Pago: " + cust.Payment.Label() + "\n")
	b.WriteString(divider + "\n")
	for _, l := range ct.Lines() {
		b.WriteString(fmt.Sprintf("%s (x%d) - $%s\n", l.Product.Name, l.Quantity, l.LineTotal().StringFixed(2)))
	}
	b.WriteString(divider + "\n")
	b.WriteString("*TOTAL: $" + total.StringFixed(2) + "*\n")
	if notes := strings.TrimSpace(cust.Notes); notes != "" {
		b.WriteString("📝 Nota: " + notes + "\n")
	}
	b.WriteString("\n" + c.cfg.Signature)

	text := b.String()
	return &Message{
		Text:  text,
		URL:   whatsappURL(c.cfg.Recipient, text),
		Total: total,
	}, nil
}

func validate(ct *cart.Cart, cust Customer) error {
	if ct == nil || ct.Len() == 0 {
		return ErrEmptyCart
	}
	switch {
	case strings.TrimSpace(cust.Name) == "":
		return &ValidationError{Field: "name"}
	case strings.TrimSpace(cust.Phone) == "":
		return &ValidationError{Field: "phone"}
	case strings.TrimSpace(cust.Address) == "":
		return &ValidationError{Field: "address"}
	}
	if _, err := ParseDeliveryMethod(string(cust.Delivery)); err != nil {
		return &ValidationError{Field: "delivery"}
	}
	if _, err := ParsePaymentMethod(string(cust.Payment)); err != nil {
		return &ValidationError{Field: "payment"}
	}
	return nil
}

func whatsappURL(recipient, text string) string {
	q := url.Values{}
	q.Set("text", text)
	u := url.URL{
		Scheme:   "https",
		Host:     "wa.me",
		Path:     "/" + recipient,
		RawQuery: q.Encode(),
	}
	return u.String()
}
