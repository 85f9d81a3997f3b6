package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/midnightsystems/linkbio-api/internal/domain/catalog"
	"github.com/midnightsystems/linkbio-api/internal/domain/order"
	"github.com/midnightsystems/linkbio-api/internal/domain/product"
	"github.com/midnightsystems/linkbio-api/internal/domain/profile"
	"github.com/midnightsystems/linkbio-api/internal/domain/share"
)

func testCatalog() []product.Product {
	return []product.Product{
		{ID: "00001", Name: "Foto Polaroid", Price: decimal.RequireFromString("0.50"), Image: "/img/polaroid.jpg", Category: "Fotografía"},
		{ID: "00002", Name: "Tazas Mágicas Negras 11oz", Price: decimal.RequireFromString("5.00"), Image: "/img/taza.jpg", Category: "Tazas"},
		{ID: "00003", Name: "Franela Oversize Estampada", Price: decimal.RequireFromString("10.00"), Image: "/img/franela.jpg", Category: "Textil"},
		{ID: "00020", Name: "Combo Taza + Foto Polaroid x 3", Price: decimal.RequireFromString("6.00"), Image: "/img/combo.jpg", Category: "Tazas", Promo: true},
		{ID: "promo-sanvalentin", Name: "Combo San Valentín", Price: decimal.RequireFromString("8.00"), Image: "/img/sanvalentin.jpg", Category: "Tazas"},
	}
}

type stubSharer struct {
	err    error
	shared []share.Payload
}

func (s *stubSharer) Share(_ context.Context, p share.Payload) error {
	if s.err != nil {
		return s.err
	}
	s.shared = append(s.shared, p)
	return nil
}

func newTestHandler(sharer share.Sharer) http.Handler {
	h := New(
		Config{ImageBaseURL: "https://cdn.example.com", SiteURL: "https://midnight.example.com"},
		catalog.NewEngine(testCatalog()),
		order.NewComposer(order.Config{Recipient: "584246498029"}),
		profile.Default("584246498029"),
		sharer,
	)
	return h.Routes()
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

type productsResponse struct {
	Products []struct {
		ID      string `json:"id"`
		Name    string `json:"name"`
		Price   string `json:"price"`
		Image   string `json:"image"`
		IsPromo bool   `json:"isPromo"`
	} `json:"products"`
}

func productIDs(resp productsResponse) []string {
	out := make([]string, len(resp.Products))
	for i, p := range resp.Products {
		out[i] = p.ID
	}
	return out
}

func TestSearchProducts_NoFilters(t *testing.T) {
	h := newTestHandler(nil)

	rec := get(t, h, "/api/products")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp productsResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, []string{"00001", "00002", "00003", "00020", "promo-sanvalentin"}, productIDs(resp))
}

func TestSearchProducts_QueryAndCategory(t *testing.T) {
	h := newTestHandler(nil)

	rec := get(t, h, "/api/products?query=taza&category=Tazas")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp productsResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, []string{"00002", "00020"}, productIDs(resp))
}

func TestSearchProducts_FuzzyFallback(t *testing.T) {
	h := newTestHandler(nil)

	rec := get(t, h, "/api/products?query=tzmgc")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp productsResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, []string{"00002"}, productIDs(resp))
}

func TestGetProduct_ImagePrefixAndPrice(t *testing.T) {
	h := newTestHandler(nil)

	rec := get(t, h, "/api/products/00002")
	require.Equal(t, http.StatusOK, rec.Code)

	var p struct {
		ID    string `json:"id"`
		Price string `json:"price"`
		Image string `json:"image"`
	}
	decodeBody(t, rec, &p)
	assert.Equal(t, "00002", p.ID)
	assert.Equal(t, "5.00", p.Price)
	assert.Equal(t, "https://cdn.example.com/img/taza.jpg", p.Image)
}

func TestGetProduct_NotFound(t *testing.T) {
	h := newTestHandler(nil)

	rec := get(t, h, "/api/products/99999")
	require.Equal(t, http.StatusNotFound, rec.Code)

	var envelope struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	decodeBody(t, rec, &envelope)
	assert.Equal(t, http.StatusNotFound, envelope.Code)
	assert.Equal(t, "product not found", envelope.Message)
}

func TestListCategories_WildcardFirst(t *testing.T) {
	h := newTestHandler(nil)

	rec := get(t, h, "/api/categories")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Categories []string `json:"categories"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, []string{"Todos", "Fotografía", "Tazas", "Textil"}, resp.Categories)
}

func TestListPromotions_FlagAndIDShim(t *testing.T) {
	h := newTestHandler(nil)

	rec := get(t, h, "/api/promotions")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp productsResponse
	decodeBody(t, rec, &resp)
	assert.Equal(t, []string{"00020", "promo-sanvalentin"}, productIDs(resp))
	for _, p := range resp.Products {
		assert.True(t, p.IsPromo, "%s should report isPromo", p.ID)
	}
}

func TestGetProfile(t *testing.T) {
	h := newTestHandler(nil)

	rec := get(t, h, "/api/profile")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Name  string `json:"name"`
		Links []struct {
			Kind string `json:"kind"`
		} `json:"links"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "MidNight Studio", resp.Name)
	require.Len(t, resp.Links, 4)
	assert.Equal(t, "catalog", resp.Links[1].Kind)
}

type orderResponse struct {
	OrderID     string `json:"orderId"`
	Message     string `json:"message"`
	WhatsappURL string `json:"whatsappUrl"`
	Total       string `json:"total"`
}

const validOrderBody = `{
	"items": [
		{"productId": "00002", "quantity": 2},
		{"productId": "00001", "quantity": 1}
	],
	"customer": {
		"name": "Ana",
		"phone": "04141234567",
		"address": "Av. Principal",
		"delivery": "delivery",
		"payment": "cash_usd"
	}
}`

func TestComposeOrderMessage_OK(t *testing.T) {
	h := newTestHandler(nil)

	rec := post(t, h, "/api/orders/message", validOrderBody)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp orderResponse
	decodeBody(t, rec, &resp)

	_, err := uuid.Parse(resp.OrderID)
	assert.NoError(t, err)
	assert.Equal(t, "10.50", resp.Total)
	assert.Contains(t, resp.Message, "Tazas Mágicas Negras 11oz (x2) - $10.00")
	assert.Contains(t, resp.Message, "Foto Polaroid (x1) - $0.50")
	assert.Contains(t, resp.Message, "*TOTAL: $10.50*")
	assert.True(t, strings.HasPrefix(resp.WhatsappURL, "https://wa.me/584246498029?text="), resp.WhatsappURL)
}

func TestComposeOrderMessage_AggregatesDuplicateItems(t *testing.T) {
	h := newTestHandler(nil)

	rec := post(t, h, "/api/orders/message", `{
		"items": [
			{"productId": "00001", "quantity": 1},
			{"productId": "00001", "quantity": 2}
		],
		"customer": {"name": "Ana", "phone": "0414", "address": "Calle 1", "delivery": "pickup", "payment": "binance"}
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp orderResponse
	decodeBody(t, rec, &resp)
	assert.Contains(t, resp.Message, "Foto Polaroid (x3) - $1.50")
	assert.Equal(t, 1, strings.Count(resp.Message, "Foto Polaroid"))
}

func TestComposeOrderMessage_ClampsQuantity(t *testing.T) {
	h := newTestHandler(nil)

	rec := post(t, h, "/api/orders/message", `{
		"items": [{"productId": "00001", "quantity": 0}],
		"customer": {"name": "Ana", "phone": "0414", "address": "Calle 1", "delivery": "pickup", "payment": "cash_usd"}
	}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp orderResponse
	decodeBody(t, rec, &resp)
	assert.Contains(t, resp.Message, "Foto Polaroid (x1) - $0.50")
}

func TestComposeOrderMessage_EmptyItems(t *testing.T) {
	h := newTestHandler(nil)

	rec := post(t, h, "/api/orders/message", `{
		"items": [],
		"customer": {"name": "Ana", "phone": "0414", "address": "Calle 1", "delivery": "pickup", "payment": "cash_usd"}
	}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestComposeOrderMessage_UnknownProduct(t *testing.T) {
	h := newTestHandler(nil)

	rec := post(t, h, "/api/orders/message", `{
		"items": [{"productId": "nope", "quantity": 1}],
		"customer": {"name": "Ana", "phone": "0414", "address": "Calle 1", "delivery": "pickup", "payment": "cash_usd"}
	}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "nope")
}

func TestComposeOrderMessage_MissingField(t *testing.T) {
	h := newTestHandler(nil)

	rec := post(t, h, "/api/orders/message", `{
		"items": [{"productId": "00001", "quantity": 1}],
		"customer": {"name": "", "phone": "0414", "address": "Calle 1", "delivery": "pickup", "payment": "cash_usd"}
	}`)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "name")
}

func TestComposeOrderMessage_BadJSON(t *testing.T) {
	h := newTestHandler(nil)

	rec := post(t, h, "/api/orders/message", `{"items": [`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShareProduct_UnavailableWithoutSharer(t *testing.T) {
	h := newTestHandler(nil)

	rec := get(t, h, "/api/products/00002/share")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Outcome       string `json:"outcome"`
		ClipboardText string `json:"clipboardText"`
		Payload       struct {
			Title string `json:"title"`
			URL   string `json:"url"`
		} `json:"payload"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "unavailable", resp.Outcome)
	assert.Equal(t, "MidNight Studio - Tazas Mágicas Negras 11oz", resp.Payload.Title)
	assert.Contains(t, resp.ClipboardText, "https://midnight.example.com")
}

func TestShareProduct_PromoFlavor(t *testing.T) {
	sharer := &stubSharer{}
	h := newTestHandler(sharer)

	rec := get(t, h, "/api/products/00020/share?flavor=promo")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Outcome string `json:"outcome"`
	}
	decodeBody(t, rec, &resp)
	assert.Equal(t, "ok", resp.Outcome)
	require.Len(t, sharer.shared, 1)
	assert.Contains(t, sharer.shared[0].Title, "¡PROMO!")
}

func TestShareProduct_Cancelled(t *testing.T) {
	h := newTestHandler(&stubSharer{err: share.ErrCancelled})

	rec := get(t, h, "/api/products/00002/share")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"cancelled"`)
}

func TestShareProduct_UnknownFlavor(t *testing.T) {
	h := newTestHandler(nil)

	rec := get(t, h, "/api/products/00002/share?flavor=email")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShareProduct_NotFound(t *testing.T) {
	h := newTestHandler(nil)

	rec := get(t, h, "/api/products/99999/share")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
