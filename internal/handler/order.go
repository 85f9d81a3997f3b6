package handler

import (
	"io"
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/google/uuid"

	"github.com/midnightsystems/linkbio-api/internal/domain/cart"
	"github.com/midnightsystems/linkbio-api/internal/domain/order"
	"github.com/midnightsystems/linkbio-api/internal/domain/product"
)

// maxOrderBody bounds the request body read for order composition.
const maxOrderBody = 1 << 20

type orderItem struct {
	ProductID string
	Quantity  int
}

type orderRequest struct {
	Items    []orderItem
	Customer order.Customer
}

// ComposeOrderMessage builds the WhatsApp hand-off for a submitted cart.
// Nothing is persisted: the response carries a reference id, the message
// text, and the wa.me link, and the server forgets the order immediately.
func (h *Handler) ComposeOrderMessage(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxOrderBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req, err := decodeOrderRequest(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ct := cart.New()
	for _, item := range req.Items {
		p, err := h.catalog.GetByID(item.ProductID)
		if err != nil {
			if errors.Is(err, product.ErrNotFound) {
				writeError(w, http.StatusUnprocessableEntity, "unknown product "+item.ProductID)
				return
			}
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		// Quantities below one are clamped, same as the cart stepper.
		q := item.Quantity
		if q < 1 {
			q = 1
		}
		ct.AddQuantity(*p, q)
	}

	msg, err := h.composer.Compose(ct, req.Customer)
	if err != nil {
		writeOrderError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, func(e *jx.Encoder) {
		e.Obj(func(e *jx.Encoder) {
			e.Field("orderId", func(e *jx.Encoder) { e.Str(uuid.NewString()) })
			e.Field("message", func(e *jx.Encoder) { e.Str(msg.Text) })
			e.Field("whatsappUrl", func(e *jx.Encoder) { e.Str(msg.URL) })
			e.Field("total", func(e *jx.Encoder) { e.Str(msg.Total.StringFixed(2)) })
		})
	})
}

func writeOrderError(w http.ResponseWriter, err error) {
	if errors.Is(err, order.ErrEmptyCart) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var vErr *order.ValidationError
	if errors.As(err, &vErr) {
		writeError(w, http.StatusUnprocessableEntity, vErr.Error())
		return
	}

	writeError(w, http.StatusInternalServerError, "internal error")
}

func decodeOrderRequest(body []byte) (orderRequest, error) {
	var req orderRequest
	d := jx.DecodeBytes(body)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "items":
			return d.Arr(func(d *jx.Decoder) error {
				item, err := decodeOrderItem(d)
				if err != nil {
					return err
				}
				req.Items = append(req.Items, item)
				return nil
			})
		case "customer":
			cust, err := decodeCustomer(d)
			if err != nil {
				return err
			}
			req.Customer = cust
			return nil
		default:
			return d.Skip()
		}
	})
	return req, err
}

func decodeOrderItem(d *jx.Decoder) (orderItem, error) {
	var item orderItem
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "productId":
			v, err := d.Str()
			item.ProductID = v
			return err
		case "quantity":
			v, err := d.Int()
			item.Quantity = v
			return err
		default:
			return d.Skip()
		}
	})
	return item, err
}

func decodeCustomer(d *jx.Decoder) (order.Customer, error) {
	var cust order.Customer
	err := d.Obj(func(d *jx.Decoder, key string) error {
		var v string
		var err error
		switch key {
		case "name":
			v, err = d.Str()
			cust.Name = v
		case "phone":
			v, err = d.Str()
			cust.Phone = v
		case "address":
			v, err = d.Str()
			cust.Address = v
		case "delivery":
			v, err = d.Str()
			cust.Delivery = order.DeliveryMethod(v)
		case "payment":
			v, err = d.Str()
			cust.Payment = order.PaymentMethod(v)
		case "notes":
			v, err = d.Str()
			cust.Notes = v
		default:
			return d.Skip()
		}
		return err
	})
	return cust, err
}
