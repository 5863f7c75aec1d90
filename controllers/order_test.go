package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"go-canteen/middleware"
	"go-canteen/utils"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// placeOrder runs PlaceOrder with student claims already in the request
// context, as the middleware chain would leave them.
func placeOrder(t *testing.T, oc *OrderController, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/place-order", bytes.NewReader(payload))
	claims := &utils.Claims{StudentID: 102}
	req = req.WithContext(context.WithValue(req.Context(), middleware.UserContextKey, claims))

	rec := httptest.NewRecorder()
	oc.PlaceOrder(rec, req)
	return rec
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	oc := &OrderController{}
	rec := placeOrder(t, oc, PlaceOrderRequest{
		CartItems:   []CartLine{},
		PaymentMode: "UPI",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Cart is empty")
}

func TestPlaceOrderRejectsUnknownPaymentMode(t *testing.T) {
	oc := &OrderController{}
	rec := placeOrder(t, oc, PlaceOrderRequest{
		CartItems:   []CartLine{{FoodID: "64b0c8c2f1d2a45d9c000001", Quantity: 1, Price: 5000}},
		PaymentMode: "Barter",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid payment mode")
}

func TestPlaceOrderRejectsZeroQuantity(t *testing.T) {
	oc := &OrderController{}
	rec := placeOrder(t, oc, PlaceOrderRequest{
		CartItems:   []CartLine{{FoodID: "64b0c8c2f1d2a45d9c000001", Quantity: 0, Price: 5000}},
		PaymentMode: "Cash",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Quantity")
}

func TestPlaceOrderRejectsMalformedFoodID(t *testing.T) {
	oc := &OrderController{}
	rec := placeOrder(t, oc, PlaceOrderRequest{
		CartItems:   []CartLine{{FoodID: "not-an-object-id", Quantity: 1, Price: 5000}},
		PaymentMode: "Cash",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPlaceOrderRequiresClaims(t *testing.T) {
	oc := &OrderController{}
	req := httptest.NewRequest("POST", "/place-order", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	oc.PlaceOrder(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPlaceOrderAcceptsDecimalWrapperPrices(t *testing.T) {
	// The frontend historically sent prices either as numbers or as Mongo
	// extended-JSON wrappers; both must decode into the same request.
	raw := []byte(`{
		"cartItems": [
			{"_id": "64b0c8c2f1d2a45d9c000001", "quantity": 2, "price": {"$numberDecimal": "50"}},
			{"_id": "64b0c8c2f1d2a45d9c000002", "quantity": 1, "price": 25.5}
		],
		"total_price": "125.50",
		"payment_mode": "UPI"
	}`)

	var req PlaceOrderRequest
	require.NoError(t, json.Unmarshal(raw, &req))
	assert.Equal(t, int64(5000), int64(req.CartItems[0].Price))
	assert.Equal(t, int64(2550), int64(req.CartItems[1].Price))
	assert.Equal(t, int64(12550), int64(req.TotalPrice))
}
