package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-shop-api/models"
	"go-shop-api/utils"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newOrderTestController() (*OrderController, *memOrderStore, *memProductStore, *fakePayments) {
	utils.JwtKey = []byte("test-secret")
	orders := &memOrderStore{}
	products := &memProductStore{}
	payments := &fakePayments{}
	oc := NewOrderController(orders, products, payments)
	return oc, orders, products, payments
}

func seedProduct(t *testing.T, products *memProductStore, name string, price int64) models.Product {
	t.Helper()
	product := models.Product{
		Name:  name,
		Price: price,
		Image: "/uploads/" + name + ".jpeg",
	}
	require.NoError(t, products.InsertProduct(context.Background(), &product))
	return product
}

func TestCreateOrderComputesTotals(t *testing.T) {
	oc, orders, products, payments := newOrderTestController()
	shirt := seedProduct(t, products, "shirt", 1000)
	caller := models.TokenUser{UserID: primitive.NewObjectID(), Name: "Alice", Role: "user"}

	w := httptest.NewRecorder()
	r := asUser(jsonRequest(t, "POST", "/orders", map[string]interface{}{
		"basket": []map[string]interface{}{
			{"productId": shirt.ID.Hex(), "amount": 2, "color": "#222", "size": "M"},
		},
		"deliveryFee": 250,
	}), caller)
	oc.CreateOrder(w, r)
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Order        models.Order `json:"order"`
		ClientSecret string       `json:"clientSecret"`
	}
	decodeBody(t, w, &body)

	assert.Equal(t, int64(2000), body.Order.Subtotal)
	assert.Equal(t, int64(2250), body.Order.Total)
	assert.Equal(t, models.OrderStatusPending, body.Order.Status)
	assert.Equal(t, "pi_test_secret", body.ClientSecret)
	assert.Equal(t, caller.UserID, body.Order.UserID)
	assert.Equal(t, 1, payments.calls)

	require.Len(t, orders.orders, 1)
	require.Len(t, orders.orders[0].Items, 1)
	item := orders.orders[0].Items[0]
	assert.Equal(t, shirt.ID, item.ProductID)
	assert.Equal(t, "shirt", item.Name)
	assert.Equal(t, int64(1000), item.Price)
	assert.Equal(t, "M", item.Size)
}

func TestCreateOrderSnapshotsPrices(t *testing.T) {
	oc, orders, products, _ := newOrderTestController()
	shirt := seedProduct(t, products, "shirt", 1000)
	caller := models.TokenUser{UserID: primitive.NewObjectID(), Role: "user"}

	w := httptest.NewRecorder()
	oc.CreateOrder(w, asUser(jsonRequest(t, "POST", "/orders", map[string]interface{}{
		"basket":      []map[string]interface{}{{"productId": shirt.ID.Hex(), "amount": 2}},
		"deliveryFee": 250,
	}), caller))
	require.Equal(t, http.StatusCreated, w.Code)

	// a later price change must not alter the persisted order
	shirt.Price = 9999
	require.NoError(t, products.UpdateProduct(context.Background(), &shirt))

	require.Len(t, orders.orders, 1)
	assert.Equal(t, int64(1000), orders.orders[0].Items[0].Price)
	assert.Equal(t, int64(2000), orders.orders[0].Subtotal)
}

func TestCreateOrderEmptyBasket(t *testing.T) {
	oc, _, _, _ := newOrderTestController()
	caller := models.TokenUser{UserID: primitive.NewObjectID(), Role: "user"}

	w := httptest.NewRecorder()
	oc.CreateOrder(w, asUser(jsonRequest(t, "POST", "/orders", map[string]interface{}{
		"basket":      []map[string]interface{}{},
		"deliveryFee": 250,
	}), caller))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderMissingDeliveryFee(t *testing.T) {
	oc, _, products, _ := newOrderTestController()
	shirt := seedProduct(t, products, "shirt", 1000)
	caller := models.TokenUser{UserID: primitive.NewObjectID(), Role: "user"}

	w := httptest.NewRecorder()
	oc.CreateOrder(w, asUser(jsonRequest(t, "POST", "/orders", map[string]interface{}{
		"basket": []map[string]interface{}{{"productId": shirt.ID.Hex(), "amount": 1}},
	}), caller))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderUnknownProductIsAtomic(t *testing.T) {
	oc, orders, products, payments := newOrderTestController()
	shirt := seedProduct(t, products, "shirt", 1000)
	caller := models.TokenUser{UserID: primitive.NewObjectID(), Role: "user"}

	w := httptest.NewRecorder()
	oc.CreateOrder(w, asUser(jsonRequest(t, "POST", "/orders", map[string]interface{}{
		"basket": []map[string]interface{}{
			{"productId": shirt.ID.Hex(), "amount": 1},
			{"productId": primitive.NewObjectID().Hex(), "amount": 1},
		},
		"deliveryFee": 250,
	}), caller))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, orders.orders, "no order may be persisted when any lookup fails")
	assert.Zero(t, payments.calls, "no payment intent for a failed order")
}

func TestCreateOrderProcessorFailure(t *testing.T) {
	oc, orders, products, payments := newOrderTestController()
	shirt := seedProduct(t, products, "shirt", 1000)
	payments.fail = true
	caller := models.TokenUser{UserID: primitive.NewObjectID(), Role: "user"}

	w := httptest.NewRecorder()
	oc.CreateOrder(w, asUser(jsonRequest(t, "POST", "/orders", map[string]interface{}{
		"basket":      []map[string]interface{}{{"productId": shirt.ID.Hex(), "amount": 1}},
		"deliveryFee": 250,
	}), caller))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, orders.orders)
}

func seedOrder(t *testing.T, orders *memOrderStore, userID primitive.ObjectID, items ...models.OrderItem) models.Order {
	t.Helper()
	order := models.Order{
		UserID:      userID,
		Items:       items,
		Subtotal:    1000,
		DeliveryFee: 250,
		Total:       1250,
		Status:      models.OrderStatusPending,
	}
	require.NoError(t, orders.InsertOrder(context.Background(), &order))
	return order
}

func TestUpdateOrderCancel(t *testing.T) {
	oc, orders, _, _ := newOrderTestController()
	owner := models.TokenUser{UserID: primitive.NewObjectID(), Role: "user"}
	order := seedOrder(t, orders, owner.UserID)

	r := asUser(jsonRequest(t, "PATCH", "/orders/"+order.ID.Hex(), map[string]interface{}{
		"cancelOrder": true,
	}), owner)
	r = mux.SetURLVars(r, map[string]string{"id": order.ID.Hex()})

	w := httptest.NewRecorder()
	oc.UpdateOrder(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	updated, err := orders.FindOrderByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, updated.Status)
	assert.Empty(t, updated.PaymentIntentID)
}

func TestUpdateOrderMarksPaid(t *testing.T) {
	oc, orders, _, _ := newOrderTestController()
	owner := models.TokenUser{UserID: primitive.NewObjectID(), Role: "user"}
	order := seedOrder(t, orders, owner.UserID)

	r := asUser(jsonRequest(t, "PATCH", "/orders/"+order.ID.Hex(), map[string]interface{}{
		"paymentIntentId": "pi_12345",
	}), owner)
	r = mux.SetURLVars(r, map[string]string{"id": order.ID.Hex()})

	w := httptest.NewRecorder()
	oc.UpdateOrder(w, r)
	require.Equal(t, http.StatusOK, w.Code)

	updated, err := orders.FindOrderByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, updated.Status)
	assert.Equal(t, "pi_12345", updated.PaymentIntentID)
}

func TestUpdateOrderForbiddenForStranger(t *testing.T) {
	oc, orders, _, _ := newOrderTestController()
	owner := primitive.NewObjectID()
	order := seedOrder(t, orders, owner)
	stranger := models.TokenUser{UserID: primitive.NewObjectID(), Role: "user"}

	r := asUser(jsonRequest(t, "PATCH", "/orders/"+order.ID.Hex(), map[string]interface{}{
		"cancelOrder": true,
	}), stranger)
	r = mux.SetURLVars(r, map[string]string{"id": order.ID.Hex()})

	w := httptest.NewRecorder()
	oc.UpdateOrder(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestUpdateOrderAdminBypassesOwnership(t *testing.T) {
	oc, orders, _, _ := newOrderTestController()
	order := seedOrder(t, orders, primitive.NewObjectID())
	admin := models.TokenUser{UserID: primitive.NewObjectID(), Role: "admin"}

	r := asUser(jsonRequest(t, "PATCH", "/orders/"+order.ID.Hex(), map[string]interface{}{
		"cancelOrder": true,
	}), admin)
	r = mux.SetURLVars(r, map[string]string{"id": order.ID.Hex()})

	w := httptest.NewRecorder()
	oc.UpdateOrder(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestUpdateOrderUnknownID(t *testing.T) {
	oc, _, _, _ := newOrderTestController()
	caller := models.TokenUser{UserID: primitive.NewObjectID(), Role: "user"}
	id := primitive.NewObjectID().Hex()

	r := asUser(jsonRequest(t, "PATCH", "/orders/"+id, map[string]interface{}{
		"cancelOrder": true,
	}), caller)
	r = mux.SetURLVars(r, map[string]string{"id": id})

	w := httptest.NewRecorder()
	oc.UpdateOrder(w, r)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSingleOrderEnforcesOwnership(t *testing.T) {
	oc, orders, _, _ := newOrderTestController()
	owner := models.TokenUser{UserID: primitive.NewObjectID(), Role: "user"}
	order := seedOrder(t, orders, owner.UserID)

	get := func(user models.TokenUser) *httptest.ResponseRecorder {
		r := asUser(httptest.NewRequest("GET", "/orders/"+order.ID.Hex(), nil), user)
		r = mux.SetURLVars(r, map[string]string{"id": order.ID.Hex()})
		w := httptest.NewRecorder()
		oc.GetSingleOrder(w, r)
		return w
	}

	assert.Equal(t, http.StatusOK, get(owner).Code)
	assert.Equal(t, http.StatusOK, get(models.TokenUser{UserID: primitive.NewObjectID(), Role: "admin"}).Code)
	assert.Equal(t, http.StatusForbidden, get(models.TokenUser{UserID: primitive.NewObjectID(), Role: "user"}).Code)
}

func TestGetCurrentUserOrders(t *testing.T) {
	oc, orders, _, _ := newOrderTestController()
	alice := models.TokenUser{UserID: primitive.NewObjectID(), Role: "user"}
	seedOrder(t, orders, alice.UserID)
	seedOrder(t, orders, alice.UserID)
	seedOrder(t, orders, primitive.NewObjectID())

	w := httptest.NewRecorder()
	oc.GetCurrentUserOrders(w, asUser(httptest.NewRequest("GET", "/orders/user", nil), alice))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Orders []models.Order `json:"orders"`
		Count  int            `json:"count"`
	}
	decodeBody(t, w, &body)
	assert.Equal(t, 2, body.Count)
	for _, o := range body.Orders {
		assert.Equal(t, alice.UserID, o.UserID)
	}
}

func TestGetAllOrders(t *testing.T) {
	oc, orders, _, _ := newOrderTestController()
	seedOrder(t, orders, primitive.NewObjectID())
	seedOrder(t, orders, primitive.NewObjectID())

	w := httptest.NewRecorder()
	oc.GetAllOrders(w, httptest.NewRequest("GET", "/orders", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Count int `json:"count"`
	}
	decodeBody(t, w, &body)
	assert.Equal(t, 2, body.Count)
}
