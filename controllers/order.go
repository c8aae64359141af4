// controllers/order.go
package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go-shop-api/middleware"
	"go-shop-api/models"
	"go-shop-api/store"
	"go-shop-api/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// PaymentClient requests payment intents from the external processor
type PaymentClient interface {
	CreatePaymentIntent(ctx context.Context, amount int64) (*utils.PaymentIntent, error)
}

// OrderController handles order-related requests
type OrderController struct {
	Orders   store.OrderStore
	Products store.ProductStore
	Payments PaymentClient
}

// NewOrderController creates a new OrderController
func NewOrderController(orders store.OrderStore, products store.ProductStore, payments PaymentClient) *OrderController {
	return &OrderController{
		Orders:   orders,
		Products: products,
		Payments: payments,
	}
}

// BasketItem is a checkout request line
type BasketItem struct {
	ProductID string `json:"productId"`
	Amount    int64  `json:"amount"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

// CreateOrder validates the basket, snapshots product details per line,
// requests a payment intent for the total and persists the order as pending.
// If any product lookup fails, nothing is persisted.
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	var input struct {
		Basket      []BasketItem `json:"basket"`
		DeliveryFee int64        `json:"deliveryFee"`
	}
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if len(input.Basket) == 0 {
		http.Error(w, "No basket items provided", http.StatusBadRequest)
		return
	}
	if input.DeliveryFee == 0 {
		http.Error(w, "Please provide a delivery fee", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var orderItems []models.OrderItem
	var subtotal int64
	for _, item := range input.Basket {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			http.Error(w, fmt.Sprintf("No product with id %s exists", item.ProductID), http.StatusNotFound)
			return
		}
		product, err := oc.Products.FindProductByID(ctx, productID)
		if err != nil {
			http.Error(w, fmt.Sprintf("No product with id %s exists", item.ProductID), http.StatusNotFound)
			return
		}

		// snapshot name, price and image so later product edits do not
		// alter this order
		orderItems = append(orderItems, models.OrderItem{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Amount:    item.Amount,
			Color:     item.Color,
			Size:      item.Size,
		})
		subtotal += product.Price * item.Amount
	}
	total := subtotal + input.DeliveryFee

	intent, err := oc.Payments.CreatePaymentIntent(ctx, total)
	if err != nil {
		utils.Logger.Errorw("failed to create payment intent", zap.Error(err), "total", total)
		http.Error(w, "Failed to create payment intent", http.StatusInternalServerError)
		return
	}

	order := models.Order{
		UserID:       user.UserID,
		Items:        orderItems,
		Subtotal:     subtotal,
		DeliveryFee:  input.DeliveryFee,
		Total:        total,
		ClientSecret: intent.ClientSecret,
		Status:       models.OrderStatusPending,
		CreatedAt:    time.Now(),
	}
	if err := oc.Orders.InsertOrder(ctx, &order); err != nil {
		http.Error(w, "Failed to create order", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"order":        order,
		"clientSecret": order.ClientSecret,
	})
}

// UpdateOrder cancels an order or records the payment intent id and marks it
// paid. The payment intent id is taken from the client as-is; capture is not
// verified with the processor.
func (oc *OrderController) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	orderID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	var input struct {
		CancelOrder     bool   `json:"cancelOrder"`
		PaymentIntentID string `json:"paymentIntentId"`
	}
	err = json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := oc.Orders.FindOrderByID(ctx, orderID)
	if err != nil {
		http.Error(w, fmt.Sprintf("No order with id %s exists", vars["id"]), http.StatusNotFound)
		return
	}

	if err := utils.CheckPermissions(user, order.UserID); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	if input.CancelOrder {
		order.Status = models.OrderStatusCancelled
		if err := oc.Orders.UpdateOrder(ctx, order); err != nil {
			http.Error(w, "Failed to update order", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{"order": order})
		return
	}

	order.PaymentIntentID = input.PaymentIntentID
	order.Status = models.OrderStatusPaid
	if err := oc.Orders.UpdateOrder(ctx, order); err != nil {
		http.Error(w, "Failed to update order", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"order": order})
}

// GetAllOrders retrieves every order (admin only, enforced by routing)
func (oc *OrderController) GetAllOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orders, err := oc.Orders.FindAllOrders(ctx)
	if err != nil {
		http.Error(w, "Failed to retrieve orders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"orders": orders, "count": len(orders)})
}

// GetCurrentUserOrders retrieves all orders for the authenticated user
func (oc *OrderController) GetCurrentUserOrders(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orders, err := oc.Orders.FindOrdersByUser(ctx, user.UserID)
	if err != nil {
		http.Error(w, "Failed to retrieve orders", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"orders": orders, "count": len(orders)})
}

// GetSingleOrder retrieves one order, owner or admin only
func (oc *OrderController) GetSingleOrder(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	orderID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, err := oc.Orders.FindOrderByID(ctx, orderID)
	if err != nil {
		http.Error(w, fmt.Sprintf("No order with id %s exists", vars["id"]), http.StatusNotFound)
		return
	}

	if err := utils.CheckPermissions(user, order.UserID); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"order": order})
}
