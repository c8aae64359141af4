package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Paid and cancelled are terminal.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCancelled = "cancelled"
)

// OrderItem is a single basket line with the product's name, price and
// image snapshotted at checkout. Later product edits do not alter it.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Name      string             `bson:"name" json:"name"`
	Price     int64              `bson:"price" json:"price"` // smallest currency unit
	Image     string             `bson:"image" json:"image"`
	Amount    int64              `bson:"amount" json:"amount"`
	Color     string             `bson:"color" json:"color"`
	Size      string             `bson:"size" json:"size"`
}

// Order represents a checkout. Invariant: Total = Subtotal + DeliveryFee,
// Subtotal = sum of item Price*Amount at creation time.
type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID          primitive.ObjectID `bson:"user_id" json:"user_id"`
	Items           []OrderItem        `bson:"items" json:"items"`
	Subtotal        int64              `bson:"subtotal" json:"subtotal"`
	DeliveryFee     int64              `bson:"delivery_fee" json:"delivery_fee"`
	Total           int64              `bson:"total" json:"total"`
	ClientSecret    string             `bson:"client_secret" json:"client_secret"`
	PaymentIntentID string             `bson:"payment_intent_id,omitempty" json:"payment_intent_id,omitempty"`
	Status          string             `bson:"status" json:"status"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
}
