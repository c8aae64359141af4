package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents an item in the catalog
type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string             `bson:"name" json:"name"`
	Price         int64              `bson:"price" json:"price"` // smallest currency unit
	Description   string             `bson:"description" json:"description"`
	Image         string             `bson:"image" json:"image"`
	Type          string             `bson:"type" json:"type"`         // e.g. "shirts", "jeans"
	Category      string             `bson:"category" json:"category"` // "mens" or "womens"
	Sizes         []string           `bson:"sizes" json:"sizes"`
	Colors        []string           `bson:"colors" json:"colors"`
	Featured      bool               `bson:"featured" json:"featured"`
	FreeDelivery  bool               `bson:"free_delivery" json:"free_delivery"`
	Inventory     int                `bson:"inventory" json:"inventory"`
	AverageRating float64            `bson:"average_rating" json:"average_rating"`
	NumOfReviews  int                `bson:"num_of_reviews" json:"num_of_reviews"`
	UserID        primitive.ObjectID `bson:"user_id" json:"user_id"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}
