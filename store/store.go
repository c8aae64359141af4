package store

import (
	"context"
	"errors"

	"go-shop-api/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned when a document does not exist
var ErrNotFound = errors.New("document not found")

// UserStore persists user accounts
type UserStore interface {
	CountUsers(ctx context.Context) (int64, error)
	InsertUser(ctx context.Context, user *models.User) error
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
}

// TokenStore persists per-user session records
type TokenStore interface {
	InsertToken(ctx context.Context, token *models.Token) error
	FindTokenByUser(ctx context.Context, userID primitive.ObjectID) (*models.Token, error)
	FindToken(ctx context.Context, userID primitive.ObjectID, refreshToken string) (*models.Token, error)
	DeleteTokenByUser(ctx context.Context, userID primitive.ObjectID) error
}

// OrderStore persists orders
type OrderStore interface {
	InsertOrder(ctx context.Context, order *models.Order) error
	FindOrderByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error)
	FindOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error)
	FindAllOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrder(ctx context.Context, order *models.Order) error
}

// ReviewStore persists product reviews
type ReviewStore interface {
	InsertReview(ctx context.Context, review *models.Review) error
	FindReviewByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	FindReviewByUserAndProduct(ctx context.Context, userID, productID primitive.ObjectID) (*models.Review, error)
	FindReviewsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Review, error)
	FindReviewsByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error)
	FindAllReviews(ctx context.Context) ([]models.Review, error)
	UpdateReview(ctx context.Context, review *models.Review) error
	DeleteReview(ctx context.Context, id primitive.ObjectID) error
	DeleteReviewsByProduct(ctx context.Context, productID primitive.ObjectID) error
}

// ProductStore persists catalog products
type ProductStore interface {
	InsertProduct(ctx context.Context, product *models.Product) error
	FindProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error)
	FindAllProducts(ctx context.Context) ([]models.Product, error)
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id primitive.ObjectID) error
}
