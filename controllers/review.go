// controllers/review.go
package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go-shop-api/middleware"
	"go-shop-api/models"
	"go-shop-api/store"
	"go-shop-api/utils"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ReviewController handles review-related requests
type ReviewController struct {
	Reviews  store.ReviewStore
	Products store.ProductStore
	Orders   store.OrderStore
}

// NewReviewController creates a new ReviewController
func NewReviewController(reviews store.ReviewStore, products store.ProductStore, orders store.OrderStore) *ReviewController {
	return &ReviewController{
		Reviews:  reviews,
		Products: products,
		Orders:   orders,
	}
}

// hasPurchased reports whether any paid order contains the product
func hasPurchased(orders []models.Order, productID primitive.ObjectID) bool {
	for _, order := range orders {
		if order.Status != models.OrderStatusPaid {
			continue
		}
		for _, item := range order.Items {
			if item.ProductID == productID {
				return true
			}
		}
	}
	return false
}

// CreateReview creates a review, gated on a completed purchase of the
// product and at most one review per (user, product) pair
func (rc *ReviewController) CreateReview(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	var input struct {
		Product string `json:"product"`
		Rating  int    `json:"rating"`
		Title   string `json:"title"`
		Comment string `json:"comment"`
	}
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	productID, err := primitive.ObjectIDFromHex(input.Product)
	if err != nil {
		http.Error(w, fmt.Sprintf("No product with id %s exists", input.Product), http.StatusNotFound)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	product, err := rc.Products.FindProductByID(ctx, productID)
	if err != nil {
		http.Error(w, fmt.Sprintf("No product with id %s exists", input.Product), http.StatusNotFound)
		return
	}

	orders, err := rc.Orders.FindOrdersByUser(ctx, user.UserID)
	if err != nil {
		http.Error(w, "Failed to retrieve orders", http.StatusInternalServerError)
		return
	}
	if !hasPurchased(orders, productID) {
		http.Error(w, "You must first purchase this product before writing a review", http.StatusNotFound)
		return
	}

	_, err = rc.Reviews.FindReviewByUserAndProduct(ctx, user.UserID, productID)
	if err == nil {
		http.Error(w, "You have already submitted a review for this product", http.StatusBadRequest)
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	now := time.Now()
	review := models.Review{
		ProductID: productID,
		UserID:    user.UserID,
		Rating:    input.Rating,
		Title:     input.Title,
		Comment:   input.Comment,
		Image:     product.Image,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := rc.Reviews.InsertReview(ctx, &review); err != nil {
		http.Error(w, "Failed to create review", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{"review": review})
}

// GetAllReviews retrieves every review
func (rc *ReviewController) GetAllReviews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	reviews, err := rc.Reviews.FindAllReviews(ctx)
	if err != nil {
		http.Error(w, "Failed to retrieve reviews", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"reviews": reviews, "count": len(reviews)})
}

// GetAllUserReviews retrieves the authenticated user's reviews
func (rc *ReviewController) GetAllUserReviews(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	reviews, err := rc.Reviews.FindReviewsByUser(ctx, user.UserID)
	if err != nil {
		http.Error(w, "Failed to retrieve reviews", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"reviews": reviews, "count": len(reviews)})
}

// GetSingleReview retrieves one review by id
func (rc *ReviewController) GetSingleReview(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	reviewID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid review ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	review, err := rc.Reviews.FindReviewByID(ctx, reviewID)
	if err != nil {
		http.Error(w, fmt.Sprintf("No review with id %s exists", vars["id"]), http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"review": review})
}

// GetSingleProductReviews retrieves all reviews for one product
func (rc *ReviewController) GetSingleProductReviews(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	productID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid product ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	reviews, err := rc.Reviews.FindReviewsByProduct(ctx, productID)
	if err != nil {
		http.Error(w, "Failed to retrieve reviews", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"reviews": reviews, "count": len(reviews)})
}

// UpdateReview replaces rating, title and comment, owner or admin only
func (rc *ReviewController) UpdateReview(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	reviewID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid review ID", http.StatusBadRequest)
		return
	}

	var input struct {
		Rating  int    `json:"rating"`
		Title   string `json:"title"`
		Comment string `json:"comment"`
	}
	err = json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	review, err := rc.Reviews.FindReviewByID(ctx, reviewID)
	if err != nil {
		http.Error(w, fmt.Sprintf("No review with id %s exists", vars["id"]), http.StatusNotFound)
		return
	}

	if err := utils.CheckPermissions(user, review.UserID); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	review.Rating = input.Rating
	review.Title = input.Title
	review.Comment = input.Comment
	review.UpdatedAt = time.Now()
	if err := rc.Reviews.UpdateReview(ctx, review); err != nil {
		http.Error(w, "Failed to update review", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{"review": review})
}

// DeleteReview removes a review, owner or admin only
func (rc *ReviewController) DeleteReview(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	vars := mux.Vars(r)
	reviewID, err := primitive.ObjectIDFromHex(vars["id"])
	if err != nil {
		http.Error(w, "Invalid review ID", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	review, err := rc.Reviews.FindReviewByID(ctx, reviewID)
	if err != nil {
		http.Error(w, fmt.Sprintf("No review with id %s exists", vars["id"]), http.StatusNotFound)
		return
	}

	if err := utils.CheckPermissions(user, review.UserID); err != nil {
		http.Error(w, err.Error(), http.StatusForbidden)
		return
	}

	if err := rc.Reviews.DeleteReview(ctx, reviewID); err != nil {
		http.Error(w, "Failed to delete review", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"msg": "Review deleted"})
}
