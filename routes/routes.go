// routes/routes.go
package routes

import (
	"go-shop-api/controllers"
	"go-shop-api/middleware"
	"go-shop-api/store"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(
	router *mux.Router,
	tokens store.TokenStore,
	userController *controllers.UserController,
	productController *controllers.ProductController,
	orderController *controllers.OrderController,
	reviewController *controllers.ReviewController,
) {
	authenticate := middleware.Authenticate(tokens)

	// Public auth routes
	router.HandleFunc("/register", userController.Register).Methods("POST")
	router.HandleFunc("/login", userController.Login).Methods("POST")
	router.HandleFunc("/verify-email", userController.VerifyEmail).Methods("POST")
	router.HandleFunc("/forgot-password", userController.ForgotPassword).Methods("POST")
	router.HandleFunc("/reset-password", userController.ResetPassword).Methods("POST")

	logout := router.PathPrefix("/logout").Subrouter()
	logout.Use(authenticate)
	logout.HandleFunc("", userController.Logout).Methods("GET")

	// Product routes
	router.HandleFunc("/products", productController.GetProducts).Methods("GET")
	router.HandleFunc("/products/{id}", productController.GetProductByID).Methods("GET")
	router.HandleFunc("/products/{id}/reviews", reviewController.GetSingleProductReviews).Methods("GET")

	productAdmin := router.PathPrefix("/products").Subrouter()
	productAdmin.Use(authenticate)
	productAdmin.Use(middleware.AdminOnly)
	productAdmin.HandleFunc("", productController.CreateProduct).Methods("POST")
	productAdmin.HandleFunc("/{id}", productController.UpdateProduct).Methods("PATCH")
	productAdmin.HandleFunc("/{id}", productController.DeleteProduct).Methods("DELETE")

	// Order routes
	orders := router.PathPrefix("/orders").Subrouter()
	orders.Use(authenticate)
	orders.HandleFunc("", orderController.CreateOrder).Methods("POST")
	orders.HandleFunc("/user", orderController.GetCurrentUserOrders).Methods("GET")
	orders.HandleFunc("/{id}", orderController.GetSingleOrder).Methods("GET")
	orders.HandleFunc("/{id}", orderController.UpdateOrder).Methods("PATCH")

	orderAdmin := router.PathPrefix("/orders").Subrouter()
	orderAdmin.Use(authenticate)
	orderAdmin.Use(middleware.AdminOnly)
	orderAdmin.HandleFunc("", orderController.GetAllOrders).Methods("GET")

	// Review routes. The authenticated /reviews/user route must be
	// registered before the public /reviews/{id} catch-all.
	router.HandleFunc("/reviews", reviewController.GetAllReviews).Methods("GET")

	reviews := router.PathPrefix("/reviews").Subrouter()
	reviews.Use(authenticate)
	reviews.HandleFunc("", reviewController.CreateReview).Methods("POST")
	reviews.HandleFunc("/user", reviewController.GetAllUserReviews).Methods("GET")
	reviews.HandleFunc("/{id}", reviewController.UpdateReview).Methods("PATCH")
	reviews.HandleFunc("/{id}", reviewController.DeleteReview).Methods("DELETE")

	router.HandleFunc("/reviews/{id}", reviewController.GetSingleReview).Methods("GET")
}
