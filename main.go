// main.go
package main

import (
	"context"
	"net/http"
	"os"

	"go-shop-api/controllers"
	"go-shop-api/routes"
	"go-shop-api/store"
	"go-shop-api/utils"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()

	sync := utils.InitLogger()
	defer sync()

	if err != nil {
		utils.Logger.Info("No .env file found. Proceeding with environment variables.")
	}

	// Set the JWT secret key
	utils.JwtKey = []byte(os.Getenv("JWT_SECRET"))

	// Initialize external services
	emailService := utils.NewEmailService()
	paymentService := utils.NewStripeService(os.Getenv("STRIPE_SECRET"))

	// Connect to MongoDB
	client := utils.ConnectDB()
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			utils.Logger.Fatal(err)
		}
	}()

	stores := store.NewMongoStores(client, "ecommerce")

	// Initialize controllers
	origin := os.Getenv("ORIGIN")
	userController := controllers.NewUserController(stores.Users, stores.Tokens, emailService, origin)
	productController := controllers.NewProductController(stores.Products, stores.Reviews)
	orderController := controllers.NewOrderController(stores.Orders, stores.Products, paymentService)
	reviewController := controllers.NewReviewController(stores.Reviews, stores.Products, stores.Orders)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, stores.Tokens, userController, productController, orderController, reviewController)

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	utils.Logger.Infof("Server is running on port %s", port)
	utils.Logger.Fatal(http.ListenAndServe(":"+port, router))
}
