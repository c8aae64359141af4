package store

import (
	"context"
	"errors"

	"go-shop-api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Stores bundles the mongo-backed implementations of every store interface
type Stores struct {
	Users    UserStore
	Tokens   TokenStore
	Orders   OrderStore
	Reviews  ReviewStore
	Products ProductStore
}

// NewMongoStores wires every store to its collection in the given database
func NewMongoStores(client *mongo.Client, database string) *Stores {
	db := client.Database(database)
	return &Stores{
		Users:    &MongoUserStore{collection: db.Collection("users")},
		Tokens:   &MongoTokenStore{collection: db.Collection("tokens")},
		Orders:   &MongoOrderStore{collection: db.Collection("orders")},
		Reviews:  &MongoReviewStore{collection: db.Collection("reviews")},
		Products: &MongoProductStore{collection: db.Collection("products")},
	}
}

// MongoUserStore implements UserStore on a mongo collection
type MongoUserStore struct {
	collection *mongo.Collection
}

func (s *MongoUserStore) CountUsers(ctx context.Context) (int64, error) {
	return s.collection.CountDocuments(ctx, bson.M{})
}

func (s *MongoUserStore) InsertUser(ctx context.Context, user *models.User) error {
	result, err := s.collection.InsertOne(ctx, user)
	if err != nil {
		return err
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoUserStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (s *MongoUserStore) FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var user models.User
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err != nil {
		return nil, mapErr(err)
	}
	return &user, nil
}

func (s *MongoUserStore) UpdateUser(ctx context.Context, user *models.User) error {
	update := bson.M{
		"$set": bson.M{
			"name":               user.Name,
			"password":           user.Password,
			"is_verified":        user.IsVerified,
			"verified":           user.Verified,
			"verification_token": user.VerificationToken,
			"password_token":     user.PasswordToken,
			"password_token_exp": user.PasswordTokenExp,
		},
	}
	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": user.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoTokenStore implements TokenStore on a mongo collection
type MongoTokenStore struct {
	collection *mongo.Collection
}

func (s *MongoTokenStore) InsertToken(ctx context.Context, token *models.Token) error {
	result, err := s.collection.InsertOne(ctx, token)
	if err != nil {
		return err
	}
	token.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoTokenStore) FindTokenByUser(ctx context.Context, userID primitive.ObjectID) (*models.Token, error) {
	var token models.Token
	err := s.collection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&token)
	if err != nil {
		return nil, mapErr(err)
	}
	return &token, nil
}

func (s *MongoTokenStore) FindToken(ctx context.Context, userID primitive.ObjectID, refreshToken string) (*models.Token, error) {
	var token models.Token
	filter := bson.M{"user_id": userID, "refresh_token": refreshToken}
	err := s.collection.FindOne(ctx, filter).Decode(&token)
	if err != nil {
		return nil, mapErr(err)
	}
	return &token, nil
}

func (s *MongoTokenStore) DeleteTokenByUser(ctx context.Context, userID primitive.ObjectID) error {
	_, err := s.collection.DeleteOne(ctx, bson.M{"user_id": userID})
	return err
}

// MongoOrderStore implements OrderStore on a mongo collection
type MongoOrderStore struct {
	collection *mongo.Collection
}

func (s *MongoOrderStore) InsertOrder(ctx context.Context, order *models.Order) error {
	result, err := s.collection.InsertOne(ctx, order)
	if err != nil {
		return err
	}
	order.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoOrderStore) FindOrderByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	var order models.Order
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&order)
	if err != nil {
		return nil, mapErr(err)
	}
	return &order, nil
}

func (s *MongoOrderStore) FindOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	return s.findOrders(ctx, bson.M{"user_id": userID})
}

func (s *MongoOrderStore) FindAllOrders(ctx context.Context) ([]models.Order, error) {
	return s.findOrders(ctx, bson.M{})
}

func (s *MongoOrderStore) findOrders(ctx context.Context, filter bson.M) ([]models.Order, error) {
	cursor, err := s.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var orders []models.Order
	if err := cursor.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *MongoOrderStore) UpdateOrder(ctx context.Context, order *models.Order) error {
	update := bson.M{
		"$set": bson.M{
			"status":            order.Status,
			"payment_intent_id": order.PaymentIntentID,
		},
	}
	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": order.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// MongoReviewStore implements ReviewStore on a mongo collection
type MongoReviewStore struct {
	collection *mongo.Collection
}

func (s *MongoReviewStore) InsertReview(ctx context.Context, review *models.Review) error {
	result, err := s.collection.InsertOne(ctx, review)
	if err != nil {
		return err
	}
	review.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoReviewStore) FindReviewByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&review)
	if err != nil {
		return nil, mapErr(err)
	}
	return &review, nil
}

func (s *MongoReviewStore) FindReviewByUserAndProduct(ctx context.Context, userID, productID primitive.ObjectID) (*models.Review, error) {
	var review models.Review
	filter := bson.M{"user_id": userID, "product_id": productID}
	err := s.collection.FindOne(ctx, filter).Decode(&review)
	if err != nil {
		return nil, mapErr(err)
	}
	return &review, nil
}

func (s *MongoReviewStore) FindReviewsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Review, error) {
	return s.findReviews(ctx, bson.M{"user_id": userID})
}

func (s *MongoReviewStore) FindReviewsByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error) {
	return s.findReviews(ctx, bson.M{"product_id": productID})
}

func (s *MongoReviewStore) FindAllReviews(ctx context.Context) ([]models.Review, error) {
	return s.findReviews(ctx, bson.M{})
}

func (s *MongoReviewStore) findReviews(ctx context.Context, filter bson.M) ([]models.Review, error) {
	cursor, err := s.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var reviews []models.Review
	if err := cursor.All(ctx, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (s *MongoReviewStore) UpdateReview(ctx context.Context, review *models.Review) error {
	update := bson.M{
		"$set": bson.M{
			"rating":     review.Rating,
			"title":      review.Title,
			"comment":    review.Comment,
			"updated_at": review.UpdatedAt,
		},
	}
	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": review.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoReviewStore) DeleteReview(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoReviewStore) DeleteReviewsByProduct(ctx context.Context, productID primitive.ObjectID) error {
	_, err := s.collection.DeleteMany(ctx, bson.M{"product_id": productID})
	return err
}

// MongoProductStore implements ProductStore on a mongo collection
type MongoProductStore struct {
	collection *mongo.Collection
}

func (s *MongoProductStore) InsertProduct(ctx context.Context, product *models.Product) error {
	result, err := s.collection.InsertOne(ctx, product)
	if err != nil {
		return err
	}
	product.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoProductStore) FindProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var product models.Product
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		return nil, mapErr(err)
	}
	return &product, nil
}

func (s *MongoProductStore) FindAllProducts(ctx context.Context) ([]models.Product, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var products []models.Product
	if err := cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (s *MongoProductStore) UpdateProduct(ctx context.Context, product *models.Product) error {
	update := bson.M{
		"$set": bson.M{
			"name":          product.Name,
			"price":         product.Price,
			"description":   product.Description,
			"image":         product.Image,
			"type":          product.Type,
			"category":      product.Category,
			"sizes":         product.Sizes,
			"colors":        product.Colors,
			"featured":      product.Featured,
			"free_delivery": product.FreeDelivery,
			"inventory":     product.Inventory,
			"updated_at":    product.UpdatedAt,
		},
	}
	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": product.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoProductStore) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func mapErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}
