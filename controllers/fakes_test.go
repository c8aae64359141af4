package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go-shop-api/middleware"
	"go-shop-api/models"
	"go-shop-api/store"
	"go-shop-api/utils"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// In-memory store fakes. Finds return copies so that, like the real store,
// mutating a returned document does nothing until an explicit update.

type memUserStore struct {
	users []models.User
}

func (s *memUserStore) CountUsers(ctx context.Context) (int64, error) {
	return int64(len(s.users)), nil
}

func (s *memUserStore) InsertUser(ctx context.Context, user *models.User) error {
	user.ID = primitive.NewObjectID()
	s.users = append(s.users, *user)
	return nil
}

func (s *memUserStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memUserStore) FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			user := u
			return &user, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memUserStore) UpdateUser(ctx context.Context, user *models.User) error {
	for i, u := range s.users {
		if u.ID == user.ID {
			s.users[i] = *user
			return nil
		}
	}
	return store.ErrNotFound
}

type memTokenStore struct {
	tokens []models.Token
}

func (s *memTokenStore) InsertToken(ctx context.Context, token *models.Token) error {
	token.ID = primitive.NewObjectID()
	s.tokens = append(s.tokens, *token)
	return nil
}

func (s *memTokenStore) FindTokenByUser(ctx context.Context, userID primitive.ObjectID) (*models.Token, error) {
	for _, t := range s.tokens {
		if t.UserID == userID {
			token := t
			return &token, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memTokenStore) FindToken(ctx context.Context, userID primitive.ObjectID, refreshToken string) (*models.Token, error) {
	for _, t := range s.tokens {
		if t.UserID == userID && t.RefreshToken == refreshToken {
			token := t
			return &token, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memTokenStore) DeleteTokenByUser(ctx context.Context, userID primitive.ObjectID) error {
	for i, t := range s.tokens {
		if t.UserID == userID {
			s.tokens = append(s.tokens[:i], s.tokens[i+1:]...)
			return nil
		}
	}
	return nil
}

type memOrderStore struct {
	orders []models.Order
}

func (s *memOrderStore) InsertOrder(ctx context.Context, order *models.Order) error {
	order.ID = primitive.NewObjectID()
	s.orders = append(s.orders, *order)
	return nil
}

func (s *memOrderStore) FindOrderByID(ctx context.Context, id primitive.ObjectID) (*models.Order, error) {
	for _, o := range s.orders {
		if o.ID == id {
			order := o
			return &order, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memOrderStore) FindOrdersByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Order, error) {
	var out []models.Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *memOrderStore) FindAllOrders(ctx context.Context) ([]models.Order, error) {
	return append([]models.Order(nil), s.orders...), nil
}

func (s *memOrderStore) UpdateOrder(ctx context.Context, order *models.Order) error {
	for i, o := range s.orders {
		if o.ID == order.ID {
			s.orders[i].Status = order.Status
			s.orders[i].PaymentIntentID = order.PaymentIntentID
			return nil
		}
	}
	return store.ErrNotFound
}

type memReviewStore struct {
	reviews []models.Review
}

func (s *memReviewStore) InsertReview(ctx context.Context, review *models.Review) error {
	review.ID = primitive.NewObjectID()
	s.reviews = append(s.reviews, *review)
	return nil
}

func (s *memReviewStore) FindReviewByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error) {
	for _, r := range s.reviews {
		if r.ID == id {
			review := r
			return &review, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memReviewStore) FindReviewByUserAndProduct(ctx context.Context, userID, productID primitive.ObjectID) (*models.Review, error) {
	for _, r := range s.reviews {
		if r.UserID == userID && r.ProductID == productID {
			review := r
			return &review, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memReviewStore) FindReviewsByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Review, error) {
	var out []models.Review
	for _, r := range s.reviews {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memReviewStore) FindReviewsByProduct(ctx context.Context, productID primitive.ObjectID) ([]models.Review, error) {
	var out []models.Review
	for _, r := range s.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memReviewStore) FindAllReviews(ctx context.Context) ([]models.Review, error) {
	return append([]models.Review(nil), s.reviews...), nil
}

func (s *memReviewStore) UpdateReview(ctx context.Context, review *models.Review) error {
	for i, r := range s.reviews {
		if r.ID == review.ID {
			s.reviews[i] = *review
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *memReviewStore) DeleteReview(ctx context.Context, id primitive.ObjectID) error {
	for i, r := range s.reviews {
		if r.ID == id {
			s.reviews = append(s.reviews[:i], s.reviews[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *memReviewStore) DeleteReviewsByProduct(ctx context.Context, productID primitive.ObjectID) error {
	var kept []models.Review
	for _, r := range s.reviews {
		if r.ProductID != productID {
			kept = append(kept, r)
		}
	}
	s.reviews = kept
	return nil
}

type memProductStore struct {
	products []models.Product
}

func (s *memProductStore) InsertProduct(ctx context.Context, product *models.Product) error {
	product.ID = primitive.NewObjectID()
	s.products = append(s.products, *product)
	return nil
}

func (s *memProductStore) FindProductByID(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	for _, p := range s.products {
		if p.ID == id {
			product := p
			return &product, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *memProductStore) FindAllProducts(ctx context.Context) ([]models.Product, error) {
	return append([]models.Product(nil), s.products...), nil
}

func (s *memProductStore) UpdateProduct(ctx context.Context, product *models.Product) error {
	for i, p := range s.products {
		if p.ID == product.ID {
			s.products[i] = *product
			return nil
		}
	}
	return store.ErrNotFound
}

func (s *memProductStore) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

// fakeMailer records outbound emails instead of sending them
type fakeMailer struct {
	verificationTokens map[string]string // email -> raw token
	resetTokens        map[string]string // email -> raw token
	sent               int
	fail               bool
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{
		verificationTokens: map[string]string{},
		resetTokens:        map[string]string{},
	}
}

func (m *fakeMailer) SendVerificationEmail(name, toEmail, token, origin string) error {
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.verificationTokens[toEmail] = token
	m.sent++
	return nil
}

func (m *fakeMailer) SendResetPasswordEmail(name, toEmail, token, origin string) error {
	if m.fail {
		return errors.New("smtp unavailable")
	}
	m.resetTokens[toEmail] = token
	m.sent++
	return nil
}

// fakePayments hands out canned payment intents
type fakePayments struct {
	calls int
	fail  bool
}

func (p *fakePayments) CreatePaymentIntent(ctx context.Context, amount int64) (*utils.PaymentIntent, error) {
	p.calls++
	if p.fail {
		return nil, errors.New("processor unavailable")
	}
	return &utils.PaymentIntent{ID: "pi_test", ClientSecret: "pi_test_secret"}, nil
}

// jsonRequest builds a request with a JSON body
func jsonRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()
	buf, err := json.Marshal(body)
	require.NoError(t, err)
	r := httptest.NewRequest(method, target, bytes.NewReader(buf))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// asUser attaches an authenticated claim to the request context
func asUser(r *http.Request, user models.TokenUser) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserContextKey, user)
	return r.WithContext(ctx)
}

// decodeBody unmarshals a JSON response body
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(out))
}
