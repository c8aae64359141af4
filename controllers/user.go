package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go-shop-api/middleware"
	"go-shop-api/models"
	"go-shop-api/store"
	"go-shop-api/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// EmailSender delivers account emails
type EmailSender interface {
	SendVerificationEmail(name, toEmail, token, origin string) error
	SendResetPasswordEmail(name, toEmail, token, origin string) error
}

// Random token sizes in bytes, hex-encoded before use
const (
	verificationTokenBytes = 40
	refreshTokenBytes      = 40
	resetTokenBytes        = 70
)

// Reset tokens are honoured for ten minutes after issuance
const resetTokenLifetime = 10 * time.Minute

// UserController handles registration, login and the verification/reset flows
type UserController struct {
	Users        store.UserStore
	Tokens       store.TokenStore
	EmailService EmailSender
	Origin       string
}

// NewUserController creates a new UserController
func NewUserController(users store.UserStore, tokens store.TokenStore, emailService EmailSender, origin string) *UserController {
	return &UserController{
		Users:        users,
		Tokens:       tokens,
		EmailService: emailService,
		Origin:       origin,
	}
}

// Register handles user registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Name     string `json:"name"`
		Password string `json:"password"`
	}
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if input.Email == "" || input.Name == "" || input.Password == "" {
		http.Error(w, "Please provide email, name and password", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, err = uc.Users.FindUserByEmail(ctx, input.Email)
	if err == nil {
		http.Error(w, "Email already exists", http.StatusBadRequest)
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	// first registered user is an admin
	count, err := uc.Users.CountUsers(ctx)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	role := "user"
	if count == 0 {
		role = "admin"
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	verificationToken, err := utils.GenerateRandomToken(verificationTokenBytes)
	if err != nil {
		http.Error(w, "Error generating verification token", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Name:              input.Name,
		Email:             input.Email,
		Password:          string(hashedPassword),
		Role:              role,
		IsVerified:        false,
		VerificationToken: verificationToken,
	}
	if err := uc.Users.InsertUser(ctx, &user); err != nil {
		http.Error(w, "Error creating user", http.StatusInternalServerError)
		return
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		origin = uc.Origin
	}
	err = uc.EmailService.SendVerificationEmail(user.Name, user.Email, verificationToken, origin)
	if err != nil {
		utils.Logger.Errorw("failed to send verification email", zap.Error(err), "email", user.Email)
		http.Error(w, "Error sending verification email", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{"msg": "Success. Please check your email to verify your account."})
}

// VerifyEmail handles email verification. Tokens are single-use: the stored
// token is cleared on success, so a replay fails.
func (uc *UserController) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email             string `json:"email"`
		VerificationToken string `json:"verificationToken"`
	}
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := uc.Users.FindUserByEmail(ctx, input.Email)
	if err != nil {
		http.Error(w, "Verification failed", http.StatusUnauthorized)
		return
	}
	if user.VerificationToken == "" || user.VerificationToken != input.VerificationToken {
		http.Error(w, "Verification failed", http.StatusUnauthorized)
		return
	}

	user.IsVerified = true
	user.Verified = time.Now()
	user.VerificationToken = ""
	if err := uc.Users.UpdateUser(ctx, user); err != nil {
		http.Error(w, "Error updating user verification status", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"msg": "Email verified"})
}

// Login handles user authentication
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	err := json.NewDecoder(r.Body).Decode(&creds)
	if err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if creds.Email == "" || creds.Password == "" {
		http.Error(w, "Please provide email and password", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	// same message for unknown email and wrong password
	user, err := uc.Users.FindUserByEmail(ctx, creds.Email)
	if err != nil {
		http.Error(w, "Please make sure you enter a valid email and password", http.StatusUnauthorized)
		return
	}
	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password))
	if err != nil {
		http.Error(w, "Please make sure you enter a valid email and password", http.StatusUnauthorized)
		return
	}

	if !user.IsVerified {
		http.Error(w, "Please first verify your email", http.StatusUnauthorized)
		return
	}

	tokenUser := models.NewTokenUser(user)

	var refreshToken string
	existing, err := uc.Tokens.FindTokenByUser(ctx, user.ID)
	switch {
	case err == nil:
		if !existing.IsValid {
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}
		refreshToken = existing.RefreshToken
	case errors.Is(err, store.ErrNotFound):
		refreshToken, err = utils.GenerateRandomToken(refreshTokenBytes)
		if err != nil {
			http.Error(w, "Error generating token", http.StatusInternalServerError)
			return
		}
		token := models.Token{
			UserID:       user.ID,
			RefreshToken: refreshToken,
			IP:           r.RemoteAddr,
			UserAgent:    r.UserAgent(),
			IsValid:      true,
		}
		if err := uc.Tokens.InsertToken(ctx, &token); err != nil {
			http.Error(w, "Error creating session", http.StatusInternalServerError)
			return
		}
	default:
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	if err := utils.AttachCookiesToResponse(w, tokenUser, refreshToken); err != nil {
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]models.TokenUser{"user": tokenUser})
}

// Logout deletes the session record and expires both cookies
func (uc *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		http.Error(w, "Authentication invalid", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := uc.Tokens.DeleteTokenByUser(ctx, user.UserID); err != nil {
		http.Error(w, "Error deleting session", http.StatusInternalServerError)
		return
	}

	utils.ExpireCookies(w)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"msg": "User logged out"})
}

// ForgotPassword emails a raw reset token and stores only its hash plus an
// expiry ten minutes out
func (uc *UserController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email string `json:"email"`
	}
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil || input.Email == "" {
		http.Error(w, "Please provide a valid email", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := uc.Users.FindUserByEmail(ctx, input.Email)
	if err != nil {
		http.Error(w, "No account exists with this email", http.StatusBadRequest)
		return
	}

	resetToken, err := utils.GenerateRandomToken(resetTokenBytes)
	if err != nil {
		http.Error(w, "Error generating reset token", http.StatusInternalServerError)
		return
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		origin = uc.Origin
	}
	err = uc.EmailService.SendResetPasswordEmail(user.Name, user.Email, resetToken, origin)
	if err != nil {
		utils.Logger.Errorw("failed to send reset password email", zap.Error(err), "email", user.Email)
		http.Error(w, "Error sending reset password email", http.StatusInternalServerError)
		return
	}

	user.PasswordToken = utils.HashToken(resetToken)
	user.PasswordTokenExp = time.Now().Add(resetTokenLifetime)
	if err := uc.Users.UpdateUser(ctx, user); err != nil {
		http.Error(w, "Error saving reset token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"msg": "Please check your email for the reset password link"})
}

// ResetPassword replaces the password when the supplied token's hash matches
// the stored one and the expiry has not passed
func (uc *UserController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Token    string `json:"token"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	err := json.NewDecoder(r.Body).Decode(&input)
	if err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if input.Token == "" || input.Email == "" || input.Password == "" {
		http.Error(w, "Please provide all values", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := uc.Users.FindUserByEmail(ctx, input.Email)
	if err != nil {
		http.Error(w, "Reset password token is invalid or has expired", http.StatusBadRequest)
		return
	}

	if user.PasswordToken == "" || user.PasswordToken != utils.HashToken(input.Token) || !time.Now().Before(user.PasswordTokenExp) {
		http.Error(w, "Reset password token is invalid or has expired", http.StatusBadRequest)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	user.Password = string(hashedPassword)
	user.PasswordToken = ""
	user.PasswordTokenExp = time.Time{}
	if err := uc.Users.UpdateUser(ctx, user); err != nil {
		http.Error(w, "Error updating password", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"msg": "Password reset"})
}
