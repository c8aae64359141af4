package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"go-shop-api/models"

	"github.com/dgrijalva/jwt-go"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JWT Secret Key
var JwtKey = []byte("your_secret_key") // This will be loaded from .env

// Cookie names for the two transport tokens
const (
	AccessCookieName  = "accessToken"
	RefreshCookieName = "refreshToken"
)

// Token lifetimes. The access claim is short-lived; the refresh cookie
// matches the lifetime of the stored session record.
const (
	AccessTokenLifetime  = 15 * time.Minute
	RefreshTokenLifetime = 30 * 24 * time.Hour
)

// ErrUnauthorized is returned when an actor may not touch a resource
var ErrUnauthorized = errors.New("not authorized to access this resource")

// Claims represents the JWT claims carried by both cookies. The refresh
// cookie additionally carries the refresh secret.
type Claims struct {
	User         models.TokenUser `json:"user"`
	RefreshToken string           `json:"refresh_token,omitempty"`
	jwt.StandardClaims
}

// GenerateJWT signs a token for the given claims with the given lifetime
func GenerateJWT(claims *Claims, lifetime time.Duration) (string, error) {
	claims.ExpiresAt = time.Now().Add(lifetime).Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JwtKey)
}

// ParseJWT verifies a signed token and returns its claims
func ParseJWT(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// AttachCookiesToResponse sets the access and refresh cookies. Both are
// http-only; the refresh cookie carries the user's refresh secret.
func AttachCookiesToResponse(w http.ResponseWriter, user models.TokenUser, refreshToken string) error {
	accessJWT, err := GenerateJWT(&Claims{User: user}, AccessTokenLifetime)
	if err != nil {
		return err
	}
	refreshJWT, err := GenerateJWT(&Claims{User: user, RefreshToken: refreshToken}, RefreshTokenLifetime)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     AccessCookieName,
		Value:    accessJWT,
		Path:     "/",
		Expires:  time.Now().Add(AccessTokenLifetime),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    refreshJWT,
		Path:     "/",
		Expires:  time.Now().Add(RefreshTokenLifetime),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	return nil
}

// ExpireCookies overwrites both cookies with already-expired empty values.
// This tells the client to drop them; a refresh secret cached elsewhere is
// not revoked by this.
func ExpireCookies(w http.ResponseWriter) {
	expired := time.Unix(0, 0)
	http.SetCookie(w, &http.Cookie{
		Name:     AccessCookieName,
		Value:    "",
		Path:     "/",
		Expires:  expired,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     RefreshCookieName,
		Value:    "",
		Path:     "/",
		Expires:  expired,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteStrictMode,
	})
}

// CheckPermissions allows an elevated role or the resource owner through
func CheckPermissions(user models.TokenUser, resourceUserID primitive.ObjectID) error {
	if user.Role == "admin" {
		return nil
	}
	if user.UserID == resourceUserID {
		return nil
	}
	return ErrUnauthorized
}

// GenerateRandomToken returns n random bytes hex-encoded
func GenerateRandomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// HashToken returns the hex sha256 of a one-time token. Only the hash is
// ever stored; the raw token travels by email.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
