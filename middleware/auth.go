package middleware

import (
	"context"
	"net/http"

	"go-shop-api/models"
	"go-shop-api/store"
	"go-shop-api/utils"
)

// Key type for context
type contextKey string

const UserContextKey = contextKey("user")

// UserFromContext extracts the authenticated claim attached by Authenticate
func UserFromContext(ctx context.Context) (models.TokenUser, bool) {
	user, ok := ctx.Value(UserContextKey).(models.TokenUser)
	return user, ok
}

// Authenticate verifies the access cookie and attaches the claim to the
// request context. When the access token is missing or expired it falls back
// to the refresh cookie: the refresh secret must match a valid session
// record, and both cookies are re-attached on success.
func Authenticate(tokens store.TokenStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cookie, err := r.Cookie(utils.AccessCookieName); err == nil {
				if claims, err := utils.ParseJWT(cookie.Value); err == nil {
					ctx := context.WithValue(r.Context(), UserContextKey, claims.User)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			cookie, err := r.Cookie(utils.RefreshCookieName)
			if err != nil {
				http.Error(w, "Authentication invalid", http.StatusUnauthorized)
				return
			}

			claims, err := utils.ParseJWT(cookie.Value)
			if err != nil || claims.RefreshToken == "" {
				http.Error(w, "Authentication invalid", http.StatusUnauthorized)
				return
			}

			record, err := tokens.FindToken(r.Context(), claims.User.UserID, claims.RefreshToken)
			if err != nil || !record.IsValid {
				http.Error(w, "Authentication invalid", http.StatusUnauthorized)
				return
			}

			if err := utils.AttachCookiesToResponse(w, claims.User, record.RefreshToken); err != nil {
				http.Error(w, "Authentication invalid", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, claims.User)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AdminOnly ensures that the authenticated user has the admin role
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok || user.Role != "admin" {
			http.Error(w, "Forbidden: Admins only", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
