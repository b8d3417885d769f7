package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sideputt/backend/internal/models"
	"github.com/spf13/viper"
)

var errInvalidClaims = errors.New("invalid token claims")

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Get token from Authorization header
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			// Browsers cannot set headers on a websocket upgrade
			if qt := r.URL.Query().Get("access_token"); qt != "" && isUpgrade(r) {
				authHeader = "Bearer " + qt
			}
		}
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		// Extract token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
			return
		}

		identity, err := validateToken(parts[1])
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

func isUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}

// WithIdentity stores the caller on the context under the userID and userName keys
func WithIdentity(ctx context.Context, identity models.Identity) context.Context {
	ctx = context.WithValue(ctx, "userID", identity.UserID)
	return context.WithValue(ctx, "userName", identity.Name)
}

// IdentityFromContext returns the authenticated caller, if any
func IdentityFromContext(ctx context.Context) (models.Identity, bool) {
	userID, ok := ctx.Value("userID").(string)
	if !ok || userID == "" {
		return models.Identity{}, false
	}
	name, _ := ctx.Value("userName").(string)
	return models.Identity{UserID: userID, Name: name}, true
}

func validateToken(tokenString string) (models.Identity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(viper.GetString("jwt.secret_key")), nil
	})

	if err != nil {
		return models.Identity{}, err
	}
	if !token.Valid {
		return models.Identity{}, errInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.Identity{}, errInvalidClaims
	}

	userID, ok := claims["user_id"]
	if !ok || userID == nil {
		return models.Identity{}, errInvalidClaims
	}
	name, _ := claims["name"].(string)
	return models.Identity{UserID: fmt.Sprintf("%v", userID), Name: name}, nil
}
