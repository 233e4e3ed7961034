package utils

import (
	"fmt"
	"time"

	"github.com/DeveloperWK/product-inventory-api/internal/middleware"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateAuthToken mints a signed HS256 bearer token for the user. The
// subject carries the user id and the role claim drives the admin gate.
func GenerateAuthToken(userID, role, jwtSecret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := middleware.AuthClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(jwtSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
