package authUtils

import (
	"fmt"
	"os"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// TokenTTL bounds both the JWT exp claim and the auth cookie lifetime, so
// browser sessions and bearer clients expire together.
const TokenTTL = 72 * time.Hour

// GenerateAndSetToken generates a JWT token for a given user ID and role.
// The issued-at claim is compared against the Redis password-reset stamp in
// the auth middleware, so tokens minted before a reset stop validating.
func GenerateAndSetToken(userID string, role string) (string, error) {
	secretStr := os.Getenv("JWT_SECRET")
	if secretStr == "" {
		return "", fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	jwtSecret := []byte(secretStr)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(TokenTTL).Unix(),
	})

	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
