package test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SignAccessToken issues an HS256 access token for userID that expires
// after ttl. A negative ttl gives an already expired token.
func SignAccessToken(t *testing.T, secret string, userID uuid.UUID, ttl time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := jwt.MapClaims{
		"_id":      userID.String(),
		"username": "tester",
		"iat":      now.Unix(),
		"exp":      now.Add(ttl).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}
