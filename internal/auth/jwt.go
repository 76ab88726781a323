package auth

import (
	"fmt"
	"time"

	"realtor-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by bearer tokens. Tokens are issued by the external auth
// service; the shape matches what it signs.
type JWTCustomClaims struct {
	UserID uint            `json:"id"`
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Role   models.UserType `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 token for user, valid for ttl.
func GenerateToken(secret string, user *models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &JWTCustomClaims{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
		Role:   user.UserType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies tokenStr against secret and returns its claims.
func ParseToken(secret, tokenStr string) (*JWTCustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*JWTCustomClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}
