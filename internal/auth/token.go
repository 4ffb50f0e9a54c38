// File: internal/auth/token.go
package auth

import (
	"errors"
	"fmt"

	"github.com/aqkal/Rentixe/internal/config"
	"github.com/aqkal/Rentixe/internal/shared"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned when the token's expiry is in the past.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenInvalid is returned for any other parse or signature failure.
	ErrTokenInvalid = errors.New("token is invalid")
)

// JWTTokenService validates HS256 bearer tokens issued by the identity
// provider sharing our signing secret.
type JWTTokenService struct {
	secret []byte
}

var _ shared.TokenService = (*JWTTokenService)(nil)

// NewJWTTokenService creates a token service from the configured secret.
func NewJWTTokenService(cfg *config.Config) *JWTTokenService {
	return &JWTTokenService{secret: []byte(cfg.JWTSecret)}
}

// ValidateToken parses and verifies the token string and returns its claims.
func (s *JWTTokenService) ValidateToken(tokenString string) (*shared.Claims, error) {
	claims := &shared.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.Role == "" {
		claims.Role = shared.RoleUser
	}
	return claims, nil
}
