// File: internal/shared/core.go
package shared

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is the authenticated caller as seen by handlers and services.
// A zero Identity (nil check via IsAnonymous) means the request carried no
// valid token.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   string
}

// IsAnonymous reports whether the identity belongs to no authenticated user.
func (i *Identity) IsAnonymous() bool {
	return i == nil || i.UserID == uuid.Nil
}

// IsAdmin reports whether the identity carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Claims represents the JWT claims structure.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
	jwt.RegisteredClaims
}

// Identity converts validated claims into a caller identity.
func (c *Claims) Identity() *Identity {
	return &Identity{UserID: c.UserID, Email: c.Email, Role: c.Role}
}

// TokenService defines the interface for JWT operations.
type TokenService interface {
	ValidateToken(tokenString string) (*Claims, error)
}
