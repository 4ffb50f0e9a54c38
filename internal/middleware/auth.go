// File: internal/middleware/auth.go
package middleware

import (
	"strings"

	"github.com/aqkal/Rentixe/internal/common"
	"github.com/aqkal/Rentixe/internal/shared"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// IdentityKey is the context key for the authenticated caller's identity
	IdentityKey = "identity"
)

// AuthMiddleware creates a Gin middleware for JWT authentication.
// Requests without a valid Bearer token are rejected.
func AuthMiddleware(tokenService shared.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(common.AuthorizationHeader)
		if authHeader == "" {
			logger.Debug("Authorization header missing")
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header is required."))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], common.AuthorizationTypeBearer) {
			logger.Debug("Authorization header format invalid", zap.String("header", authHeader))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails("Authorization header format must be 'Bearer <token>'."))
			return
		}

		claims, err := tokenService.ValidateToken(parts[1])
		if err != nil {
			logger.Warn("Token validation failed", zap.Error(err))
			common.RespondWithError(c, common.ErrUnauthorized.WithDetails(err.Error()))
			return
		}

		identity := claims.Identity()
		c.Set(IdentityKey, identity)
		c.Set(common.UserIDKey, identity.UserID)
		c.Set(common.UserEmailKey, identity.Email)
		c.Set(common.UserRoleKey, identity.Role)

		logger.Debug("User authenticated successfully",
			zap.String("userID", identity.UserID.String()),
			zap.String("role", identity.Role),
		)

		c.Next()
	}
}

// OptionalAuthMiddleware resolves the caller's identity when a valid Bearer
// token is present but lets anonymous requests through. An invalid token is
// treated the same as no token.
func OptionalAuthMiddleware(tokenService shared.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := common.GetTokenFromContext(c)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := tokenService.ValidateToken(tokenString)
		if err != nil {
			logger.Debug("Optional auth token rejected, continuing as anonymous", zap.Error(err))
			c.Next()
			return
		}

		identity := claims.Identity()
		c.Set(IdentityKey, identity)
		c.Set(common.UserIDKey, identity.UserID)
		c.Set(common.UserEmailKey, identity.Email)
		c.Set(common.UserRoleKey, identity.Role)
		c.Next()
	}
}

// GetIdentityFromContext retrieves the caller identity set by the auth
// middlewares. Returns nil for anonymous requests.
func GetIdentityFromContext(c *gin.Context) *shared.Identity {
	val, exists := c.Get(IdentityKey)
	if !exists {
		return nil
	}
	identity, ok := val.(*shared.Identity)
	if !ok {
		return nil
	}
	return identity
}

// RoleAuthMiddleware creates a middleware to check if the authenticated user has one of the required roles.
func RoleAuthMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := common.GetUserRoleFromContext(c)
		if userRole == "" {
			common.RespondWithError(c, common.ErrForbidden.WithDetails("User role not found in context."))
			return
		}

		for _, role := range allowedRoles {
			if userRole == role {
				c.Next()
				return
			}
		}

		common.RespondWithError(c, common.ErrForbidden.WithDetails("You do not have sufficient permissions for this resource."))
	}
}
