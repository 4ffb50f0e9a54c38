// File: internal/profile/handler.go
package profile

import (
	"errors"

	"github.com/aqkal/Rentixe/internal/common"
	"github.com/aqkal/Rentixe/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for profile handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new profile handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for profile operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	meGroup := router.Group("/me")
	meGroup.Use(authMW)
	{
		meGroup.GET("", h.getMe)
		meGroup.PUT("", h.updateMe)
	}
}

func (h *Handler) getMe(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)
	if identity.IsAnonymous() {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	profile, err := h.service.GetOrCreate(c.Request.Context(), identity)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", ToProfileResponse(profile))
}

func (h *Handler) updateMe(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)
	if identity.IsAnonymous() {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return
	}

	profile, err := h.service.Update(c.Request.Context(), identity.UserID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Profile updated successfully.", ToProfileResponse(profile))
}
