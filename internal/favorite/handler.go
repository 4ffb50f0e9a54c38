// File: internal/favorite/handler.go
package favorite

import (
	"github.com/aqkal/Rentixe/internal/common"
	"github.com/aqkal/Rentixe/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for favorite handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new favorite handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the routes for favorite operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW gin.HandlerFunc) {
	router.POST("/listings/:id/favorite", authMW, h.toggleFavorite)

	favGroup := router.Group("/favorites")
	favGroup.Use(authMW)
	{
		favGroup.GET("", h.listFavorites)
	}
}

func (h *Handler) toggleFavorite(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)
	if identity.IsAnonymous() {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}

	resp, err := h.service.Toggle(c.Request.Context(), identity.UserID, listingID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", resp)
}

func (h *Handler) listFavorites(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)
	if identity.IsAnonymous() {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	cards, err := h.service.ListForUser(c.Request.Context(), identity.UserID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", cards)
}
