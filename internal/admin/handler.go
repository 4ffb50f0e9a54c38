// File: internal/admin/handler.go
package admin

import (
	"github.com/aqkal/Rentixe/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for admin handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new admin handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes sets up the admin routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW, adminRoleMW gin.HandlerFunc) {
	adminGroup := router.Group("/admin")
	adminGroup.Use(authMW)
	adminGroup.Use(adminRoleMW)
	{
		adminGroup.GET("/stats", h.getStats)
	}
}

func (h *Handler) getStats(c *gin.Context) {
	stats, err := h.service.Stats(c.Request.Context())
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", stats)
}
