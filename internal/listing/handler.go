// File: internal/listing/handler.go
package listing

import (
	"errors"

	"github.com/aqkal/Rentixe/internal/common"
	"github.com/aqkal/Rentixe/internal/config"
	"github.com/aqkal/Rentixe/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for listing handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
	cfg     *config.Config
}

// NewHandler creates a new listing handler.
func NewHandler(service Service, logger *zap.Logger, cfg *config.Config) *Handler {
	return &Handler{service: service, logger: logger, cfg: cfg}
}

// RegisterRoutes sets up the routes for listing operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup, authMW, optionalAuthMW gin.HandlerFunc) {
	listingGroup := router.Group("/listings")
	{
		publicGroup := listingGroup.Group("")
		publicGroup.Use(optionalAuthMW)
		{
			publicGroup.GET("", h.searchListings)
			publicGroup.GET("/map", h.mapView)
			publicGroup.GET("/categories", h.getCategories)
			publicGroup.GET("/:id", h.getListingByID)
		}

		authedGroup := listingGroup.Group("")
		authedGroup.Use(authMW)
		{
			authedGroup.POST("", h.createListing)
			authedGroup.PUT("/:id", h.updateListing)
			authedGroup.DELETE("/:id", h.deleteListing)
			authedGroup.GET("/mine", h.getMyListings)
		}
	}
}

func (h *Handler) bindSearchQuery(c *gin.Context) (SearchQuery, bool) {
	var query SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return query, false
		}
		common.RespondWithError(c, common.NewValidationAPIError("Invalid filter values: "+err.Error()))
		return query, false
	}
	query.Page, query.PageSize = normalizePagination(query.Page, query.PageSize)
	return query, true
}

func normalizePagination(page, pageSize int) (int, int) {
	if page <= 0 {
		page = common.DefaultPage
	}
	if pageSize <= 0 {
		pageSize = common.DefaultPageSize
	}
	if pageSize > common.MaxPageSize {
		pageSize = common.MaxPageSize
	}
	return page, pageSize
}

func (h *Handler) searchListings(c *gin.Context) {
	query, ok := h.bindSearchQuery(c)
	if !ok {
		return
	}

	cards, pagination, err := h.service.Search(c.Request.Context(), query, middleware.GetIdentityFromContext(c))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "", cards, pagination)
}

func (h *Handler) mapView(c *gin.Context) {
	query, ok := h.bindSearchQuery(c)
	if !ok {
		return
	}

	resp, err := h.service.MapView(c.Request.Context(), query)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", resp)
}

// getCategories returns the fixed category taxonomy used by search filters.
func (h *Handler) getCategories(c *gin.Context) {
	common.RespondOK(c, "", CategoryPropertyTypes)
}

func (h *Handler) getListingByID(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}

	detail, err := h.service.GetByID(c.Request.Context(), listingID, middleware.GetIdentityFromContext(c))
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", detail)
}

func (h *Handler) createListing(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)
	if identity.IsAnonymous() {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	var req CreateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return
	}

	l, err := h.service.Create(c.Request.Context(), identity, req)
	if err != nil {
		var partial *CreatePartialError
		if errors.As(err, &partial) {
			common.RespondWithError(c, NewCreatePartialAPIError(partial))
			return
		}
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Listing created successfully.",
		ToCardResponse(l, h.cfg.DefaultCurrency, false))
}

func (h *Handler) updateListing(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}

	var req UpdateListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			common.RespondWithError(c, common.NewValidationAPIError(common.FormatValidationErrors(ve)))
			return
		}
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid request payload: "+err.Error()))
		return
	}

	l, err := h.service.Update(c.Request.Context(), identity, listingID, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Listing updated successfully.",
		ToCardResponse(l, h.cfg.DefaultCurrency, false))
}

func (h *Handler) deleteListing(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithDetails("Invalid listing ID format."))
		return
	}

	result, err := h.service.Delete(c.Request.Context(), identity, listingID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	if len(result.FileWarnings) > 0 {
		common.RespondOK(c, "Listing deleted; some stored files could not be removed.", result)
		return
	}
	common.RespondOK(c, "Listing deleted successfully.", result)
}

func (h *Handler) getMyListings(c *gin.Context) {
	identity := middleware.GetIdentityFromContext(c)
	if identity.IsAnonymous() {
		common.RespondWithError(c, common.ErrUnauthorized)
		return
	}

	page, pageSize := common.GetPaginationParams(c)
	cards, pagination, err := h.service.FindByOwner(c.Request.Context(), identity.UserID, page, pageSize)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondPaginated(c, "", cards, pagination)
}
