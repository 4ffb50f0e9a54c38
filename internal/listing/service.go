// File: internal/listing/service.go
package listing

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/aqkal/Rentixe/internal/common"
	"github.com/aqkal/Rentixe/internal/config"
	"github.com/aqkal/Rentixe/internal/profile"
	"github.com/aqkal/Rentixe/internal/shared"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FavoriteChecker reports which of the given listings the user has
// favorited. Implemented by the favorite service; declared here so the
// listing package does not depend on it.
type FavoriteChecker interface {
	FavoritedIDs(ctx context.Context, userID uuid.UUID, listingIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

// FileRemover deletes a stored file given its public URL. Implemented by
// the file storage service.
type FileRemover interface {
	RemoveByURL(ctx context.Context, url string) error
}

// CreatePartialError reports a create where the listing row was inserted
// but its image rows were not. The listing is kept.
type CreatePartialError struct {
	Listing *Listing
	Err     error
}

func (e *CreatePartialError) Error() string {
	return fmt.Sprintf("listing %s created without images: %v", e.Listing.ID, e.Err)
}

func (e *CreatePartialError) Unwrap() error { return e.Err }

// Service defines the interface for listing business logic.
type Service interface {
	Search(ctx context.Context, query SearchQuery, identity *shared.Identity) ([]CardResponse, *common.Pagination, error)
	MapView(ctx context.Context, query SearchQuery) (MapResponse, error)
	GetByID(ctx context.Context, id uuid.UUID, identity *shared.Identity) (*DetailResponse, error)
	Create(ctx context.Context, identity *shared.Identity, req CreateListingRequest) (*Listing, error)
	Update(ctx context.Context, identity *shared.Identity, id uuid.UUID, req UpdateListingRequest) (*Listing, error)
	Delete(ctx context.Context, identity *shared.Identity, id uuid.UUID) (*DeleteResult, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID, page, pageSize int) ([]CardResponse, *common.Pagination, error)
	Count(ctx context.Context) (int64, error)
}

type service struct {
	repo      Repository
	profiles  profile.Service
	favorites FavoriteChecker
	files     FileRemover
	cfg       *config.Config
	logger    *zap.Logger
}

var _ Service = (*service)(nil)

// NewService creates a new listing service.
func NewService(
	repo Repository,
	profiles profile.Service,
	favorites FavoriteChecker,
	files FileRemover,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &service{
		repo:      repo,
		profiles:  profiles,
		favorites: favorites,
		files:     files,
		cfg:       cfg,
		logger:    logger,
	}
}

func (s *service) Search(ctx context.Context, query SearchQuery, identity *shared.Identity) ([]CardResponse, *common.Pagination, error) {
	listings, pagination, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, nil, err
	}

	favorited := s.favoritedSet(ctx, identity, listings)
	cards := make([]CardResponse, len(listings))
	for i := range listings {
		cards[i] = ToCardResponse(&listings[i], s.cfg.DefaultCurrency, favorited[listings[i].ID])
	}
	return cards, pagination, nil
}

func (s *service) MapView(ctx context.Context, query SearchQuery) (MapResponse, error) {
	listings, err := s.repo.SearchAllLocated(ctx, query)
	if err != nil {
		return MapResponse{}, err
	}
	return BuildMapResponse(listings, s.cfg.DefaultCurrency, s.cfg.DefaultMapLat, s.cfg.DefaultMapLng), nil
}

func (s *service) GetByID(ctx context.Context, id uuid.UUID, identity *shared.Identity) (*DetailResponse, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Owner card lookup is not gated on the caller: visitors see the
	// contact card too. A missing profile only drops the card.
	var owner *profile.OwnerCard
	if card, cardErr := s.profiles.OwnerCard(ctx, l.OwnerID); cardErr == nil {
		owner = card
	} else {
		s.logger.Warn("Owner card lookup failed",
			zap.String("listingID", l.ID.String()),
			zap.Error(cardErr))
	}

	isFavorited := false
	if !identity.IsAnonymous() {
		favorited := s.favoritedSet(ctx, identity, []Listing{*l})
		isFavorited = favorited[l.ID]
	}

	detail := ToDetailResponse(l, s.cfg.DefaultCurrency, isFavorited, owner, ResolvePermissions(l, identity))
	return &detail, nil
}

// requireCoordinates enforces that a listing carries both coordinates;
// without them it can never appear on the map or pass the search contract.
func requireCoordinates(lat, lng *float64) error {
	missing := map[string]string{}
	if lat == nil {
		missing["latitude"] = "Latitude is required."
	}
	if lng == nil {
		missing["longitude"] = "Longitude is required."
	}
	if len(missing) > 0 {
		return common.NewValidationAPIError(missing)
	}
	return nil
}

func (s *service) Create(ctx context.Context, identity *shared.Identity, req CreateListingRequest) (*Listing, error) {
	if identity.IsAnonymous() {
		return nil, common.ErrUnauthorized
	}
	if len(req.ImageURLs) == 0 {
		return nil, common.NewValidationAPIError(map[string]string{
			"image_urls": "At least one image is required.",
		})
	}
	if err := requireCoordinates(req.Latitude, req.Longitude); err != nil {
		return nil, err
	}

	currency := s.cfg.DefaultCurrency
	if req.Currency != nil {
		currency = *req.Currency
	}
	areaUnit := "sqft"
	if req.AreaUnit != nil {
		areaUnit = *req.AreaUnit
	}

	l := &Listing{
		OwnerID:      identity.UserID,
		Title:        req.Title,
		Description:  req.Description,
		Purpose:      req.Purpose,
		Category:     CategoryForPropertyType(req.PropertyType),
		PropertyType: req.PropertyType,
		Price:        req.Price,
		Currency:     currency,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		Area:         req.Area,
		AreaUnit:     areaUnit,
		Furnished:    req.Furnished,
		City:         req.City,
		AreaName:     req.AreaName,
		Address:      req.Address,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
	}

	if err := s.repo.CreateWithImages(ctx, l, req.ImageURLs); err != nil {
		if errors.Is(err, ErrImagesPartial) {
			s.logger.Error("Listing created but image records failed",
				zap.String("listingID", l.ID.String()),
				zap.Error(err))
			return nil, &CreatePartialError{Listing: l, Err: err}
		}
		return nil, err
	}

	s.logger.Info("Listing created",
		zap.String("listingID", l.ID.String()),
		zap.String("ownerID", identity.UserID.String()),
		zap.Int("images", len(req.ImageURLs)))
	return l, nil
}

func (s *service) Update(ctx context.Context, identity *shared.Identity, id uuid.UUID, req UpdateListingRequest) (*Listing, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !ResolvePermissions(l, identity).CanEdit {
		return nil, common.ErrForbidden.WithDetails("Only the owner can edit a listing.")
	}

	if req.Title != nil {
		l.Title = *req.Title
	}
	if req.Description != nil {
		l.Description = *req.Description
	}
	if req.Purpose != nil {
		l.Purpose = *req.Purpose
	}
	if req.PropertyType != nil {
		l.PropertyType = *req.PropertyType
		l.Category = CategoryForPropertyType(*req.PropertyType)
	}
	if req.Price != nil {
		l.Price = *req.Price
	}
	if req.Currency != nil {
		l.Currency = *req.Currency
	}
	if req.Bedrooms != nil {
		l.Bedrooms = *req.Bedrooms
	}
	if req.Bathrooms != nil {
		l.Bathrooms = *req.Bathrooms
	}
	if req.Area != nil {
		l.Area = req.Area
	}
	if req.AreaUnit != nil {
		l.AreaUnit = *req.AreaUnit
	}
	if req.Furnished != nil {
		l.Furnished = req.Furnished
	}
	if req.City != nil {
		l.City = *req.City
	}
	if req.AreaName != nil {
		l.AreaName = req.AreaName
	}
	if req.Address != nil {
		l.Address = req.Address
	}
	if req.Latitude != nil {
		l.Latitude = req.Latitude
	}
	if req.Longitude != nil {
		l.Longitude = req.Longitude
	}
	if err := requireCoordinates(l.Latitude, l.Longitude); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Delete removes a listing and everything hanging off it. The record
// cleanup runs in one transaction; stored files are removed afterwards on
// a best-effort basis and failures surface as warnings, never as a failed
// delete.
func (s *service) Delete(ctx context.Context, identity *shared.Identity, id uuid.UUID) (*DeleteResult, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !ResolvePermissions(l, identity).CanDelete {
		return nil, common.ErrForbidden.WithDetails("Only the owner or an admin can delete a listing.")
	}

	counts, err := s.repo.DeleteCascade(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &DeleteResult{
		ImagesDeleted:    counts.ImagesDeleted,
		FavoritesDeleted: counts.FavoritesDeleted,
	}
	for _, url := range counts.ImageURLs {
		if removeErr := s.files.RemoveByURL(ctx, url); removeErr != nil {
			s.logger.Warn("Failed to remove stored image file",
				zap.String("listingID", id.String()),
				zap.String("url", url),
				zap.Error(removeErr))
			result.FileWarnings = append(result.FileWarnings, url)
		}
	}

	s.logger.Info("Listing deleted",
		zap.String("listingID", id.String()),
		zap.String("deletedBy", identity.UserID.String()),
		zap.Int64("images", result.ImagesDeleted),
		zap.Int64("favorites", result.FavoritesDeleted))
	return result, nil
}

func (s *service) FindByOwner(ctx context.Context, ownerID uuid.UUID, page, pageSize int) ([]CardResponse, *common.Pagination, error) {
	listings, pagination, err := s.repo.FindByOwner(ctx, ownerID, page, pageSize)
	if err != nil {
		return nil, nil, err
	}
	cards := make([]CardResponse, len(listings))
	for i := range listings {
		cards[i] = ToCardResponse(&listings[i], s.cfg.DefaultCurrency, false)
	}
	return cards, pagination, nil
}

func (s *service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// favoritedSet resolves the caller's favorites among the given listings.
// Lookup failures degrade to "not favorited" rather than failing the read.
func (s *service) favoritedSet(ctx context.Context, identity *shared.Identity, listings []Listing) map[uuid.UUID]bool {
	if identity.IsAnonymous() || len(listings) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(listings))
	for i := range listings {
		ids[i] = listings[i].ID
	}
	favorited, err := s.favorites.FavoritedIDs(ctx, identity.UserID, ids)
	if err != nil {
		s.logger.Warn("Favorite lookup failed", zap.Error(err))
		return nil
	}
	return favorited
}

// NewCreatePartialAPIError maps a partial create onto the wire error shape,
// carrying the surviving listing ID so the client can recover.
func NewCreatePartialAPIError(e *CreatePartialError) *common.APIError {
	return common.NewAPIError(
		http.StatusInternalServerError,
		"LISTING_IMAGES_FAILED",
		"The listing was created but its images could not be attached.",
	).WithDetails(map[string]string{"listing_id": e.Listing.ID.String()})
}
