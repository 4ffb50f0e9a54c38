// File: internal/favorite/service.go
package favorite

import (
	"context"

	"github.com/aqkal/Rentixe/internal/config"
	"github.com/aqkal/Rentixe/internal/listing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines the interface for favorite business logic. It also
// satisfies listing.FavoriteChecker.
type Service interface {
	Toggle(ctx context.Context, userID, listingID uuid.UUID) (*ToggleResponse, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]listing.CardResponse, error)
	FavoritedIDs(ctx context.Context, userID uuid.UUID, listingIDs []uuid.UUID) (map[uuid.UUID]bool, error)
	Count(ctx context.Context) (int64, error)
	SweepOrphans(ctx context.Context) (int64, error)
}

type service struct {
	repo     Repository
	listings listing.Repository
	cfg      *config.Config
	logger   *zap.Logger
}

var (
	_ Service                 = (*service)(nil)
	_ listing.FavoriteChecker = (*service)(nil)
)

// NewService creates a new favorite service.
func NewService(repo Repository, listings listing.Repository, cfg *config.Config, logger *zap.Logger) Service {
	return &service{repo: repo, listings: listings, cfg: cfg, logger: logger}
}

// Toggle flips the favorite state for the pair and reports the new state.
// Toggling twice always lands back where it started.
func (s *service) Toggle(ctx context.Context, userID, listingID uuid.UUID) (*ToggleResponse, error) {
	// Confirm the listing still exists so a favorite cannot be created
	// against a deleted one.
	if _, err := s.listings.FindByID(ctx, listingID); err != nil {
		return nil, err
	}

	exists, err := s.repo.Exists(ctx, userID, listingID)
	if err != nil {
		return nil, err
	}

	if exists {
		if err := s.repo.Remove(ctx, userID, listingID); err != nil {
			return nil, err
		}
		return &ToggleResponse{ListingID: listingID, IsFavorited: false}, nil
	}

	if err := s.repo.Add(ctx, userID, listingID); err != nil {
		return nil, err
	}
	return &ToggleResponse{ListingID: listingID, IsFavorited: true}, nil
}

// ListForUser returns the user's saved listings as cards, newest favorite
// first. Favorites whose listing vanished mid-flight are skipped.
func (s *service) ListForUser(ctx context.Context, userID uuid.UUID) ([]listing.CardResponse, error) {
	favorites, err := s.repo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	cards := make([]listing.CardResponse, 0, len(favorites))
	for _, fav := range favorites {
		if fav.Listing == nil {
			continue
		}
		cards = append(cards, listing.ToCardResponse(fav.Listing, s.cfg.DefaultCurrency, true))
	}
	return cards, nil
}

func (s *service) FavoritedIDs(ctx context.Context, userID uuid.UUID, listingIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	if len(listingIDs) == 0 {
		return map[uuid.UUID]bool{}, nil
	}
	ids, err := s.repo.ListingIDsForUser(ctx, userID, listingIDs)
	if err != nil {
		return nil, err
	}
	favorited := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		favorited[id] = true
	}
	return favorited, nil
}

func (s *service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// SweepOrphans drops favorites pointing at deleted listings. The delete
// saga already removes them in its transaction; this catches rows written
// by a toggle racing that transaction.
func (s *service) SweepOrphans(ctx context.Context) (int64, error) {
	removed, err := s.repo.DeleteOrphans(ctx)
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		s.logger.Info("Removed orphaned favorites", zap.Int64("count", removed))
	}
	return removed, nil
}
