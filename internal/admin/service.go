// File: internal/admin/service.go
package admin

import (
	"context"

	"github.com/aqkal/Rentixe/internal/favorite"
	"github.com/aqkal/Rentixe/internal/listing"
	"github.com/aqkal/Rentixe/internal/profile"

	"go.uber.org/zap"
)

const recentListingsCount = 5

// Stats is the marketplace-wide snapshot shown on the admin dashboard.
type Stats struct {
	TotalListings  int64                  `json:"total_listings"`
	TotalProfiles  int64                  `json:"total_profiles"`
	TotalFavorites int64                  `json:"total_favorites"`
	RecentListings []listing.CardResponse `json:"recent_listings"`
}

// Service aggregates counters across the domain services.
type Service interface {
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	listings  listing.Service
	profiles  profile.Service
	favorites favorite.Service
	logger    *zap.Logger
}

var _ Service = (*service)(nil)

// NewService creates a new admin service.
func NewService(listings listing.Service, profiles profile.Service, favorites favorite.Service, logger *zap.Logger) Service {
	return &service{listings: listings, profiles: profiles, favorites: favorites, logger: logger}
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	var err error
	if stats.TotalListings, err = s.listings.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalProfiles, err = s.profiles.Count(ctx); err != nil {
		return nil, err
	}
	if stats.TotalFavorites, err = s.favorites.Count(ctx); err != nil {
		return nil, err
	}

	recent, _, err := s.listings.Search(ctx, listing.SearchQuery{
		SortBy:   listing.SortNewest,
		Page:     1,
		PageSize: recentListingsCount,
	}, nil)
	if err != nil {
		return nil, err
	}
	stats.RecentListings = recent
	return stats, nil
}
