// File: internal/listing/repository.go
package listing

import (
	"context"
	"errors"
	"fmt"

	"github.com/aqkal/Rentixe/internal/common"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CascadeCounts reports the rows removed by a cascading delete, plus the
// image URLs captured before the rows went away.
type CascadeCounts struct {
	ImageURLs        []string
	ImagesDeleted    int64
	FavoritesDeleted int64
}

// Repository defines the interface for listing data operations.
type Repository interface {
	// CreateWithImages inserts the listing row, then one image row per URL
	// in order. An image failure after the listing insert is reported via
	// ErrImagesPartial wrapping; the listing row is kept.
	CreateWithImages(ctx context.Context, listing *Listing, imageURLs []string) error
	FindByID(ctx context.Context, id uuid.UUID) (*Listing, error)
	Update(ctx context.Context, listing *Listing) error
	// DeleteCascade removes image rows, favorite rows and the listing row
	// in one transaction, returning what was removed.
	DeleteCascade(ctx context.Context, id uuid.UUID) (*CascadeCounts, error)
	Search(ctx context.Context, query SearchQuery) ([]Listing, *common.Pagination, error)
	SearchAllLocated(ctx context.Context, query SearchQuery) ([]Listing, error)
	FindByOwner(ctx context.Context, ownerID uuid.UUID, page, pageSize int) ([]Listing, *common.Pagination, error)
	Count(ctx context.Context) (int64, error)
}

// ErrImagesPartial marks a create where the listing row landed but its
// image rows did not.
var ErrImagesPartial = errors.New("listing created but image records failed")

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM listing repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) CreateWithImages(ctx context.Context, listing *Listing, imageURLs []string) error {
	db := r.db.WithContext(ctx)

	if err := db.Omit("Images", "Owner").Create(listing).Error; err != nil {
		return fmt.Errorf("failed to create listing: %w", err)
	}

	images := make([]ListingImage, len(imageURLs))
	for i, url := range imageURLs {
		images[i] = ListingImage{
			ID:        uuid.New(),
			ListingID: listing.ID,
			ImageURL:  url,
			SortOrder: i,
		}
	}
	if err := db.Create(&images).Error; err != nil {
		return fmt.Errorf("%w: %s", ErrImagesPartial, err.Error())
	}
	listing.Images = images
	return nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uuid.UUID) (*Listing, error) {
	var listing Listing
	err := r.db.WithContext(ctx).
		Preload("Images").
		Preload("Owner").
		First(&listing, "listings.id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound.WithDetails("Listing not found.")
		}
		return nil, err
	}
	return &listing, nil
}

func (r *gormRepository) Update(ctx context.Context, listing *Listing) error {
	return r.db.WithContext(ctx).Omit("Images", "Owner").Save(listing).Error
}

func (r *gormRepository) DeleteCascade(ctx context.Context, id uuid.UUID) (*CascadeCounts, error) {
	counts := &CascadeCounts{}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&ListingImage{}).
			Where("listing_id = ?", id).
			Pluck("image_url", &counts.ImageURLs).Error; err != nil {
			return fmt.Errorf("failed to collect image urls: %w", err)
		}

		imgResult := tx.Where("listing_id = ?", id).Delete(&ListingImage{})
		if imgResult.Error != nil {
			return fmt.Errorf("failed to delete listing images: %w", imgResult.Error)
		}
		counts.ImagesDeleted = imgResult.RowsAffected

		favResult := tx.Exec("DELETE FROM favorites WHERE listing_id = ?", id)
		if favResult.Error != nil {
			return fmt.Errorf("failed to delete favorites: %w", favResult.Error)
		}
		counts.FavoritesDeleted = favResult.RowsAffected

		result := tx.Delete(&Listing{}, "id = ?", id)
		if result.Error != nil {
			return fmt.Errorf("failed to delete listing: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return common.ErrNotFound.WithDetails("Listing not found or already deleted.")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *gormRepository) Search(ctx context.Context, query SearchQuery) ([]Listing, *common.Pagination, error) {
	var listings []Listing
	var totalItems int64

	dbQuery := ApplyFilters(r.db.WithContext(ctx).Model(&Listing{}), query)

	if err := dbQuery.Count(&totalItems).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to count listings: %w", err)
	}

	pagination := common.NewPagination(totalItems, query.Page, query.PageSize)
	err := dbQuery.
		Preload("Images").
		Order(OrderClause(query.SortBy)).
		Offset((pagination.CurrentPage - 1) * pagination.PageSize).
		Limit(pagination.PageSize).
		Find(&listings).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to search listings: %w", err)
	}
	return listings, pagination, nil
}

// SearchAllLocated returns every listing matching the filters that has
// coordinates, without pagination. Backs the map view.
func (r *gormRepository) SearchAllLocated(ctx context.Context, query SearchQuery) ([]Listing, error) {
	var listings []Listing
	dbQuery := ApplyFilters(r.db.WithContext(ctx).Model(&Listing{}), query).
		Preload("Images").
		Where("listings.latitude IS NOT NULL AND listings.longitude IS NOT NULL")
	if err := dbQuery.Find(&listings).Error; err != nil {
		return nil, fmt.Errorf("failed to load map listings: %w", err)
	}
	return listings, nil
}

func (r *gormRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID, page, pageSize int) ([]Listing, *common.Pagination, error) {
	var listings []Listing
	var totalItems int64

	dbQuery := r.db.WithContext(ctx).Model(&Listing{}).Where("owner_id = ?", ownerID)
	if err := dbQuery.Count(&totalItems).Error; err != nil {
		return nil, nil, err
	}

	pagination := common.NewPagination(totalItems, page, pageSize)
	err := dbQuery.
		Preload("Images").
		Order("listings.created_at DESC").
		Offset((pagination.CurrentPage - 1) * pagination.PageSize).
		Limit(pagination.PageSize).
		Find(&listings).Error
	if err != nil {
		return nil, nil, err
	}
	return listings, pagination, nil
}

func (r *gormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Listing{}).Count(&count).Error
	return count, err
}
