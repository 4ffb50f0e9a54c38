// File: internal/favorite/repository.go
package favorite

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository defines the interface for favorite data operations.
type Repository interface {
	// Add inserts the favorite, ignoring a duplicate pair.
	Add(ctx context.Context, userID, listingID uuid.UUID) error
	Remove(ctx context.Context, userID, listingID uuid.UUID) error
	Exists(ctx context.Context, userID, listingID uuid.UUID) (bool, error)
	ListingIDsForUser(ctx context.Context, userID uuid.UUID, listingIDs []uuid.UUID) ([]uuid.UUID, error)
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Favorite, error)
	Count(ctx context.Context) (int64, error)
	// DeleteOrphans removes favorites whose listing no longer exists.
	DeleteOrphans(ctx context.Context) (int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewGORMRepository creates a new GORM favorite repository.
func NewGORMRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Add(ctx context.Context, userID, listingID uuid.UUID) error {
	fav := Favorite{UserID: userID, ListingID: listingID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&fav).Error
}

func (r *gormRepository) Remove(ctx context.Context, userID, listingID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&Favorite{}).Error
}

func (r *gormRepository) Exists(ctx context.Context, userID, listingID uuid.UUID) (bool, error) {
	var fav Favorite
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		First(&fav).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (r *gormRepository) ListingIDsForUser(ctx context.Context, userID uuid.UUID, listingIDs []uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&Favorite{}).
		Where("user_id = ? AND listing_id IN ?", userID, listingIDs).
		Pluck("listing_id", &ids).Error
	return ids, err
}

func (r *gormRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]Favorite, error) {
	var favorites []Favorite
	err := r.db.WithContext(ctx).
		Preload("Listing").
		Preload("Listing.Images").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	return favorites, err
}

func (r *gormRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Favorite{}).Count(&count).Error
	return count, err
}

func (r *gormRepository) DeleteOrphans(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Exec("DELETE FROM favorites WHERE listing_id NOT IN (SELECT id FROM listings)")
	return result.RowsAffected, result.Error
}
