// File: internal/favorite/model.go
package favorite

import (
	"time"

	"github.com/aqkal/Rentixe/internal/listing"

	"github.com/google/uuid"
)

// Favorite is a saved listing. The (user_id, listing_id) pair is the
// primary key, so a user can favorite a listing at most once.
type Favorite struct {
	UserID    uuid.UUID        `gorm:"type:uuid;primaryKey"`
	ListingID uuid.UUID        `gorm:"type:uuid;primaryKey;index"`
	Listing   *listing.Listing `gorm:"foreignKey:ListingID;references:ID;constraint:OnDelete:CASCADE;"`
	CreatedAt time.Time        `gorm:"autoCreateTime"`
}

func (Favorite) TableName() string {
	return "favorites"
}

// ToggleResponse reports the state after a toggle.
type ToggleResponse struct {
	ListingID   uuid.UUID `json:"listing_id"`
	IsFavorited bool      `json:"is_favorited"`
}
