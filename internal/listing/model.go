// File: internal/listing/model.go
package listing

import (
	"time"

	"github.com/aqkal/Rentixe/internal/common"
	"github.com/aqkal/Rentixe/internal/profile"

	"github.com/google/uuid"
)

// Purpose is the transaction type a listing is offered for.
type Purpose string

const (
	PurposeRent Purpose = "rent"
	PurposeSale Purpose = "sale"
)

// Category groups property types for coarse filtering.
type Category string

const (
	CategoryResidential Category = "residential"
	CategoryCommercial  Category = "commercial"
	CategoryLand        Category = "land"
)

// CategoryPropertyTypes maps each category to the property types it covers.
// An unknown category matches nothing.
var CategoryPropertyTypes = map[Category][]string{
	CategoryResidential: {"apartment", "villa", "townhouse", "penthouse"},
	CategoryCommercial:  {"office", "shop", "warehouse"},
	CategoryLand:        {"residential_plot", "commercial_plot"},
}

// CategoryForPropertyType resolves the category a property type belongs
// to. Unknown types map to the empty category.
func CategoryForPropertyType(propertyType string) Category {
	for category, types := range CategoryPropertyTypes {
		for _, t := range types {
			if t == propertyType {
				return category
			}
		}
	}
	return ""
}

// Listing represents a property listing in the database.
type Listing struct {
	common.BaseModel
	OwnerID      uuid.UUID        `gorm:"type:uuid;not null;index"`
	Owner        *profile.Profile `gorm:"foreignKey:OwnerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Title        string           `gorm:"type:varchar(255);not null"`
	Description  string           `gorm:"type:text;not null"`
	Purpose      Purpose          `gorm:"type:varchar(10);not null;index"`
	Category     Category         `gorm:"type:varchar(20);not null;index"`
	PropertyType string           `gorm:"type:varchar(50);not null;index"`
	Price        float64          `gorm:"type:numeric(14,2);not null"`
	Currency     string           `gorm:"type:varchar(3);not null;default:'AED'"`
	Bedrooms     int              `gorm:"not null;default:0"`
	Bathrooms    int              `gorm:"not null;default:0"`
	Area         *float64         `gorm:"type:numeric(12,2)"`
	AreaUnit     string           `gorm:"type:varchar(10);not null;default:'sqft'"`
	Furnished    *bool
	City         string           `gorm:"type:varchar(100);not null;index"`
	AreaName     *string          `gorm:"type:varchar(150)"`
	Address      *string          `gorm:"type:varchar(255)"`
	Latitude     *float64         `gorm:"type:decimal(10,8);not null"`
	Longitude    *float64         `gorm:"type:decimal(11,8);not null"`
	Images       []ListingImage   `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE;"`
}

func (Listing) TableName() string {
	return "listings"
}

// ListingImage is one image attached to a listing. SortOrder 0 marks the
// cover image.
type ListingImage struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ListingID uuid.UUID `json:"listing_id" gorm:"type:uuid;not null;index"`
	ImageURL  string    `json:"image_url" gorm:"type:text;not null"`
	SortOrder int       `json:"sort_order" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

func (ListingImage) TableName() string {
	return "listing_images"
}

// --- DTOs for API ---

// CreateListingRequest carries a new listing. Image files are uploaded
// beforehand; this request references them by URL, in display order.
type CreateListingRequest struct {
	Title        string   `json:"title" binding:"required,min=5,max=255"`
	Description  string   `json:"description" binding:"required,min=20"`
	Purpose      Purpose  `json:"purpose" binding:"required,oneof=rent sale"`
	PropertyType string   `json:"property_type" binding:"required,oneof=apartment villa townhouse penthouse office shop warehouse residential_plot commercial_plot"`
	Price        float64  `json:"price" binding:"required,gt=0"`
	Currency     *string  `json:"currency,omitempty" binding:"omitempty,iso4217"`
	Bedrooms     int      `json:"bedrooms" binding:"omitempty,gte=0"`
	Bathrooms    int      `json:"bathrooms" binding:"omitempty,gte=0"`
	Area         *float64 `json:"area,omitempty" binding:"omitempty,gt=0"`
	AreaUnit     *string  `json:"area_unit,omitempty" binding:"omitempty,oneof=sqft sqm"`
	Furnished    *bool    `json:"furnished,omitempty"`
	City         string   `json:"city" binding:"required,max=100"`
	AreaName     *string  `json:"area_name,omitempty" binding:"omitempty,max=150"`
	Address      *string  `json:"address,omitempty" binding:"omitempty,max=255"`
	Latitude     *float64 `json:"latitude" binding:"required,latitude"`
	Longitude    *float64 `json:"longitude" binding:"required,longitude"`
	ImageURLs    []string `json:"image_urls" binding:"required,min=1,dive,url"`
}

// UpdateListingRequest carries a partial edit. Images are immutable through
// this path.
type UpdateListingRequest struct {
	Title        *string  `json:"title,omitempty" binding:"omitempty,min=5,max=255"`
	Description  *string  `json:"description,omitempty" binding:"omitempty,min=20"`
	Purpose      *Purpose `json:"purpose,omitempty" binding:"omitempty,oneof=rent sale"`
	PropertyType *string  `json:"property_type,omitempty" binding:"omitempty,oneof=apartment villa townhouse penthouse office shop warehouse residential_plot commercial_plot"`
	Price        *float64 `json:"price,omitempty" binding:"omitempty,gt=0"`
	Currency     *string  `json:"currency,omitempty" binding:"omitempty,iso4217"`
	Bedrooms     *int     `json:"bedrooms,omitempty" binding:"omitempty,gte=0"`
	Bathrooms    *int     `json:"bathrooms,omitempty" binding:"omitempty,gte=0"`
	Area         *float64 `json:"area,omitempty" binding:"omitempty,gt=0"`
	AreaUnit     *string  `json:"area_unit,omitempty" binding:"omitempty,oneof=sqft sqm"`
	Furnished    *bool    `json:"furnished,omitempty"`
	City         *string  `json:"city,omitempty" binding:"omitempty,max=100"`
	AreaName     *string  `json:"area_name,omitempty" binding:"omitempty,max=150"`
	Address      *string  `json:"address,omitempty" binding:"omitempty,max=255"`
	Latitude     *float64 `json:"latitude,omitempty" binding:"omitempty,latitude"`
	Longitude    *float64 `json:"longitude,omitempty" binding:"omitempty,longitude"`
}

// SearchQuery holds the filter, sort and pagination parameters for the
// listings index. Numeric fields bind as pointers so a malformed value is a
// binding error rather than a silent zero.
type SearchQuery struct {
	SearchTerm   string   `form:"q"`
	Purpose      *Purpose `form:"purpose" binding:"omitempty,oneof=rent sale"`
	Category     *string  `form:"category" binding:"omitempty,oneof=residential commercial land"`
	PropertyType *string  `form:"property_type"`
	City         *string  `form:"city"`
	Bedrooms     *int     `form:"bedrooms" binding:"omitempty,gte=0"`
	Bathrooms    *int     `form:"bathrooms" binding:"omitempty,gte=0"`
	MinPrice     *float64 `form:"min_price" binding:"omitempty,gte=0"`
	MaxPrice     *float64 `form:"max_price" binding:"omitempty,gte=0"`
	SortBy       string   `form:"sort"`
	Page         int      `form:"page"`
	PageSize     int      `form:"page_size"`
}

// ListingImageResponse is one image in a detail response.
type ListingImageResponse struct {
	ID        uuid.UUID `json:"id"`
	ImageURL  string    `json:"image_url"`
	SortOrder int       `json:"sort_order"`
}

// Permissions describes what the current caller may do with a listing.
type Permissions struct {
	CanEdit     bool `json:"can_edit"`
	CanDelete   bool `json:"can_delete"`
	CanFavorite bool `json:"can_favorite"`
}

// CardResponse is the compact listing shape used in search results and
// favorite lists.
type CardResponse struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Purpose        Purpose   `json:"purpose"`
	Category       Category  `json:"category"`
	PropertyType   string    `json:"property_type"`
	Price          float64   `json:"price"`
	Currency       string    `json:"currency"`
	PriceFormatted string    `json:"price_formatted"`
	Bedrooms       int       `json:"bedrooms"`
	Bathrooms      int       `json:"bathrooms"`
	Area           *float64  `json:"area,omitempty"`
	AreaUnit       string    `json:"area_unit"`
	Furnished      *bool     `json:"furnished,omitempty"`
	City           string    `json:"city"`
	AreaName       *string   `json:"area_name,omitempty"`
	CoverImageURL  *string   `json:"cover_image_url"`
	IsFavorited    bool      `json:"is_favorited"`
	CreatedAt      time.Time `json:"created_at"`
}

// DetailResponse is the full listing shape for the detail page.
type DetailResponse struct {
	CardResponse
	Description string                 `json:"description"`
	Address     *string                `json:"address,omitempty"`
	Latitude    *float64               `json:"latitude,omitempty"`
	Longitude   *float64               `json:"longitude,omitempty"`
	Images      []ListingImageResponse `json:"images"`
	Owner       *profile.OwnerCard     `json:"owner,omitempty"`
	Permissions Permissions            `json:"permissions"`
	UpdatedAt   time.Time              `json:"updated_at"`
}

// Marker is a single point on the map view. The ID links the marker back
// to the listing card shown in the list for the same result set.
type Marker struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	Price          float64   `json:"price"`
	Currency       string    `json:"currency"`
	PriceFormatted string    `json:"price_formatted"`
	Purpose        Purpose   `json:"purpose"`
	CoverImageURL  *string   `json:"cover_image_url"`
}

// MapResponse is the aggregated map view for the current filters.
type MapResponse struct {
	Markers   []Marker `json:"markers"`
	CenterLat float64  `json:"center_lat"`
	CenterLng float64  `json:"center_lng"`
}

// DeleteResult reports the outcome of a listing deletion. FileWarnings
// carries paths that could not be removed from storage; the records are
// gone either way.
type DeleteResult struct {
	ImagesDeleted    int64    `json:"images_deleted"`
	FavoritesDeleted int64    `json:"favorites_deleted"`
	FileWarnings     []string `json:"file_warnings,omitempty"`
}
