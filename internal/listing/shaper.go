// File: internal/listing/shaper.go
package listing

import (
	"sort"

	"github.com/aqkal/Rentixe/internal/profile"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var pricePrinter = message.NewPrinter(language.English)

// FormatPrice renders a price as a grouped integer followed by the currency
// code, e.g. "1,250,000 AED". Fractions are dropped; listing prices are
// whole amounts.
func FormatPrice(price float64, currency string) string {
	return pricePrinter.Sprintf("%v %s",
		number.Decimal(price, number.MaxFractionDigits(0)), currency)
}

// CoverImageURL resolves the cover image for a listing: the image with
// sort_order 0, else the first image by sort order, else nil.
func CoverImageURL(images []ListingImage) *string {
	if len(images) == 0 {
		return nil
	}
	cover := images[0]
	for _, img := range images {
		if img.SortOrder == 0 {
			url := img.ImageURL
			return &url
		}
		if img.SortOrder < cover.SortOrder {
			cover = img
		}
	}
	url := cover.ImageURL
	return &url
}

// listingCurrency prefers the currency stored on the row; rows predating
// the currency column fall back to the configured default.
func listingCurrency(l *Listing, fallback string) string {
	if l.Currency != "" {
		return l.Currency
	}
	return fallback
}

// ToCardResponse shapes a listing into its card form. The currency argument
// is the configured default, used only when the row carries none.
func ToCardResponse(l *Listing, currency string, isFavorited bool) CardResponse {
	cur := listingCurrency(l, currency)
	return CardResponse{
		ID:             l.ID,
		Title:          l.Title,
		Purpose:        l.Purpose,
		Category:       l.Category,
		PropertyType:   l.PropertyType,
		Price:          l.Price,
		Currency:       cur,
		PriceFormatted: FormatPrice(l.Price, cur),
		Bedrooms:       l.Bedrooms,
		Bathrooms:      l.Bathrooms,
		Area:           l.Area,
		AreaUnit:       l.AreaUnit,
		Furnished:      l.Furnished,
		City:           l.City,
		AreaName:       l.AreaName,
		CoverImageURL:  CoverImageURL(l.Images),
		IsFavorited:    isFavorited,
		CreatedAt:      l.CreatedAt,
	}
}

// ToDetailResponse shapes a listing into its detail form. Images come back
// ordered by sort order. The owner card and permissions are resolved by the
// service and passed in.
func ToDetailResponse(l *Listing, currency string, isFavorited bool, owner *profile.OwnerCard, perms Permissions) DetailResponse {
	images := make([]ListingImageResponse, len(l.Images))
	ordered := make([]ListingImage, len(l.Images))
	copy(ordered, l.Images)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].SortOrder < ordered[j].SortOrder
	})
	for i, img := range ordered {
		images[i] = ListingImageResponse{
			ID:        img.ID,
			ImageURL:  img.ImageURL,
			SortOrder: img.SortOrder,
		}
	}

	return DetailResponse{
		CardResponse: ToCardResponse(l, currency, isFavorited),
		Description:  l.Description,
		Address:      l.Address,
		Latitude:     l.Latitude,
		Longitude:    l.Longitude,
		Images:       images,
		Owner:        owner,
		Permissions:  perms,
		UpdatedAt:    l.UpdatedAt,
	}
}
