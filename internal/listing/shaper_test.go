// File: internal/listing/shaper_test.go
package listing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "1,250,000 AED", FormatPrice(1250000, "AED"))
	assert.Equal(t, "50,000 AED", FormatPrice(50000, "AED"))
	assert.Equal(t, "950 AED", FormatPrice(950, "AED"))
	assert.Equal(t, "0 AED", FormatPrice(0, "AED"))
}

func TestCoverImageURL(t *testing.T) {
	t.Run("no images yields nil", func(t *testing.T) {
		assert.Nil(t, CoverImageURL(nil))
		assert.Nil(t, CoverImageURL([]ListingImage{}))
	})

	t.Run("sort order zero wins regardless of position", func(t *testing.T) {
		images := []ListingImage{
			{ImageURL: "https://cdn.example.com/b.jpg", SortOrder: 2},
			{ImageURL: "https://cdn.example.com/a.jpg", SortOrder: 0},
			{ImageURL: "https://cdn.example.com/c.jpg", SortOrder: 1},
		}
		url := CoverImageURL(images)
		require.NotNil(t, url)
		assert.Equal(t, "https://cdn.example.com/a.jpg", *url)
	})

	t.Run("lowest sort order when zero is absent", func(t *testing.T) {
		images := []ListingImage{
			{ImageURL: "https://cdn.example.com/b.jpg", SortOrder: 3},
			{ImageURL: "https://cdn.example.com/a.jpg", SortOrder: 1},
		}
		url := CoverImageURL(images)
		require.NotNil(t, url)
		assert.Equal(t, "https://cdn.example.com/a.jpg", *url)
	})
}

func TestToCardResponse(t *testing.T) {
	area := "Dubai Marina"
	l := &Listing{
		OwnerID:      uuid.New(),
		Title:        "Spacious two-bed with marina view",
		Purpose:      PurposeRent,
		PropertyType: "apartment",
		Price:        120000,
		Bedrooms:     2,
		Bathrooms:    2,
		City:         "Dubai",
		AreaName:     &area,
		Images: []ListingImage{
			{ImageURL: "https://cdn.example.com/cover.jpg", SortOrder: 0},
			{ImageURL: "https://cdn.example.com/second.jpg", SortOrder: 1},
		},
	}
	l.ID = uuid.New()

	card := ToCardResponse(l, "AED", true)
	assert.Equal(t, l.ID, card.ID)
	assert.Equal(t, "120,000 AED", card.PriceFormatted)
	assert.Equal(t, "AED", card.Currency)
	require.NotNil(t, card.CoverImageURL)
	assert.Equal(t, "https://cdn.example.com/cover.jpg", *card.CoverImageURL)
	assert.True(t, card.IsFavorited)
}

func TestToCardResponse_UsesListingCurrency(t *testing.T) {
	l := &Listing{
		Title:        "Downtown office floor",
		Purpose:      PurposeSale,
		Category:     CategoryCommercial,
		PropertyType: "office",
		Price:        2500000,
		Currency:     "USD",
		City:         "Dubai",
	}
	l.ID = uuid.New()

	card := ToCardResponse(l, "AED", false)
	assert.Equal(t, "USD", card.Currency)
	assert.Equal(t, "2,500,000 USD", card.PriceFormatted)
	assert.Equal(t, CategoryCommercial, card.Category)
}

func TestToDetailResponse_OrdersImages(t *testing.T) {
	l := &Listing{
		Title:        "Plot on the main road",
		Purpose:      PurposeSale,
		PropertyType: "commercial_plot",
		Price:        3000000,
		City:         "Dubai",
		Images: []ListingImage{
			{ID: uuid.New(), ImageURL: "https://cdn.example.com/3.jpg", SortOrder: 2},
			{ID: uuid.New(), ImageURL: "https://cdn.example.com/1.jpg", SortOrder: 0},
			{ID: uuid.New(), ImageURL: "https://cdn.example.com/2.jpg", SortOrder: 1},
		},
	}
	l.ID = uuid.New()

	detail := ToDetailResponse(l, "AED", false, nil, Permissions{})
	require.Len(t, detail.Images, 3)
	assert.Equal(t, "https://cdn.example.com/1.jpg", detail.Images[0].ImageURL)
	assert.Equal(t, "https://cdn.example.com/2.jpg", detail.Images[1].ImageURL)
	assert.Equal(t, "https://cdn.example.com/3.jpg", detail.Images[2].ImageURL)
	assert.Nil(t, detail.Owner)
}
