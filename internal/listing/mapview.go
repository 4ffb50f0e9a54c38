// File: internal/listing/mapview.go
package listing

// BuildMapResponse aggregates located listings into markers plus a center
// point. The center is the arithmetic mean of the marker coordinates; with
// no markers it falls back to the configured default.
func BuildMapResponse(listings []Listing, currency string, defaultLat, defaultLng float64) MapResponse {
	markers := make([]Marker, 0, len(listings))
	var sumLat, sumLng float64
	for _, l := range listings {
		if l.Latitude == nil || l.Longitude == nil {
			continue
		}
		cur := listingCurrency(&l, currency)
		markers = append(markers, Marker{
			ID:             l.ID,
			Title:          l.Title,
			Latitude:       *l.Latitude,
			Longitude:      *l.Longitude,
			Price:          l.Price,
			Currency:       cur,
			PriceFormatted: FormatPrice(l.Price, cur),
			Purpose:        l.Purpose,
			CoverImageURL:  CoverImageURL(l.Images),
		})
		sumLat += *l.Latitude
		sumLng += *l.Longitude
	}

	resp := MapResponse{Markers: markers, CenterLat: defaultLat, CenterLng: defaultLng}
	if len(markers) > 0 {
		resp.CenterLat = sumLat / float64(len(markers))
		resp.CenterLng = sumLng / float64(len(markers))
	}
	return resp
}
