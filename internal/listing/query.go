// File: internal/listing/query.go
package listing

import (
	"gorm.io/gorm"
)

// Sort keys accepted by the listings index. Anything else falls back to
// newest-first.
const (
	SortNewest    = "newest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
)

var sortClauses = map[string]string{
	SortNewest:    "listings.created_at DESC",
	SortPriceAsc:  "listings.price ASC",
	SortPriceDesc: "listings.price DESC",
}

// OrderClause resolves a sort key to its SQL order clause.
func OrderClause(sortBy string) string {
	if clause, ok := sortClauses[sortBy]; ok {
		return clause
	}
	return sortClauses[SortNewest]
}

// EscapeLikePattern escapes the LIKE wildcards so a user-typed search term
// matches literally. The escape character is a backslash, matching the
// ESCAPE default in Postgres.
func EscapeLikePattern(term string) string {
	escaped := make([]rune, 0, len(term))
	for _, r := range term {
		switch r {
		case '%', '_', '\\':
			escaped = append(escaped, '\\')
		}
		escaped = append(escaped, r)
	}
	return string(escaped)
}

// PropertyTypesForCategory expands a category filter into the property
// types it covers. Unknown categories return nil and match nothing.
func PropertyTypesForCategory(category string) []string {
	return CategoryPropertyTypes[Category(category)]
}

// ApplyFilters applies the search filters to a listings query. Sorting and
// pagination are left to the caller so the same filter set can back both
// the index and the map view.
func ApplyFilters(dbQuery *gorm.DB, q SearchQuery) *gorm.DB {
	if q.SearchTerm != "" {
		pattern := "%" + EscapeLikePattern(q.SearchTerm) + "%"
		dbQuery = dbQuery.Where(
			"listings.title ILIKE ? OR listings.city ILIKE ? OR listings.area_name ILIKE ?",
			pattern, pattern, pattern,
		)
	}
	if q.Purpose != nil {
		dbQuery = dbQuery.Where("listings.purpose = ?", *q.Purpose)
	}
	if q.PropertyType != nil && *q.PropertyType != "" {
		dbQuery = dbQuery.Where("listings.property_type = ?", *q.PropertyType)
	} else if q.Category != nil && *q.Category != "" {
		types := PropertyTypesForCategory(*q.Category)
		dbQuery = dbQuery.Where("listings.property_type IN ?", types)
	}
	if q.City != nil && *q.City != "" {
		dbQuery = dbQuery.Where("listings.city = ?", *q.City)
	}
	if q.Bedrooms != nil {
		dbQuery = dbQuery.Where("listings.bedrooms >= ?", *q.Bedrooms)
	}
	if q.Bathrooms != nil {
		dbQuery = dbQuery.Where("listings.bathrooms >= ?", *q.Bathrooms)
	}
	if q.MinPrice != nil {
		dbQuery = dbQuery.Where("listings.price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		dbQuery = dbQuery.Where("listings.price <= ?", *q.MaxPrice)
	}
	return dbQuery
}
