package models

// Sort orders accepted by the listing feed.
const (
	SortNewest    = "newest"
	SortOldest    = "oldest"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"
	SortMostLiked = "most_liked"
)

// IsSortOrder reports whether s is one of the accepted sort keys.
func IsSortOrder(s string) bool {
	switch s {
	case SortNewest, SortOldest, SortPriceAsc, SortPriceDesc, SortMostLiked:
		return true
	}
	return false
}

// ListingFilter describes the feed query. Every dimension is independently
// optional; set dimensions combine with logical AND. MinPrice/MaxPrice are
// nil when no bound was given.
type ListingFilter struct {
	Search   string
	Category string
	MinPrice *float64
	MaxPrice *float64
	Sort     string
	Limit    int
	Offset   int
}
