package repository

import (
	"fmt"
	"strings"

	"github.com/magabrotheeeer/city-classifieds/internal/models"
)

// buildListingQuery assembles the feed SELECT from a filter. Dimensions are
// independently optional and combine with AND; search matches title OR
// description case-insensitively. Listings without a price are excluded by
// any price range filter and ordered last under both price sorts; every
// sort appends "id DESC" so duplicate timestamps order deterministically.
func buildListingQuery(f models.ListingFilter) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`SELECT id, title, description, category, location, price,
			user_uid, status, likes_count, created_at, updated_at
		FROM listings
		WHERE status = 'active'`)

	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.Category != "" {
		sb.WriteString(" AND category = " + arg(f.Category))
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		sb.WriteString(" AND (title ILIKE " + p + " OR description ILIKE " + p + ")")
	}
	if f.MinPrice != nil {
		sb.WriteString(" AND price >= " + arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		sb.WriteString(" AND price <= " + arg(*f.MaxPrice))
	}

	switch f.Sort {
	case models.SortOldest:
		sb.WriteString(" ORDER BY created_at ASC, id DESC")
	case models.SortPriceAsc:
		sb.WriteString(" ORDER BY price ASC NULLS LAST, id DESC")
	case models.SortPriceDesc:
		sb.WriteString(" ORDER BY price DESC NULLS LAST, id DESC")
	case models.SortMostLiked:
		sb.WriteString(" ORDER BY likes_count DESC, id DESC")
	default: // newest
		sb.WriteString(" ORDER BY created_at DESC, id DESC")
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	sb.WriteString(" LIMIT " + arg(limit) + " OFFSET " + arg(offset))

	return sb.String(), args
}
