package models

import "time"

// Listing statuses.
const (
	ListingStatusActive   = "active"
	ListingStatusInactive = "inactive"
	ListingStatusExpired  = "expired"
)

// ListingCategories is the closed set of listing categories.
var ListingCategories = []string{
	"Usługi",
	"Praca",
	"Nieruchomości",
	"Wydarzenia",
	"Sprzedaż",
	"Społeczność",
}

// IsListingCategory reports whether c belongs to the closed category set.
func IsListingCategory(c string) bool {
	for _, v := range ListingCategories {
		if v == c {
			return true
		}
	}
	return false
}

// Listing is a classified ad posted by a business user. Price is nil for
// listings without a price tag.
type Listing struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Location    string     `json:"location"`
	Price       *float64   `json:"price,omitempty"`
	UserUID     string     `json:"user_id"`
	Status      string     `json:"status"`
	LikesCount  int        `json:"likes_count"`
	IsLiked     bool       `json:"is_liked"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Owner       *OwnerInfo `json:"users,omitempty"`
}

// DummyListing receives listing data from a JSON request before it is
// converted into a Listing.
type DummyListing struct {
	Title       string   `json:"title" validate:"required,min=3,max=200"`
	Description string   `json:"description" validate:"required,min=10"`
	Category    string   `json:"category" validate:"required"`
	Location    string   `json:"location" validate:"required"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
}

// LikeResult is the server truth after a like toggle.
type LikeResult struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likes_count"`
}
