package models

import "time"

// NewsCategories is the closed set of news categories.
var NewsCategories = []string{
	"Wydarzenia",
	"Ogłoszenia",
	"Aktualności",
	"Społeczność",
}

// IsNewsCategory reports whether c belongs to the news category set.
func IsNewsCategory(c string) bool {
	for _, v := range NewsCategories {
		if v == c {
			return true
		}
	}
	return false
}

// News is a city-hall announcement authored by an admin-token holder.
type News struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// DummyNews receives news data from a JSON request.
type DummyNews struct {
	Title    string  `json:"title" validate:"required,min=3,max=200"`
	Content  string  `json:"content" validate:"required,min=10"`
	Category string  `json:"category" validate:"required"`
	ImageURL *string `json:"image_url,omitempty" validate:"omitempty,url"`
}
