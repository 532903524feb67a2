package models

import "time"

type Post struct {
	ID            int       `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       string    `json:"excerpt,omitempty"`
	Content       string    `json:"content"`
	FeaturedImage string    `json:"featured_image,omitempty"`
	AuthorID      int       `json:"author_id"`
	Status        string    `json:"status"`
	Tags          []string  `json:"tags,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
