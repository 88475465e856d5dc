// Package models defines core data structures for products, queries,
// and search results.
package models

import "time"

// Product represents one catalog item backed by an image file.
type Product struct {
	ID string `json:"id" db:"id"`
	// Name is a display name, typically derived from the image file
	// name when the catalog is built from a directory.
	Name string `json:"name" db:"name"`
	// ImagePath is relative to the catalog directory, POSIX separators.
	ImagePath string    `json:"image_path" db:"image_path"`
	Category  string    `json:"category,omitempty" db:"category"`
	Price     float64   `json:"price,omitempty" db:"price"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ProductInput is the metadata supplied when adding a product. A blank
// ID means one is generated; a blank Name is derived from the ID.
type ProductInput struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name,omitempty"`
	Category string  `json:"category,omitempty"`
	Price    float64 `json:"price,omitempty"`
}
