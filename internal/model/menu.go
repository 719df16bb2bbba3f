package model

import (
	"fmt"
	"time"
)

// MenuCategory groups items of one restaurant. Slug is unique within the restaurant.
type MenuCategory struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	Name         string    `json:"name"`
	Slug         string    `json:"slug"`
	Order        int       `json:"order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// MenuItem is a dish or drink. Its category always belongs to the same restaurant.
type MenuItem struct {
	ID           string    `json:"id"`
	RestaurantID string    `json:"restaurant_id"`
	CategoryID   string    `json:"category_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	Price        float64   `json:"price"`
	ImageURL     string    `json:"image_url,omitempty"`
	IsAvailable  bool      `json:"is_available"`
	Order        int       `json:"order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateCategoryInput creates a category. Slug defaults to the slugified name and
// Order to one past the current number of categories.
type CreateCategoryInput struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Order *int   `json:"order"`
}

// UpdateCategoryInput changes the non-nil fields of a category.
type UpdateCategoryInput struct {
	Name  *string `json:"name"`
	Slug  *string `json:"slug"`
	Order *int    `json:"order"`
}

// CreateItemInput creates an item in a category. IsAvailable defaults to true.
type CreateItemInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url"`
	IsAvailable *bool   `json:"is_available"`
	Order       int     `json:"order"`
}

// UpdateItemInput changes the non-nil fields of an item.
type UpdateItemInput struct {
	CategoryID  *string  `json:"category_id"`
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	ImageURL    *string  `json:"image_url"`
	IsAvailable *bool    `json:"is_available"`
	Order       *int     `json:"order"`
}

// FormatPrice renders a price the way the public menu shows it, e.g. 9.5 -> "$9.50".
func FormatPrice(p float64) string {
	return fmt.Sprintf("$%.2f", p)
}
