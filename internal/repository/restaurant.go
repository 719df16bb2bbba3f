package repository

import (
	"context"

	"menucup/internal/model"
)

// RestaurantFilter narrows a restaurant listing. An empty OwnerID lists every restaurant.
type RestaurantFilter struct {
	OwnerID string
}

// RestaurantRepository defines data access for restaurants using SQL queries only.
// Lookups return sql.ErrNoRows when no row matches.
type RestaurantRepository interface {
	// Create inserts a restaurant and returns the stored row.
	Create(ctx context.Context, r *model.Restaurant) (*model.Restaurant, error)

	FindByID(ctx context.Context, id string) (*model.Restaurant, error)
	FindBySlug(ctx context.Context, slug string) (*model.Restaurant, error)

	// List returns restaurants ordered by creation time, newest first.
	List(ctx context.Context, f RestaurantFilter) ([]model.Restaurant, error)

	// UpdateSettings overwrites the descriptive and branding columns.
	UpdateSettings(ctx context.Context, id string, s model.RestaurantSettings) (*model.Restaurant, error)

	// UpdateAsset writes the URL of an uploaded asset into its column.
	UpdateAsset(ctx context.Context, id string, kind model.AssetKind, url string) (*model.Restaurant, error)

	// Delete removes a restaurant; categories and items cascade.
	Delete(ctx context.Context, id string) error
}

// ProfileRepository reads user profiles.
type ProfileRepository interface {
	FindByID(ctx context.Context, id string) (*model.Profile, error)
}
