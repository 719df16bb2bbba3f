package repository

import (
	"context"

	"menucup/internal/model"
)

// CategoryRepository defines data access for menu categories.
// Lookups return sql.ErrNoRows when no row matches.
type CategoryRepository interface {
	Create(ctx context.Context, c *model.MenuCategory) (*model.MenuCategory, error)
	FindByID(ctx context.Context, id string) (*model.MenuCategory, error)
	FindBySlug(ctx context.Context, restaurantID, slug string) (*model.MenuCategory, error)

	// ListByRestaurant returns categories in ascending display order.
	ListByRestaurant(ctx context.Context, restaurantID string) ([]model.MenuCategory, error)
	Count(ctx context.Context, restaurantID string) (int, error)

	// Update writes name, slug and order of c.
	Update(ctx context.Context, c *model.MenuCategory) (*model.MenuCategory, error)

	// UpdateOrder assigns order = position+1 to each id, inside one transaction.
	// Ids that do not belong to restaurantID are rejected with ErrOrderMismatch.
	UpdateOrder(ctx context.Context, restaurantID string, ids []string) error

	Delete(ctx context.Context, id string) error
}

// ItemFilter narrows an item listing.
type ItemFilter struct {
	AvailableOnly bool
}

// ItemRepository defines data access for menu items.
// Lookups return sql.ErrNoRows when no row matches.
type ItemRepository interface {
	Create(ctx context.Context, it *model.MenuItem) (*model.MenuItem, error)
	FindByID(ctx context.Context, id string) (*model.MenuItem, error)

	// ListByRestaurant returns items in ascending display order.
	ListByRestaurant(ctx context.Context, restaurantID string, f ItemFilter) ([]model.MenuItem, error)

	// ListByCategory returns items of one category in ascending display order.
	ListByCategory(ctx context.Context, categoryID string, f ItemFilter) ([]model.MenuItem, error)

	// Update writes every mutable column of it.
	Update(ctx context.Context, it *model.MenuItem) (*model.MenuItem, error)

	// UpdateOrder assigns order = position+1 to each id, inside one transaction.
	UpdateOrder(ctx context.Context, restaurantID string, ids []string) error

	Delete(ctx context.Context, id string) error
}
