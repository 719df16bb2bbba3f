package postgres

import (
	"context"
	"database/sql"

	"menucup/internal/model"
	"menucup/internal/repository"
)

const itemColumns = `id, restaurant_id, category_id, name, description, price, image_url, is_available, "order", created_at, updated_at`

// ItemPostgres is a PostgreSQL implementation of repository.ItemRepository.
type ItemPostgres struct {
	db *sql.DB
}

// NewItemPostgres creates a new ItemPostgres repository.
func NewItemPostgres(db *sql.DB) *ItemPostgres {
	return &ItemPostgres{db: db}
}

var _ repository.ItemRepository = (*ItemPostgres)(nil)

func scanItem(s rowScanner) (*model.MenuItem, error) {
	var it model.MenuItem
	if err := s.Scan(
		&it.ID,
		&it.RestaurantID,
		&it.CategoryID,
		&it.Name,
		&it.Description,
		&it.Price,
		&it.ImageURL,
		&it.IsAvailable,
		&it.Order,
		&it.CreatedAt,
		&it.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &it, nil
}

func (p *ItemPostgres) Create(ctx context.Context, it *model.MenuItem) (*model.MenuItem, error) {
	q := `
		INSERT INTO menu_items (id, restaurant_id, category_id, name, description, price, image_url, is_available, "order", created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)
		RETURNING ` + itemColumns
	return scanItem(p.db.QueryRowContext(ctx, q,
		it.ID,
		it.RestaurantID,
		it.CategoryID,
		it.Name,
		it.Description,
		it.Price,
		it.ImageURL,
		it.IsAvailable,
		it.Order,
		it.CreatedAt,
	))
}

func (p *ItemPostgres) FindByID(ctx context.Context, id string) (*model.MenuItem, error) {
	q := `SELECT ` + itemColumns + ` FROM menu_items WHERE id = $1`
	return scanItem(p.db.QueryRowContext(ctx, q, id))
}

// ListByRestaurant returns every item of a restaurant in display order.
func (p *ItemPostgres) ListByRestaurant(ctx context.Context, restaurantID string, f repository.ItemFilter) ([]model.MenuItem, error) {
	return p.list(ctx, `restaurant_id = $1`, restaurantID, f)
}

// ListByCategory returns the items of one category in display order.
func (p *ItemPostgres) ListByCategory(ctx context.Context, categoryID string, f repository.ItemFilter) ([]model.MenuItem, error) {
	return p.list(ctx, `category_id = $1`, categoryID, f)
}

func (p *ItemPostgres) list(ctx context.Context, where, arg string, f repository.ItemFilter) ([]model.MenuItem, error) {
	q := `SELECT ` + itemColumns + ` FROM menu_items WHERE ` + where
	if f.AvailableOnly {
		q += ` AND is_available = true`
	}
	q += ` ORDER BY "order" ASC, created_at ASC`

	rows, err := p.db.QueryContext(ctx, q, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.MenuItem, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *ItemPostgres) Update(ctx context.Context, it *model.MenuItem) (*model.MenuItem, error) {
	q := `
		UPDATE menu_items SET
			category_id = $2, name = $3, description = $4, price = $5, image_url = $6,
			is_available = $7, "order" = $8, updated_at = now()
		WHERE id = $1
		RETURNING ` + itemColumns
	return scanItem(p.db.QueryRowContext(ctx, q,
		it.ID,
		it.CategoryID,
		it.Name,
		it.Description,
		it.Price,
		it.ImageURL,
		it.IsAvailable,
		it.Order,
	))
}

// UpdateOrder rewrites the display order of the given items in one transaction.
func (p *ItemPostgres) UpdateOrder(ctx context.Context, restaurantID string, ids []string) error {
	return updateOrder(ctx, p.db, `UPDATE menu_items SET "order" = $1, updated_at = now() WHERE id = $2 AND restaurant_id = $3`, restaurantID, ids)
}

func (p *ItemPostgres) Delete(ctx context.Context, id string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	return err
}
