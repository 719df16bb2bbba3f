package postgres

import (
	"context"
	"database/sql"

	"menucup/internal/model"
	"menucup/internal/repository"
)

const categoryColumns = `id, restaurant_id, name, slug, "order", created_at, updated_at`

// CategoryPostgres is a PostgreSQL implementation of repository.CategoryRepository.
type CategoryPostgres struct {
	db *sql.DB
}

// NewCategoryPostgres creates a new CategoryPostgres repository.
func NewCategoryPostgres(db *sql.DB) *CategoryPostgres {
	return &CategoryPostgres{db: db}
}

var _ repository.CategoryRepository = (*CategoryPostgres)(nil)

func scanCategory(s rowScanner) (*model.MenuCategory, error) {
	var c model.MenuCategory
	if err := s.Scan(&c.ID, &c.RestaurantID, &c.Name, &c.Slug, &c.Order, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (p *CategoryPostgres) Create(ctx context.Context, c *model.MenuCategory) (*model.MenuCategory, error) {
	q := `
		INSERT INTO menu_categories (id, restaurant_id, name, slug, "order", created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING ` + categoryColumns
	return scanCategory(p.db.QueryRowContext(ctx, q, c.ID, c.RestaurantID, c.Name, c.Slug, c.Order, c.CreatedAt))
}

func (p *CategoryPostgres) FindByID(ctx context.Context, id string) (*model.MenuCategory, error) {
	q := `SELECT ` + categoryColumns + ` FROM menu_categories WHERE id = $1`
	return scanCategory(p.db.QueryRowContext(ctx, q, id))
}

func (p *CategoryPostgres) FindBySlug(ctx context.Context, restaurantID, slug string) (*model.MenuCategory, error) {
	q := `SELECT ` + categoryColumns + ` FROM menu_categories WHERE restaurant_id = $1 AND slug = $2`
	return scanCategory(p.db.QueryRowContext(ctx, q, restaurantID, slug))
}

// ListByRestaurant returns the categories of a restaurant in display order.
func (p *CategoryPostgres) ListByRestaurant(ctx context.Context, restaurantID string) ([]model.MenuCategory, error) {
	q := `SELECT ` + categoryColumns + ` FROM menu_categories WHERE restaurant_id = $1 ORDER BY "order" ASC, created_at ASC`
	rows, err := p.db.QueryContext(ctx, q, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.MenuCategory, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *CategoryPostgres) Count(ctx context.Context, restaurantID string) (int, error) {
	var n int
	err := p.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM menu_categories WHERE restaurant_id = $1`, restaurantID).Scan(&n)
	return n, err
}

func (p *CategoryPostgres) Update(ctx context.Context, c *model.MenuCategory) (*model.MenuCategory, error) {
	q := `
		UPDATE menu_categories SET name = $2, slug = $3, "order" = $4, updated_at = now()
		WHERE id = $1
		RETURNING ` + categoryColumns
	return scanCategory(p.db.QueryRowContext(ctx, q, c.ID, c.Name, c.Slug, c.Order))
}

// UpdateOrder rewrites the display order of the given categories in one transaction.
func (p *CategoryPostgres) UpdateOrder(ctx context.Context, restaurantID string, ids []string) error {
	return updateOrder(ctx, p.db, `UPDATE menu_categories SET "order" = $1, updated_at = now() WHERE id = $2 AND restaurant_id = $3`, restaurantID, ids)
}

// Delete removes a category; its items cascade.
func (p *CategoryPostgres) Delete(ctx context.Context, id string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM menu_categories WHERE id = $1`, id)
	return err
}

// updateOrder runs q once per id with ($order, $id, $restaurantID) and rolls back
// when any id fails to match exactly one row.
func updateOrder(ctx context.Context, db *sql.DB, q, restaurantID string, ids []string) (err error) {
	if len(ids) == 0 {
		return nil
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for i, id := range ids {
		res, err := tx.ExecContext(ctx, q, i+1, id, restaurantID)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n != 1 {
			return repository.ErrOrderMismatch
		}
	}
	return tx.Commit()
}
