package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"menucup/internal/model"
	"menucup/internal/repository"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

const restaurantColumns = `id, name, slug, owner_id, subtitle, description, slogan, est_year, logo_url,
		appearance, accent_color, background_color, card_bg_color, text_color, muted_text_color,
		background_image_url, qr_code_url, created_at, updated_at`

// RestaurantPostgres is a PostgreSQL implementation of repository.RestaurantRepository.
type RestaurantPostgres struct {
	db *sql.DB
}

// NewRestaurantPostgres creates a new RestaurantPostgres repository.
func NewRestaurantPostgres(db *sql.DB) *RestaurantPostgres {
	return &RestaurantPostgres{db: db}
}

var _ repository.RestaurantRepository = (*RestaurantPostgres)(nil)

func scanRestaurant(s rowScanner) (*model.Restaurant, error) {
	var r model.Restaurant
	if err := s.Scan(
		&r.ID,
		&r.Name,
		&r.Slug,
		&r.OwnerID,
		&r.Subtitle,
		&r.Description,
		&r.Slogan,
		&r.EstYear,
		&r.LogoURL,
		&r.Appearance,
		&r.AccentColor,
		&r.BackgroundColor,
		&r.CardBgColor,
		&r.TextColor,
		&r.MutedTextColor,
		&r.BackgroundImageURL,
		&r.QRCodeURL,
		&r.CreatedAt,
		&r.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &r, nil
}

// Create inserts a restaurant with the stock theme and returns the stored row.
func (p *RestaurantPostgres) Create(ctx context.Context, r *model.Restaurant) (*model.Restaurant, error) {
	q := `
		INSERT INTO restaurants (id, name, slug, owner_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)
		RETURNING ` + restaurantColumns
	return scanRestaurant(p.db.QueryRowContext(ctx, q, r.ID, r.Name, r.Slug, r.OwnerID, r.CreatedAt))
}

// FindByID fetches a single restaurant by its ID.
func (p *RestaurantPostgres) FindByID(ctx context.Context, id string) (*model.Restaurant, error) {
	q := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE id = $1`
	return scanRestaurant(p.db.QueryRowContext(ctx, q, id))
}

// FindBySlug fetches a single restaurant by its public slug.
func (p *RestaurantPostgres) FindBySlug(ctx context.Context, slug string) (*model.Restaurant, error) {
	q := `SELECT ` + restaurantColumns + ` FROM restaurants WHERE slug = $1`
	return scanRestaurant(p.db.QueryRowContext(ctx, q, slug))
}

// List returns restaurants newest first, scoped to an owner when the filter names one.
func (p *RestaurantPostgres) List(ctx context.Context, f repository.RestaurantFilter) ([]model.Restaurant, error) {
	q := `SELECT ` + restaurantColumns + ` FROM restaurants`
	var args []any
	if f.OwnerID != "" {
		q += ` WHERE owner_id = $1`
		args = append(args, f.OwnerID)
	}
	q += ` ORDER BY created_at DESC, id DESC`

	rows, err := p.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Restaurant, 0)
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateSettings overwrites the descriptive and branding columns and returns the stored row.
func (p *RestaurantPostgres) UpdateSettings(ctx context.Context, id string, s model.RestaurantSettings) (*model.Restaurant, error) {
	q := `
		UPDATE restaurants SET
			name = $2, subtitle = $3, description = $4, slogan = $5, est_year = $6, logo_url = $7,
			appearance = $8, accent_color = $9, background_color = $10, card_bg_color = $11,
			text_color = $12, muted_text_color = $13, background_image_url = $14, updated_at = now()
		WHERE id = $1
		RETURNING ` + restaurantColumns
	return scanRestaurant(p.db.QueryRowContext(ctx, q,
		id,
		s.Name,
		s.Subtitle,
		s.Description,
		s.Slogan,
		s.EstYear,
		s.LogoURL,
		s.Appearance,
		s.AccentColor,
		s.BackgroundColor,
		s.CardBgColor,
		s.TextColor,
		s.MutedTextColor,
		s.BackgroundImageURL,
	))
}

// UpdateAsset writes an uploaded asset URL into the column owned by kind.
func (p *RestaurantPostgres) UpdateAsset(ctx context.Context, id string, kind model.AssetKind, url string) (*model.Restaurant, error) {
	col, ok := kind.Column()
	if !ok {
		return nil, fmt.Errorf("unknown asset kind %q", kind)
	}
	q := fmt.Sprintf(`UPDATE restaurants SET %s = $2, updated_at = now() WHERE id = $1 RETURNING `, col) + restaurantColumns
	return scanRestaurant(p.db.QueryRowContext(ctx, q, id, url))
}

// Delete removes a restaurant by ID. Missing rows are not an error.
func (p *RestaurantPostgres) Delete(ctx context.Context, id string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM restaurants WHERE id = $1`, id)
	return err
}
