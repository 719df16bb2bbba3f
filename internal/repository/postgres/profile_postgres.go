package postgres

import (
	"context"
	"database/sql"

	"menucup/internal/model"
	"menucup/internal/repository"
)

// ProfilePostgres reads the profiles table.
type ProfilePostgres struct {
	db *sql.DB
}

func NewProfilePostgres(db *sql.DB) *ProfilePostgres {
	return &ProfilePostgres{db: db}
}

var _ repository.ProfileRepository = (*ProfilePostgres)(nil)

// FindByID returns the profile of an identity, or sql.ErrNoRows.
func (p *ProfilePostgres) FindByID(ctx context.Context, id string) (*model.Profile, error) {
	var pr model.Profile
	err := p.db.QueryRowContext(ctx, `SELECT id, role FROM profiles WHERE id = $1`, id).Scan(&pr.ID, &pr.Role)
	if err != nil {
		return nil, err
	}
	return &pr, nil
}
