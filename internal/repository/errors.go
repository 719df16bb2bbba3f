package repository

import (
	"database/sql"
	"errors"
)

// ErrOrderMismatch is returned by UpdateOrder when an id is unknown or belongs to another restaurant.
var ErrOrderMismatch = errors.New("order update does not match stored rows")

// IsNoRows reports whether err means the lookup matched nothing.
func IsNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
