package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"menucup/internal/logging"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable marks a migrated schema. It is created by the first table step.
const sentinelTable = "public.restaurants"

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_restaurants",
		SQL: `CREATE TABLE IF NOT EXISTS restaurants (
  id                   UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name                 TEXT        NOT NULL,
  slug                 TEXT        NOT NULL UNIQUE,
  owner_id             UUID        NOT NULL,
  subtitle             TEXT        NOT NULL DEFAULT '',
  description          TEXT        NOT NULL DEFAULT '',
  slogan               TEXT        NOT NULL DEFAULT '',
  est_year             TEXT        NOT NULL DEFAULT '',
  logo_url             TEXT        NOT NULL DEFAULT '',
  appearance           TEXT        NOT NULL DEFAULT 'minimal' CHECK (appearance IN ('minimal', 'visual')),
  accent_color         TEXT        NOT NULL DEFAULT '#6366f1',
  background_color     TEXT        NOT NULL DEFAULT '#ffffff',
  card_bg_color        TEXT        NOT NULL DEFAULT '#ffffff',
  text_color           TEXT        NOT NULL DEFAULT '#000000',
  muted_text_color     TEXT        NOT NULL DEFAULT '#6b7280',
  background_image_url TEXT        NOT NULL DEFAULT '',
  qr_code_url          TEXT        NOT NULL DEFAULT '',
  created_at           TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at           TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_restaurants_owner_created",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_restaurants_owner_created ON restaurants (owner_id, created_at DESC);`,
	},
	{
		Name: "create_table_profiles",
		SQL: `CREATE TABLE IF NOT EXISTS profiles (
  id         UUID        PRIMARY KEY,
  role       TEXT        NOT NULL DEFAULT 'owner' CHECK (role IN ('admin', 'owner')),
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_menu_categories",
		SQL: `CREATE TABLE IF NOT EXISTS menu_categories (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  restaurant_id UUID        NOT NULL REFERENCES restaurants (id) ON DELETE CASCADE,
  name          TEXT        NOT NULL,
  slug          TEXT        NOT NULL,
  "order"       INTEGER     NOT NULL DEFAULT 0,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (restaurant_id, slug)
);`,
	},
	{
		Name: "create_index_menu_categories_order",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_menu_categories_restaurant_order ON menu_categories (restaurant_id, "order");`,
	},
	{
		Name: "create_table_menu_items",
		SQL: `CREATE TABLE IF NOT EXISTS menu_items (
  id            UUID          PRIMARY KEY DEFAULT uuid_generate_v4(),
  restaurant_id UUID          NOT NULL REFERENCES restaurants (id) ON DELETE CASCADE,
  category_id   UUID          NOT NULL REFERENCES menu_categories (id) ON DELETE CASCADE,
  name          TEXT          NOT NULL,
  description   TEXT          NOT NULL DEFAULT '',
  price         NUMERIC(10,2) NOT NULL CHECK (price >= 0),
  image_url     TEXT          NOT NULL DEFAULT '',
  is_available  BOOLEAN       NOT NULL DEFAULT true,
  "order"       INTEGER       NOT NULL DEFAULT 0,
  created_at    TIMESTAMPTZ   NOT NULL DEFAULT now(),
  updated_at    TIMESTAMPTZ   NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_menu_items_restaurant_order",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_menu_items_restaurant_order ON menu_items (restaurant_id, "order");`,
	},
	{
		Name: "create_index_menu_items_category_order",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_menu_items_category_order ON menu_items (category_id, "order");`,
	},
}

// EnsureMigrated checks if the sentinel table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *logging.Logger, dbHost string) error {
	start := time.Now()
	log = log.With("database")

	log.Log(map[string]any{
		"event":   "db_migration_check",
		"status":  "starting",
		"db_host": dbHost,
	})

	var exists bool
	query := fmt.Sprintf("SELECT to_regclass('%s') IS NOT NULL", sentinelTable)
	if err := db.QueryRowContext(ctx, query).Scan(&exists); err != nil {
		log.Log(map[string]any{
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.Log(map[string]any{
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	log.Log(map[string]any{
		"event":   "db_migration_start",
		"status":  "in_progress",
		"db_host": dbHost,
		"steps":   len(steps),
	})

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Log(map[string]any{
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		log.Log(map[string]any{
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	log.Log(map[string]any{
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}
