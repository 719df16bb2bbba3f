package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_HOST", "test-host")
	t.Setenv("DB_MAX_OPEN_CONNS", "20")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("MINIO_ENDPOINT", "minio.local:9000")
	t.Setenv("PUBLIC_BASE_URL", "https://menu.example.com/")

	cfg := Load()

	assert.Equal(t, "test-host", cfg.Database.Host)
	assert.Equal(t, 20, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.MinIO.UseSSL)
	assert.Equal(t, "https://minio.local:9000", cfg.MinIO.PublicURL)
	assert.Equal(t, "restaurant-assets", cfg.MinIO.AssetBucket)
	assert.Equal(t, "menu-items", cfg.MinIO.ItemBucket)
	assert.Equal(t, "https://menu.example.com", cfg.PublicBaseURL)
	assert.Equal(t, []string{"en", "mk"}, cfg.Locales)
	assert.Equal(t, ReorderImmediate, cfg.Menu.ReorderPersist)
	assert.True(t, cfg.Menu.ShowUnavailable)
}

func TestLoad_MenuSettings(t *testing.T) {
	t.Setenv("MENU_REORDER_PERSIST", "EXPLICIT")
	t.Setenv("PUBLIC_SHOW_UNAVAILABLE", "false")
	t.Setenv("SUPPORTED_LOCALES", "en, de ,")

	cfg := Load()

	assert.Equal(t, ReorderExplicit, cfg.Menu.ReorderPersist)
	assert.False(t, cfg.Menu.ShowUnavailable)
	assert.Equal(t, []string{"en", "de"}, cfg.Locales)
}

func TestLocation(t *testing.T) {
	cfg := &AppConfig{Timezone: "Europe/Skopje"}
	assert.Equal(t, "Europe/Skopje", cfg.Location().String())

	cfg.Timezone = "Not/AZone"
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
