package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Reorder persistence modes for the menu builder.
const (
	ReorderImmediate = "immediate"
	ReorderExplicit  = "explicit"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for MinIO.
// AssetBucket stores restaurant logos, backgrounds and QR codes; ItemBucket stores menu item photos.
// PublicURL is the base used to build public object URLs (defaults to the endpoint).
type MinIOConfig struct {
	Endpoint    string
	AccessKey   string
	SecretKey   string
	AssetBucket string
	ItemBucket  string
	PublicURL   string
	UseSSL      bool
}

// AuthConfig holds settings used to verify identity provider session tokens.
type AuthConfig struct {
	JWTSecret  string
	Audience   string
	CookieName string
	LoginURL   string
}

// EmailConfig holds settings for the transactional email provider.
type EmailConfig struct {
	ResendAPIKey string
	From         string
	To           string
}

// MenuConfig holds menu builder and public menu behaviour switches.
type MenuConfig struct {
	// ReorderPersist is ReorderImmediate or ReorderExplicit.
	ReorderPersist  string
	ShowUnavailable bool
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost       string
	Port          string
	Timezone      string
	PublicBaseURL string
	BodyLimitMB   int
	CORSOrigins   string
	Locales       []string
	Database      DatabaseConfig
	MinIO         MinIOConfig
	Auth          AuthConfig
	Email         EmailConfig
	Menu          MenuConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	endpoint := getEnv("MINIO_ENDPOINT", "")
	useSSL := getEnvBool("MINIO_USE_SSL", false)

	return &AppConfig{
		AppHost:       getEnv("APP_HOST", "localhost:8080"),
		Port:          getEnv("PORT", "8080"),
		Timezone:      getEnv("APP_TIMEZONE", "UTC"),
		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		BodyLimitMB:   getEnvInt("BODY_LIMIT_MB", 8),
		CORSOrigins:   getEnv("CORS_ALLOW_ORIGINS", "*"),
		Locales:       getEnvList("SUPPORTED_LOCALES", []string{"en", "mk"}),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:    endpoint,
			AccessKey:   getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:   getEnv("MINIO_SECRET_KEY", ""),
			AssetBucket: getEnv("MINIO_ASSET_BUCKET", "restaurant-assets"),
			ItemBucket:  getEnv("MINIO_ITEM_BUCKET", "menu-items"),
			PublicURL:   strings.TrimRight(getEnv("MINIO_PUBLIC_URL", defaultPublicURL(endpoint, useSSL)), "/"),
			UseSSL:      useSSL,
		},
		Auth: AuthConfig{
			JWTSecret:  getEnv("AUTH_JWT_SECRET", ""),
			Audience:   getEnv("AUTH_JWT_AUDIENCE", "authenticated"),
			CookieName: getEnv("AUTH_COOKIE_NAME", "sb-access-token"),
			LoginURL:   getEnv("AUTH_LOGIN_URL", "/login"),
		},
		Email: EmailConfig{
			ResendAPIKey: getEnv("RESEND_API_KEY", ""),
			From:         getEnv("EMAIL_FROM", "MenuCup Leads <onboarding@resend.dev>"),
			To:           getEnv("SEND_EMAILS_TO", ""),
		},
		Menu: MenuConfig{
			ReorderPersist:  reorderMode(getEnv("MENU_REORDER_PERSIST", ReorderImmediate)),
			ShowUnavailable: getEnvBool("PUBLIC_SHOW_UNAVAILABLE", true),
		},
	}
}

// Location resolves the configured timezone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func defaultPublicURL(endpoint string, useSSL bool) string {
	if endpoint == "" {
		return ""
	}
	if useSSL {
		return "https://" + endpoint
	}
	return "http://" + endpoint
}

func reorderMode(v string) string {
	if strings.EqualFold(v, ReorderExplicit) {
		return ReorderExplicit
	}
	return ReorderImmediate
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
