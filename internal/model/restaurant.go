package model

import (
	"regexp"
	"time"
)

// Appearance selects how the public menu background is themed.
type Appearance string

const (
	// AppearanceMinimal renders a solid background colour.
	AppearanceMinimal Appearance = "minimal"
	// AppearanceVisual renders the background image when one is set.
	AppearanceVisual Appearance = "visual"
)

// Default branding applied when a restaurant leaves a field empty.
const (
	DefaultAccentColor     = "#6366f1"
	DefaultBackgroundColor = "#ffffff"
	DefaultCardBgColor     = "#ffffff"
	DefaultTextColor       = "#000000"
	DefaultMutedTextColor  = "#6b7280"
)

// Restaurant is a tenant of the menu builder. Slug is globally unique and URL-facing.
type Restaurant struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Slug               string     `json:"slug"`
	OwnerID            string     `json:"owner_id"`
	Subtitle           string     `json:"subtitle"`
	Description        string     `json:"description"`
	Slogan             string     `json:"slogan"`
	EstYear            string     `json:"est_year"`
	LogoURL            string     `json:"logo_url"`
	Appearance         Appearance `json:"appearance"`
	AccentColor        string     `json:"accent_color"`
	BackgroundColor    string     `json:"background_color"`
	CardBgColor        string     `json:"card_bg_color"`
	TextColor          string     `json:"text_color"`
	MutedTextColor     string     `json:"muted_text_color"`
	BackgroundImageURL string     `json:"background_image_url"`
	QRCodeURL          string     `json:"qr_code_url"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// CreateRestaurantInput is the payload for creating a restaurant. Slug is derived from Name when empty.
type CreateRestaurantInput struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// RestaurantSettings holds the editable descriptive and branding fields.
type RestaurantSettings struct {
	Name               string     `json:"name"`
	Subtitle           string     `json:"subtitle"`
	Description        string     `json:"description"`
	Slogan             string     `json:"slogan"`
	EstYear            string     `json:"est_year"`
	LogoURL            string     `json:"logo_url"`
	Appearance         Appearance `json:"appearance"`
	AccentColor        string     `json:"accent_color"`
	BackgroundColor    string     `json:"background_color"`
	CardBgColor        string     `json:"card_bg_color"`
	TextColor          string     `json:"text_color"`
	MutedTextColor     string     `json:"muted_text_color"`
	BackgroundImageURL string     `json:"background_image_url"`
}

// WithDefaults fills empty branding fields with the stock theme.
func (s RestaurantSettings) WithDefaults() RestaurantSettings {
	if s.Appearance == "" {
		s.Appearance = AppearanceMinimal
	}
	s.AccentColor = orDefault(s.AccentColor, DefaultAccentColor)
	s.BackgroundColor = orDefault(s.BackgroundColor, DefaultBackgroundColor)
	s.CardBgColor = orDefault(s.CardBgColor, DefaultCardBgColor)
	s.TextColor = orDefault(s.TextColor, DefaultTextColor)
	s.MutedTextColor = orDefault(s.MutedTextColor, DefaultMutedTextColor)
	return s
}

// Settings extracts the editable settings of r.
func (r Restaurant) Settings() RestaurantSettings {
	return RestaurantSettings{
		Name:               r.Name,
		Subtitle:           r.Subtitle,
		Description:        r.Description,
		Slogan:             r.Slogan,
		EstYear:            r.EstYear,
		LogoURL:            r.LogoURL,
		Appearance:         r.Appearance,
		AccentColor:        r.AccentColor,
		BackgroundColor:    r.BackgroundColor,
		CardBgColor:        r.CardBgColor,
		TextColor:          r.TextColor,
		MutedTextColor:     r.MutedTextColor,
		BackgroundImageURL: r.BackgroundImageURL,
	}
}

// AssetKind names an uploadable restaurant image and the column it is written to.
type AssetKind string

const (
	AssetLogo       AssetKind = "logo"
	AssetBackground AssetKind = "background"
	AssetQRCode     AssetKind = "qrcode"
)

// Column returns the restaurants column holding the asset URL.
func (k AssetKind) Column() (string, bool) {
	switch k {
	case AssetLogo:
		return "logo_url", true
	case AssetBackground:
		return "background_image_url", true
	case AssetQRCode:
		return "qr_code_url", true
	default:
		return "", false
	}
}

// AssetURL returns the URL currently recorded for kind.
func (r *Restaurant) AssetURL(kind AssetKind) string {
	switch kind {
	case AssetLogo:
		return r.LogoURL
	case AssetBackground:
		return r.BackgroundImageURL
	case AssetQRCode:
		return r.QRCodeURL
	default:
		return ""
	}
}

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidHexColor reports whether v is a #rgb or #rrggbb colour.
func ValidHexColor(v string) bool {
	return hexColor.MatchString(v)
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
