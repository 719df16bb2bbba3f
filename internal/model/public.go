package model

// Theme is the resolved styling of a public menu page.
type Theme struct {
	Appearance         Appearance
	AccentColor        string
	BackgroundColor    string
	CardBgColor        string
	TextColor          string
	MutedTextColor     string
	BackgroundImageURL string
}

// UsesImage reports whether the page background is an image rather than a solid colour.
func (t Theme) UsesImage() bool {
	return t.Appearance == AppearanceVisual && t.BackgroundImageURL != ""
}

// ThemeOf resolves the theme of r, applying stock defaults.
func ThemeOf(r Restaurant) Theme {
	s := r.Settings().WithDefaults()
	return Theme{
		Appearance:         s.Appearance,
		AccentColor:        s.AccentColor,
		BackgroundColor:    s.BackgroundColor,
		CardBgColor:        s.CardBgColor,
		TextColor:          s.TextColor,
		MutedTextColor:     s.MutedTextColor,
		BackgroundImageURL: s.BackgroundImageURL,
	}
}

// PublicItem is a menu item prepared for guests.
type PublicItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	PriceLabel  string  `json:"price_label"`
	ImageURL    string  `json:"image_url,omitempty"`
	Available   bool    `json:"available"`
}

// HasImage selects card rendering over a text-only line.
func (i PublicItem) HasImage() bool {
	return i.ImageURL != ""
}

// PublicSection is one category with its items, in display order.
type PublicSection struct {
	Category MenuCategory `json:"category"`
	Items    []PublicItem `json:"items"`
}

// PublicMenu is the full guest-facing menu of a restaurant.
type PublicMenu struct {
	Restaurant Restaurant      `json:"restaurant"`
	Theme      Theme           `json:"-"`
	Sections   []PublicSection `json:"sections"`
}

// PublicCategoryPage is a single category page. Only available items are included.
type PublicCategoryPage struct {
	Restaurant Restaurant   `json:"restaurant"`
	Theme      Theme        `json:"-"`
	Category   MenuCategory `json:"category"`
	Items      []PublicItem `json:"items"`
}

// NewPublicItem converts a stored item into its guest representation.
func NewPublicItem(it MenuItem) PublicItem {
	return PublicItem{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Price:       it.Price,
		PriceLabel:  FormatPrice(it.Price),
		ImageURL:    it.ImageURL,
		Available:   it.IsAvailable,
	}
}
