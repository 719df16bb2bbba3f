// Package web renders the server-side HTML pages: landing, public menu, category,
// dashboard and not-found.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"menucup/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page carries what every template needs.
type Page struct {
	Title  string
	Locale string
	T      Messages
}

// LandingPage is the marketing page with the contact form.
type LandingPage struct {
	Page
	Locales []string
}

// MenuPage is the full public menu of a restaurant.
type MenuPage struct {
	Page
	Menu *model.PublicMenu
}

// CategoryPage is a single public category.
type CategoryPage struct {
	Page
	Menu *model.PublicCategoryPage
}

// DashboardPage lists the restaurants a session manages.
type DashboardPage struct {
	Page
	Email       string
	IsAdmin     bool
	Restaurants []model.Restaurant
}

// BuilderPage is the shell of the menu builder. The page drives the builder JSON API.
type BuilderPage struct {
	Page
	PersistMode string
}

// Renderer executes the embedded templates.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the page named name to w.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	if r.tmpl.Lookup(name) == nil {
		return fmt.Errorf("unknown page %q", name)
	}
	return r.tmpl.ExecuteTemplate(w, name, data)
}
