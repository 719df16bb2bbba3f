package model

import (
	"strings"

	"github.com/gosimple/slug"
)

// reservedSlugs collide with top-level routes and cannot name a restaurant.
var reservedSlugs = map[string]struct{}{
	"api":       {},
	"dashboard": {},
	"login":     {},
	"logout":    {},
	"health":    {},
	"healthz":   {},
	"metrics":   {},
	"swagger":   {},
	"static":    {},
}

// Slugify derives a URL-safe slug from a display name.
func Slugify(name string) string {
	return slug.Make(strings.TrimSpace(name))
}

// ValidSlug reports whether s is already in slug form.
func ValidSlug(s string) bool {
	return slug.IsSlug(s)
}

// ReservedSlug reports whether s is taken by a top-level route.
func ReservedSlug(s string) bool {
	_, ok := reservedSlugs[strings.ToLower(s)]
	return ok
}
