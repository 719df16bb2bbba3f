package handler

import (
	"database/sql"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"menucup/internal/config"
	"menucup/internal/http/middleware"
	"menucup/internal/logging"
	"menucup/internal/menubuilder"
	"menucup/internal/service"
	"menucup/internal/web"
)

// SessionStore authenticates requests and ends sessions.
type SessionStore interface {
	middleware.Authenticator
	SignOut(userID string)
}

// Deps are the collaborators of the HTTP layer.
type Deps struct {
	DB          *sql.DB
	Restaurants service.RestaurantService
	Menu        service.MenuService
	Public      service.PublicMenuService
	Contact     service.ContactService
	Sessions    SessionStore
	Builders    *menubuilder.Registry
	Pages       *web.Renderer
	Metrics     http.Handler
	Docs        fiber.Handler
	Auth        config.AuthConfig
	Locales     []string
	PersistMode string
	Log         *logging.Logger
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Fixed top-level paths are registered before the /:restaurant catch-alls.
func RegisterRoutes(app *fiber.App, d Deps) {
	log := d.Log
	if log == nil {
		log = logging.Discard()
	}
	log = log.With("handler")

	apiAuth := middleware.RequireSession(d.Sessions, middleware.SessionOptions{CookieName: d.Auth.CookieName})
	pageAuth := middleware.RequireSession(d.Sessions, middleware.SessionOptions{
		CookieName: d.Auth.CookieName,
		LoginURL:   d.Auth.LoginURL,
	})

	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())
	if d.Metrics != nil {
		app.Get(middleware.MetricsPath, adaptor.HTTPHandler(d.Metrics))
	}
	if d.Docs != nil {
		app.Get("/swagger/*", d.Docs)
	}

	app.Use(middleware.Locale(d.Locales))

	app.Get("/", LandingPage(d.Pages, d.Locales))

	api := app.Group("/api")
	api.Post("/contact", SubmitContact(d.Contact, log))

	api.Get("/restaurants", apiAuth, ListRestaurants(d.Restaurants, log))
	api.Post("/restaurants", apiAuth, CreateRestaurant(d.Restaurants, log))
	api.Get("/restaurants/:slug", GetRestaurant(d.Restaurants, log))
	api.Delete("/restaurants/:slug", apiAuth, DeleteRestaurant(d.Restaurants, log))
	api.Get("/restaurants/:slug/menu", RestaurantMenuJSON(d.Public, log))
	api.Put("/restaurants/:slug/settings", apiAuth, UpdateRestaurantSettings(d.Restaurants, log))
	api.Post("/restaurants/:slug/assets/:kind", apiAuth, UploadRestaurantAsset(d.Restaurants, log))
	api.Post("/restaurants/:slug/qrcode", apiAuth, GenerateQRCode(d.Restaurants, log))

	api.Get("/restaurants/:slug/categories", ListCategories(d.Restaurants, d.Menu, log))
	api.Post("/restaurants/:slug/categories", apiAuth, CreateCategory(d.Restaurants, d.Menu, log))
	api.Put("/restaurants/:slug/categories/order", apiAuth, ReorderCategories(d.Restaurants, d.Menu, log))
	api.Patch("/restaurants/:slug/categories/:categorySlug", apiAuth, UpdateCategory(d.Restaurants, d.Menu, log))
	api.Delete("/restaurants/:slug/categories/:categorySlug", apiAuth, DeleteCategory(d.Restaurants, d.Menu, log))
	api.Get("/restaurants/:slug/categories/:categorySlug/items", ListCategoryItems(d.Restaurants, d.Menu, log))
	api.Post("/restaurants/:slug/categories/:categorySlug/items", apiAuth, CreateItem(d.Restaurants, d.Menu, log))
	api.Put("/restaurants/:slug/items/order", apiAuth, ReorderItems(d.Restaurants, d.Menu, log))

	api.Patch("/items/:id", apiAuth, UpdateItem(d.Menu, log))
	api.Delete("/items/:id", apiAuth, DeleteItem(d.Menu, log))
	api.Post("/items/:id/image", apiAuth, UploadItemImage(d.Menu, log))

	app.Post("/logout", pageAuth, Logout(d.Sessions, d.Auth.CookieName))

	app.Get("/dashboard", pageAuth, DashboardPage(d.Pages, d.Restaurants, log))
	app.Get("/dashboard/menu-builder", pageAuth, MenuBuilderPage(d.Pages, d.PersistMode))
	NewBuilderAPI(d.Builders, log).Mount(app.Group("/dashboard/api", apiAuth))

	app.Get("/:restaurant", RestaurantMenuPage(d.Pages, d.Public, log))
	app.Get("/:restaurant/:category", CategoryMenuPage(d.Pages, d.Public, log))
}

// Logout ends the session: cached role and builder state are dropped and the cookie cleared.
func Logout(sessions SessionStore, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if s := middleware.SessionFrom(c); s != nil {
			sessions.SignOut(s.UserID)
		}
		if cookieName != "" {
			c.ClearCookie(cookieName)
		}
		return c.Redirect("/", fiber.StatusSeeOther)
	}
}
