package handler

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"

	"menucup/internal/http/middleware"
	"menucup/internal/logging"
	"menucup/internal/service"
	"menucup/internal/web"
)

func render(c *fiber.Ctx, r *web.Renderer, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		return err
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(buf.Bytes())
}

func page(c *fiber.Ctx, titleKey string) web.Page {
	p := web.NewPage("", middleware.LocaleFrom(c))
	p.Title = p.T.Get(titleKey)
	return p
}

// NotFoundPage renders the localized 404 page.
func NotFoundPage(r *web.Renderer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return render(c, r, fiber.StatusNotFound, "notfound", page(c, "notFound.title"))
	}
}

// LandingPage renders the marketing page with the contact form.
func LandingPage(r *web.Renderer, locales []string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return render(c, r, fiber.StatusOK, "landing", web.LandingPage{
			Page:    page(c, "landing.title"),
			Locales: locales,
		})
	}
}

// RestaurantMenuPage renders the full public menu of :restaurant.
func RestaurantMenuPage(r *web.Renderer, svc service.PublicMenuService, log *logging.Logger) fiber.Handler {
	notFound := NotFoundPage(r)
	return func(c *fiber.Ctx) error {
		menu, err := svc.RestaurantMenu(c.UserContext(), c.Params("restaurant"))
		if err != nil {
			return pageError(c, notFound, log, err)
		}
		p := page(c, "menu.title")
		p.Title = menu.Restaurant.Name + " | " + p.Title
		return render(c, r, fiber.StatusOK, "menu", web.MenuPage{Page: p, Menu: menu})
	}
}

// CategoryMenuPage renders one category of :restaurant with its available items.
func CategoryMenuPage(r *web.Renderer, svc service.PublicMenuService, log *logging.Logger) fiber.Handler {
	notFound := NotFoundPage(r)
	return func(c *fiber.Ctx) error {
		cat, err := svc.CategoryMenu(c.UserContext(), c.Params("restaurant"), c.Params("category"))
		if err != nil {
			return pageError(c, notFound, log, err)
		}
		p := page(c, "menu.title")
		p.Title = cat.Category.Name + " | " + cat.Restaurant.Name
		return render(c, r, fiber.StatusOK, "category", web.CategoryPage{Page: p, Menu: cat})
	}
}

// DashboardPage lists the restaurants visible to the session.
func DashboardPage(r *web.Renderer, restaurants service.RestaurantService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := middleware.SessionFrom(c)
		list, err := restaurants.ListVisible(c.UserContext(), s)
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return render(c, r, fiber.StatusOK, "dashboard", web.DashboardPage{
			Page:        page(c, "dashboard.title"),
			Email:       s.Email,
			IsAdmin:     s.IsAdmin(),
			Restaurants: list,
		})
	}
}

// MenuBuilderPage renders the builder shell. persistMode tells the page whether to show save and discard.
func MenuBuilderPage(r *web.Renderer, persistMode string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return render(c, r, fiber.StatusOK, "builder", web.BuilderPage{
			Page:        page(c, "builder.title"),
			PersistMode: persistMode,
		})
	}
}

func pageError(c *fiber.Ctx, notFound fiber.Handler, log *logging.Logger, err error) error {
	if errors.Is(err, service.ErrNotFound) || errors.Is(err, service.ErrIDRequired) {
		return notFound(c)
	}
	return writeServiceError(c, log, err)
}
