package handler

import (
	"github.com/gofiber/fiber/v2"

	"menucup/internal/http/middleware"
	"menucup/internal/logging"
	"menucup/internal/model"
	"menucup/internal/service"
)

type orderRequest struct {
	IDs []string `json:"ids"`
}

// RestaurantMenuJSON returns the grouped public menu of :slug.
//
// @Summary Public menu
// @Tags public
// @Produce json
// @Param slug path string true "restaurant slug"
// @Success 200 {object} model.PublicMenu
// @Failure 404 {object} errorPayload
// @Router /api/restaurants/{slug}/menu [get]
func RestaurantMenuJSON(svc service.PublicMenuService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		menu, err := svc.RestaurantMenu(c.UserContext(), c.Params("slug"))
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return c.JSON(menu)
	}
}

// ListCategories returns the categories of :slug in display order.
//
// @Summary List categories
// @Tags public
// @Produce json
// @Param slug path string true "restaurant slug"
// @Success 200 {array} model.MenuCategory
// @Failure 404 {object} errorPayload
// @Router /api/restaurants/{slug}/categories [get]
func ListCategories(restaurants service.RestaurantService, menu service.MenuService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, err := restaurants.GetBySlug(c.UserContext(), c.Params("slug"))
		if err != nil {
			return writeServiceError(c, log, err)
		}
		cats, err := menu.Categories(c.UserContext(), r.ID)
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return c.JSON(cats)
	}
}

// ListCategoryItems returns every item of a category, available or not.
//
// @Summary List items of a category
// @Tags public
// @Produce json
// @Param slug path string true "restaurant slug"
// @Param categorySlug path string true "category slug"
// @Success 200 {array} model.MenuItem
// @Failure 404 {object} errorPayload
// @Router /api/restaurants/{slug}/categories/{categorySlug}/items [get]
func ListCategoryItems(restaurants service.RestaurantService, menu service.MenuService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		r, err := restaurants.GetBySlug(ctx, c.Params("slug"))
		if err != nil {
			return writeServiceError(c, log, err)
		}
		cat, err := menu.CategoryBySlug(ctx, r.ID, c.Params("categorySlug"))
		if err != nil {
			return writeServiceError(c, log, err)
		}
		items, err := menu.ItemsByCategory(ctx, cat.ID, false)
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return c.JSON(items)
	}
}

// CreateCategory adds a category to :slug.
//
// @Summary Create a category
// @Tags menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "restaurant slug"
// @Param body body model.CreateCategoryInput true "category"
// @Success 201 {object} model.MenuCategory
// @Failure 409 {object} errorPayload
// @Router /api/restaurants/{slug}/categories [post]
func CreateCategory(restaurants service.RestaurantService, menu service.MenuService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.CreateCategoryInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		s := middleware.SessionFrom(c)
		r, err := restaurants.Editable(c.UserContext(), s, c.Params("slug"))
		if err != nil {
			return writeServiceError(c, log, err)
		}
		cat, err := menu.CreateCategory(c.UserContext(), s, r.ID, in)
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return c.Status(fiber.StatusCreated).JSON(cat)
	}
}

// ReorderCategories assigns display order from the posted id list.
//
// @Summary Reorder categories
// @Tags menu
// @Accept json
// @Security BearerAuth
// @Param slug path string true "restaurant slug"
// @Param body body orderRequest true "category ids in display order"
// @Success 204
// @Router /api/restaurants/{slug}/categories/order [put]
func ReorderCategories(restaurants service.RestaurantService, menu service.MenuService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in orderRequest
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		s := middleware.SessionFrom(c)
		r, err := restaurants.Editable(c.UserContext(), s, c.Params("slug"))
		if err != nil {
			return writeServiceError(c, log, err)
		}
		if err := menu.ReorderCategories(c.UserContext(), s, r.ID, in.IDs); err != nil {
			return writeServiceError(c, log, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// UpdateCategory changes the name, slug or order of a category.
//
// @Summary Update a category
// @Tags menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "restaurant slug"
// @Param categorySlug path string true "category slug"
// @Param body body model.UpdateCategoryInput true "fields to change"
// @Success 200 {object} model.MenuCategory
// @Router /api/restaurants/{slug}/categories/{categorySlug} [patch]
func UpdateCategory(restaurants service.RestaurantService, menu service.MenuService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.UpdateCategoryInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		cat, ok, err := editableCategory(c, restaurants, menu, log)
		if !ok {
			return err
		}
		updated, err := menu.UpdateCategory(c.UserContext(), middleware.SessionFrom(c), cat.ID, in)
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return c.JSON(updated)
	}
}

// DeleteCategory removes a category and its items.
//
// @Summary Delete a category
// @Tags menu
// @Security BearerAuth
// @Param slug path string true "restaurant slug"
// @Param categorySlug path string true "category slug"
// @Success 204
// @Router /api/restaurants/{slug}/categories/{categorySlug} [delete]
func DeleteCategory(restaurants service.RestaurantService, menu service.MenuService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		cat, ok, err := editableCategory(c, restaurants, menu, log)
		if !ok {
			return err
		}
		if err := menu.DeleteCategory(c.UserContext(), middleware.SessionFrom(c), cat.ID); err != nil {
			return writeServiceError(c, log, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// CreateItem adds an item to a category.
//
// @Summary Create an item
// @Tags menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "restaurant slug"
// @Param categorySlug path string true "category slug"
// @Param body body model.CreateItemInput true "item"
// @Success 201 {object} model.MenuItem
// @Router /api/restaurants/{slug}/categories/{categorySlug}/items [post]
func CreateItem(restaurants service.RestaurantService, menu service.MenuService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.CreateItemInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		cat, ok, err := editableCategory(c, restaurants, menu, log)
		if !ok {
			return err
		}
		it, err := menu.CreateItem(c.UserContext(), middleware.SessionFrom(c), cat.ID, in)
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return c.Status(fiber.StatusCreated).JSON(it)
	}
}

// ReorderItems assigns display order from the posted id list.
//
// @Summary Reorder items
// @Tags menu
// @Accept json
// @Security BearerAuth
// @Param slug path string true "restaurant slug"
// @Param body body orderRequest true "item ids in display order"
// @Success 204
// @Router /api/restaurants/{slug}/items/order [put]
func ReorderItems(restaurants service.RestaurantService, menu service.MenuService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in orderRequest
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		s := middleware.SessionFrom(c)
		r, err := restaurants.Editable(c.UserContext(), s, c.Params("slug"))
		if err != nil {
			return writeServiceError(c, log, err)
		}
		if err := menu.ReorderItems(c.UserContext(), s, r.ID, in.IDs); err != nil {
			return writeServiceError(c, log, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// UpdateItem changes the non-null fields of an item.
//
// @Summary Update an item
// @Tags menu
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "item id"
// @Param body body model.UpdateItemInput true "fields to change"
// @Success 200 {object} model.MenuItem
// @Failure 403 {object} errorPayload
// @Router /api/items/{id} [patch]
func UpdateItem(menu service.MenuService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.UpdateItemInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		it, err := menu.UpdateItem(c.UserContext(), middleware.SessionFrom(c), c.Params("id"), in)
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return c.JSON(it)
	}
}

// DeleteItem removes an item.
//
// @Summary Delete an item
// @Tags menu
// @Security BearerAuth
// @Param id path string true "item id"
// @Success 204
// @Failure 403 {object} errorPayload
// @Router /api/items/{id} [delete]
func DeleteItem(menu service.MenuService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := menu.DeleteItem(c.UserContext(), middleware.SessionFrom(c), c.Params("id")); err != nil {
			return writeServiceError(c, log, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// UploadItemImage stores a photo for an item (multipart field "file").
//
// @Summary Upload an item photo
// @Tags menu
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "item id"
// @Param file formData file true "image"
// @Success 200 {object} model.MenuItem
// @Router /api/items/{id}/image [post]
func UploadItemImage(menu service.MenuService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		up, closeFn, ok, err := formUpload(c)
		if !ok {
			return err
		}
		defer closeFn()

		it, err := menu.UploadItemImage(c.UserContext(), middleware.SessionFrom(c), c.Params("id"), up)
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return c.JSON(it)
	}
}

// editableCategory resolves :slug and :categorySlug for a mutation. When ok is
// false the error response has already been written.
func editableCategory(c *fiber.Ctx, restaurants service.RestaurantService, menu service.MenuService, log *logging.Logger) (*model.MenuCategory, bool, error) {
	r, err := restaurants.Editable(c.UserContext(), middleware.SessionFrom(c), c.Params("slug"))
	if err != nil {
		return nil, false, writeServiceError(c, log, err)
	}
	cat, err := menu.CategoryBySlug(c.UserContext(), r.ID, c.Params("categorySlug"))
	if err != nil {
		return nil, false, writeServiceError(c, log, err)
	}
	return cat, true, nil
}
