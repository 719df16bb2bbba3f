package handler

import (
	"github.com/gofiber/fiber/v2"

	"menucup/internal/http/middleware"
	"menucup/internal/logging"
	"menucup/internal/model"
	"menucup/internal/service"
)

// ListRestaurants returns the restaurants visible to the session, newest first.
//
// @Summary List manageable restaurants
// @Tags restaurants
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Restaurant
// @Failure 401 {object} errorPayload
// @Router /api/restaurants [get]
func ListRestaurants(svc service.RestaurantService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		list, err := svc.ListVisible(c.UserContext(), middleware.SessionFrom(c))
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return c.JSON(list)
	}
}

// CreateRestaurant creates a restaurant owned by the session user.
//
// @Summary Create a restaurant
// @Tags restaurants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body model.CreateRestaurantInput true "name and optional slug"
// @Success 201 {object} model.Restaurant
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /api/restaurants [post]
func CreateRestaurant(svc service.RestaurantService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.CreateRestaurantInput
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		r, err := svc.Create(c.UserContext(), middleware.SessionFrom(c), in)
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return c.Status(fiber.StatusCreated).JSON(r)
	}
}

// GetRestaurant returns a restaurant by slug.
//
// @Summary Get a restaurant
// @Tags public
// @Produce json
// @Param slug path string true "restaurant slug"
// @Success 200 {object} model.Restaurant
// @Failure 404 {object} errorPayload
// @Router /api/restaurants/{slug} [get]
func GetRestaurant(svc service.RestaurantService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, err := svc.GetBySlug(c.UserContext(), c.Params("slug"))
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return c.JSON(r)
	}
}

// UpdateRestaurantSettings replaces the branding and descriptive fields.
//
// @Summary Update restaurant settings
// @Tags restaurants
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param slug path string true "restaurant slug"
// @Param body body model.RestaurantSettings true "settings"
// @Success 200 {object} model.Restaurant
// @Failure 403 {object} errorPayload
// @Router /api/restaurants/{slug}/settings [put]
func UpdateRestaurantSettings(svc service.RestaurantService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.RestaurantSettings
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		r, err := svc.UpdateSettings(c.UserContext(), middleware.SessionFrom(c), c.Params("slug"), in)
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return c.JSON(r)
	}
}

// UploadRestaurantAsset stores a logo or background image (multipart field "file").
//
// @Summary Upload a logo or background
// @Tags restaurants
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param slug path string true "restaurant slug"
// @Param kind path string true "logo or background"
// @Param file formData file true "image"
// @Success 200 {object} model.Restaurant
// @Failure 400 {object} errorPayload
// @Router /api/restaurants/{slug}/assets/{kind} [post]
func UploadRestaurantAsset(svc service.RestaurantService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		up, closeFn, ok, err := formUpload(c)
		if !ok {
			return err
		}
		defer closeFn()

		kind := model.AssetKind(c.Params("kind"))
		r, err := svc.UploadAsset(c.UserContext(), middleware.SessionFrom(c), c.Params("slug"), kind, up)
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return c.JSON(r)
	}
}

// GenerateQRCode renders and stores the QR code of the public menu URL.
//
// @Summary Generate the menu QR code
// @Tags restaurants
// @Produce json
// @Security BearerAuth
// @Param slug path string true "restaurant slug"
// @Success 200 {object} model.Restaurant
// @Router /api/restaurants/{slug}/qrcode [post]
func GenerateQRCode(svc service.RestaurantService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		r, err := svc.GenerateQRCode(c.UserContext(), middleware.SessionFrom(c), c.Params("slug"))
		if err != nil {
			return writeServiceError(c, log, err)
		}
		return c.JSON(r)
	}
}

// DeleteRestaurant removes a restaurant with its categories and items.
//
// @Summary Delete a restaurant
// @Tags restaurants
// @Security BearerAuth
// @Param slug path string true "restaurant slug"
// @Success 204
// @Failure 403 {object} errorPayload
// @Router /api/restaurants/{slug} [delete]
func DeleteRestaurant(svc service.RestaurantService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), middleware.SessionFrom(c), c.Params("slug")); err != nil {
			return writeServiceError(c, log, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func invalidBody(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
}

// formUpload opens the multipart field "file". When ok is false the error
// response has already been written and err is its result.
func formUpload(c *fiber.Ctx) (up service.Upload, closeFn func(), ok bool, err error) {
	fh, ferr := c.FormFile("file")
	if ferr != nil {
		return up, nil, false, writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
	}

	f, ferr := fh.Open()
	if ferr != nil {
		return up, nil, false, writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
	}

	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}

	return service.Upload{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: ct,
		Size:        fh.Size,
	}, func() { _ = f.Close() }, true, nil
}
