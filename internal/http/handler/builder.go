package handler

import (
	"github.com/gofiber/fiber/v2"

	"menucup/internal/http/middleware"
	"menucup/internal/logging"
	"menucup/internal/menubuilder"
	"menucup/internal/model"
)

// builderResponse carries the outcome of a builder action and the state after it.
type builderResponse struct {
	Success bool              `json:"success"`
	Error   *errorEnvelope    `json:"error,omitempty"`
	State   menubuilder.State `json:"state"`
}

type selectRequest struct {
	RestaurantID string `json:"restaurant_id"`
}

type searchRequest struct {
	Term string `json:"term"`
}

type filterRequest struct {
	Filter string `json:"filter"`
}

type moveItemRequest struct {
	Index     int    `json:"index"`
	Direction string `json:"direction"`
}

type moveCategoryRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// BuilderAPI exposes the menu builder of the signed-in user as JSON.
type BuilderAPI struct {
	registry *menubuilder.Registry
	log      *logging.Logger
}

func NewBuilderAPI(registry *menubuilder.Registry, log *logging.Logger) *BuilderAPI {
	return &BuilderAPI{registry: registry, log: log}
}

// Mount registers the builder routes on r. r must be behind RequireSession.
func (h *BuilderAPI) Mount(r fiber.Router) {
	r.Get("/state", h.State)
	r.Post("/refresh", h.Refresh)
	r.Post("/select", h.Select)
	r.Put("/search", h.Search)
	r.Put("/filter", h.Filter)
	r.Post("/items/move", h.MoveItem)
	r.Post("/categories/move", h.MoveCategory)
	r.Post("/order/save", h.SaveOrder)
	r.Post("/order/discard", h.DiscardOrder)
	r.Post("/categories", h.AddCategory)
	r.Patch("/categories/:id", h.RenameCategory)
	r.Delete("/categories/:id", h.DeleteCategory)
	r.Post("/categories/:id/items", h.AddItem)
	r.Patch("/items/:id", h.UpdateItem)
	r.Delete("/items/:id", h.DeleteItem)
	r.Post("/items/:id/image", h.SetItemImage)
}

func (h *BuilderAPI) builder(c *fiber.Ctx) *menubuilder.Builder {
	return h.registry.For(middleware.SessionFrom(c))
}

func (h *BuilderAPI) respond(c *fiber.Ctx, b *menubuilder.Builder, res menubuilder.ActionResult) error {
	st := b.State()
	if res.Success {
		return c.JSON(builderResponse{Success: true, State: st})
	}
	status, env := classify(res.Err)
	if status == fiber.StatusInternalServerError && h.log != nil {
		h.log.Error("builder action failed", res.Err, logging.Fields{
			"request_id": middleware.RequestIDFrom(c),
			"path":       c.Path(),
		})
	}
	return c.Status(status).JSON(builderResponse{Error: &env, State: st})
}

// State returns the current builder state.
//
// @Summary Menu builder state
// @Tags builder
// @Produce json
// @Security BearerAuth
// @Success 200 {object} builderResponse
// @Router /dashboard/api/state [get]
func (h *BuilderAPI) State(c *fiber.Ctx) error {
	return c.JSON(builderResponse{Success: true, State: h.builder(c).State()})
}

// Refresh reloads the visible restaurants.
func (h *BuilderAPI) Refresh(c *fiber.Ctx) error {
	b := h.builder(c)
	return h.respond(c, b, b.FetchRestaurants(c.UserContext()))
}

// Select loads a restaurant's categories and items.
//
// @Summary Select a restaurant
// @Tags builder
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body selectRequest true "restaurant id"
// @Success 200 {object} builderResponse
// @Failure 404 {object} builderResponse
// @Router /dashboard/api/select [post]
func (h *BuilderAPI) Select(c *fiber.Ctx) error {
	var in selectRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	b := h.builder(c)
	return h.respond(c, b, b.SelectRestaurant(c.UserContext(), in.RestaurantID))
}

func (h *BuilderAPI) Search(c *fiber.Ctx) error {
	var in searchRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	b := h.builder(c)
	b.SetSearchTerm(in.Term)
	return h.respond(c, b, menubuilder.ActionResult{Success: true})
}

func (h *BuilderAPI) Filter(c *fiber.Ctx) error {
	var in filterRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	b := h.builder(c)
	return h.respond(c, b, b.SetActiveFilter(in.Filter))
}

// MoveItem swaps an item with its neighbour.
//
// @Summary Move an item up or down
// @Tags builder
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body moveItemRequest true "index and direction"
// @Success 200 {object} builderResponse
// @Router /dashboard/api/items/move [post]
func (h *BuilderAPI) MoveItem(c *fiber.Ctx) error {
	var in moveItemRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	b := h.builder(c)
	return h.respond(c, b, b.MoveItem(c.UserContext(), in.Index, in.Direction))
}

func (h *BuilderAPI) MoveCategory(c *fiber.Ctx) error {
	var in moveCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	b := h.builder(c)
	return h.respond(c, b, b.MoveCategory(c.UserContext(), in.From, in.To))
}

func (h *BuilderAPI) SaveOrder(c *fiber.Ctx) error {
	b := h.builder(c)
	return h.respond(c, b, b.SaveOrder(c.UserContext()))
}

func (h *BuilderAPI) DiscardOrder(c *fiber.Ctx) error {
	b := h.builder(c)
	return h.respond(c, b, b.DiscardOrder(c.UserContext()))
}

func (h *BuilderAPI) AddCategory(c *fiber.Ctx) error {
	var in model.CreateCategoryInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	b := h.builder(c)
	_, res := b.AddCategory(c.UserContext(), in)
	return h.respond(c, b, res)
}

func (h *BuilderAPI) RenameCategory(c *fiber.Ctx) error {
	var in model.UpdateCategoryInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	b := h.builder(c)
	_, res := b.RenameCategory(c.UserContext(), c.Params("id"), in)
	return h.respond(c, b, res)
}

// DeleteCategory deletes a category remotely, then locally.
//
// @Summary Delete a category from the builder
// @Tags builder
// @Produce json
// @Security BearerAuth
// @Param id path string true "category id"
// @Success 200 {object} builderResponse
// @Failure 403 {object} builderResponse
// @Router /dashboard/api/categories/{id} [delete]
func (h *BuilderAPI) DeleteCategory(c *fiber.Ctx) error {
	b := h.builder(c)
	return h.respond(c, b, b.DeleteCategory(c.UserContext(), c.Params("id")))
}

func (h *BuilderAPI) AddItem(c *fiber.Ctx) error {
	var in model.CreateItemInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	b := h.builder(c)
	_, res := b.AddItem(c.UserContext(), c.Params("id"), in)
	return h.respond(c, b, res)
}

func (h *BuilderAPI) UpdateItem(c *fiber.Ctx) error {
	var in model.UpdateItemInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	b := h.builder(c)
	_, res := b.UpdateItem(c.UserContext(), c.Params("id"), in)
	return h.respond(c, b, res)
}

// DeleteItem deletes an item remotely, then locally.
//
// @Summary Delete an item from the builder
// @Tags builder
// @Produce json
// @Security BearerAuth
// @Param id path string true "item id"
// @Success 200 {object} builderResponse
// @Failure 403 {object} builderResponse
// @Router /dashboard/api/items/{id} [delete]
func (h *BuilderAPI) DeleteItem(c *fiber.Ctx) error {
	b := h.builder(c)
	return h.respond(c, b, b.DeleteItem(c.UserContext(), c.Params("id")))
}

func (h *BuilderAPI) SetItemImage(c *fiber.Ctx) error {
	up, closeFn, ok, err := formUpload(c)
	if !ok {
		return err
	}
	defer closeFn()

	b := h.builder(c)
	_, res := b.SetItemImage(c.UserContext(), c.Params("id"), up)
	return h.respond(c, b, res)
}
