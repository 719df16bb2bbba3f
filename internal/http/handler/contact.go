package handler

import (
	"github.com/gofiber/fiber/v2"

	"menucup/internal/http/middleware"
	"menucup/internal/logging"
	"menucup/internal/model"
	"menucup/internal/service"
)

type contactResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// SubmitContact emails a lead from the landing page form. It accepts a form post or JSON.
//
// @Summary Submit a lead
// @Tags public
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param body body model.Lead true "lead"
// @Success 200 {object} contactResponse
// @Failure 400 {object} contactResponse
// @Router /api/contact [post]
func SubmitContact(svc service.ContactService, log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var lead model.Lead
		if err := c.BodyParser(&lead); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(contactResponse{Error: "invalid request body"})
		}
		if err := svc.SubmitLead(c.UserContext(), lead); err != nil {
			status, env := classify(err)
			if status == fiber.StatusInternalServerError && log != nil {
				log.Error("contact lead failed", err, logging.Fields{"request_id": middleware.RequestIDFrom(c)})
			}
			return c.Status(status).JSON(contactResponse{Error: env.Message})
		}
		return c.JSON(contactResponse{Success: true})
	}
}
