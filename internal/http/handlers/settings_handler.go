package handlers

import (
	"github.com/gofiber/fiber/v2"

	"localcart/internal/log"
	"localcart/internal/services"
)

type SettingsHandler struct {
	Settings *services.Settings
}

type usernameRequest struct {
	Username string `json:"username" form:"username" validate:"required,max=30"`
}

func (h *SettingsHandler) Username(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"username": h.Settings.Username()})
}

func (h *SettingsHandler) SetUsername(c *fiber.Ctx) error {
	var req usernameRequest
	if !parse(c, &req) {
		return nil
	}
	if err := h.Settings.SetUsername(req.Username); err != nil {
		return fail(c, "settings.username.fail", err)
	}
	log.Audit(c, "settings.username.update", nil)
	return c.JSON(fiber.Map{"username": h.Settings.Username()})
}
