package handlers

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"localcart/internal/domain"
	applog "localcart/internal/log"
	"localcart/internal/services"
	"localcart/internal/wizard"
)

var structValidator = validator.New()

const friendly = "Something went wrong. Please try again."

// ErrorHandler logs and returns a friendly JSON body without internals.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
	}
	applog.Error(c, "server.error", err, nil)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": friendly})
}

// parse decodes the body into dst and runs its struct tags. On failure it
// writes the 400 response and returns false.
func parse(c *fiber.Ctx, dst any) bool {
	if err := c.BodyParser(dst); err != nil {
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		return false
	}
	if err := structValidator.Struct(dst); err != nil {
		var ves validator.ValidationErrors
		if errors.As(err, &ves) && len(ves) > 0 {
			_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Please check the highlighted field.",
				"field": ves[0].Field(),
			})
			return false
		}
		_ = c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		return false
	}
	return true
}

// fail maps domain errors to user-facing responses. Unknown errors go to
// ErrorHandler.
func fail(c *fiber.Ctx, action string, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ve.Msg, "field": ve.Field})
	case errors.Is(err, domain.ErrUnauthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Please sign in."})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	case errors.Is(err, wizard.ErrTermsNotAccepted):
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Please accept the selling terms first."})
	case errors.Is(err, services.ErrEmailTaken):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "An account with this email already exists."})
	case errors.Is(err, domain.ErrUpload):
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Image upload failed. Please try again."})
	case errors.Is(err, domain.ErrWrite):
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "Could not save your changes. Please try again."})
	case errors.Is(err, context.DeadlineExceeded):
		applog.Error(c, action, err, nil)
		return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{"error": friendly})
	}
	return err
}
