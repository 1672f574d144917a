package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"localcart/internal/log"
	"localcart/internal/services"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type signUpRequest struct {
	FirstName string `json:"firstName" form:"firstName" validate:"max=50"`
	LastName  string `json:"lastName" form:"lastName" validate:"max=50"`
	Email     string `json:"email" form:"email" validate:"max=100"`
	Password  string `json:"password" form:"password" validate:"max=72"`
}

type loginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,max=100"`
	Password string `json:"password" form:"password" validate:"required,max=72"`
}

type forgotRequest struct {
	Email string `json:"email" form:"email" validate:"max=100"`
}

func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req signUpRequest
	if !parse(c, &req) {
		return nil
	}
	uid, err := h.Auth.SignUp(c.UserContext(), services.SignUpInput{
		FirstName: req.FirstName, LastName: req.LastName, Email: req.Email, Password: req.Password,
	})
	if err != nil {
		log.Security(c, "auth.signup.fail", map[string]any{"email": req.Email, "reason": err.Error()})
		return fail(c, "auth.signup.fail", err)
	}
	log.Audit(c, "auth.signup.success", map[string]any{"user_id": uid})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"uid": uid, "message": "Account created successfully!"})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if !parse(c, &req) {
		log.Security(c, "auth.login.fail", map[string]any{"reason": "bad_format"})
		return nil
	}
	token, u, err := h.Auth.SignIn(c.UserContext(), req.Email, req.Password)
	if errors.Is(err, services.ErrBadCreds) {
		log.Security(c, "auth.login.fail", map[string]any{"email": req.Email})
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}
	if err != nil {
		return err
	}
	log.Audit(c, "auth.login.success", map[string]any{"user_id": u.UID})
	return c.JSON(fiber.Map{
		"token":    token,
		"uid":      u.UID,
		"username": h.Auth.Settings.Username(),
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	uid, _ := c.Locals("uid").(string)
	h.Auth.SignOut(uid)
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AuthHandler) Forgot(c *fiber.Ctx) error {
	var req forgotRequest
	if !parse(c, &req) {
		return nil
	}
	if err := h.Auth.RequestPasswordReset(req.Email); err != nil {
		return fail(c, "auth.reset.fail", err)
	}
	return c.JSON(fiber.Map{"message": "If this email is registered, a reset link has been sent."})
}
