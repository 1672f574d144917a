package handlers

import (
	"github.com/gofiber/fiber/v2"

	"localcart/internal/catalog"
	"localcart/internal/domain"
	"localcart/internal/log"
	"localcart/internal/services"
	"localcart/internal/validate"
)

type CatalogHandler struct {
	Catalog *catalog.Catalog
}

type productView struct {
	domain.Product
	Category string `json:"category"`
	Location string `json:"location"`
}

func viewOf(p domain.Product) productView {
	return productView{Product: p, Category: p.Category.DisplayName(), Location: catalog.Location(p)}
}

// List returns the whole catalog or one category (?category=Food).
func (h *CatalogHandler) List(c *fiber.Ctx) error {
	products := h.Catalog.All()
	if q := c.Query("category"); q != "" {
		cat, ok := domain.ParseCategory(q)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown category"})
		}
		products = h.Catalog.ByCategory(cat)
	}
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, viewOf(p))
	}
	return c.JSON(fiber.Map{"products": out})
}

func (h *CatalogHandler) Categories(c *fiber.Ctx) error {
	names := make([]string, 0, len(domain.Categories))
	for _, cat := range domain.Categories {
		names = append(names, cat.DisplayName())
	}
	return c.JSON(fiber.Map{"categories": names})
}

func (h *CatalogHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "This item is no longer available"})
	}
	p, found := h.Catalog.Get(id)
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "This item is no longer available"})
	}
	return c.JSON(viewOf(p))
}

type checkoutRequest struct {
	Method   string `json:"method" form:"method" validate:"required,oneof=mtn airtel paypal"`
	FullName string `json:"fullName" form:"fullName" validate:"max=100"`
	Phone    string `json:"phone" form:"phone" validate:"max=20"`
	Location string `json:"location" form:"location" validate:"max=100"`
	Note     string `json:"note" form:"note" validate:"max=200"`
	Email    string `json:"email" form:"email" validate:"max=100"`
	Password string `json:"password" form:"password" validate:"max=72"`
}

// Checkout validates the payer form and reports the payment status line.
func (h *CatalogHandler) Checkout(c *fiber.Ctx) error {
	id, _ := validate.ID(c.Params("id"))
	p, found := h.Catalog.Get(id)
	if !found {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "This item is no longer available"})
	}
	var req checkoutRequest
	if !parse(c, &req) {
		return nil
	}
	method, _ := services.ParsePaymentMethod(req.Method)
	status, err := services.Checkout(p, method, services.Payer{
		FullName: req.FullName, Phone: req.Phone, Location: req.Location, Note: req.Note,
		Email: req.Email, Password: req.Password,
	})
	if err != nil {
		return fail(c, "checkout.fail", err)
	}
	log.Info(c, "checkout.start", map[string]any{"product_id": p.ID, "method": string(method)})
	return c.JSON(fiber.Map{"status": status, "amount": p.Price, "currency": "RWF"})
}
