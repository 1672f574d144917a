package handlers

import (
	"github.com/gofiber/fiber/v2"

	"localcart/internal/domain"
	"localcart/internal/gateway"
	"localcart/internal/log"
	"localcart/internal/wizard"
)

type SellHandler struct {
	GW gateway.Gateway
}

type profileDTO struct {
	FirstName         string   `json:"firstName" validate:"max=50"`
	LastName          string   `json:"lastName" validate:"max=50"`
	Email             string   `json:"email" validate:"max=100"`
	Phone             string   `json:"phone" validate:"max=20"`
	Location          string   `json:"location" validate:"max=100"`
	ShopName          string   `json:"shopName" validate:"max=80"`
	ShopDescription   string   `json:"shopDescription" validate:"max=500"`
	SellCategories    []string `json:"sellCategories" validate:"max=4,unique"`
	PayoutMethod      string   `json:"payoutMethod" validate:"omitempty,oneof=mobile_money paypal"`
	PayoutMobilePhone string   `json:"payoutMobilePhone" validate:"max=20"`
	PayoutPayPalEmail string   `json:"payoutPayPalEmail" validate:"max=100"`
}

func (d profileDTO) profile() (domain.SellerProfile, error) {
	p := domain.SellerProfile{
		FirstName: d.FirstName, LastName: d.LastName, Email: d.Email, Phone: d.Phone, Location: d.Location,
		ShopName: d.ShopName, ShopDescription: d.ShopDescription,
		PayoutMethod:      domain.PayoutMethod(d.PayoutMethod),
		PayoutMobilePhone: d.PayoutMobilePhone, PayoutPayPalEmail: d.PayoutPayPalEmail,
	}
	if p.PayoutMethod == "" {
		p.PayoutMethod = domain.PayoutMobileMoney
	}
	for _, s := range d.SellCategories {
		c, ok := domain.ParseCategory(s)
		if !ok {
			return p, domain.Invalid(domain.KeySellCategories, "unknown category "+s)
		}
		p.SellCategories = append(p.SellCategories, c)
	}
	p.SellCategories = domain.UniqueCategories(p.SellCategories)
	return p, nil
}

func dtoOf(p domain.SellerProfile) profileDTO {
	cats := make([]string, 0, len(p.SellCategories))
	for _, c := range p.SellCategories {
		cats = append(cats, c.DisplayName())
	}
	return profileDTO{
		FirstName: p.FirstName, LastName: p.LastName, Email: p.Email, Phone: p.Phone, Location: p.Location,
		ShopName: p.ShopName, ShopDescription: p.ShopDescription, SellCategories: cats,
		PayoutMethod: string(p.PayoutMethod), PayoutMobilePhone: p.PayoutMobilePhone, PayoutPayPalEmail: p.PayoutPayPalEmail,
	}
}

func (h *SellHandler) AcceptTerms(c *fiber.Ctx) error {
	if err := wizard.AcceptTerms(c.UserContext(), h.GW); err != nil {
		return fail(c, "sell.terms.fail", err)
	}
	log.Audit(c, "sell.terms.accept", nil)
	return c.SendStatus(fiber.StatusNoContent)
}

// Wizard returns the prefilled profile. A load failure is reported as a
// warning next to the defaults.
func (h *SellHandler) Wizard(c *fiber.Ctx) error {
	w, err := wizard.Open(c.UserContext(), h.GW)
	if err != nil {
		return fail(c, "sell.wizard.open.fail", err)
	}
	resp := fiber.Map{"step": w.Step().String()}
	if err := w.Load(c.UserContext()); err != nil {
		resp["warning"] = "We couldn't load your saved details."
	}
	valid := fiber.Map{}
	for s := wizard.Profile; s < wizard.Review; s++ {
		valid[s.String()] = w.Valid(s)
	}
	resp["profile"] = dtoOf(w.Profile)
	resp["valid"] = valid
	return c.JSON(resp)
}

func stepParam(c *fiber.Ctx) (wizard.Step, bool) {
	return wizard.ParseStep(c.Params("step"))
}

// SaveStep merge-writes one step's fields. It does not move the wizard.
func (h *SellHandler) SaveStep(c *fiber.Ctx) error {
	step, ok := stepParam(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Unknown step"})
	}
	var req profileDTO
	if !parse(c, &req) {
		return nil
	}
	p, err := req.profile()
	if err != nil {
		return fail(c, "", err)
	}
	w, err := wizard.Open(c.UserContext(), h.GW)
	if err != nil {
		return fail(c, "sell.wizard.open.fail", err)
	}
	w.Profile = p
	if err := w.SaveStep(c.UserContext(), step); err != nil {
		return fail(c, "sell.wizard.save.fail", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ValidateStep reports whether the client may move past step.
func (h *SellHandler) ValidateStep(c *fiber.Ctx) error {
	step, ok := stepParam(c)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Unknown step"})
	}
	var req profileDTO
	if !parse(c, &req) {
		return nil
	}
	p, err := req.profile()
	if err != nil {
		return fail(c, "", err)
	}
	if err := wizard.Check(step, p); err != nil {
		return fail(c, "", err)
	}
	next := step
	if step < wizard.Review {
		next = step + 1
	}
	return c.JSON(fiber.Map{"valid": true, "next": next.String()})
}
