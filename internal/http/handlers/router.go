package handlers

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/websocket/v2"

	applog "localcart/internal/log"
)

// BodyLimit leaves room for four photos in one listing form.
const BodyLimit = 16 << 20

func NewApp(d *Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler,
		BodyLimit:    BodyLimit,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			p := string(c.Request().URI().Path())
			return strings.HasPrefix(p, "/media/") || strings.HasPrefix(p, "/ws/")
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.global.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	}))

	app.Get("/media/*", Media(d.MediaDir))

	// Auth (login throttled)
	authG := app.Group("/auth")
	authG.Post("/signup", d.AuthHandler.SignUp)
	authG.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts. Please try again later."})
		},
	}), d.AuthHandler.Login)
	authG.Post("/forgot", limiter.New(limiter.Config{Max: 3, Expiration: 10 * time.Minute}), d.AuthHandler.Forgot)
	authG.Post("/logout", RequireUser(d.Auth), d.AuthHandler.Logout)

	// Catalog
	app.Get("/categories", d.CatalogHandler.Categories)
	app.Get("/catalog", d.CatalogHandler.List)
	app.Get("/catalog/:id", d.CatalogHandler.Detail)
	app.Post("/catalog/:id/checkout", d.CatalogHandler.Checkout)

	// Listings
	user := RequireUser(d.Auth)
	app.Get("/listings", d.ListingHandler.Category)
	me := app.Group("/me", user)
	me.Get("/listings", d.ListingHandler.Mine)
	me.Post("/listings", d.ListingHandler.Create)
	me.Delete("/listings/:id", d.ListingHandler.Delete)
	me.Get("/earnings", d.ListingHandler.Earnings)

	// Selling
	sell := app.Group("/sell", user)
	sell.Post("/terms", d.SellHandler.AcceptTerms)
	sell.Get("/wizard", d.SellHandler.Wizard)
	sell.Put("/wizard/:step", d.SellHandler.SaveStep)
	sell.Post("/wizard/:step/validate", d.SellHandler.ValidateStep)

	// Settings
	app.Get("/settings/username", d.SettingsHandler.Username)
	app.Put("/settings/username", user, d.SettingsHandler.SetUsername)

	app.Get("/ws/listings", d.FeedHandler.Upgrade(d.Auth), websocket.New(d.FeedHandler.Stream))

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Not found"})
	})
	return app
}

// Media serves uploaded blobs from dir, refusing anything that could leave it.
func Media(dir string) fiber.Handler {
	if !filepath.IsAbs(dir) {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
	}
	return func(c *fiber.Ctx) error {
		path := c.Params("*")
		rawLower := strings.ToLower(path)
		// Block encoded traversal attempts as well as raw .. or null bytes
		if strings.Contains(rawLower, "..") || strings.Contains(rawLower, "%2e") || strings.Contains(rawLower, "\x00") {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		clean := filepath.Clean(path)
		if clean == "." || strings.Contains(clean, "..") || filepath.IsAbs(clean) {
			applog.Security(c, "media.traversal.block", map[string]any{"path": path})
			return c.SendStatus(fiber.StatusNotFound)
		}
		return c.SendFile(filepath.Join(dir, clean), true)
	}
}
