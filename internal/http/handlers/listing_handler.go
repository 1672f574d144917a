package handlers

import (
	"context"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"localcart/internal/domain"
	"localcart/internal/gateway"
	"localcart/internal/log"
	"localcart/internal/store"
	"localcart/internal/upload"
	"localcart/internal/validate"
)

const snapshotWait = 5 * time.Second

type ListingHandler struct {
	GW                gateway.Gateway
	UploadConcurrency int
}

func (h *ListingHandler) newStore() *store.Store {
	return store.New(h.GW, store.WithUploadConcurrency(h.UploadConcurrency))
}

// snapshot opens one live query, waits for its first result and closes it.
func (h *ListingHandler) snapshot(ctx context.Context, open func(*store.Store) (*store.Collection, error)) (*store.Store, []domain.Listing, error) {
	s := h.newStore()
	defer s.Close()
	col, err := open(s)
	if err != nil {
		return nil, nil, err
	}
	wctx, cancel := context.WithTimeout(ctx, snapshotWait)
	defer cancel()
	if err := col.WaitLoaded(wctx); err != nil {
		return nil, nil, err
	}
	return s, col.Items(), nil
}

// Category lists everyone's listings in one category, newest first.
func (h *ListingHandler) Category(c *fiber.Ctx) error {
	cat, ok := domain.ParseCategory(c.Query("category"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown category"})
	}
	_, items, err := h.snapshot(c.UserContext(), func(s *store.Store) (*store.Collection, error) {
		return s.Category(cat), s.SubscribeCategoryListings(c.UserContext(), cat)
	})
	if err != nil {
		return fail(c, "listings.category.fail", err)
	}
	return c.JSON(fiber.Map{"category": cat.DisplayName(), "listings": items})
}

func (h *ListingHandler) Mine(c *fiber.Ctx) error {
	_, items, err := h.snapshot(c.UserContext(), func(s *store.Store) (*store.Collection, error) {
		return s.Own(), s.SubscribeOwnListings(c.UserContext())
	})
	if err != nil {
		return fail(c, "listings.own.fail", err)
	}
	return c.JSON(fiber.Map{"listings": items})
}

func (h *ListingHandler) Earnings(c *fiber.Ctx) error {
	s, _, err := h.snapshot(c.UserContext(), func(s *store.Store) (*store.Collection, error) {
		return s.Own(), s.SubscribeOwnListings(c.UserContext())
	})
	if err != nil {
		return fail(c, "listings.earnings.fail", err)
	}
	return c.JSON(fiber.Map{"earnings": s.Earnings(), "currency": "RWF"})
}

// Create takes a multipart form: name, description, price, location,
// category and up to four "images" files.
func (h *ListingHandler) Create(c *fiber.Ctx) error {
	name, ok := validate.Required(c.FormValue("name"))
	if !ok {
		return fail(c, "", domain.Invalid("name", "required"))
	}
	price, ok := validate.Price(c.FormValue("price"))
	if !ok {
		return fail(c, "", domain.Invalid("price", "must be a non-negative number"))
	}
	cat, ok := domain.ParseCategory(c.FormValue("category"))
	if !ok {
		return fail(c, "", domain.Invalid("category", "unknown category"))
	}
	draft := upload.Draft{
		Name:        name,
		Description: c.FormValue("description"),
		Price:       price,
		Location:    c.FormValue("location"),
		Category:    cat,
	}

	ignored := 0
	if form, err := c.MultipartForm(); err == nil {
		for _, fh := range form.File["images"] {
			if draft.Photos.Len() >= upload.MaxImages {
				ignored++
				continue
			}
			f, err := fh.Open()
			if err != nil {
				continue
			}
			data, err := io.ReadAll(f)
			_ = f.Close()
			if err != nil {
				continue
			}
			ignored += draft.Photos.Add(data)
		}
	}

	id, err := upload.NewPipeline(h.newStore()).Submit(c.UserContext(), draft)
	if err != nil {
		return fail(c, "listing.create.fail", err)
	}
	log.Audit(c, "listing.create", map[string]any{"listing_id": id, "images": draft.Photos.Len()})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": id, "ignoredImages": ignored})
}

func (h *ListingHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid listing id"})
	}
	if err := h.newStore().DeleteListing(c.UserContext(), id); err != nil {
		return fail(c, "listing.delete.fail", err)
	}
	log.Audit(c, "listing.delete", map[string]any{"listing_id": id})
	return c.SendStatus(fiber.StatusNoContent)
}
