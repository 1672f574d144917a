package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"localcart/internal/domain"
	"localcart/internal/gateway"
	applog "localcart/internal/log"
	"localcart/internal/services"
	"localcart/internal/store"
)

// FeedHandler pushes listing snapshots over a websocket: the caller's own
// listings, or one category with ?category=.
type FeedHandler struct {
	GW gateway.Gateway
}

type feedEvent struct {
	Event    string           `json:"event"`
	Category string           `json:"category,omitempty"`
	Listings []domain.Listing `json:"listings"`
}

// Upgrade authenticates with ?token= (browsers cannot set headers on a
// websocket handshake) and checks the category before switching protocols.
func (h *FeedHandler) Upgrade(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := c.Query("token")
		if tok == "" {
			tok = bearer(c)
		}
		uid, err := auth.Verify(tok)
		if err != nil {
			applog.Security(c, "feed.token.reject", nil)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Please sign in."})
		}
		if q := c.Query("category"); q != "" {
			cat, ok := domain.ParseCategory(q)
			if !ok {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown category"})
			}
			c.Locals("category", cat)
		}
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		c.Locals("uid", uid)
		return c.Next()
	}
}

func (h *FeedHandler) Stream(conn *websocket.Conn) {
	uid, _ := conn.Locals("uid").(string)
	cat, byCategory := conn.Locals("category").(domain.Category)

	ctx, cancel := context.WithCancel(gateway.WithUID(context.Background(), uid))
	defer cancel()

	s := store.New(h.GW)
	defer s.Close()

	col := s.Own()
	if byCategory {
		col = s.Category(cat)
	}

	// latest snapshot wins; a slow client skips intermediate ones
	updates := make(chan []domain.Listing, 1)
	stop := col.Watch(func(ls []domain.Listing) {
		for {
			select {
			case updates <- ls:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	defer stop()

	var err error
	if byCategory {
		err = s.SubscribeCategoryListings(ctx, cat)
	} else {
		err = s.SubscribeOwnListings(ctx)
	}
	if err != nil {
		applog.Error(nil, "feed.subscribe.fail", err, map[string]any{"user_id": uid})
		return
	}

	// reader: only used to notice the client going away
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ev := feedEvent{Event: "snapshot"}
	if byCategory {
		ev.Category = cat.DisplayName()
	}
	for {
		select {
		case <-ctx.Done():
			return
		case ls := <-updates:
			ev.Listings = ls
			if err := conn.WriteJSON(ev); err != nil {
				applog.Error(nil, "feed.write.fail", err, map[string]any{"user_id": uid})
				return
			}
		}
	}
}
