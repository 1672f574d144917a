// Package store keeps the live listing collections a client sees: the signed-in
// user's own listings and one collection per storefront category.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"localcart/internal/domain"
	"localcart/internal/gateway"
	applog "localcart/internal/log"
)

const ownKey = "own"

// Image is one photo attached to a new listing.
type Image interface {
	JPEG() ([]byte, error)
}

// JPEG is an already-encoded image.
type JPEG []byte

func (j JPEG) JPEG() ([]byte, error) { return j, nil }

type NewListing struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Location    string
	Category    domain.Category
	Images      []Image
}

type Store struct {
	gw          gateway.Gateway
	uploadLimit int

	own        *Collection
	categories map[domain.Category]*Collection

	mu   sync.Mutex
	subs map[string]gateway.Subscription
	gens map[string]int
}

type Option func(*Store)

// WithUploadConcurrency bounds parallel image uploads per listing.
func WithUploadConcurrency(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.uploadLimit = n
		}
	}
}

func New(gw gateway.Gateway, opts ...Option) *Store {
	s := &Store{
		gw:          gw,
		uploadLimit: 4,
		own:         newCollection(),
		categories:  make(map[domain.Category]*Collection, len(domain.Categories)),
		subs:        make(map[string]gateway.Subscription),
		gens:        make(map[string]int),
	}
	for _, c := range domain.Categories {
		s.categories[c] = newCollection()
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Own is the signed-in user's listings, newest first.
func (s *Store) Own() *Collection { return s.own }

// Category returns nil for an unknown category.
func (s *Store) Category(c domain.Category) *Collection { return s.categories[c] }

// SubscribeOwnListings opens, or replaces, the live query on the caller's own
// listings. It does nothing when ctx carries no identity.
func (s *Store) SubscribeOwnListings(ctx context.Context) error {
	uid, ok := gateway.UID(ctx)
	if !ok {
		return nil
	}
	return s.subscribe(ctx, ownKey, s.own, gateway.Query{
		Collection: domain.ListingsCollection,
		Field:      domain.KeyUserID,
		Value:      uid,
		OrderBy:    domain.KeyCreatedAt,
		Descending: true,
	})
}

// SubscribeCategoryListings opens, or replaces, the live query on one category.
// Only documents whose category equals the display name exactly are included.
func (s *Store) SubscribeCategoryListings(ctx context.Context, c domain.Category) error {
	col, ok := s.categories[c]
	if !ok {
		return domain.Invalid("category", "unknown category")
	}
	return s.subscribe(ctx, c.DisplayName(), col, gateway.Query{
		Collection: domain.ListingsCollection,
		Field:      domain.KeyCategory,
		Value:      c.DisplayName(),
		OrderBy:    domain.KeyCreatedAt,
		Descending: true,
	})
}

func (s *Store) subscribe(ctx context.Context, key string, col *Collection, q gateway.Query) error {
	s.mu.Lock()
	if old, ok := s.subs[key]; ok {
		old.Cancel()
		delete(s.subs, key)
	}
	s.gens[key]++
	gen := s.gens[key]
	col.retire(gen)
	s.mu.Unlock()

	sub, err := s.gw.Subscribe(ctx, q, func(snap gateway.Snapshot) {
		if snap.Err != nil {
			applog.Error(nil, "listings.snapshot.fail", snap.Err, map[string]any{"subscription": key})
			return
		}
		col.replace(gen, mapListings(snap.Documents))
	})
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gens[key] != gen {
		// replaced while we were subscribing
		sub.Cancel()
		return nil
	}
	s.subs[key] = sub
	return nil
}

// CreateListing uploads the images and then writes one listing document.
// Images that fail to encode are skipped. An upload failure aborts before the
// document is written; blobs uploaded so far are left in storage.
func (s *Store) CreateListing(ctx context.Context, in NewListing) (string, error) {
	uid, ok := gateway.UID(ctx)
	if !ok {
		return "", domain.ErrUnauthenticated
	}
	if !in.Category.Valid() {
		return "", domain.Invalid("category", "unknown category")
	}

	urls := make([]string, len(in.Images))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.uploadLimit)
	for i, img := range in.Images {
		if img == nil {
			continue
		}
		data, err := img.JPEG()
		if err != nil || len(data) == 0 {
			applog.Info(nil, "listing.image.skip", map[string]any{"index": i, "user_id": uid})
			continue
		}
		path := fmt.Sprintf("productImages/%s/%s_%d.jpg", uid, uuid.NewString(), i)
		g.Go(func() error {
			url, err := s.gw.UploadBlob(gctx, path, data)
			if err != nil {
				return err
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		applog.Error(nil, "listing.upload.fail", err, map[string]any{"user_id": uid})
		return "", err
	}

	kept := make([]string, 0, len(urls))
	for _, u := range urls {
		if u != "" {
			kept = append(kept, u)
		}
	}

	id, err := s.gw.CreateDocument(ctx, domain.ListingsCollection, gateway.Fields{
		domain.KeyUserID:      uid,
		domain.KeyName:        in.Name,
		domain.KeyDescription: in.Description,
		domain.KeyPrice:       in.Price.InexactFloat64(),
		domain.KeyLocation:    in.Location,
		domain.KeyCategory:    in.Category.DisplayName(),
		domain.KeyImageURLs:   kept,
		domain.KeySold:        false,
	})
	if err != nil {
		applog.Error(nil, "listing.create.fail", err, map[string]any{"user_id": uid, "orphaned_images": len(kept)})
		return "", err
	}
	applog.Audit(nil, "listing.create", map[string]any{"user_id": uid, "listing_id": id, "images": len(kept)})
	return id, nil
}

// DeleteListing removes the remote document and, on success, the local copy.
func (s *Store) DeleteListing(ctx context.Context, id string) error {
	if err := s.gw.DeleteDocument(ctx, domain.ListingsCollection, id); err != nil {
		applog.Error(nil, "listing.delete.fail", err, map[string]any{"listing_id": id})
		return err
	}
	s.own.remove(id)
	applog.Audit(nil, "listing.delete", map[string]any{"listing_id": id})
	return nil
}

// Earnings sums the price of the user's own listings that are marked sold.
func (s *Store) Earnings() decimal.Decimal {
	total := decimal.Zero
	for _, l := range s.own.Items() {
		if l.Sold {
			total = total.Add(l.Price)
		}
	}
	return total
}

// Close cancels every live query.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k, sub := range s.subs {
		sub.Cancel()
		delete(s.subs, k)
		s.gens[k]++
		if col := s.collection(k); col != nil {
			col.retire(s.gens[k])
		}
	}
}

func (s *Store) collection(key string) *Collection {
	if key == ownKey {
		return s.own
	}
	if c, ok := domain.ParseCategory(key); ok {
		return s.categories[c]
	}
	return nil
}
