package store_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"localcart/internal/domain"
	"localcart/internal/gateway"
	"localcart/internal/repos"
	"localcart/internal/store"
)

func newBackend(t *testing.T) *repos.Backend {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return repos.NewBackend(repos.NewDocumentRepo(db), repos.NewBlobRepo(t.TempDir(), "http://test/media"))
}

func as(uid string) context.Context {
	return gateway.WithUID(context.Background(), uid)
}

// eventually polls cond until it holds or the deadline passes.
func eventually(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestCreateListingOwnedAndUnsold(t *testing.T) {
	gw := newBackend(t)
	s := store.New(gw)
	defer s.Close()
	ctx := as("u-1")

	if err := s.SubscribeOwnListings(ctx); err != nil {
		t.Fatal(err)
	}
	id, err := s.CreateListing(ctx, store.NewListing{
		Name:        "Banana bread",
		Description: "Fresh",
		Price:       decimal.NewFromInt(2500),
		Location:    "Kimironko",
		Category:    domain.Food,
		Images:      []store.Image{store.JPEG("a"), store.JPEG("b")},
	})
	if err != nil {
		t.Fatal(err)
	}

	eventually(t, "own listing", func() bool { return s.Own().Len() == 1 })
	l := s.Own().Items()[0]
	if l.ID != id || l.UserID != "u-1" || l.Sold {
		t.Fatalf("unexpected listing %+v", l)
	}
	if l.Category != "Food" || !l.Price.Equal(decimal.NewFromInt(2500)) {
		t.Fatalf("unexpected fields %+v", l)
	}
	if len(l.ImageURLs) != 2 {
		t.Fatalf("want 2 image urls, got %v", l.ImageURLs)
	}
	for i, u := range l.ImageURLs {
		if !strings.HasPrefix(u, "http://test/media/productImages/u-1/") || !strings.HasSuffix(u, "_"+string(rune('0'+i))+".jpg") {
			t.Fatalf("unexpected url %s", u)
		}
	}
}

func TestCreateListingRequiresIdentity(t *testing.T) {
	s := store.New(newBackend(t))
	_, err := s.CreateListing(context.Background(), store.NewListing{Name: "x", Category: domain.Food})
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("want ErrUnauthenticated, got %v", err)
	}
}

type badImage struct{}

func (badImage) JPEG() ([]byte, error) { return nil, errors.New("cannot encode") }

func TestCreateListingSkipsUnencodableImages(t *testing.T) {
	gw := newBackend(t)
	s := store.New(gw)
	ctx := as("u-1")

	id, err := s.CreateListing(ctx, store.NewListing{
		Name: "Vase", Price: decimal.NewFromInt(13000), Category: domain.InteriorDesigns,
		Images: []store.Image{badImage{}, store.JPEG("ok")},
	})
	if err != nil {
		t.Fatal(err)
	}
	d, err := gw.GetDocument(ctx, domain.ListingsCollection, id)
	if err != nil {
		t.Fatal(err)
	}
	l, ok := store.MapListing(d)
	if !ok {
		t.Fatalf("created document should map: %+v", d.Fields)
	}
	if len(l.ImageURLs) != 1 || !strings.HasSuffix(l.ImageURLs[0], "_1.jpg") {
		t.Fatalf("want only the second image, got %v", l.ImageURLs)
	}
}

// failingBlobs fails every upload after the first.
type failingBlobs struct {
	*repos.Backend
	created int
}

func (f *failingBlobs) UploadBlob(ctx context.Context, path string, data []byte) (string, error) {
	if strings.HasSuffix(path, "_0.jpg") {
		return f.Backend.UploadBlob(ctx, path, data)
	}
	return "", domain.ErrUpload
}

func (f *failingBlobs) CreateDocument(ctx context.Context, c string, fields gateway.Fields) (string, error) {
	f.created++
	return f.Backend.CreateDocument(ctx, c, fields)
}

func TestUploadFailureAbortsWithoutDocument(t *testing.T) {
	gw := &failingBlobs{Backend: newBackend(t)}
	s := store.New(gw, store.WithUploadConcurrency(1))

	_, err := s.CreateListing(as("u-1"), store.NewListing{
		Name: "Rug", Category: domain.InteriorDesigns,
		Images: []store.Image{store.JPEG("a"), store.JPEG("b")},
	})
	if !errors.Is(err, domain.ErrUpload) {
		t.Fatalf("want ErrUpload, got %v", err)
	}
	if gw.created != 0 {
		t.Fatal("no listing document may be written after an upload failure")
	}
}

func TestEarningsSumsSoldOwnListings(t *testing.T) {
	gw := newBackend(t)
	s := store.New(gw)
	defer s.Close()
	ctx := as("u-1")

	if s.Earnings().Sign() != 0 {
		t.Fatal("empty store should earn 0")
	}
	docs := []gateway.Fields{
		listingFields("u-1", "Food", 1000, true),
		listingFields("u-1", "Food", 2500.5, true),
		listingFields("u-1", "Drinks", 9000, false),
		listingFields("u-2", "Food", 7000, true),
	}
	for _, f := range docs {
		if _, err := gw.CreateDocument(ctx, domain.ListingsCollection, f); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.SubscribeOwnListings(ctx); err != nil {
		t.Fatal(err)
	}
	eventually(t, "own listings", func() bool { return s.Own().Len() == 3 })

	if want := decimal.RequireFromString("3500.5"); !s.Earnings().Equal(want) {
		t.Fatalf("want %s, got %s", want, s.Earnings())
	}
}

func TestSubscribeOwnWithoutIdentityIsNoop(t *testing.T) {
	s := store.New(newBackend(t))
	if err := s.SubscribeOwnListings(context.Background()); err != nil {
		t.Fatal(err)
	}
	select {
	case <-s.Own().Loaded():
		t.Fatal("no snapshot expected without identity")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDeleteUnknownIDLeavesCollection(t *testing.T) {
	gw := newBackend(t)
	s := store.New(gw)
	defer s.Close()
	ctx := as("u-1")

	if _, err := gw.CreateDocument(ctx, domain.ListingsCollection, listingFields("u-1", "Food", 10, false)); err != nil {
		t.Fatal(err)
	}
	if err := s.SubscribeOwnListings(ctx); err != nil {
		t.Fatal(err)
	}
	eventually(t, "own listing", func() bool { return s.Own().Len() == 1 })

	if err := s.DeleteListing(ctx, "does-not-exist"); err != nil {
		t.Fatalf("unknown id should not error, got %v", err)
	}
	if s.Own().Len() != 1 {
		t.Fatal("collection should be unchanged")
	}
}

func TestDeleteRemovesLocalCopy(t *testing.T) {
	gw := newBackend(t)
	s := store.New(gw)
	defer s.Close()
	ctx := as("u-1")

	id, err := gw.CreateDocument(ctx, domain.ListingsCollection, listingFields("u-1", "Food", 10, false))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SubscribeOwnListings(ctx); err != nil {
		t.Fatal(err)
	}
	eventually(t, "own listing", func() bool { return s.Own().Len() == 1 })

	if err := s.DeleteListing(ctx, id); err != nil {
		t.Fatal(err)
	}
	if s.Own().Len() != 0 {
		t.Fatal("deleted listing should leave the collection immediately")
	}
}

func TestDeleteFailureKeepsLocalState(t *testing.T) {
	gw := newBackend(t)
	s := store.New(gw)
	defer s.Close()
	owner := as("u-1")

	id, err := gw.CreateDocument(owner, domain.ListingsCollection, listingFields("u-1", "Food", 10, false))
	if err != nil {
		t.Fatal(err)
	}
	if err := s.SubscribeOwnListings(owner); err != nil {
		t.Fatal(err)
	}
	eventually(t, "own listing", func() bool { return s.Own().Len() == 1 })

	// a different identity is refused by the backend
	if err := s.DeleteListing(as("u-2"), id); !errors.Is(err, domain.ErrWrite) {
		t.Fatalf("want ErrWrite, got %v", err)
	}
	if s.Own().Len() != 1 {
		t.Fatal("failed delete must not touch local state")
	}
}

func TestCategoryExactMatchAndMalformedDropped(t *testing.T) {
	gw := newBackend(t)
	s := store.New(gw)
	defer s.Close()
	ctx := as("u-1")

	noPrice := listingFields("u-1", "Food", 0, false)
	delete(noPrice, domain.KeyPrice)
	for _, f := range []gateway.Fields{
		listingFields("u-1", "Food", 100, false),
		listingFields("u-1", "food", 200, false),
		noPrice,
		listingFields("u-2", "Drinks", 300, false),
	} {
		if _, err := gw.CreateDocument(ctx, domain.ListingsCollection, f); err != nil {
			t.Fatal(err)
		}
	}

	if err := s.SubscribeCategoryListings(ctx, domain.Food); err != nil {
		t.Fatal(err)
	}
	if err := s.SubscribeCategoryListings(ctx, domain.Drinks); err != nil {
		t.Fatal(err)
	}
	if err := s.Category(domain.Food).WaitLoaded(ctxTimeout(t)); err != nil {
		t.Fatal(err)
	}
	food := s.Category(domain.Food).Items()
	if len(food) != 1 || !food[0].Price.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("want only the exact, well-formed Food listing, got %+v", food)
	}
	eventually(t, "drinks", func() bool { return s.Category(domain.Drinks).Len() == 1 })
	if s.Category(domain.BeautyAccessories).Len() != 0 {
		t.Fatal("collections must not be merged")
	}
}

func TestCategoryCollectionFollowsWrites(t *testing.T) {
	gw := newBackend(t)
	s := store.New(gw)
	defer s.Close()
	ctx := as("u-1")

	changes := make(chan int, 16)
	cancel := s.Category(domain.Drinks).Watch(func(ls []domain.Listing) { changes <- len(ls) })
	defer cancel()

	if err := s.SubscribeCategoryListings(ctx, domain.Drinks); err != nil {
		t.Fatal(err)
	}
	if _, err := s.CreateListing(ctx, store.NewListing{Name: "Tea", Price: decimal.NewFromInt(3000), Category: domain.Drinks}); err != nil {
		t.Fatal(err)
	}
	deadline := time.After(3 * time.Second)
	for {
		select {
		case n := <-changes:
			if n == 1 {
				return
			}
		case <-deadline:
			t.Fatal("watcher never saw the new listing")
		}
	}
}

func TestMapListingTypes(t *testing.T) {
	f := listingFields("u-1", "Food", 10, false)
	if _, ok := store.MapListing(gateway.Document{ID: "x", Fields: f}); !ok {
		t.Fatal("well-formed document should map")
	}
	f[domain.KeyImageURLs] = []any{"a", 3.0}
	if _, ok := store.MapListing(gateway.Document{ID: "x", Fields: f}); ok {
		t.Fatal("non-string image url should be rejected")
	}
	f = listingFields("u-1", "Food", 10, false)
	f[domain.KeySold] = "false"
	if _, ok := store.MapListing(gateway.Document{ID: "x", Fields: f}); ok {
		t.Fatal("string sold flag should be rejected")
	}
}

func listingFields(uid, category string, price float64, sold bool) gateway.Fields {
	return gateway.Fields{
		domain.KeyUserID:      uid,
		domain.KeyName:        "item",
		domain.KeyDescription: "desc",
		domain.KeyPrice:       price,
		domain.KeyLocation:    "Kigali",
		domain.KeyCategory:    category,
		domain.KeyImageURLs:   []string{},
		domain.KeySold:        sold,
	}
}

func ctxTimeout(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// heldGateway keeps each subscriber callback so the test decides when and in
// which order snapshots arrive.
type heldGateway struct {
	*repos.Backend
	fns []func(gateway.Snapshot)
}

type noopSub struct{}

func (noopSub) Cancel() {}

func (h *heldGateway) Subscribe(_ context.Context, _ gateway.Query, fn func(gateway.Snapshot)) (gateway.Subscription, error) {
	h.fns = append(h.fns, fn)
	return noopSub{}, nil
}

func TestStaleSnapshotAfterResubscribeIgnored(t *testing.T) {
	gw := &heldGateway{Backend: newBackend(t)}
	s := store.New(gw)
	if err := s.SubscribeOwnListings(as("u-1")); err != nil {
		t.Fatal(err)
	}
	if err := s.SubscribeOwnListings(as("u-2")); err != nil {
		t.Fatal(err)
	}
	if len(gw.fns) != 2 {
		t.Fatalf("want 2 subscriptions, got %d", len(gw.fns))
	}

	snap := func(uid string) gateway.Snapshot {
		return gateway.Snapshot{Documents: []gateway.Document{
			{ID: "l-" + uid, Fields: listingFields(uid, "Food", 100, false), CreatedAt: time.Now()},
		}}
	}
	gw.fns[1](snap("u-2"))
	gw.fns[0](snap("u-1"))

	items := s.Own().Items()
	if len(items) != 1 || items[0].UserID != "u-2" {
		t.Fatalf("own listings overwritten by replaced query: %+v", items)
	}

	s.Close()
	gw.fns[1](gateway.Snapshot{})
	if n := s.Own().Len(); n != 1 {
		t.Fatalf("snapshot after Close applied, len=%d", n)
	}
}
