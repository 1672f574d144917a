package upload

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/shopspring/decimal"

	"localcart/internal/domain"
	"localcart/internal/gateway"
	"localcart/internal/repos"
	"localcart/internal/store"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

type captured struct {
	in store.NewListing
}

func (c *captured) CreateListing(_ context.Context, in store.NewListing) (string, error) {
	c.in = in
	return "id-1", nil
}

func TestSelectionCapsAtFour(t *testing.T) {
	var s Selection
	p := pngBytes(t)
	if ignored := s.Add(p, p, p, p, p); ignored != 1 {
		t.Fatalf("want 1 ignored, got %d", ignored)
	}
	if s.Len() != MaxImages {
		t.Fatalf("want %d, got %d", MaxImages, s.Len())
	}
	s.Remove(0)
	s.Remove(9)
	if s.Len() != 3 {
		t.Fatalf("want 3 after remove, got %d", s.Len())
	}
}

func TestSubmitProcessesAtMostFour(t *testing.T) {
	c := &captured{}
	d := Draft{Name: "Basket", Price: decimal.NewFromInt(20000), Category: domain.InteriorDesigns}
	p := pngBytes(t)
	d.Photos.Add(p, p, p, p, p)

	if _, err := NewPipeline(c).Submit(context.Background(), d); err != nil {
		t.Fatal(err)
	}
	if len(c.in.Images) != 4 {
		t.Fatalf("want 4 images, got %d", len(c.in.Images))
	}
	if c.in.Category != domain.InteriorDesigns || c.in.Name != "Basket" {
		t.Fatalf("draft fields lost: %+v", c.in)
	}
}

func TestPhotoReencodesToJPEG(t *testing.T) {
	out, err := Photo(pngBytes(t)).JPEG()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := jpeg.Decode(bytes.NewReader(out)); err != nil {
		t.Fatalf("output is not jpeg: %v", err)
	}
	if _, err := Photo("not an image").JPEG(); err == nil {
		t.Fatal("garbage should fail to decode")
	}
}

func TestSubmitSkipsUndecodablePhotos(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	gw := repos.NewBackend(repos.NewDocumentRepo(db), repos.NewBlobRepo(t.TempDir(), "/media"))
	s := store.New(gw)
	ctx := gateway.WithUID(context.Background(), "u-1")

	d := Draft{Name: "Soap", Price: decimal.NewFromInt(1500), Location: "Musanze", Category: domain.BeautyAccessories}
	d.Photos.Add([]byte("broken"), pngBytes(t))

	id, err := NewPipeline(s).Submit(ctx, d)
	if err != nil {
		t.Fatal(err)
	}
	doc, err := gw.GetDocument(ctx, domain.ListingsCollection, id)
	if err != nil {
		t.Fatal(err)
	}
	l, ok := store.MapListing(doc)
	if !ok || len(l.ImageURLs) != 1 {
		t.Fatalf("want one uploaded image, got %+v", l)
	}
	if l.UserID != "u-1" || l.Sold {
		t.Fatalf("owner/sold wrong: %+v", l)
	}
}
