// Package upload turns picked photos into a listing: a bounded selection,
// JPEG re-encoding, then one CreateListing call.
package upload

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	"github.com/shopspring/decimal"

	"localcart/internal/domain"
	"localcart/internal/store"
)

const (
	MaxImages   = 4
	JPEGQuality = 80
)

// Selection holds at most MaxImages raw photos in pick order.
type Selection struct {
	raw [][]byte
}

// Add appends photos until the selection is full and returns how many were
// dropped.
func (s *Selection) Add(photos ...[]byte) (ignored int) {
	for _, p := range photos {
		if len(s.raw) >= MaxImages {
			ignored++
			continue
		}
		s.raw = append(s.raw, p)
	}
	return ignored
}

// Remove drops the photo at i; out of range is a no-op.
func (s *Selection) Remove(i int) {
	if i < 0 || i >= len(s.raw) {
		return
	}
	s.raw = append(s.raw[:i], s.raw[i+1:]...)
}

func (s *Selection) Len() int { return len(s.raw) }

// Photo is a raw picked image in any registered format.
type Photo []byte

// JPEG decodes the photo and re-encodes it for storage.
func (p Photo) JPEG() ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(p))
	if err != nil {
		return nil, fmt.Errorf("decode photo: %w", err)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode photo: %w", err)
	}
	return buf.Bytes(), nil
}

type Draft struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Location    string
	Category    domain.Category
	Photos      Selection
}

type ListingCreator interface {
	CreateListing(ctx context.Context, in store.NewListing) (string, error)
}

type Pipeline struct {
	store ListingCreator
}

func NewPipeline(s ListingCreator) *Pipeline { return &Pipeline{store: s} }

// Submit sends the draft with its selected photos. Photos that cannot be
// decoded are skipped by the store.
func (p *Pipeline) Submit(ctx context.Context, d Draft) (string, error) {
	images := make([]store.Image, 0, d.Photos.Len())
	for _, raw := range d.Photos.raw {
		images = append(images, Photo(raw))
	}
	return p.store.CreateListing(ctx, store.NewListing{
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Location:    d.Location,
		Category:    d.Category,
		Images:      images,
	})
}
