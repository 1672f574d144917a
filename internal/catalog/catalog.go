// Package catalog holds the built-in sample products shown before any seller
// has listed anything.
package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"localcart/internal/domain"
)

// Catalog is immutable once built.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

func New(products []domain.Product) *Catalog {
	c := &Catalog{byID: make(map[string]int, len(products))}
	for _, p := range products {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c
}

// Default returns the sample catalog with fresh ids.
func Default() *Catalog { return New(sampleProducts()) }

func (c *Catalog) All() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) ByCategory(cat domain.Category) []domain.Product {
	var out []domain.Product
	for _, p := range c.products {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}

func (c *Catalog) Get(id string) (domain.Product, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

var pickup = map[string]string{
	"Pasta":                  "Nyarutarama",
	"Fruits":                 "Kimironko",
	"Burrito":                "Kacyiru",
	"Fresh Strawberries":     "Gishushu",
	"Strawberry Pie":         "Gishushu",
	"Chocolate Chip Cookies": "Gishushu",
	"Beef Stew":              "Nyamirambo",
	"Herbal Tea":             "Remera",
	"Fresh Juice":            "Kimironko",
	"Coffee Beans":           "Kiyovu",
	"Sparkling Water":        "Kacyiru",
}

// Location is the pickup neighbourhood shown under a product card.
func Location(p domain.Product) string {
	if l, ok := pickup[p.Name]; ok {
		return l
	}
	return "Kigali"
}

func rwf(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func kcal(v int) *int { return &v }
