package domain

import "fmt"

// Category is one of the four storefront sections.
type Category int

const (
	Food Category = iota + 1
	Drinks
	InteriorDesigns
	BeautyAccessories
)

// Categories lists every category in storefront order.
var Categories = []Category{Food, Drinks, InteriorDesigns, BeautyAccessories}

var categoryNames = map[Category]string{
	Food:              "Food",
	Drinks:            "Drinks",
	InteriorDesigns:   "Interior Designs",
	BeautyAccessories: "Beauty & Accessories",
}

// DisplayName is the exact string stored on listing documents.
func (c Category) DisplayName() string {
	return categoryNames[c]
}

func (c Category) String() string {
	if n, ok := categoryNames[c]; ok {
		return n
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

// ParseCategory matches a display name exactly (case-sensitive).
func ParseCategory(s string) (Category, bool) {
	for c, n := range categoryNames {
		if n == s {
			return c, true
		}
	}
	return 0, false
}

// UniqueCategories keeps the first occurrence of each valid category, in order.
func UniqueCategories(cs []Category) []Category {
	out := make([]Category, 0, len(cs))
	seen := make(map[Category]bool, len(cs))
	for _, c := range cs {
		if !c.Valid() || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}
