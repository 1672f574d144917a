package domain

import "github.com/shopspring/decimal"

// Product is a static catalog entry. It is built once at startup and never mutated.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Category    Category        `json:"-"`
	Description string          `json:"description"`
	ImageName   string          `json:"imageName"`

	Nutrition Nutrition `json:"nutrition"`
	Materials Materials `json:"materials"`
	Care      Care      `json:"care"`
}

// Nutrition applies to food and drinks.
type Nutrition struct {
	Present     bool     `json:"present"`
	Calories    *int     `json:"calories,omitempty"`
	ServingSize string   `json:"servingSize,omitempty"`
	Ingredients []string `json:"ingredients,omitempty"`
	Allergens   []string `json:"allergens,omitempty"`
	Precautions []string `json:"precautions,omitempty"`
}

// Materials applies to crafted goods.
type Materials struct {
	Present    bool     `json:"present"`
	Materials  []string `json:"materials,omitempty"`
	Dimensions string   `json:"dimensions,omitempty"`
	Origin     string   `json:"origin,omitempty"`
}

type Care struct {
	Present      bool     `json:"present"`
	Instructions []string `json:"instructions,omitempty"`
}
