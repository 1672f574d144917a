package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Listing is a seller-created product-for-sale record stored in the "listings" collection.
type Listing struct {
	ID          string          `json:"id"`
	UserID      string          `json:"userId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Location    string          `json:"location"`
	Category    string          `json:"category"`
	ImageURLs   []string        `json:"imageURLs"`
	CreatedAt   time.Time       `json:"createdAt"`
	Sold        bool            `json:"sold"`
}

// Document keys of the listings collection.
const (
	ListingsCollection = "listings"

	KeyUserID      = "userId"
	KeyName        = "name"
	KeyDescription = "description"
	KeyPrice       = "price"
	KeyLocation    = "location"
	KeyCategory    = "category"
	KeyImageURLs   = "imageURLs"
	KeyCreatedAt   = "createdAt"
	KeySold        = "sold"
)
