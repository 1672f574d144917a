package store

import (
	"time"

	"github.com/shopspring/decimal"

	"localcart/internal/domain"
	"localcart/internal/gateway"
)

// MapListing converts a listings document. It reports false when any required
// field is missing or has the wrong type; such documents are dropped by callers.
func MapListing(doc gateway.Document) (domain.Listing, bool) {
	f := doc.Fields
	userID, ok1 := f[domain.KeyUserID].(string)
	name, ok2 := f[domain.KeyName].(string)
	desc, ok3 := f[domain.KeyDescription].(string)
	price, ok4 := f[domain.KeyPrice].(float64)
	location, ok5 := f[domain.KeyLocation].(string)
	category, ok6 := f[domain.KeyCategory].(string)
	urls, ok7 := stringList(f[domain.KeyImageURLs])
	sold, ok8 := f[domain.KeySold].(bool)
	if !(ok1 && ok2 && ok3 && ok4 && ok5 && ok6 && ok7 && ok8) {
		return domain.Listing{}, false
	}

	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return domain.Listing{
		ID:          doc.ID,
		UserID:      userID,
		Name:        name,
		Description: desc,
		Price:       decimal.NewFromFloat(price),
		Location:    location,
		Category:    category,
		ImageURLs:   urls,
		CreatedAt:   createdAt,
		Sold:        sold,
	}, true
}

func mapListings(docs []gateway.Document) []domain.Listing {
	out := make([]domain.Listing, 0, len(docs))
	for _, d := range docs {
		if l, ok := MapListing(d); ok {
			out = append(out, l)
		}
	}
	return out
}

func stringList(v any) ([]string, bool) {
	switch xs := v.(type) {
	case []string:
		return xs, true
	case []any:
		out := make([]string, 0, len(xs))
		for _, x := range xs {
			s, ok := x.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	}
	return nil, false
}
