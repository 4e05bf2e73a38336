package domain

import (
	"context"
	"errors"
	"math"
)

// PriceList is the parsed form of the flat price document. On disk it is a
// JSON array whose first element holds the global discount and a version
// stamp; the remaining elements are service categories.
type PriceList struct {
	Discount   float64    `json:"discount"`
	Version    int64      `json:"version"`
	Categories []Category `json:"categories"`
}

type Category struct {
	Category string `json:"category"`
	Items    []Item `json:"items"`
	Note     string `json:"note,omitempty"`
}

type Item struct {
	Service  string  `json:"service"`
	Price    float64 `json:"price"`
	OldPrice float64 `json:"oldPrice,omitempty"`
}

type Service interface {
	Get(ctx context.Context) (*PriceList, error)
	SetDiscount(ctx context.Context, discount float64) error
}

var (
	ErrInvalidDiscount = errors.New("invalid_pricelist_discount")
	ErrMalformed       = errors.New("malformed_pricelist")
)

// ApplyDiscount recomputes every item price from its base price. An item
// already carrying an OldPrice is rebased from it, so repeated discount
// changes never compound. OldPrice is populated only when a non-zero
// discount applies, so a zero discount restores base prices with no
// old-price column.
func ApplyDiscount(categories []Category, discount float64) ([]Category, error) {
	if math.IsNaN(discount) || discount < 0 {
		return nil, ErrInvalidDiscount
	}

	out := make([]Category, len(categories))
	for i, category := range categories {
		items := make([]Item, len(category.Items))
		for j, item := range category.Items {
			base := item.OldPrice
			if base == 0 {
				base = item.Price
			}
			next := Item{Service: item.Service, Price: base}
			if discount > 0 {
				next.OldPrice = base
				next.Price = math.Round(base * (1 - discount/100))
			}
			items[j] = next
		}
		out[i] = Category{Category: category.Category, Items: items, Note: category.Note}
	}
	return out, nil
}

// Clone returns a deep copy so callers can mutate the result without
// touching shared state.
func (l *PriceList) Clone() *PriceList {
	out := &PriceList{Discount: l.Discount, Version: l.Version}
	if l.Categories == nil {
		return out
	}
	out.Categories = make([]Category, len(l.Categories))
	for i, category := range l.Categories {
		items := make([]Item, len(category.Items))
		copy(items, category.Items)
		out.Categories[i] = Category{Category: category.Category, Items: items, Note: category.Note}
	}
	return out
}
