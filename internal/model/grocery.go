package model

import "time"

// Discount types accepted on a GroceryItem.
const (
	DiscountFixed      = "fixed"
	DiscountPercentage = "percentage"
)

// Discount holds the discount terms as originally entered. The item's Price
// is already net of this discount; the terms are kept so edit screens can
// show and re-derive them without compounding.
type Discount struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

type GroceryItem struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	Price     float64   `json:"price"`
	Discount  *Discount `json:"discount,omitempty"`
	Category  string    `json:"category"`
	CreatedAt time.Time `json:"created_at"`
}

// Clone returns an independent copy of the item.
func (g GroceryItem) Clone() GroceryItem {
	c := g
	if g.Discount != nil {
		d := *g.Discount
		c.Discount = &d
	}
	return c
}

// TemplateList is a named snapshot of a past grocery collection. It is
// immutable once saved; loading appends copies of its items back into the
// live list.
type TemplateList struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Items     []GroceryItem `json:"items"`
	CreatedAt time.Time     `json:"created_at"`
}

// CloneItems deep-copies a slice of items.
func CloneItems(items []GroceryItem) []GroceryItem {
	out := make([]GroceryItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}

// Snapshot is the serialized shape persisted under a single storage key.
type Snapshot struct {
	Items         []GroceryItem  `json:"items"`
	TemplateLists []TemplateList `json:"templateLists"`
}
