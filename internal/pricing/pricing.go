package pricing

import (
	"errors"
	"fmt"
	"math"

	"github.com/3liantte/grocery-list-app/internal/model"
)

// ErrInvalidInput reports a caller contract breach (non-positive base price,
// negative discount value, unknown discount type).
var ErrInvalidInput = errors.New("pricing: invalid input")

// ResolveFinalPrice computes the per-unit price after applying the optional
// discount to basePrice. A nil discount returns basePrice unchanged. The
// result is what gets stored on the item; the discount terms are kept
// separately so edits re-derive from the base price entered in that session
// rather than compounding against an already-discounted value.
//
// No floor is enforced here; callers decide whether a non-positive resolved
// price is acceptable.
func ResolveFinalPrice(basePrice float64, d *model.Discount) (float64, error) {
	if basePrice <= 0 {
		return 0, fmt.Errorf("%w: base price %v must be > 0", ErrInvalidInput, basePrice)
	}
	if d == nil {
		return basePrice, nil
	}
	if d.Value < 0 {
		return 0, fmt.Errorf("%w: discount value %v must be >= 0", ErrInvalidInput, d.Value)
	}

	switch d.Type {
	case model.DiscountPercentage:
		return basePrice - (basePrice * d.Value / 100), nil
	case model.DiscountFixed:
		return basePrice - d.Value, nil
	default:
		return 0, fmt.Errorf("%w: unknown discount type %q", ErrInvalidInput, d.Type)
	}
}

// RoundCurrency rounds to 2 decimal places with half-up semantics. A small
// epsilon-scale correction is added first so values sitting just below a
// half-cent boundary due to binary representation error (19.994999999999997)
// still round up to 20.00. Apply only at display or aggregation time, never
// while accumulating running sums.
func RoundCurrency(v float64) float64 {
	corrected := v * (1 + math.Copysign(1e-12, v))
	return math.Floor(corrected*100+0.5) / 100
}

// TotalPrice sums price*quantity over the items, unrounded. The caller rounds
// once at presentation.
func TotalPrice(items []model.GroceryItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// TotalQuantity sums the item quantities.
func TotalQuantity(items []model.GroceryItem) int {
	var total int
	for _, it := range items {
		total += it.Quantity
	}
	return total
}
