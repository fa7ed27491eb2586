package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/3liantte/grocery-list-app/internal/model"
)

func TestResolveFinalPrice(t *testing.T) {
	tests := []struct {
		name     string
		base     float64
		discount *model.Discount
		want     float64
	}{
		{"no discount", 50, nil, 50},
		{"percentage", 100, &model.Discount{Type: model.DiscountPercentage, Value: 10}, 90},
		{"fixed", 100, &model.Discount{Type: model.DiscountFixed, Value: 15}, 85},
		{"zero percentage", 40, &model.Discount{Type: model.DiscountPercentage, Value: 0}, 40},
		{"zero fixed", 40, &model.Discount{Type: model.DiscountFixed, Value: 0}, 40},
		{"full percentage", 80, &model.Discount{Type: model.DiscountPercentage, Value: 100}, 0},
		{"fixed exceeding base", 10, &model.Discount{Type: model.DiscountFixed, Value: 15}, -5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveFinalPrice(tt.base, tt.discount)
			if err != nil {
				t.Fatalf("ResolveFinalPrice: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ResolveFinalPrice = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveFinalPriceInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		base     float64
		discount *model.Discount
	}{
		{"zero base", 0, nil},
		{"negative base", -1, nil},
		{"negative discount", 100, &model.Discount{Type: model.DiscountFixed, Value: -5}},
		{"unknown type", 100, &model.Discount{Type: "bogus", Value: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ResolveFinalPrice(tt.base, tt.discount)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestRoundCurrency(t *testing.T) {
	tests := []struct {
		input float64
		want  float64
	}{
		{19.994999999999997, 20.00},
		{19.991, 19.99},
		{19.995, 20.00},
		{2.675, 2.68}, // binary repr is 2.67499999..., must still round up
		{9.50, 9.50},
		{0, 0},
		{0.005, 0.01},
		{1.004999, 1.00},
	}
	for _, tt := range tests {
		got := RoundCurrency(tt.input)
		if got != tt.want {
			t.Errorf("RoundCurrency(%v) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestTotals(t *testing.T) {
	items := []model.GroceryItem{
		{Price: 2.50, Quantity: 3},
		{Price: 1.00, Quantity: 2},
	}

	if got := TotalPrice(items); RoundCurrency(got) != 9.50 {
		t.Errorf("TotalPrice = %v, want 9.50", got)
	}
	if got := TotalQuantity(items); got != 5 {
		t.Errorf("TotalQuantity = %d, want 5", got)
	}
	if got := TotalPrice(nil); got != 0 {
		t.Errorf("TotalPrice(nil) = %v, want 0", got)
	}
}

func TestRoundingOnlyAtAggregation(t *testing.T) {
	// Many small additions keep full precision until the single final round.
	items := make([]model.GroceryItem, 0, 100)
	for i := 0; i < 100; i++ {
		items = append(items, model.GroceryItem{Price: 0.1, Quantity: 1})
	}
	if got := RoundCurrency(TotalPrice(items)); got != 10.00 {
		t.Errorf("rounded total = %v, want 10.00", got)
	}
}
