package grocery

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Organic Apples", "organic apples"},
		{"  Milk  ", "milk"},
		{"Ben & Jerry's", "ben jerrys"},
		{"2% Milk", "milk"},
		{"extra   spaces   here", "extra spaces here"},
		{"123456", ""},
		{"", ""},
	}
	for _, tt := range tests {
		got := Normalize(tt.input)
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCategorizeKeywordMatch(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"milk", "Dairy"},
		{"chicken", "Meat & Seafood"},
		{"bread", "Bakery"},
		{"rice", "Pantry"},
		{"ice cream", "Frozen"},
		{"coffee", "Beverages"},
		{"popcorn", "Snacks"},
		{"paper towels", "Household"},
		{"shampoo", "Personal Care"},
		{"apple", "Produce"},
	}
	for _, tt := range tests {
		got := Categorize(tt.input)
		if got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCategorizeSubstringAndPlural(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"chicken breast", "Meat & Seafood"},
		{"boneless chicken thighs", "Meat & Seafood"},
		{"whole wheat bread", "Bakery"},
		{"frozen pizza", "Frozen"},
		{"organic baby spinach", "Produce"},
		{"Organic Apples", "Produce"},
		{"canned black beans", "Pantry"},
		{"dish soap refill", "Household"},
		{"greek yogurt cups", "Dairy"},
		{"sparkling water bottles", "Beverages"},
	}
	for _, tt := range tests {
		got := Categorize(tt.input)
		if got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCategorizeCaseAndPunctuationInsensitive(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"MILK", "Dairy"},
		{"Frozen-Pizza!", "Frozen"},
		{"PAPER TOWELS", "Household"},
		{"to-ma-to", "Produce"}, // stripping punctuation rejoins the letters
	}
	for _, tt := range tests {
		got := Categorize(tt.input)
		if got != tt.want {
			t.Errorf("Categorize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCategorizeFallback(t *testing.T) {
	for _, input := range []string{"", "   ", "widget", "xyz123", "random thing"} {
		got := Categorize(input)
		if got != Fallback {
			t.Errorf("Categorize(%q) = %q, want %q", input, got, Fallback)
		}
	}
}

func TestCategorizeWithCustomTable(t *testing.T) {
	table := Table{
		{Category: "Produce", Keywords: []string{"apple"}},
	}

	if got := CategorizeWith(table, "Organic Apples"); got != "Produce" {
		t.Errorf("CategorizeWith = %q, want %q", got, "Produce")
	}
	if got := CategorizeWith(table, "milk"); got != Fallback {
		t.Errorf("CategorizeWith = %q, want %q", got, Fallback)
	}
}

func TestCategorizeFirstMatchWins(t *testing.T) {
	table := Table{
		{Category: "First", Keywords: []string{"apple"}},
		{Category: "Second", Keywords: []string{"apple", "pie"}},
	}

	if got := CategorizeWith(table, "apple pie"); got != "First" {
		t.Errorf("CategorizeWith = %q, want %q", got, "First")
	}
}
