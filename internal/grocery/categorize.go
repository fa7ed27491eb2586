package grocery

import "strings"

// Fallback is returned when no keyword in the table matches an item name.
const Fallback = "Uncategorized"

// Entry pairs a category label with its ordered keyword list.
type Entry struct {
	Category string   `json:"category"`
	Keywords []string `json:"keywords"`
}

// Table is an ordered category table. Order matters: the first category whose
// keywords match wins, and within a category keywords are tested in order.
type Table []Entry

// Normalize lowercases the input, strips everything outside the alphabetic and
// space set, trims, and collapses internal whitespace runs to single spaces.
func Normalize(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// Categorize returns the category for the given item name using the default
// table. Matching is case- and punctuation-insensitive substring matching with
// naive plural handling (keyword or keyword+"s"). Falls back to Fallback.
func Categorize(itemName string) string {
	return CategorizeWith(DefaultTable, itemName)
}

// CategorizeWith categorizes against an explicit table. The table is never
// mutated.
func CategorizeWith(table Table, itemName string) string {
	name := Normalize(itemName)
	if name == "" {
		return Fallback
	}

	for _, entry := range table {
		for _, keyword := range entry.Keywords {
			kw := Normalize(keyword)
			if kw == "" {
				continue
			}
			if strings.Contains(name, kw) || strings.Contains(name, kw+"s") {
				return entry.Category
			}
		}
	}
	return Fallback
}

// DefaultTable is the built-in category table. More specific keywords come
// before shorter ones so phrases like "peanut butter" resolve before "butter".
var DefaultTable = Table{
	{Category: "Dairy", Keywords: []string{
		"cream cheese", "sour cream", "heavy cream", "cottage cheese",
		"greek yogurt", "almond milk", "oat milk", "yogurt", "cheese",
		"milk", "butter", "cream", "egg",
	}},
	{Category: "Meat & Seafood", Keywords: []string{
		"chicken breast", "chicken thigh", "ground beef", "ground turkey",
		"deli meat", "pork chop", "hot dog", "chicken", "beef", "pork",
		"turkey", "bacon", "sausage", "ham", "steak", "salmon", "shrimp",
		"tuna", "fish", "lamb", "crab",
	}},
	{Category: "Produce", Keywords: []string{
		"baby spinach", "green onion", "sweet potato", "bell pepper",
		"cherry tomato", "green bean", "apple", "banana", "orange", "lemon",
		"lime", "avocado", "tomato", "potato", "onion", "garlic", "lettuce",
		"spinach", "kale", "broccoli", "carrot", "celery", "cucumber",
		"mushroom", "grape", "strawberr", "blueberr", "raspberr", "melon",
		"pineapple", "mango", "peach", "pear", "zucchini", "squash",
		"cabbage", "cauliflower", "pepper", "berr", "fruit", "herb",
	}},
	{Category: "Bakery", Keywords: []string{
		"sourdough", "whole wheat", "bread", "bagel", "tortilla", "bun",
		"roll", "muffin", "croissant", "pita",
	}},
	{Category: "Frozen", Keywords: []string{
		"ice cream", "frozen", "popsicle",
	}},
	{Category: "Pantry", Keywords: []string{
		"peanut butter", "olive oil", "coconut oil", "maple syrup",
		"hot sauce", "soy sauce", "pasta sauce", "tomato sauce", "canned",
		"cereal", "oatmeal", "granola", "rice", "pasta", "noodle", "flour",
		"sugar", "salt", "spice", "seasoning", "vinegar", "ketchup",
		"mustard", "mayonnaise", "honey", "jam", "jelly", "sauce", "broth",
		"stock", "soup", "bean", "lentil", "nut", "oil",
	}},
	{Category: "Beverages", Keywords: []string{
		"sparkling water", "orange juice", "apple juice", "coffee", "tea",
		"juice", "soda", "water", "beer", "wine", "kombucha", "lemonade",
		"drink",
	}},
	{Category: "Snacks", Keywords: []string{
		"granola bar", "trail mix", "fruit snack", "chip", "cracker",
		"cookie", "popcorn", "pretzel", "candy", "chocolate", "snack",
	}},
	{Category: "Household", Keywords: []string{
		"paper towel", "toilet paper", "trash bag", "garbage bag",
		"dish soap", "laundry", "detergent", "cleaner", "cleaning",
		"sponge", "foil", "plastic wrap", "ziplock", "battery", "light bulb",
		"napkin", "bleach",
	}},
	{Category: "Personal Care", Keywords: []string{
		"body wash", "shampoo", "conditioner", "toothpaste", "toothbrush",
		"deodorant", "lotion", "sunscreen", "soap", "floss", "razor",
		"tissue", "band aid",
	}},
}
