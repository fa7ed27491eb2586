package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/3liantte/grocery-list-app/internal/grocery"
	"github.com/3liantte/grocery-list-app/internal/model"
	"github.com/3liantte/grocery-list-app/internal/pricing"
	"github.com/3liantte/grocery-list-app/internal/store"
)

type GroceryHandler struct {
	store  *store.GroceryStore
	table  grocery.Table
	logger *slog.Logger
}

func NewGroceryHandler(s *store.GroceryStore, table grocery.Table, logger *slog.Logger) *GroceryHandler {
	if table == nil {
		table = grocery.DefaultTable
	}
	return &GroceryHandler{store: s, table: table, logger: logger}
}

type discountRequest struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}

type groceryItemRequest struct {
	Name     string           `json:"name"`
	Quantity int              `json:"quantity"`
	Price    float64          `json:"price"` // base price as entered
	Discount *discountRequest `json:"discount"`
}

// discount maps the request discount to the model, treating an absent or
// blank-typed discount as "no discount" rather than a zero one.
func (r groceryItemRequest) discount() *model.Discount {
	if r.Discount == nil || strings.TrimSpace(r.Discount.Type) == "" {
		return nil
	}
	return &model.Discount{Type: r.Discount.Type, Value: r.Discount.Value}
}

func (h *GroceryHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Items())
}

func (h *GroceryHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req groceryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	item, err := h.store.AddItem(store.AddItemInput{
		Name:     req.Name,
		Quantity: req.Quantity,
		Price:    req.Price,
		Discount: req.discount(),
	})
	if err != nil {
		writeStoreError(w, h.logger, "create item", err)
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

func (h *GroceryHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	existing, ok := h.store.Item(id)
	if !ok {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	var req groceryItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	// Price is re-derived from the base price submitted in this edit, never
	// from the stored (already discounted) price, so discounts don't compound
	// across edits.
	discount := req.discount()
	price, err := pricing.ResolveFinalPrice(req.Price, discount)
	if err != nil || price <= 0 {
		writeError(w, http.StatusBadRequest, "invalid price or discount")
		return
	}

	// Keep the existing category unless the name changed.
	category := existing.Category
	if name != existing.Name {
		category = grocery.CategorizeWith(h.table, name)
	}

	updated := model.GroceryItem{
		ID:        existing.ID,
		Name:      name,
		Quantity:  req.Quantity,
		Price:     price,
		Discount:  discount,
		Category:  category,
		CreatedAt: existing.CreatedAt,
	}
	if err := h.store.UpdateItem(updated); err != nil {
		writeStoreError(w, h.logger, "update item", err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

func (h *GroceryHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	if err := h.store.RemoveItem(r.PathValue("id")); err != nil {
		writeStoreError(w, h.logger, "delete item", err)
		return
	}
	// Removing an unknown id is a benign no-op, so 204 either way.
	w.WriteHeader(http.StatusNoContent)
}

func (h *GroceryHandler) Totals(w http.ResponseWriter, r *http.Request) {
	items := h.store.Items()
	writeJSON(w, http.StatusOK, map[string]any{
		"total_price":    pricing.RoundCurrency(pricing.TotalPrice(items)),
		"total_quantity": pricing.TotalQuantity(items),
	})
}

// writeStoreError maps store errors onto the HTTP surface: contract breaches
// are the client's fault, everything else is a server error.
func writeStoreError(w http.ResponseWriter, logger *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, store.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrNotHydrated):
		logger.Error(op, "error", err)
		writeError(w, http.StatusServiceUnavailable, "store not ready")
	default:
		logger.Error(op, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to "+op)
	}
}
