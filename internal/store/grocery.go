package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/3liantte/grocery-list-app/internal/grocery"
	"github.com/3liantte/grocery-list-app/internal/model"
	"github.com/3liantte/grocery-list-app/internal/persist"
	"github.com/3liantte/grocery-list-app/internal/pricing"
)

// SnapshotKey is the fixed slot the full store state round-trips through.
const SnapshotKey = "grocery_snapshot"

var (
	// ErrNotHydrated is returned by mutators invoked before Hydrate has run.
	ErrNotHydrated = errors.New("store: not hydrated")

	// ErrInvalidInput reports input violating the item invariants
	// (empty name, quantity <= 0, price <= 0, negative discount).
	ErrInvalidInput = errors.New("store: invalid input")
)

// AddItemInput carries the fields for a new item. Price is the base price as
// entered; the stored price is resolved from it and the optional discount.
type AddItemInput struct {
	Name     string
	Quantity int
	Price    float64
	Discount *model.Discount
}

// MutationHook is invoked after each successful mutation, outside the store
// lock. The server uses it to broadcast live-sync messages.
type MutationHook func(entity, action, id string)

// GroceryStore owns the live item collection and the saved template lists.
// All reads hand out copies; the store is the only writer. Every mutation
// wakes a single flusher goroutine that serializes the current state and
// writes it through the persister, so a slow or failed write never blocks a
// mutator and an older in-flight snapshot can never clobber a newer one.
type GroceryStore struct {
	mu            sync.Mutex
	items         []model.GroceryItem
	templateLists []model.TemplateList
	hydrated      bool

	persister persist.Store
	table     grocery.Table
	logger    *slog.Logger
	onMutate  MutationHook

	flushCh chan struct{}
	quit    chan struct{}
	done    chan struct{}
}

// NewGroceryStore creates a store backed by the given persister. A nil table
// selects the default category table. Call Hydrate before using mutators.
func NewGroceryStore(p persist.Store, table grocery.Table, logger *slog.Logger) *GroceryStore {
	if table == nil {
		table = grocery.DefaultTable
	}
	s := &GroceryStore{
		items:         []model.GroceryItem{},
		templateLists: []model.TemplateList{},
		persister:     p,
		table:         table,
		logger:        logger,
		flushCh:       make(chan struct{}, 1),
		quit:          make(chan struct{}),
		done:          make(chan struct{}),
	}
	go s.flusher()
	return s
}

// OnMutate registers the mutation hook. Set it before the server starts
// accepting requests.
func (s *GroceryStore) OnMutate(hook MutationHook) {
	s.onMutate = hook
}

// Hydrate loads the persisted snapshot into memory. A missing snapshot
// initializes empty collections; a corrupt or unreadable one is logged and
// the store starts empty rather than failing.
func (s *GroceryStore) Hydrate(ctx context.Context) {
	data, err := s.persister.Load(ctx, SnapshotKey)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrated = true

	if err != nil {
		s.logger.Warn("hydrate: load snapshot failed, starting empty", "error", err)
		return
	}
	if data == nil {
		s.logger.Info("hydrate: no snapshot, starting empty")
		return
	}

	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn("hydrate: corrupt snapshot, starting empty", "error", err)
		return
	}
	if snap.Items != nil {
		s.items = snap.Items
	}
	if snap.TemplateLists != nil {
		s.templateLists = snap.TemplateLists
	}
	s.logger.Info("hydrate: snapshot loaded", "items", len(s.items), "templates", len(s.templateLists))
}

// AddItem validates the input, resolves the category and final price, and
// appends a new item. Existing items are never touched.
func (s *GroceryStore) AddItem(input AddItemInput) (model.GroceryItem, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return model.GroceryItem{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if input.Quantity <= 0 {
		return model.GroceryItem{}, fmt.Errorf("%w: quantity %d must be > 0", ErrInvalidInput, input.Quantity)
	}

	price, err := pricing.ResolveFinalPrice(input.Price, input.Discount)
	if err != nil {
		return model.GroceryItem{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if price <= 0 {
		return model.GroceryItem{}, fmt.Errorf("%w: resolved price %v must be > 0", ErrInvalidInput, price)
	}

	item := model.GroceryItem{
		ID:        uuid.NewString(),
		Name:      name,
		Quantity:  input.Quantity,
		Price:     price,
		Category:  grocery.CategorizeWith(s.table, name),
		CreatedAt: time.Now().UTC(),
	}
	if input.Discount != nil {
		d := *input.Discount
		item.Discount = &d
	}

	s.mu.Lock()
	if !s.hydrated {
		s.mu.Unlock()
		return model.GroceryItem{}, ErrNotHydrated
	}
	s.items = append(s.items, item)
	s.mu.Unlock()

	s.mutated("grocery_item", "created", item.ID)
	return item.Clone(), nil
}

// RemoveItem deletes the item with the given id. Removing an unknown id is a
// benign no-op.
func (s *GroceryStore) RemoveItem(id string) error {
	s.mu.Lock()
	if !s.hydrated {
		s.mu.Unlock()
		return ErrNotHydrated
	}
	removed := false
	for i, it := range s.items {
		if it.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if removed {
		s.mutated("grocery_item", "deleted", id)
	}
	return nil
}

// UpdateItem replaces the stored item with the same id, preserving its
// position. Unknown ids are a benign no-op. The caller is responsible for
// having re-derived category and price; the store only enforces invariants.
func (s *GroceryStore) UpdateItem(item model.GroceryItem) error {
	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if item.Quantity <= 0 {
		return fmt.Errorf("%w: quantity %d must be > 0", ErrInvalidInput, item.Quantity)
	}
	if item.Price <= 0 {
		return fmt.Errorf("%w: price %v must be > 0", ErrInvalidInput, item.Price)
	}
	if item.Discount != nil && item.Discount.Value < 0 {
		return fmt.Errorf("%w: discount value %v must be >= 0", ErrInvalidInput, item.Discount.Value)
	}

	s.mu.Lock()
	if !s.hydrated {
		s.mu.Unlock()
		return ErrNotHydrated
	}
	updated := false
	for i, it := range s.items {
		if it.ID == item.ID {
			s.items[i] = item.Clone()
			updated = true
			break
		}
	}
	s.mu.Unlock()

	if updated {
		s.mutated("grocery_item", "updated", item.ID)
	}
	return nil
}

// SaveTemplateList captures a deep copy of the current items under a new
// named template. Later changes to the live list do not touch the template.
func (s *GroceryStore) SaveTemplateList(name string) (model.TemplateList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return model.TemplateList{}, fmt.Errorf("%w: template name is required", ErrInvalidInput)
	}

	s.mu.Lock()
	if !s.hydrated {
		s.mu.Unlock()
		return model.TemplateList{}, ErrNotHydrated
	}
	tpl := model.TemplateList{
		ID:        uuid.NewString(),
		Name:      name,
		Items:     model.CloneItems(s.items),
		CreatedAt: time.Now().UTC(),
	}
	s.templateLists = append(s.templateLists, tpl)
	s.mu.Unlock()

	s.mutated("template", "saved", tpl.ID)

	out := tpl
	out.Items = model.CloneItems(tpl.Items)
	return out, nil
}

// LoadTemplate appends copies of the template's items to the live list. The
// appended items keep the ids captured at save time, so loading can introduce
// duplicate-looking entries; no merging is attempted. Unknown ids are a
// benign no-op.
func (s *GroceryStore) LoadTemplate(templateID string) error {
	s.mu.Lock()
	if !s.hydrated {
		s.mu.Unlock()
		return ErrNotHydrated
	}
	loaded := false
	for _, tpl := range s.templateLists {
		if tpl.ID == templateID {
			s.items = append(s.items, model.CloneItems(tpl.Items)...)
			loaded = true
			break
		}
	}
	s.mu.Unlock()

	if loaded {
		s.mutated("template", "loaded", templateID)
	}
	return nil
}

// RemoveTemplate deletes a saved template. Unknown ids are a benign no-op.
func (s *GroceryStore) RemoveTemplate(templateID string) error {
	s.mu.Lock()
	if !s.hydrated {
		s.mu.Unlock()
		return ErrNotHydrated
	}
	removed := false
	for i, tpl := range s.templateLists {
		if tpl.ID == templateID {
			s.templateLists = append(s.templateLists[:i], s.templateLists[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if removed {
		s.mutated("template", "deleted", templateID)
	}
	return nil
}

// Item returns a copy of the item with the given id.
func (s *GroceryStore) Item(id string) (model.GroceryItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.ID == id {
			return it.Clone(), true
		}
	}
	return model.GroceryItem{}, false
}

// Template returns a copy of the template with the given id.
func (s *GroceryStore) Template(id string) (model.TemplateList, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, tpl := range s.templateLists {
		if tpl.ID == id {
			out := tpl
			out.Items = model.CloneItems(tpl.Items)
			return out, true
		}
	}
	return model.TemplateList{}, false
}

// Items returns a deep copy of the live item sequence in insertion order.
func (s *GroceryStore) Items() []model.GroceryItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneItems(s.items)
}

// TemplateLists returns a deep copy of the saved templates in insertion order.
func (s *GroceryStore) TemplateLists() []model.TemplateList {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.TemplateList, len(s.templateLists))
	for i, tpl := range s.templateLists {
		out[i] = tpl
		out[i].Items = model.CloneItems(tpl.Items)
	}
	return out
}

// Snapshot returns the current serialized state.
func (s *GroceryStore) Snapshot() ([]byte, error) {
	snap := s.snapshot()
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// Restore replaces the entire state with the given serialized snapshot and
// writes it through. Used by backup import.
func (s *GroceryStore) Restore(data []byte) error {
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	s.mu.Lock()
	if !s.hydrated {
		s.mu.Unlock()
		return ErrNotHydrated
	}
	s.items = []model.GroceryItem{}
	s.templateLists = []model.TemplateList{}
	if snap.Items != nil {
		s.items = snap.Items
	}
	if snap.TemplateLists != nil {
		s.templateLists = snap.TemplateLists
	}
	s.mu.Unlock()

	s.mutated("snapshot", "restored", "")
	return nil
}

// Close performs a final synchronous write-through and stops the flusher.
func (s *GroceryStore) Close() {
	close(s.quit)
	<-s.done
}

func (s *GroceryStore) mutated(entity, action, id string) {
	// Coalesce: one pending signal is enough, the flusher always serializes
	// the state current at write time.
	select {
	case s.flushCh <- struct{}{}:
	default:
	}
	if s.onMutate != nil {
		s.onMutate(entity, action, id)
	}
}

func (s *GroceryStore) snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := model.Snapshot{
		Items:         model.CloneItems(s.items),
		TemplateLists: make([]model.TemplateList, len(s.templateLists)),
	}
	for i, tpl := range s.templateLists {
		snap.TemplateLists[i] = tpl
		snap.TemplateLists[i].Items = model.CloneItems(tpl.Items)
	}
	return snap
}

func (s *GroceryStore) flusher() {
	defer close(s.done)
	for {
		select {
		case <-s.flushCh:
			s.flush()
		case <-s.quit:
			s.flush()
			return
		}
	}
}

// flush serializes the current state and writes it through. Failures are
// recoverable: memory stays authoritative and the next mutation retries.
func (s *GroceryStore) flush() {
	data, err := json.Marshal(s.snapshot())
	if err != nil {
		s.logger.Error("flush: marshal snapshot", "error", err)
		return
	}
	if err := s.persister.Save(context.Background(), SnapshotKey, data); err != nil {
		s.logger.Warn("flush: save snapshot failed, persistence is stale", "error", err)
	}
}
