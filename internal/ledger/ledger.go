package ledger

import (
	"context"
	"math/rand/v2"
	"strings"
	"sync"

	"shelfboard/backend/internal/domain"
)

// DiscountStrategy picks the discount for an item entering the ledger for the
// first time. Strategies must not block the caller for long; the ledger holds
// its write lock while calling.
type DiscountStrategy interface {
	SuggestDiscount(ctx context.Context, item domain.ItemInput) int
}

// RandomDiscount assigns a uniform random integer discount in [0, 20).
type RandomDiscount struct{}

func (RandomDiscount) SuggestDiscount(context.Context, domain.ItemInput) int {
	return rand.IntN(20)
}

// Ledger is the in-memory product collection behind the editor page. Items
// keep insertion order and are unique by ID. All methods are safe for
// concurrent use.
type Ledger struct {
	mu       sync.RWMutex
	items    []domain.InventoryItem
	index    map[string]int
	strategy DiscountStrategy
}

func New(strategy DiscountStrategy) *Ledger {
	if strategy == nil {
		strategy = RandomDiscount{}
	}
	return &Ledger{
		items:    []domain.InventoryItem{},
		index:    make(map[string]int),
		strategy: strategy,
	}
}

// NewSeeded returns a ledger pre-loaded with the demo item the editor page
// has always started with.
func NewSeeded(strategy DiscountStrategy) *Ledger {
	l := New(strategy)
	l.items = append(l.items, domain.InventoryItem{
		ID:         "1",
		Name:       "Sample Product",
		Quantity:   10,
		ExpiryDate: "2024-12-31",
		Discount:   5,
	})
	l.index["1"] = 0
	return l
}

// BulkUpsert applies inputs in order. A known ID adds the input quantity to
// the stored quantity and leaves name, expiry and discount untouched. A new
// ID is appended with a discount from the strategy. Duplicate IDs within one
// batch compound.
func (l *Ledger) BulkUpsert(ctx context.Context, inputs []domain.ItemInput) []domain.InventoryItem {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, input := range inputs {
		if idx, ok := l.index[input.ID]; ok {
			l.items[idx].Quantity += input.Quantity
			continue
		}
		l.index[input.ID] = len(l.items)
		l.items = append(l.items, domain.InventoryItem{
			ID:         input.ID,
			Name:       input.Name,
			Quantity:   input.Quantity,
			ExpiryDate: input.ExpiryDate,
			Discount:   l.strategy.SuggestDiscount(ctx, input),
		})
	}
	return l.snapshotLocked()
}

// BulkRemove subtracts quantities in order. An item whose quantity drops to
// zero or below is deleted. Unknown IDs are ignored.
func (l *Ledger) BulkRemove(removals []domain.RemovalInput) []domain.InventoryItem {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, removal := range removals {
		idx, ok := l.index[removal.ID]
		if !ok {
			continue
		}
		l.items[idx].Quantity -= removal.Quantity
		if l.items[idx].Quantity <= 0 {
			l.deleteAtLocked(idx)
		}
	}
	return l.snapshotLocked()
}

// Search returns items whose ID or name contains the query, case-insensitive,
// in ledger order. An empty query returns everything.
func (l *Ledger) Search(query string) []domain.InventoryItem {
	l.mu.RLock()
	defer l.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(query))
	if needle == "" {
		return l.snapshotLocked()
	}

	matches := []domain.InventoryItem{}
	for _, item := range l.items {
		if strings.Contains(strings.ToLower(item.ID), needle) ||
			strings.Contains(strings.ToLower(item.Name), needle) {
			matches = append(matches, item)
		}
	}
	return matches
}

func (l *Ledger) deleteAtLocked(idx int) {
	delete(l.index, l.items[idx].ID)
	l.items = append(l.items[:idx], l.items[idx+1:]...)
	for i := idx; i < len(l.items); i++ {
		l.index[l.items[i].ID] = i
	}
}

func (l *Ledger) snapshotLocked() []domain.InventoryItem {
	out := make([]domain.InventoryItem, len(l.items))
	copy(out, l.items)
	return out
}
