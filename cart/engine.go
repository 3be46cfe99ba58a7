package cart

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/Theo-jobs/family-ordering-system/models"
)

// Store persists cart snapshots. Load must return a usable (possibly
// empty) slice even when the backing medium is missing or corrupt, and
// Save must absorb its own failures; the in-memory cart is authoritative.
type Store interface {
	Load(ctx context.Context, session string) []models.CartLineItem
	Save(ctx context.Context, session string, items []models.CartLineItem)
}

// Events receives the user-facing side effects of cart mutations. The
// notification center implements it.
type Events interface {
	Show(session, message, kind string)
	Toast(session string, ev ToastEvent)
	IconPulse(session string)
}

// ToastEvent describes a cart add/remove confirmation.
type ToastEvent struct {
	DishName string
	Quantity int
	Existing bool
	Replace  bool
	Removed  bool
}

// Engine holds one session's cart: an ordered list of line items with at
// most one entry per dish id. All operations persist through the store
// before returning.
type Engine struct {
	session string
	store   Store
	events  Events

	mu         sync.Mutex
	items      []models.CartLineItem
	submitting atomic.Bool
}

// Add applies the add/merge/replace/remove precedence to a candidate:
// a removal request or zero quantity deletes a matching item (and is a
// silent no-op otherwise); an existing item is either overwritten
// (replace) or accumulated; a new item is appended only with a positive
// quantity.
func (e *Engine) Add(ctx context.Context, c models.CartCandidate) {
	dishID := c.DishID
	if dishID == "" {
		dishID = c.ID
	}
	name := c.DishName
	if name == "" {
		name = c.Name
	}
	qty := c.Quantity.IntOr(0)
	if qty < 0 {
		qty = 0
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOf(dishID)

	if c.Remove || qty == 0 {
		if idx < 0 {
			// Nothing to delete; stay quiet rather than creating a
			// zero-quantity line.
			return
		}
		if name == "" {
			name = e.items[idx].DishName
		}
		e.items = append(e.items[:idx], e.items[idx+1:]...)
		e.persist(ctx)
		e.events.Toast(e.session, ToastEvent{DishName: name, Removed: true})
		e.events.IconPulse(e.session)
		return
	}

	existing := idx >= 0
	if existing {
		if name == "" {
			name = e.items[idx].DishName
		}
		if c.Replace {
			e.items[idx].Quantity = qty
		} else {
			e.items[idx].Quantity += qty
		}
	} else {
		e.items = append(e.items, models.CartLineItem{
			DishID:    dishID,
			DishName:  name,
			Price:     c.Price.FloatOr(0),
			Quantity:  qty,
			ImagePath: c.ImagePath,
		})
	}

	e.persist(ctx)
	e.events.Toast(e.session, ToastEvent{
		DishName: name,
		Quantity: qty,
		Existing: existing,
		Replace:  c.Replace,
	})
	e.events.IconPulse(e.session)
}

// UpdateQuantity sets a line item's quantity, clamped to a minimum of 1.
// This path never deletes. Returns false when the dish is not in the cart.
func (e *Engine) UpdateQuantity(ctx context.Context, dishID string, quantity models.FlexInt) bool {
	qty := quantity.IntOr(1)
	if qty < 1 {
		qty = 1
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOf(dishID)
	if idx < 0 {
		return false
	}
	e.items[idx].Quantity = qty
	e.persist(ctx)
	return true
}

// Remove deletes a line item unconditionally. Returns false when the dish
// is not in the cart.
func (e *Engine) Remove(ctx context.Context, dishID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOf(dishID)
	if idx < 0 {
		return false
	}
	e.items = append(e.items[:idx], e.items[idx+1:]...)
	e.persist(ctx)
	e.events.Show(e.session, "Removed from cart", "info")
	return true
}

// Clear empties the cart and tells the user about it.
func (e *Engine) Clear(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = nil
	e.persist(ctx)
	e.events.Show(e.session, "Cart cleared", "info")
}

// Reset empties the cart silently. Used after a successful checkout,
// where the success banner replaces the usual cleared notice.
func (e *Engine) Reset(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.items = nil
	e.persist(ctx)
}

// Items returns a copy of the cart in insertion order.
func (e *Engine) Items() []models.CartLineItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// TotalItemCount is the sum of quantities, not the number of distinct
// lines; it backs the navigation badge.
func (e *Engine) TotalItemCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := 0
	for _, it := range e.items {
		total += it.Quantity
	}
	return total
}

func (e *Engine) TotalPrice() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	total := 0.0
	for _, it := range e.items {
		total += it.Price * float64(it.Quantity)
	}
	return total
}

// BeginCheckout sets the advisory submitting flag. Returns false when a
// checkout is already in flight for this cart.
func (e *Engine) BeginCheckout() bool {
	return e.submitting.CompareAndSwap(false, true)
}

func (e *Engine) EndCheckout() {
	e.submitting.Store(false)
}

// indexOf and persist are called with e.mu held.

func (e *Engine) indexOf(dishID string) int {
	for i, it := range e.items {
		if it.DishID == dishID {
			return i
		}
	}
	return -1
}

func (e *Engine) persist(ctx context.Context) {
	e.store.Save(ctx, e.session, e.snapshot())
}

func (e *Engine) snapshot() []models.CartLineItem {
	out := make([]models.CartLineItem, len(e.items))
	copy(out, e.items)
	return out
}
