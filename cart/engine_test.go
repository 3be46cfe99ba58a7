package cart

import (
	"context"
	"testing"

	"github.com/Theo-jobs/family-ordering-system/models"
)

type fakeStore struct {
	loaded []models.CartLineItem
	saved  [][]models.CartLineItem
}

func (s *fakeStore) Load(ctx context.Context, session string) []models.CartLineItem {
	return s.loaded
}

func (s *fakeStore) Save(ctx context.Context, session string, items []models.CartLineItem) {
	s.saved = append(s.saved, items)
}

type recordedToast struct {
	session string
	ev      ToastEvent
}

type fakeEvents struct {
	banners []string
	toasts  []recordedToast
	pulses  int
}

func (e *fakeEvents) Show(session, message, kind string) {
	e.banners = append(e.banners, message)
}

func (e *fakeEvents) Toast(session string, ev ToastEvent) {
	e.toasts = append(e.toasts, recordedToast{session: session, ev: ev})
}

func (e *fakeEvents) IconPulse(session string) {
	e.pulses++
}

func newTestEngine(t *testing.T) (*Engine, *fakeStore, *fakeEvents) {
	t.Helper()
	store := &fakeStore{}
	events := &fakeEvents{}
	eng := NewManager(store, events).Get(context.Background(), "family")
	return eng, store, events
}

func intFlex(v int) models.FlexInt {
	return models.FlexInt{Value: v, OK: true}
}

func floatFlex(v float64) models.FlexFloat {
	return models.FlexFloat{Value: v, OK: true}
}

func TestAddAccumulatesExistingDish(t *testing.T) {
	eng, _, events := newTestEngine(t)
	ctx := context.Background()

	eng.Add(ctx, models.CartCandidate{DishID: "d1", DishName: "Mapo Tofu", Price: floatFlex(12), Quantity: intFlex(2)})
	eng.Add(ctx, models.CartCandidate{DishID: "d1", DishName: "Mapo Tofu", Price: floatFlex(12), Quantity: intFlex(3)})

	items := eng.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 line item, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", items[0].Quantity)
	}
	if got := eng.TotalItemCount(); got != 5 {
		t.Errorf("expected total item count 5, got %d", got)
	}
	if got := eng.TotalPrice(); got != 60 {
		t.Errorf("expected total price 60, got %v", got)
	}

	last := events.toasts[len(events.toasts)-1].ev
	if !last.Existing || last.Replace {
		t.Errorf("expected accumulate toast, got %+v", last)
	}
	if events.pulses != 2 {
		t.Errorf("expected 2 icon pulses, got %d", events.pulses)
	}
}

func TestAddReplaceOverwritesQuantity(t *testing.T) {
	eng, _, events := newTestEngine(t)
	ctx := context.Background()

	eng.Add(ctx, models.CartCandidate{DishID: "d1", DishName: "Fried Rice", Quantity: intFlex(4)})
	eng.Add(ctx, models.CartCandidate{DishID: "d1", DishName: "Fried Rice", Quantity: intFlex(2), Replace: true})

	items := eng.Items()
	if items[0].Quantity != 2 {
		t.Errorf("expected quantity 2 after replace, got %d", items[0].Quantity)
	}
	last := events.toasts[len(events.toasts)-1].ev
	if !last.Existing || !last.Replace {
		t.Errorf("expected replace toast, got %+v", last)
	}
}

func TestAddRemoveFlagDeletesItem(t *testing.T) {
	eng, store, events := newTestEngine(t)
	ctx := context.Background()

	eng.Add(ctx, models.CartCandidate{DishID: "d1", DishName: "Congee", Quantity: intFlex(1)})
	eng.Add(ctx, models.CartCandidate{DishID: "d1", Remove: true})

	if len(eng.Items()) != 0 {
		t.Fatalf("expected empty cart after removal")
	}
	last := events.toasts[len(events.toasts)-1].ev
	if !last.Removed {
		t.Errorf("expected removal toast, got %+v", last)
	}
	if last.DishName != "Congee" {
		t.Errorf("expected removal toast to recover stored name, got %q", last.DishName)
	}
	if got := store.saved[len(store.saved)-1]; len(got) != 0 {
		t.Errorf("expected empty snapshot persisted, got %d items", len(got))
	}
}

func TestAddZeroQuantityIsSilentNoOpWhenAbsent(t *testing.T) {
	eng, store, events := newTestEngine(t)
	ctx := context.Background()

	eng.Add(ctx, models.CartCandidate{DishID: "ghost", Quantity: intFlex(0)})

	if len(eng.Items()) != 0 {
		t.Fatalf("expected cart to stay empty")
	}
	if len(store.saved) != 0 {
		t.Errorf("expected no persistence, got %d saves", len(store.saved))
	}
	if len(events.toasts) != 0 || events.pulses != 0 {
		t.Errorf("expected no events, got toasts=%d pulses=%d", len(events.toasts), events.pulses)
	}
}

func TestAddNegativeQuantityTreatedAsRemoval(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx := context.Background()

	eng.Add(ctx, models.CartCandidate{DishID: "d1", DishName: "Soup", Quantity: intFlex(2)})
	eng.Add(ctx, models.CartCandidate{DishID: "d1", Quantity: intFlex(-3)})

	if len(eng.Items()) != 0 {
		t.Errorf("expected negative quantity to clamp to zero and delete the line")
	}
}

func TestAddWithoutNameUsesStoredNameInToast(t *testing.T) {
	eng, _, events := newTestEngine(t)
	ctx := context.Background()

	eng.Add(ctx, models.CartCandidate{DishID: "d1", DishName: "Hot Pot", Quantity: intFlex(2)})
	eng.Add(ctx, models.CartCandidate{DishID: "d1", Quantity: intFlex(3)})
	eng.Add(ctx, models.CartCandidate{DishID: "d1", Quantity: intFlex(1), Replace: true})

	if got := events.toasts[1].ev.DishName; got != "Hot Pot" {
		t.Errorf("accumulate toast name = %q, want stored name", got)
	}
	if got := events.toasts[2].ev.DishName; got != "Hot Pot" {
		t.Errorf("replace toast name = %q, want stored name", got)
	}
}

func TestAddFallsBackToAlternateFieldNames(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx := context.Background()

	eng.Add(ctx, models.CartCandidate{ID: "d9", Name: "Dumplings", Quantity: intFlex(1)})

	items := eng.Items()
	if len(items) != 1 || items[0].DishID != "d9" || items[0].DishName != "Dumplings" {
		t.Fatalf("expected id/name fallbacks to apply, got %+v", items)
	}
}

func TestUpdateQuantityClampsToOne(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx := context.Background()

	eng.Add(ctx, models.CartCandidate{DishID: "d1", DishName: "Tea", Quantity: intFlex(3)})

	if !eng.UpdateQuantity(ctx, "d1", intFlex(0)) {
		t.Fatalf("expected update to succeed")
	}
	if got := eng.Items()[0].Quantity; got != 1 {
		t.Errorf("expected quantity clamped to 1, got %d", got)
	}

	if eng.UpdateQuantity(ctx, "missing", intFlex(2)) {
		t.Errorf("expected update of missing dish to report false")
	}
}

func TestRemoveShowsBannerAndClearShowsBanner(t *testing.T) {
	eng, store, events := newTestEngine(t)
	ctx := context.Background()

	eng.Add(ctx, models.CartCandidate{DishID: "d1", DishName: "Cake", Quantity: intFlex(1)})
	eng.Add(ctx, models.CartCandidate{DishID: "d2", DishName: "Coffee", Quantity: intFlex(1)})

	if !eng.Remove(ctx, "d1") {
		t.Fatalf("expected remove to succeed")
	}
	eng.Clear(ctx)

	if len(eng.Items()) != 0 {
		t.Fatalf("expected empty cart after clear")
	}
	if len(events.banners) != 2 || events.banners[0] != "Removed from cart" || events.banners[1] != "Cart cleared" {
		t.Errorf("unexpected banners %v", events.banners)
	}
	if got := store.saved[len(store.saved)-1]; len(got) != 0 {
		t.Errorf("expected cleared cart persisted, got %d items", len(got))
	}
}

func TestResetClearsWithoutEvents(t *testing.T) {
	eng, _, events := newTestEngine(t)
	ctx := context.Background()

	eng.Add(ctx, models.CartCandidate{DishID: "d1", DishName: "Noodles", Quantity: intFlex(2)})
	before := len(events.banners) + len(events.toasts)

	eng.Reset(ctx)

	if len(eng.Items()) != 0 {
		t.Fatalf("expected empty cart after reset")
	}
	if len(events.banners)+len(events.toasts) != before {
		t.Errorf("expected reset to emit no events")
	}
}

func TestBeginCheckoutGuardsReentry(t *testing.T) {
	eng, _, _ := newTestEngine(t)

	if !eng.BeginCheckout() {
		t.Fatalf("first BeginCheckout should succeed")
	}
	if eng.BeginCheckout() {
		t.Errorf("second BeginCheckout should fail while in flight")
	}
	eng.EndCheckout()
	if !eng.BeginCheckout() {
		t.Errorf("BeginCheckout should succeed after EndCheckout")
	}
}

func TestManagerHydratesFromStoreOnce(t *testing.T) {
	store := &fakeStore{loaded: []models.CartLineItem{{DishID: "d1", DishName: "Rice", Price: 3, Quantity: 2}}}
	m := NewManager(store, &fakeEvents{})
	ctx := context.Background()

	eng := m.Get(ctx, "family")
	if got := eng.TotalItemCount(); got != 2 {
		t.Fatalf("expected hydrated quantity 2, got %d", got)
	}

	if m.Get(ctx, "family") != eng {
		t.Errorf("expected the same engine for the same session")
	}
	if m.Get(ctx, "guests") == eng {
		t.Errorf("expected a distinct engine per session")
	}
}
