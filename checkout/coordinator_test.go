package checkout

import (
	"context"
	"io"
	"testing"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Theo-jobs/family-ordering-system/cart"
	"github.com/Theo-jobs/family-ordering-system/models"
)

type stubStore struct {
	saved [][]models.CartLineItem
}

func (s *stubStore) Load(ctx context.Context, session string) []models.CartLineItem { return nil }

func (s *stubStore) Save(ctx context.Context, session string, items []models.CartLineItem) {
	s.saved = append(s.saved, items)
}

type stubEvents struct{}

func (stubEvents) Show(session, message, kind string)       {}
func (stubEvents) Toast(session string, ev cart.ToastEvent) {}
func (stubEvents) IconPulse(session string)                 {}

type fakePlacer struct {
	gotItems []models.OrderItemRequest
	gotNote  string
	order    models.Order
	err      error
}

func (p *fakePlacer) PlaceOrder(ctx context.Context, items []models.OrderItemRequest, note string) (models.Order, error) {
	p.gotItems = items
	p.gotNote = note
	if p.err != nil {
		return models.Order{}, p.err
	}
	return p.order, nil
}

type fakeAnnouncer struct {
	announced []models.Order
	err       error
}

func (a *fakeAnnouncer) AnnounceOrder(order models.Order) error {
	a.announced = append(a.announced, order)
	return a.err
}

type fakeNotifier struct {
	messages []string
	kinds    []string
}

func (n *fakeNotifier) Show(session, message, kind string) {
	n.messages = append(n.messages, message)
	n.kinds = append(n.kinds, kind)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func seedCart(t *testing.T, carts *cart.Manager, session string) {
	t.Helper()
	eng := carts.Get(context.Background(), session)
	eng.Add(context.Background(), models.CartCandidate{
		DishID:   "d1",
		DishName: "Mapo Tofu",
		Price:    models.FlexFloat{Value: 12, OK: true},
		Quantity: models.FlexInt{Value: 2, OK: true},
	})
}

func TestCheckoutSuccessClearsCartAndAnnounces(t *testing.T) {
	store := &stubStore{}
	carts := cart.NewManager(store, stubEvents{})
	seedCart(t, carts, "family")

	placer := &fakePlacer{order: models.Order{ID: "ord-1", TotalPrice: 24}}
	announcer := &fakeAnnouncer{}
	notifier := &fakeNotifier{}

	co := &Coordinator{
		Carts:     carts,
		Orders:    placer,
		Announcer: announcer,
		Notify:    notifier,
		Log:       quietLogger(),
	}

	order, err := co.Checkout(context.Background(), "family", "less spicy")
	if err != nil {
		t.Fatalf("Checkout: %v", err)
	}
	if order.ID != "ord-1" {
		t.Errorf("order id = %q, want ord-1", order.ID)
	}

	if len(placer.gotItems) != 1 || placer.gotItems[0].DishID != "d1" || placer.gotItems[0].Quantity.IntOr(0) != 2 {
		t.Errorf("unexpected order lines %+v", placer.gotItems)
	}
	if placer.gotNote != "less spicy" {
		t.Errorf("note = %q", placer.gotNote)
	}

	eng := carts.Get(context.Background(), "family")
	if len(eng.Items()) != 0 {
		t.Errorf("expected cart cleared after checkout")
	}
	if got := store.saved[len(store.saved)-1]; len(got) != 0 {
		t.Errorf("expected empty snapshot persisted after checkout")
	}

	if len(notifier.messages) != 1 || notifier.messages[0] != "Order submitted successfully" || notifier.kinds[0] != "success" {
		t.Errorf("unexpected notifications %v %v", notifier.messages, notifier.kinds)
	}
	if len(announcer.announced) != 1 || announcer.announced[0].ID != "ord-1" {
		t.Errorf("expected order announced to kitchen, got %+v", announcer.announced)
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	carts := cart.NewManager(&stubStore{}, stubEvents{})
	co := &Coordinator{
		Carts:  carts,
		Orders: &fakePlacer{},
		Notify: &fakeNotifier{},
		Log:    quietLogger(),
	}

	_, err := co.Checkout(context.Background(), "family", "")
	if !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("err = %v, want ErrEmptyCart", err)
	}
}

func TestCheckoutFailureKeepsCart(t *testing.T) {
	store := &stubStore{}
	carts := cart.NewManager(store, stubEvents{})
	seedCart(t, carts, "family")

	placer := &fakePlacer{err: errors.New("db down")}
	notifier := &fakeNotifier{}
	co := &Coordinator{
		Carts:  carts,
		Orders: placer,
		Notify: notifier,
		Log:    quietLogger(),
	}

	_, err := co.Checkout(context.Background(), "family", "")
	if err == nil {
		t.Fatalf("expected error")
	}

	eng := carts.Get(context.Background(), "family")
	if len(eng.Items()) != 1 {
		t.Errorf("expected cart untouched after failure, got %d items", len(eng.Items()))
	}
	if len(notifier.messages) != 1 || notifier.kinds[0] != "error" {
		t.Errorf("expected one error banner, got %v %v", notifier.messages, notifier.kinds)
	}
}

func TestCheckoutInFlightGuard(t *testing.T) {
	carts := cart.NewManager(&stubStore{}, stubEvents{})
	seedCart(t, carts, "family")

	co := &Coordinator{
		Carts:  carts,
		Orders: &fakePlacer{order: models.Order{ID: "ord-1"}},
		Notify: &fakeNotifier{},
		Log:    quietLogger(),
	}

	eng := carts.Get(context.Background(), "family")
	if !eng.BeginCheckout() {
		t.Fatalf("setup: BeginCheckout failed")
	}
	defer eng.EndCheckout()

	_, err := co.Checkout(context.Background(), "family", "")
	if !errors.Is(err, ErrCheckoutInFlight) {
		t.Fatalf("err = %v, want ErrCheckoutInFlight", err)
	}
}

func TestCheckoutAnnounceFailureIsNotFatal(t *testing.T) {
	carts := cart.NewManager(&stubStore{}, stubEvents{})
	seedCart(t, carts, "family")

	co := &Coordinator{
		Carts:     carts,
		Orders:    &fakePlacer{order: models.Order{ID: "ord-1"}},
		Announcer: &fakeAnnouncer{err: errors.New("broker gone")},
		Notify:    &fakeNotifier{},
		Log:       quietLogger(),
	}

	if _, err := co.Checkout(context.Background(), "family", ""); err != nil {
		t.Fatalf("queue failure should not fail checkout: %v", err)
	}
}
