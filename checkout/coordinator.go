package checkout

import (
	"context"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Theo-jobs/family-ordering-system/cart"
	"github.com/Theo-jobs/family-ordering-system/models"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrCheckoutInFlight = errors.New("checkout already in progress")
)

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, items []models.OrderItemRequest, note string) (models.Order, error)
}

// OrderAnnouncer broadcasts a placed order to the kitchen queue.
type OrderAnnouncer interface {
	AnnounceOrder(order models.Order) error
}

type Notifier interface {
	Show(session, message, kind string)
}

// Coordinator turns a cart snapshot into an order. Submission is
// all-or-nothing from the cart's perspective: the cart is cleared only
// after the order exists.
type Coordinator struct {
	Carts     *cart.Manager
	Orders    OrderPlacer
	Announcer OrderAnnouncer // optional; nil means no kitchen queue
	Notify    Notifier
	Log       *logrus.Logger
}

func (co *Coordinator) Checkout(ctx context.Context, session, note string) (models.Order, error) {
	eng := co.Carts.Get(ctx, session)

	if !eng.BeginCheckout() {
		return models.Order{}, ErrCheckoutInFlight
	}
	defer eng.EndCheckout()

	snapshot := eng.Items()
	if len(snapshot) == 0 {
		return models.Order{}, ErrEmptyCart
	}

	items := make([]models.OrderItemRequest, len(snapshot))
	for i, li := range snapshot {
		items[i] = models.OrderItemRequest{
			DishID:   li.DishID,
			Quantity: models.FlexInt{Value: li.Quantity, OK: true},
		}
	}

	order, err := co.Orders.PlaceOrder(ctx, items, note)
	if err != nil {
		co.Notify.Show(session, "Order submission failed, please try again later", "error")
		return models.Order{}, err
	}

	eng.Reset(ctx)
	co.Notify.Show(session, "Order submitted successfully", "success")

	if co.Announcer != nil {
		// The order already exists; a queue hiccup is not a checkout
		// failure.
		if aerr := co.Announcer.AnnounceOrder(order); aerr != nil {
			co.Log.WithError(aerr).WithField("order_id", order.ID).Warn("failed to announce order to kitchen")
		}
	}

	return order, nil
}
