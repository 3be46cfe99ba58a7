package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Theo-jobs/family-ordering-system/models"
	"github.com/Theo-jobs/family-ordering-system/repository"
)

var (
	ErrEmptyOrder      = errors.New("order must contain dishes")
	ErrInvalidQuantity = errors.New("item quantity must be positive")
)

// UnknownDishError reports an order line referencing a dish that no
// longer exists.
type UnknownDishError struct {
	DishID string
}

func (e *UnknownDishError) Error() string {
	return fmt.Sprintf("dish %s not found", e.DishID)
}

type DishCatalog interface {
	Get(ctx context.Context, id string) (models.Dish, error)
}

type OrderArchive interface {
	Insert(ctx context.Context, order models.Order) error
}

// OrderService builds and records orders. Every line is re-priced from
// the dish table at submission time; the client-sent cart carries only
// dish ids and quantities.
type OrderService struct {
	Dishes DishCatalog
	Orders OrderArchive
	Log    *logrus.Logger
}

func (s *OrderService) PlaceOrder(ctx context.Context, items []models.OrderItemRequest, note string) (models.Order, error) {
	if len(items) == 0 {
		return models.Order{}, ErrEmptyOrder
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	totalPrice := 0.0
	for _, it := range items {
		qty := it.Quantity.IntOr(0)
		if qty < 1 {
			return models.Order{}, ErrInvalidQuantity
		}

		dish, err := s.Dishes.Get(ctx, it.DishID)
		if errors.Is(err, repository.ErrNotFound) {
			return models.Order{}, &UnknownDishError{DishID: it.DishID}
		}
		if err != nil {
			return models.Order{}, errors.Wrap(err, "look up dish")
		}

		lineTotal := dish.Price * float64(qty)
		totalPrice += lineTotal
		orderItems = append(orderItems, models.OrderItem{
			DishID:    dish.ID,
			DishName:  dish.Name,
			Quantity:  qty,
			Price:     dish.Price,
			Total:     lineTotal,
			ImagePath: dish.ImagePath,
		})
	}

	order := models.Order{
		ID:         uuid.NewString(),
		Items:      orderItems,
		TotalPrice: totalPrice,
		Status:     models.OrderStatusPending,
		Timestamp:  time.Now().Format(time.RFC3339),
		Note:       note,
	}

	if err := s.Orders.Insert(ctx, order); err != nil {
		return models.Order{}, errors.Wrap(err, "record order")
	}

	s.Log.WithFields(logrus.Fields{
		"order_id": order.ID,
		"lines":    len(order.Items),
		"total":    order.TotalPrice,
	}).Info("order placed")
	return order, nil
}
