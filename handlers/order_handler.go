package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Theo-jobs/family-ordering-system/models"
	"github.com/Theo-jobs/family-ordering-system/repository"
	"github.com/Theo-jobs/family-ordering-system/service"
)

type OrderStore interface {
	List(ctx context.Context) ([]models.Order, error)
	Get(ctx context.Context, id string) (models.Order, error)
	Update(ctx context.Context, order models.Order) error
	Delete(ctx context.Context, id string) error
}

type OrderPlacer interface {
	PlaceOrder(ctx context.Context, items []models.OrderItemRequest, note string) (models.Order, error)
}

type OrderHandler struct {
	Orders OrderStore
	Placer OrderPlacer
	Log    *logrus.Logger
}

func NewOrderHandler(orders OrderStore, placer OrderPlacer, log *logrus.Logger) *OrderHandler {
	return &OrderHandler{Orders: orders, Placer: placer, Log: log}
}

// ListOrders handles GET /api/orders, newest first.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.Orders.List(c.Request.Context())
	if err != nil {
		h.Log.WithError(err).Error("failed to list orders")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "DATABASE_ERROR",
			Message: "Failed to load orders",
		})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// GetOrder handles GET /api/orders/{id}
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id := c.Param("id")
	order, err := h.Orders.Get(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "Order not found",
		})
		return
	}
	if err != nil {
		h.Log.WithError(err).WithField("order_id", id).Error("failed to load order")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "DATABASE_ERROR",
			Message: "Failed to load order",
		})
		return
	}
	c.JSON(http.StatusOK, order)
}

// CreateOrder handles POST /api/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	order, err := h.Placer.PlaceOrder(c.Request.Context(), req.Items, req.Note)
	switch {
	case errors.Is(err, service.ErrEmptyOrder):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Order must contain dishes",
		})
	case errors.Is(err, service.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Item quantities must be positive",
		})
	case err != nil:
		var unknown *service.UnknownDishError
		if errors.As(err, &unknown) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "UNKNOWN_DISH",
				Message: unknown.Error(),
			})
			return
		}
		h.Log.WithError(err).Error("failed to create order")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "ORDER_PROCESSING_ERROR",
			Message: "Failed to create order",
		})
	default:
		c.JSON(http.StatusCreated, order)
	}
}

// UpdateStatus handles PUT /api/orders/{id}/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	if !models.ValidOrderStatus(req.Status) {
		valid := strings.Join([]string{
			models.OrderStatusPending, models.OrderStatusCooking, models.OrderStatusReady,
			models.OrderStatusCompleted, models.OrderStatusCancelled,
		}, ", ")
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: fmt.Sprintf("Invalid status. Valid statuses: %s", valid),
		})
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")

	order, err := h.Orders.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "Order not found",
		})
		return
	}
	if err != nil {
		h.Log.WithError(err).WithField("order_id", id).Error("failed to load order")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "DATABASE_ERROR",
			Message: "Failed to load order",
		})
		return
	}

	order.Status = req.Status
	order.UpdatedAt = time.Now().Format(time.RFC3339)

	if err := h.Orders.Update(ctx, order); err != nil {
		h.Log.WithError(err).WithField("order_id", id).Error("failed to update order status")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "DATABASE_ERROR",
			Message: "Failed to update order",
		})
		return
	}

	h.Log.WithFields(logrus.Fields{"order_id": id, "status": req.Status}).Info("order status updated")
	c.JSON(http.StatusOK, order)
}

// DeleteOrder handles DELETE /api/orders/{id}
func (h *OrderHandler) DeleteOrder(c *gin.Context) {
	id := c.Param("id")
	err := h.Orders.Delete(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "Order not found",
		})
		return
	}
	if err != nil {
		h.Log.WithError(err).WithField("order_id", id).Error("failed to delete order")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "DATABASE_ERROR",
			Message: "Failed to delete order",
		})
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Order deleted"})
}
