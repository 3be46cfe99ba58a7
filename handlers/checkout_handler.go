package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Theo-jobs/family-ordering-system/checkout"
	"github.com/Theo-jobs/family-ordering-system/models"
	"github.com/Theo-jobs/family-ordering-system/service"
)

type CheckoutHandler struct {
	Coordinator *checkout.Coordinator
	Log         *logrus.Logger
}

func NewCheckoutHandler(coordinator *checkout.Coordinator, log *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{Coordinator: coordinator, Log: log}
}

// Checkout handles POST /api/cart/checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req models.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	session := sessionID(c)
	order, err := h.Coordinator.Checkout(c.Request.Context(), session, req.Note)
	switch {
	case errors.Is(err, checkout.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "EMPTY_CART",
			Message: "Cannot checkout an empty cart",
		})
	case errors.Is(err, checkout.ErrCheckoutInFlight):
		c.JSON(http.StatusConflict, models.ErrorResponse{
			Error:   "CHECKOUT_IN_FLIGHT",
			Message: "A checkout is already in progress for this cart",
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
		h.Log.WithError(err).WithField("session", session).Error("checkout failed")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "ORDER_PROCESSING_ERROR",
			Message: "Failed to submit order",
		})
	default:
		c.JSON(http.StatusCreated, order)
	}
}
