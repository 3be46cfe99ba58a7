package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Theo-jobs/family-ordering-system/cart"
	"github.com/Theo-jobs/family-ordering-system/models"
)

type CartHandler struct {
	Carts *cart.Manager
	Log   *logrus.Logger
}

func NewCartHandler(carts *cart.Manager, log *logrus.Logger) *CartHandler {
	return &CartHandler{Carts: carts, Log: log}
}

func (h *CartHandler) view(eng *cart.Engine) models.CartView {
	return models.CartView{
		Items:      eng.Items(),
		TotalItems: eng.TotalItemCount(),
		TotalPrice: eng.TotalPrice(),
	}
}

// GetCart handles GET /api/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	eng := h.Carts.Get(c.Request.Context(), sessionID(c))
	c.JSON(http.StatusOK, h.view(eng))
}

// AddItem handles POST /api/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var candidate models.CartCandidate
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	if candidate.DishID == "" && candidate.ID == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "A dish id is required",
		})
		return
	}

	eng := h.Carts.Get(c.Request.Context(), sessionID(c))
	eng.Add(c.Request.Context(), candidate)
	c.JSON(http.StatusOK, h.view(eng))
}

// UpdateItem handles PUT /api/cart/items/{dishId}
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	eng := h.Carts.Get(c.Request.Context(), sessionID(c))
	if !eng.UpdateQuantity(c.Request.Context(), c.Param("dishId"), req.Quantity) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "Dish is not in the cart",
		})
		return
	}
	c.JSON(http.StatusOK, h.view(eng))
}

// RemoveItem handles DELETE /api/cart/items/{dishId}
func (h *CartHandler) RemoveItem(c *gin.Context) {
	eng := h.Carts.Get(c.Request.Context(), sessionID(c))
	if !eng.Remove(c.Request.Context(), c.Param("dishId")) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "Dish is not in the cart",
		})
		return
	}
	c.JSON(http.StatusOK, h.view(eng))
}

// ClearCart handles DELETE /api/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	eng := h.Carts.Get(c.Request.Context(), sessionID(c))
	eng.Clear(c.Request.Context())
	c.JSON(http.StatusOK, h.view(eng))
}
