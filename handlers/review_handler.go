package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Theo-jobs/family-ordering-system/models"
	"github.com/Theo-jobs/family-ordering-system/repository"
)

type ReviewHandler struct {
	Reviews ReviewStore
	Orders  OrderStore
	Log     *logrus.Logger
}

func NewReviewHandler(reviews ReviewStore, orders OrderStore, log *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews, Orders: orders, Log: log}
}

// ListReviews handles GET /api/reviews
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	reviews, err := h.Reviews.ListAll(c.Request.Context())
	if err != nil {
		h.Log.WithError(err).Error("failed to list reviews")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "DATABASE_ERROR",
			Message: "Failed to load reviews",
		})
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// ListByDish handles GET /api/reviews/dish/{id}
func (h *ReviewHandler) ListByDish(c *gin.Context) {
	reviews, err := h.Reviews.ListByDish(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.Log.WithError(err).Error("failed to list dish reviews")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "DATABASE_ERROR",
			Message: "Failed to load reviews",
		})
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// ListByOrder handles GET /api/reviews/order/{id}: the reviews of every
// dish that appears in the order.
func (h *ReviewHandler) ListByOrder(c *gin.Context) {
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

	dishIDs := make([]string, 0, len(order.Items))
	for _, it := range order.Items {
		dishIDs = append(dishIDs, it.DishID)
	}

	reviews, err := h.Reviews.ListByDishes(ctx, dishIDs)
	if err != nil {
		h.Log.WithError(err).WithField("order_id", id).Error("failed to load order reviews")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "DATABASE_ERROR",
			Message: "Failed to load reviews",
		})
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// CreateReview handles POST /api/reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	if req.DishID == "" || req.Comment == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Dish id, rating and comment are required",
		})
		return
	}
	rating := req.Rating.IntOr(0)
	if rating < 1 || rating > 5 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Rating must be between 1 and 5",
		})
		return
	}

	userName := req.UserName
	if userName == "" {
		userName = "Anonymous"
	}
	imagePaths := req.ImagePaths
	if imagePaths == nil {
		imagePaths = []string{}
	}

	review := models.Review{
		ID:         uuid.NewString(),
		DishID:     req.DishID,
		Rating:     rating,
		Comment:    req.Comment,
		ImagePaths: imagePaths,
		UserName:   userName,
		Timestamp:  time.Now().Format(time.RFC3339),
	}

	if err := h.Reviews.Upsert(c.Request.Context(), review); err != nil {
		h.Log.WithError(err).Error("failed to create review")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "DATABASE_ERROR",
			Message: "Failed to create review",
		})
		return
	}

	c.JSON(http.StatusCreated, review)
}

// UpdateReview handles PUT /api/reviews/{id}. The review id and dish id
// never change; new image paths are appended.
func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	var req models.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	id := c.Param("id")

	review, err := h.Reviews.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "Review not found",
		})
		return
	}
	if err != nil {
		h.Log.WithError(err).WithField("review_id", id).Error("failed to load review")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "DATABASE_ERROR",
			Message: "Failed to load review",
		})
		return
	}

	if req.Rating != nil {
		rating := req.Rating.IntOr(0)
		if rating < 1 || rating > 5 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "INVALID_INPUT",
				Message: "Rating must be between 1 and 5",
			})
			return
		}
		review.Rating = rating
	}
	if req.Comment != nil {
		review.Comment = *req.Comment
	}
	if req.UserName != nil {
		review.UserName = *req.UserName
	}
	review.ImagePaths = append(review.ImagePaths, req.ImagePaths...)
	review.UpdatedAt = time.Now().Format(time.RFC3339)

	if err := h.Reviews.Upsert(ctx, review); err != nil {
		h.Log.WithError(err).WithField("review_id", id).Error("failed to update review")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "DATABASE_ERROR",
			Message: "Failed to update review",
		})
		return
	}

	c.JSON(http.StatusOK, review)
}

// DeleteReview handles DELETE /api/reviews/{id}
func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	id := c.Param("id")
	err := h.Reviews.Delete(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "Review not found",
		})
		return
	}
	if err != nil {
		h.Log.WithError(err).WithField("review_id", id).Error("failed to delete review")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "DATABASE_ERROR",
			Message: "Failed to delete review",
		})
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Review deleted"})
}
