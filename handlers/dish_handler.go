package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/Theo-jobs/family-ordering-system/models"
	"github.com/Theo-jobs/family-ordering-system/repository"
)

type DishStore interface {
	List(ctx context.Context) ([]models.Dish, error)
	ListByCategory(ctx context.Context, category string) ([]models.Dish, error)
	Get(ctx context.Context, id string) (models.Dish, error)
	Upsert(ctx context.Context, dish models.Dish) error
	Delete(ctx context.Context, id string) error
}

type ReviewStore interface {
	ListAll(ctx context.Context) ([]models.Review, error)
	ListByDish(ctx context.Context, dishID string) ([]models.Review, error)
	ListByDishes(ctx context.Context, dishIDs []string) ([]models.Review, error)
	Get(ctx context.Context, id string) (models.Review, error)
	Upsert(ctx context.Context, review models.Review) error
	Delete(ctx context.Context, id string) error
}

type DishHandler struct {
	Dishes  DishStore
	Reviews ReviewStore
	Log     *logrus.Logger
}

func NewDishHandler(dishes DishStore, reviews ReviewStore, log *logrus.Logger) *DishHandler {
	return &DishHandler{Dishes: dishes, Reviews: reviews, Log: log}
}

// ListDishes handles GET /api/dishes, optionally filtered with
// ?category={id}.
func (h *DishHandler) ListDishes(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		dishes []models.Dish
		err    error
	)
	if category := c.Query("category"); category != "" {
		dishes, err = h.Dishes.ListByCategory(ctx, category)
	} else {
		dishes, err = h.Dishes.List(ctx)
	}
	if err != nil {
		h.Log.WithError(err).Error("failed to list dishes")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "DATABASE_ERROR",
			Message: "Failed to load dishes",
		})
		return
	}

	reviews, err := h.Reviews.ListAll(ctx)
	if err != nil {
		h.Log.WithError(err).Error("failed to list reviews")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "DATABASE_ERROR",
			Message: "Failed to load reviews",
		})
		return
	}

	c.JSON(http.StatusOK, decorateDishes(dishes, reviews))
}

// GetDish handles GET /api/dishes/{id}; the response embeds the dish's
// reviews and average rating.
func (h *DishHandler) GetDish(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	dish, err := h.Dishes.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "Dish not found",
		})
		return
	}
	if err != nil {
		h.Log.WithError(err).WithField("dish_id", id).Error("failed to load dish")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "DATABASE_ERROR",
			Message: "Failed to load dish",
		})
		return
	}

	reviews, err := h.Reviews.ListByDish(ctx, id)
	if err != nil {
		h.Log.WithError(err).WithField("dish_id", id).Error("failed to load dish reviews")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "DATABASE_ERROR",
			Message: "Failed to load reviews",
		})
		return
	}

	out := models.DishWithRating{Dish: dish, Reviews: reviews}
	if len(reviews) > 0 {
		avg := averageRating(reviews)
		out.AvgRating = &avg
	}
	c.JSON(http.StatusOK, out)
}

// CreateDish handles POST /api/dishes
func (h *DishHandler) CreateDish(c *gin.Context) {
	var req models.CreateDishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	if req.Name == "" || req.Category == "" || req.Description == "" ||
		len(req.Ingredients) == 0 || len(req.Steps) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Name, category, price, description, ingredients and steps are required",
		})
		return
	}
	if !req.Price.OK || req.Price.Value < 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Price must be a non-negative number",
		})
		return
	}

	imagePath := req.ImagePath
	if imagePath == "" {
		// Image upload lives outside this service; fall back to the
		// category's stock image.
		imagePath = fmt.Sprintf("/static/images/dishes/default-%s.jpg", req.Category)
	}

	dish := models.Dish{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Category:    req.Category,
		Price:       req.Price.Value,
		Description: req.Description,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		ImagePath:   imagePath,
		Timestamp:   time.Now().Format(time.RFC3339),
	}

	if err := h.Dishes.Upsert(c.Request.Context(), dish); err != nil {
		h.Log.WithError(err).Error("failed to create dish")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "DATABASE_ERROR",
			Message: "Failed to create dish",
		})
		return
	}

	h.Log.WithFields(logrus.Fields{"dish_id": dish.ID, "name": dish.Name}).Info("dish created")
	c.JSON(http.StatusCreated, dish)
}

// UpdateDish handles PUT /api/dishes/{id}. Only the provided fields
// change; the id never does.
func (h *DishHandler) UpdateDish(c *gin.Context) {
	var req models.UpdateDishRequest
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

	dish, err := h.Dishes.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "Dish not found",
		})
		return
	}
	if err != nil {
		h.Log.WithError(err).WithField("dish_id", id).Error("failed to load dish")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "DATABASE_ERROR",
			Message: "Failed to load dish",
		})
		return
	}

	if req.Name != nil {
		dish.Name = *req.Name
	}
	if req.Category != nil {
		dish.Category = *req.Category
	}
	if req.Price != nil {
		if !req.Price.OK || req.Price.Value < 0 {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error:   "INVALID_INPUT",
				Message: "Price must be a non-negative number",
			})
			return
		}
		dish.Price = req.Price.Value
	}
	if req.Description != nil {
		dish.Description = *req.Description
	}
	if req.Ingredients != nil {
		dish.Ingredients = *req.Ingredients
	}
	if req.Steps != nil {
		dish.Steps = *req.Steps
	}
	if req.ImagePath != nil {
		dish.ImagePath = *req.ImagePath
	}
	dish.Timestamp = time.Now().Format(time.RFC3339)

	if err := h.Dishes.Upsert(ctx, dish); err != nil {
		h.Log.WithError(err).WithField("dish_id", id).Error("failed to update dish")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "DATABASE_ERROR",
			Message: "Failed to update dish",
		})
		return
	}

	c.JSON(http.StatusOK, dish)
}

// DeleteDish handles DELETE /api/dishes/{id}
func (h *DishHandler) DeleteDish(c *gin.Context) {
	id := c.Param("id")
	err := h.Dishes.Delete(c.Request.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error:   "NOT_FOUND",
			Message: "Dish not found",
		})
		return
	}
	if err != nil {
		h.Log.WithError(err).WithField("dish_id", id).Error("failed to delete dish")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "DATABASE_ERROR",
			Message: "Failed to delete dish",
		})
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "Dish deleted"})
}

// decorateDishes attaches each dish's average rating and a teaser of its
// most recent review comment.
func decorateDishes(dishes []models.Dish, reviews []models.Review) []models.DishWithRating {
	byDish := make(map[string][]models.Review)
	for _, r := range reviews {
		byDish[r.DishID] = append(byDish[r.DishID], r)
	}

	out := make([]models.DishWithRating, 0, len(dishes))
	for _, d := range dishes {
		dr := models.DishWithRating{Dish: d}
		if rs := byDish[d.ID]; len(rs) > 0 {
			avg := averageRating(rs)
			dr.AvgRating = &avg
			latest := latestReviewTeaser(rs)
			dr.LatestReview = &latest
		}
		out = append(out, dr)
	}
	return out
}

func averageRating(reviews []models.Review) float64 {
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

func latestReviewTeaser(reviews []models.Review) string {
	latest := reviews[0]
	for _, r := range reviews[1:] {
		if r.Timestamp > latest.Timestamp {
			latest = r
		}
	}

	comment := []rune(latest.Comment)
	if len(comment) > 50 {
		return string(comment[:50]) + "..."
	}
	return latest.Comment
}
