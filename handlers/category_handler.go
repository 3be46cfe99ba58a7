package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Theo-jobs/family-ordering-system/models"
)

type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
}

type CategoryHandler struct {
	Categories CategoryStore
	Log        *logrus.Logger
}

func NewCategoryHandler(categories CategoryStore, log *logrus.Logger) *CategoryHandler {
	return &CategoryHandler{Categories: categories, Log: log}
}

// ListCategories handles GET /api/categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.Categories.List(c.Request.Context())
	if err != nil {
		h.Log.WithError(err).Error("failed to list categories")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "DATABASE_ERROR",
			Message: "Failed to load categories",
		})
		return
	}
	c.JSON(http.StatusOK, categories)
}
