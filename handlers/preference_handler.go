package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Theo-jobs/family-ordering-system/models"
)

// ThemeStore keeps the per-session theme preference, separate from the
// cart snapshot.
type ThemeStore interface {
	LoadTheme(ctx context.Context, session string) string
	SaveTheme(ctx context.Context, session, theme string) error
}

type PreferenceHandler struct {
	Themes ThemeStore
	Log    *logrus.Logger
}

func NewPreferenceHandler(themes ThemeStore, log *logrus.Logger) *PreferenceHandler {
	return &PreferenceHandler{Themes: themes, Log: log}
}

type themePayload struct {
	Theme string `json:"theme"`
}

// GetTheme handles GET /api/preferences/theme
func (h *PreferenceHandler) GetTheme(c *gin.Context) {
	theme := h.Themes.LoadTheme(c.Request.Context(), sessionID(c))
	if theme == "" {
		theme = "light"
	}
	c.JSON(http.StatusOK, themePayload{Theme: theme})
}

// PutTheme handles PUT /api/preferences/theme
func (h *PreferenceHandler) PutTheme(c *gin.Context) {
	var req themePayload
	if err := c.ShouldBindJSON(&req); err != nil || req.Theme == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "A theme name is required",
		})
		return
	}

	session := sessionID(c)
	if err := h.Themes.SaveTheme(c.Request.Context(), session, req.Theme); err != nil {
		h.Log.WithError(err).WithField("session", session).Warn("failed to save theme preference")
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Error:   "STORAGE_ERROR",
			Message: "Failed to save theme preference",
		})
		return
	}
	c.JSON(http.StatusOK, req)
}
