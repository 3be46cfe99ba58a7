package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Theo-jobs/family-ordering-system/notify"
)

type NotificationHandler struct {
	Notify *notify.Center
}

func NewNotificationHandler(center *notify.Center) *NotificationHandler {
	return &NotificationHandler{Notify: center}
}

// GetNotifications handles GET /api/notifications: the session's current
// banner, toast and badge-pulse counter.
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, h.Notify.Snapshot(sessionID(c)))
}
