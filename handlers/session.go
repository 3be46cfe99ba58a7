package handlers

import "github.com/gin-gonic/gin"

const (
	sessionHeader  = "X-Session-ID"
	defaultSession = "household"
)

// sessionID resolves the caller's session. A household install typically
// has a single shared session, so a missing header falls back to it.
func sessionID(c *gin.Context) string {
	if s := c.GetHeader(sessionHeader); s != "" {
		return s
	}
	return defaultSession
}
