package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /health
// Liveness only: the process never becomes ready without loaded tables, so
// reaching this handler means the data is in memory.
func (h API) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"trips":   len(h.Snap.Trips),
		"drivers": len(h.Snap.Drivers),
	})
}
