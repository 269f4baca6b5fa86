package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ClearCache removes every cached price comparison. The location memo is
// cleared separately via ClearLocation.
// POST /internal/cache/clear
func (h *Handlers) ClearCache(c *gin.Context) {
	h.Cache.Clear(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
