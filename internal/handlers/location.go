package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetLocation returns the resolved caller location. The first call walks
// the detection chain; later calls serve the memoized result.
// GET /internal/location
func (h *Handlers) GetLocation(c *gin.Context) {
	_, cached := h.Resolver.Cached()
	loc := h.Resolver.Resolve(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"location": loc,
		"cached":   cached,
	})
}

// ClearLocation drops the memoized location so the next request resolves
// afresh. POST /internal/location/clear
func (h *Handlers) ClearLocation(c *gin.Context) {
	h.Resolver.ClearCached()
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
