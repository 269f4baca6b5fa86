package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// InsightsRequest represents query parameters for a market insight.
type InsightsRequest struct {
	City string `form:"city"`
}

// GetInsights returns a location-wide market summary.
// GET /internal/insights?city=Jaipur
func (h *Handlers) GetInsights(c *gin.Context) {
	var req InsightsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loc := h.requestLocation(c, req.City, nil, nil)
	insight := h.Aggregator.Summarize(c.Request.Context(), loc)

	c.JSON(http.StatusOK, gin.H{
		"location": loc,
		"insight":  insight,
	})
}
