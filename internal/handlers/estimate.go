package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamasphere/pricing-service/internal/location"
)

// EstimateRequest represents query parameters for a price estimate.
type EstimateRequest struct {
	Item string   `form:"item" binding:"required"`
	City string   `form:"city"`
	Lat  *float64 `form:"lat"`
	Lon  *float64 `form:"lon"`
}

// GetEstimate returns a multi-source price comparison for an item.
// GET /internal/prices/estimate?item=Onion&city=Mumbai
// When city is omitted the resolver's location is used. Estimation never
// fails: unknown items and cities resolve through documented fallbacks.
func (h *Handlers) GetEstimate(c *gin.Context) {
	var req EstimateRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loc := h.requestLocation(c, req.City, req.Lat, req.Lon)
	result := h.Estimator.Estimate(c.Request.Context(), req.Item, loc)

	c.JSON(http.StatusOK, gin.H{
		"location":   loc,
		"comparison": result,
	})
}

// requestLocation builds the location for a request: an explicit city
// wins, then explicit coordinates, then the resolver chain.
func (h *Handlers) requestLocation(c *gin.Context, city string, lat, lon *float64) location.Location {
	if city != "" {
		loc := location.Location{City: city}
		if lat != nil && lon != nil {
			loc.Coordinates = location.Coordinates{Latitude: *lat, Longitude: *lon}
		}
		return loc
	}
	return h.Resolver.Resolve(c.Request.Context())
}
