package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status   string `json:"status"`
	Location string `json:"location"`
}

// HealthCheck reports service liveness. The pricing core has no hard
// external dependencies, so health is whether the process is serving.
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{Status: "ok", Location: "not resolved"}
	if loc, ok := h.Resolver.Cached(); ok {
		response.Location = loc.City
	}
	c.JSON(http.StatusOK, response)
}
