package eshopserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthAPI serves liveness and the Prometheus scrape endpoint.
type HealthAPI struct {
	metrics http.Handler
}

// NewHealthAPI exposes metricsHandler on /metrics; nil disables it.
func NewHealthAPI(metricsHandler http.Handler) HealthAPI {
	return HealthAPI{metrics: metricsHandler}
}

// Get /healthz
func (api *HealthAPI) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Get /metrics
func (api *HealthAPI) Metrics(c *gin.Context) {
	if api.metrics == nil {
		c.Status(http.StatusNotFound)
		return
	}
	api.metrics.ServeHTTP(c.Writer, c.Request)
}
