package http

import (
	"net/http"
	"time"

	"github.com/deskfolio/deskos/internal/infrastructure/monitoring"
	"github.com/gin-gonic/gin"
)

// MetricsSummary is the JSON view of the process metrics
type MetricsSummary struct {
	Timestamp time.Time                  `json:"timestamp"`
	Backend   monitoring.MetricsSnapshot `json:"backend"`
	ErrorRate float64                    `json:"errorRate"`
	Desktops  []string                   `json:"desktops"`
}

// MetricsSummary returns request totals, error rate and live desktops
func (h *Handlers) MetricsSummary(c *gin.Context) {
	snap := h.metrics.Snapshot()

	summary := MetricsSummary{
		Timestamp: time.Now(),
		Backend:   snap,
		Desktops:  []string{},
	}
	if snap.TotalRequests > 0 {
		summary.ErrorRate = float64(snap.TotalErrors) / float64(snap.TotalRequests)
	}
	if h.hub != nil {
		summary.Desktops = h.hub.IDs()
	}
	c.JSON(http.StatusOK, summary)
}
