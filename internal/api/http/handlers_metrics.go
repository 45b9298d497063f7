package http

import (
	"time"

	"github.com/deskfolio/deskos/internal/infrastructure/monitoring"
)

// HandlerMetrics wraps handlers with metrics tracking
type HandlerMetrics struct {
	metrics *monitoring.Metrics
}

// NewHandlerMetrics creates a metrics wrapper. A nil metrics records nothing.
func NewHandlerMetrics(metrics *monitoring.Metrics) *HandlerMetrics {
	return &HandlerMetrics{metrics: metrics}
}

// TrackDesktopOperation times a shell operation. Call the returned
// function with the operation's error.
func (hm *HandlerMetrics) TrackDesktopOperation(operation string) func(error) {
	return hm.track("desktop", operation)
}

// TrackCatalogOperation times a registry, search or content read
func (hm *HandlerMetrics) TrackCatalogOperation(operation string) func(error) {
	return hm.track("catalog", operation)
}

func (hm *HandlerMetrics) track(service, operation string) func(error) {
	start := time.Now()
	return func(err error) {
		if hm.metrics == nil {
			return
		}
		status := "success"
		if err != nil {
			status = "error"
		}
		hm.metrics.RecordServiceCall(service, operation, status, time.Since(start))
	}
}
