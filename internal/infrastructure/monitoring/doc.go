/*
Package monitoring provides metrics collection for the desktop server.

# Overview

Metrics live on a private Prometheus registry owned by each Metrics value,
so tests and multiple servers in one process never collide on registration.

# Features

- HTTP request metrics (latency, throughput, size) keyed by route template
- Desktop metrics (live desktops, windows opened and closed, session
  transitions, icon moves, search outcomes)
- Outbound call metrics for the contact relay
- WebSocket connection metrics
- Uptime and Go runtime collectors

# Usage

	metrics := monitoring.NewMetrics()
	router.Use(monitoring.Middleware(metrics))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	manager := window.NewManager(bus, log).WithMetrics(metrics)

	timer := monitoring.NewTimer(metrics, "contact", "send")
	// ... perform call ...
	timer.Stop("success")
*/
package monitoring
