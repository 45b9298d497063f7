// Package main is the entry point for the deskos server.
//
// deskos hosts simulated desktops for a portfolio site. Each browser
// client gets its own desktop (windows, icons, session, notes and
// calendar) kept on the server and rendered by the browser.
//
// The server provides:
//   - REST API for desktops, apps, search and portfolio content
//   - WebSocket stream of desktop snapshots and sound cues
//   - Contact form relay
//   - Prometheus metrics
//
// Configuration:
//   - Environment variables (12-factor)
//   - CLI flags (override env vars)
//   - Defaults for development
//
// Usage:
//
//	# Production mode with on-disk desktops
//	./server -port 8000 -storage file
//
//	# Development mode (colored logs, debug level)
//	./server -dev
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
