// Package config provides 12-factor configuration for the desktop server.
//
// Configuration is loaded from environment variables with sensible defaults.
// CLI flags can override environment variables for development flexibility.
//
// Configuration Sections:
//   - Server: HTTP listen address (PORT, HOST)
//   - Logging: level and output format (LOG_LEVEL, LOG_DEV)
//   - RateLimit: per-IP limits (RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED)
//   - Storage: where desktops persist (STORAGE_DRIVER, STORAGE_PATH)
//   - Desktop: viewport, animation timings and the desktop cap
//     (DESKTOP_VIEWPORT_WIDTH, DESKTOP_VIEWPORT_HEIGHT, BOOT_DURATION,
//     SHUTDOWN_DURATION, MAX_DESKTOPS)
//   - Catalog: extra apps and content (CATALOG_DIR, CONTENT_FILE, RESUME_FILE)
//   - Contact: mail relay (CONTACT_RELAY_URL, CONTACT_TIMEOUT)
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s\n", cfg.Server.Addr())
package config
