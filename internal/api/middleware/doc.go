// Package middleware provides the HTTP middleware stack of the desktop API.
//
//   - CORS: cross-origin access for the browser client
//   - RateLimit: per-IP token buckets with idle eviction
//   - RequestID: X-Request-ID propagation (ULID when absent)
//   - AccessLog: one zap line per request
//
// Example Usage:
//
//	router.Use(middleware.RequestID(), middleware.AccessLog(log))
//	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
//	router.Use(middleware.RateLimit(middleware.DefaultRateLimitConfig()))
package middleware
