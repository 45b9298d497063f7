// Package server wires configuration, storage, the app catalog, the desktop
// hub and the HTTP API into a runnable server.
//
// Server Lifecycle:
//  1. Load configuration from environment/flags
//  2. Initialize logger (production or development)
//  3. Open storage and seed the app catalog
//  4. Load portfolio content and the resume
//  5. Create the desktop hub
//  6. Setup HTTP routes and middleware
//  7. Start HTTP server
//  8. Graceful shutdown on signal
//
// Middleware order: recovery, request id, access log, metrics, CORS and
// the per-IP rate limit. Responses are gzip compressed.
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	srv, err := server.NewServer(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	go srv.Run()
//	...
//	srv.Shutdown(ctx)
package server
