// Package ws streams a hosted desktop to the browser over WebSocket.
//
// A client connects to /desktops/:id/stream and receives the desktop
// snapshot right away, then again whenever it changes. Sound cues are
// forwarded as they happen.
//
// Message Types (Client → Server):
//   - ping: Keep-alive ping
//   - snapshot: Ask for the current snapshot
//
// Message Types (Server → Client):
//   - snapshot: Full desktop state
//   - notification: A sound cue (startup, login, shutdown, click, ...)
//   - pong: Reply to ping
//   - closed: The desktop was stopped; the connection closes next
//   - error: The last client message was not understood
//
// Example Usage:
//
//	handler := ws.NewHandler(hub, ws.DefaultConfig(), log).WithMetrics(metrics)
//	router.GET("/desktops/:id/stream", handler.HandleConnection)
package ws
