// Package http exposes the catalog, portfolio content, contact relay and
// hosted desktops as a REST API.
//
// Desktop routes live under /desktops/:id. Mutations answer with the full
// desktop snapshot so a client can re-render from a single response.
// Errors are returned as {"error": "..."}:
//
//	400  malformed input
//	404  unknown desktop, window, app, icon or event
//	409  the session is not in a state that allows the action
//	502  the contact relay could not deliver
//	503  the desktop limit is reached
package http
