// Package types provides shared data structures for the desktop backend.
//
// This package defines the records passed between the window manager, the
// session controller, the icon layout store, the search index and the HTTP
// layer, so that none of them has to import another just for its types.
//
// Core Types:
//   - WindowRecord: One open or minimized application instance
//   - AppMetadata: Immutable registry entry for an installable app
//   - IconPosition: Desktop icon placement
//   - SessionState: Coarse lifecycle stage of the simulated OS
//   - SearchResult: Ranked search match with a bound open action
//
// Geometry:
//   - Position, Size: Window and icon coordinates in desktop pixels
//   - Viewport: Live client viewport reported by the browser
//
// Example Usage:
//
//	rec := types.WindowRecord{
//	    ID:       "window-0",
//	    AppID:    "projects",
//	    Title:    "Projects",
//	    Position: types.Position{X: 100, Y: 80},
//	    Size:     types.Size{Width: 900, Height: 650},
//	}
package types
