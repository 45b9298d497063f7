// Package layout places desktop icons and keeps their positions persisted.
//
// Icons start on a default grid filled left to right, top to bottom. Drags
// are clamped into the desktop area above the taskbar and written through
// to storage as one JSON array under the desktop-icon-positions key.
// Missing or corrupt saved layouts fall back to the default grid.
package layout
