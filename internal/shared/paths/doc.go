// Package paths provides the on-disk layout of persisted desktop state.
//
// Every storage key maps to one JSON file below the storage root. Keys are
// slash separated; each segment must be a safe path component, so a key can
// never escape the root.
//
// # Directory Structure
//
//	<root>/
//	  ├── .deskos.lock                       (cross-process write lock)
//	  ├── shared/                            (state shared by all desktops)
//	  └── desktops/
//	      └── desk_01H.../
//	          ├── desktop-icon-positions.json
//	          ├── os-notes.json
//	          ├── os-calendar-events.json
//	          └── os-preferences.json
//
// # Usage
//
//	key := paths.DesktopKey("desk_01H...", "os-notes")
//	file, err := paths.BlobFile("/var/lib/deskos", key)
package paths
