// Package blobs persists the small per-desktop documents edited by the
// notes and calendar apps.
//
// Notes are one plain text blob. Calendar events are a JSON array. Both
// live in the desktop's namespaced KV and absorb corrupt or missing data
// by starting empty.
package blobs
