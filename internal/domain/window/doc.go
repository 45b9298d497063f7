// Package window owns the collection of open desktop windows.
//
// The Manager keeps window records in creation order together with the
// active window id, a monotonic z-index counter and a window id sequence.
// Counters are per Manager, so independent desktops never share them.
//
// Rules enforced here:
//   - At most one visible window per app. Opening an app focuses its visible
//     window, or restores its minimized one, before creating a new record.
//   - Every focus or open assigns a strictly greater z-index.
//   - The active id is empty or names a visible window. Minimizing or
//     closing the active window clears it; nothing is promoted in its place.
//   - Unknown ids are silent no-ops reported by a false return.
//   - Sizes are floored at 300x200. Positions are never clamped here, since
//     bounds depend on the live viewport.
//
// Sound cues are delivered through notify.Emit after the state change and
// outside the lock.
package window
