// Package notify carries fire-and-forget sound cues from the desktop core to
// whoever renders them.
//
// The core calls Emit after a state change has been applied. Emit never
// blocks and never propagates a panic from the receiving side, so a broken
// subscriber cannot corrupt window or session state.
//
// Bus fans events out to subscribers through buffered channels; a subscriber
// whose buffer is full misses the event.
package notify
