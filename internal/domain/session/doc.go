// Package session provides the lifecycle state machine of the simulated OS.
//
// The Controller owns the coarse machine state and the overlay flags that
// only matter while the desktop is running.
//
// State Chain:
//
//	booting ──(boot timer)──▶ locked ──(unlock)──▶ running
//	   ▲                        ▲  ◀──(lock)──────┘   │
//	   │                        └──(shutdown)─┐      (shutdown)
//	   │                                      ▼        ▼
//	   └──(power on)── off ◀──(timer)── shutting_down
//
// Timers:
//   - Boot completion fires BootDuration after entering booting
//   - Off follows ShutdownDuration after entering shutting_down
//
// Timers come from a clock.Scheduler so tests can drive them with a manual
// clock. Each scheduled callback captures a generation number; a callback
// whose generation is stale (the controller moved on or was closed) does
// nothing.
//
// Illegal transitions return false and leave state untouched.
//
// Example Usage:
//
//	ctrl := session.NewController(session.DefaultConfig(), clock.Real(), windows, bus, log)
//	defer ctrl.Close()
//	ctrl.Unlock()
//	ctrl.ToggleStartMenu()
package session
