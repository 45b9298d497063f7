package types

// SessionState represents the coarse lifecycle stage of the simulated OS
type SessionState string

const (
	SessionBooting      SessionState = "booting"
	SessionLocked       SessionState = "locked"
	SessionRunning      SessionState = "running"
	SessionShuttingDown SessionState = "shutting_down"
	SessionOff          SessionState = "off"
)

// Overlays holds the overlay flags that are only meaningful while running
type Overlays struct {
	StartMenuOpen bool `json:"startMenuOpen"`
	SearchOpen    bool `json:"searchOpen"`
}

// SessionSnapshot is a point-in-time view of the session controller
type SessionSnapshot struct {
	State        SessionState `json:"state"`
	Overlays     Overlays     `json:"overlays"`
	BootProgress int          `json:"bootProgress,omitempty"`
	BootMessage  string       `json:"bootMessage,omitempty"`
}
