package types

// Position is a top-left point in desktop coordinate space
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size represents window dimensions
type Size struct {
	Width  int `json:"width" yaml:"width" toml:"width"`
	Height int `json:"height" yaml:"height" toml:"height"`
}

// Viewport is the visible desktop area reported by the client
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// WindowRecord represents one open or minimized application instance
type WindowRecord struct {
	ID          string   `json:"id"`
	AppID       string   `json:"appId"`
	Title       string   `json:"title"`
	IsMinimized bool     `json:"isMinimized"`
	IsMaximized bool     `json:"isMaximized"`
	Position    Position `json:"position"` // Meaningful only when not maximized
	Size        Size     `json:"size"`     // Meaningful only when not maximized
	ZIndex      int64    `json:"zIndex"`
}

// WindowStats contains window manager statistics
type WindowStats struct {
	Total          int     `json:"total"`
	Visible        int     `json:"visible"`
	Minimized      int     `json:"minimized"`
	Maximized      int     `json:"maximized"`
	ActiveWindowID *string `json:"activeWindowId,omitempty"`
	TopZIndex      int64   `json:"topZIndex"`
}
