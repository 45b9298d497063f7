package desktop

import (
	"github.com/deskfolio/deskos/internal/domain/preferences"
	"github.com/deskfolio/deskos/internal/shared/types"
)

// FallbackIcon is shown for taskbar entries of unregistered apps
const FallbackIcon = "📱"

// Snapshot is everything a client needs to render the desktop. Desktop
// content is only present while the session is running.
type Snapshot struct {
	DesktopID   string                  `json:"desktopId"`
	Session     types.SessionSnapshot   `json:"session"`
	Viewport    types.Viewport          `json:"viewport"`
	Preferences preferences.Preferences `json:"preferences"`

	Icons     []IconView          `json:"icons,omitempty"`
	Windows   []WindowView        `json:"windows,omitempty"`
	Taskbar   []TaskbarItem       `json:"taskbar,omitempty"`
	StartMenu []types.AppMetadata `json:"startMenu,omitempty"`
	Stats     *types.WindowStats  `json:"stats,omitempty"`
}

// IconView is a desktop icon with its label
type IconView struct {
	types.IconPosition
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// WindowContent says what renders inside a window
type WindowContent struct {
	Component   string `json:"component,omitempty"`
	Found       bool   `json:"found"`
	Placeholder string `json:"placeholder,omitempty"`
}

// WindowView is a window record plus render details
type WindowView struct {
	types.WindowRecord
	Active  bool          `json:"active"`
	Icon    string        `json:"icon"`
	Content WindowContent `json:"content"`
}

// TaskbarItem is one taskbar button, in window creation order
type TaskbarItem struct {
	WindowID  string `json:"windowId"`
	AppID     string `json:"appId"`
	Title     string `json:"title"`
	Icon      string `json:"icon"`
	Active    bool   `json:"active"`
	Minimized bool   `json:"minimized"`
}

// Snapshot renders the current desktop state
func (s *Shell) Snapshot() Snapshot {
	snap := Snapshot{
		DesktopID:   s.id,
		Session:     s.session.Snapshot(),
		Viewport:    s.Viewport(),
		Preferences: s.prefs.Get(),
	}
	if snap.Session.State != types.SessionRunning {
		return snap
	}

	for _, p := range s.icons.Positions() {
		iv := IconView{IconPosition: p}
		if app, ok := s.registry.Get(p.AppID); ok {
			iv.Name = app.Name
			iv.Icon = app.Icon
		}
		snap.Icons = append(snap.Icons, iv)
	}

	active := s.windows.ActiveID()
	for _, rec := range s.windows.List() {
		isActive := active != nil && *active == rec.ID
		icon := FallbackIcon
		content := WindowContent{Placeholder: PlaceholderText}
		if app, ok := s.registry.Get(rec.AppID); ok {
			icon = app.Icon
			if _, ok := s.views.Lookup(app.Component); ok {
				content = WindowContent{Component: app.Component, Found: true}
			}
		}

		snap.Windows = append(snap.Windows, WindowView{
			WindowRecord: rec,
			Active:       isActive,
			Icon:         icon,
			Content:      content,
		})
		snap.Taskbar = append(snap.Taskbar, TaskbarItem{
			WindowID:  rec.ID,
			AppID:     rec.AppID,
			Title:     rec.Title,
			Icon:      icon,
			Active:    isActive,
			Minimized: rec.IsMinimized,
		})
	}

	if snap.Session.Overlays.StartMenuOpen {
		snap.StartMenu = s.registry.List()
	}
	stats := s.windows.Stats()
	snap.Stats = &stats
	return snap
}
