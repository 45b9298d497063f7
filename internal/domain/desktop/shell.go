package desktop

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/deskfolio/deskos/internal/domain/content"
	"github.com/deskfolio/deskos/internal/domain/layout"
	"github.com/deskfolio/deskos/internal/domain/preferences"
	"github.com/deskfolio/deskos/internal/domain/registry"
	"github.com/deskfolio/deskos/internal/domain/search"
	"github.com/deskfolio/deskos/internal/domain/session"
	"github.com/deskfolio/deskos/internal/domain/window"
	"github.com/deskfolio/deskos/internal/infrastructure/monitoring"
	"github.com/deskfolio/deskos/internal/providers/blobs"
	"github.com/deskfolio/deskos/internal/providers/notify"
	"github.com/deskfolio/deskos/internal/providers/storage"
	"github.com/deskfolio/deskos/internal/shared/clock"
	"github.com/deskfolio/deskos/internal/shared/paths"
	"github.com/deskfolio/deskos/internal/shared/types"
	"go.uber.org/zap"
)

var (
	ErrNotInteractive    = errors.New("desktop is not running")
	ErrUnknownApp        = errors.New("unknown app")
	ErrNotFound          = errors.New("window not found")
	ErrInvalidTransition = errors.New("session transition not allowed")
	ErrInvalidViewport   = errors.New("invalid viewport")
)

// Viewport limits
const (
	MaxViewportSide = 16384
)

// DefaultViewport is used until the client reports its own
var DefaultViewport = types.Viewport{Width: 1920, Height: 1080}

// Source tells where a launch gesture came from
type Source string

const (
	SourceIcon      Source = "icon"
	SourceStartMenu Source = "start_menu"
	SourceSearch    Source = "search"
)

// Config contains per-shell settings
type Config struct {
	Viewport types.Viewport
	Session  session.Config
}

// Deps are the collaborators shared by every shell of a process
type Deps struct {
	Registry  *registry.Registry
	Search    *search.Index
	Views     *Views
	Storage   storage.KV
	Scheduler clock.Scheduler
	Metrics   *monitoring.Metrics
	Log       *zap.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Registry == nil {
		d.Registry = registry.NewDefault()
	}
	if d.Search == nil {
		d.Search = search.NewIndex(d.Registry, content.Default())
	}
	if d.Views == nil {
		d.Views = DefaultViews(d.Registry.List())
	}
	if d.Storage == nil {
		d.Storage = storage.NewMemory()
	}
	if d.Scheduler == nil {
		d.Scheduler = clock.Real()
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return d
}

// Shell is one hosted desktop
type Shell struct {
	id string

	// gate is read-held by gestures and write-held by session transitions,
	// so no gesture lands after a transition has left running
	gate sync.RWMutex

	mu       sync.RWMutex
	viewport types.Viewport         // Protected by mu
	mounts   map[string]mountedView // Keyed by window id, protected by mu

	windows  *window.Manager
	session  *session.Controller
	icons    *layout.Store
	prefs    *preferences.Store
	notes    *blobs.Notes
	calendar *blobs.Calendar
	bus      *notify.Bus

	registry *registry.Registry
	search   *search.Index
	views    *Views
	metrics  *monitoring.Metrics
	log      *zap.Logger
}

type mountedView struct {
	view  AppView
	appID string
}

// NewShell creates a desktop in the booting state. Persisted data is read
// from deps.Storage under the desktop's own prefix.
func NewShell(desktopID string, cfg Config, deps Deps) *Shell {
	deps = deps.withDefaults()
	if cfg.Viewport.Width <= 0 || cfg.Viewport.Height <= 0 {
		cfg.Viewport = DefaultViewport
	}

	log := deps.Log.With(zap.String("desktop_id", desktopID))
	kv := storage.WithPrefix(deps.Storage, paths.DesktopPrefix(desktopID))

	s := &Shell{
		id:       desktopID,
		viewport: cfg.Viewport,
		mounts:   make(map[string]mountedView),
		registry: deps.Registry,
		search:   deps.Search,
		views:    deps.Views,
		metrics:  deps.Metrics,
		log:      log,
	}

	s.prefs = preferences.NewStore(kv, log.Named("preferences"))
	s.notes = blobs.NewNotes(kv, log.Named("notes"))
	s.calendar = blobs.NewCalendar(kv, log.Named("calendar"))
	s.bus = notify.NewBus(desktopID, deps.Scheduler.Now)
	cues := notify.NewGate(s.bus, func() bool { return !s.prefs.Muted() })

	s.windows = window.NewManager(cues, log.Named("windows")).
		WithMetrics(deps.Metrics).
		WithHooks(window.Hooks{OnCreate: s.mount, OnRemove: s.unmount})

	s.icons = layout.NewStore(kv, log.Named("icons")).WithMetrics(deps.Metrics)
	s.icons.Init(s.registry.IDs(), cfg.Viewport.Width, cfg.Viewport.Height)

	s.session = session.NewController(cfg.Session, deps.Scheduler, s.windows, cues, log.Named("session")).
		WithMetrics(deps.Metrics).
		WithObserver(func(from, to types.SessionState) {
			log.Info("session state changed", zap.String("from", string(from)), zap.String("to", string(to)))
		})

	return s
}

// ID returns the desktop id
func (s *Shell) ID() string {
	return s.id
}

// Bus returns the notification bus of the desktop
func (s *Shell) Bus() *notify.Bus {
	return s.bus
}

// Close cancels pending session timers and the notification bus
func (s *Shell) Close() {
	s.session.Close()
	s.bus.Close()
}

// State returns the session state
func (s *Shell) State() types.SessionState {
	return s.session.State()
}

// interactive runs fn while the session is held in running
func (s *Shell) interactive(fn func() error) error {
	s.gate.RLock()
	defer s.gate.RUnlock()
	if !s.session.IsInteractive() {
		return ErrNotInteractive
	}
	return fn()
}

// Launch opens, restores or focuses the window of appID
func (s *Shell) Launch(appID string, from Source) (string, error) {
	var windowID string
	err := s.interactive(func() error {
		app, ok := s.registry.Get(appID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrUnknownApp, appID)
		}

		size := app.DefaultSize
		windowID = s.windows.Open(app.ID, app.Name, &size)

		switch from {
		case SourceStartMenu:
			s.session.SetStartMenuOpen(false)
		case SourceSearch:
			s.session.SetSearchOpen(false)
		}
		return nil
	})
	return windowID, err
}

// TaskbarClick minimizes the active window, otherwise focuses (and
// restores) the clicked one
func (s *Shell) TaskbarClick(windowID string) error {
	return s.interactive(func() error {
		rec, ok := s.windows.Get(windowID)
		if !ok {
			return fmt.Errorf("%w: %s", ErrNotFound, windowID)
		}
		if s.windows.IsActive(windowID) && !rec.IsMinimized {
			s.windows.Minimize(windowID)
			return nil
		}
		s.windows.Focus(windowID)
		return nil
	})
}

// CloseWindow removes a window
func (s *Shell) CloseWindow(windowID string) error {
	return s.windowOp(windowID, s.windows.Close)
}

// MinimizeWindow hides a window
func (s *Shell) MinimizeWindow(windowID string) error {
	return s.windowOp(windowID, s.windows.Minimize)
}

// MaximizeWindow toggles the maximized flag
func (s *Shell) MaximizeWindow(windowID string) error {
	return s.windowOp(windowID, s.windows.Maximize)
}

// FocusWindow raises and activates a window
func (s *Shell) FocusWindow(windowID string) error {
	return s.windowOp(windowID, s.windows.Focus)
}

// MoveWindow sets a window's top-left corner
func (s *Shell) MoveWindow(windowID string, pos types.Position) error {
	return s.windowOp(windowID, func(id string) bool { return s.windows.UpdatePosition(id, pos) })
}

// ResizeWindow sets a window's size, floored at the minimum
func (s *Shell) ResizeWindow(windowID string, size types.Size) error {
	return s.windowOp(windowID, func(id string) bool { return s.windows.UpdateSize(id, size) })
}

func (s *Shell) windowOp(windowID string, op func(string) bool) error {
	return s.interactive(func() error {
		if !op(windowID) {
			return fmt.Errorf("%w: %s", ErrNotFound, windowID)
		}
		return nil
	})
}

// Window returns a copy of one window record
func (s *Shell) Window(windowID string) (types.WindowRecord, error) {
	rec, ok := s.windows.Get(windowID)
	if !ok {
		return types.WindowRecord{}, fmt.Errorf("%w: %s", ErrNotFound, windowID)
	}
	return *rec, nil
}

// Icons returns the desktop icon layout
func (s *Shell) Icons() []types.IconPosition {
	return s.icons.Positions()
}

// MoveIcon drops an icon at x,y, constrained to the visible desktop
func (s *Shell) MoveIcon(appID string, x, y float64) (types.IconPosition, error) {
	var pos types.IconPosition
	err := s.interactive(func() error {
		vp := s.Viewport()
		var err error
		pos, err = s.icons.Move(appID, x, y, vp.Width, vp.Height)
		return err
	})
	return pos, err
}

// ResetIcons restores the default grid
func (s *Shell) ResetIcons() ([]types.IconPosition, error) {
	var icons []types.IconPosition
	err := s.interactive(func() error {
		vp := s.Viewport()
		icons = s.icons.Reset(s.registry.IDs(), vp.Width, vp.Height)
		return nil
	})
	return icons, err
}

// Viewport returns the last reported viewport
func (s *Shell) Viewport() types.Viewport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.viewport
}

// SetViewport records the client's visible desktop area. Later icon
// moves are constrained to it.
func (s *Shell) SetViewport(vp types.Viewport) error {
	if vp.Width <= 0 || vp.Height <= 0 || vp.Width > MaxViewportSide || vp.Height > MaxViewportSide {
		return fmt.Errorf("%w: %dx%d", ErrInvalidViewport, vp.Width, vp.Height)
	}
	s.mu.Lock()
	s.viewport = vp
	s.mu.Unlock()
	return nil
}

// SearchView is the search overlay content for one query
type SearchView struct {
	Query   string               `json:"query"`
	Results []types.SearchResult `json:"results"`
	Outcome search.Outcome       `json:"outcome"`
	Message string               `json:"message,omitempty"`
}

// Search runs query against the app catalog and portfolio content
func (s *Shell) Search(query string) (SearchView, error) {
	if !s.session.IsInteractive() {
		return SearchView{}, ErrNotInteractive
	}
	query = strings.TrimSpace(query)
	results := s.search.Search(query)
	outcome := search.Classify(query, results)
	return SearchView{
		Query:   query,
		Results: results,
		Outcome: outcome,
		Message: search.Message(query, outcome),
	}, nil
}

// ToggleStartMenu flips the start menu, closing search
func (s *Shell) ToggleStartMenu() (types.Overlays, error) {
	if _, ok := s.session.ToggleStartMenu(); !ok {
		return types.Overlays{}, ErrNotInteractive
	}
	return s.session.Overlays(), nil
}

// ToggleSearch flips the search overlay, closing the start menu
func (s *Shell) ToggleSearch() (types.Overlays, error) {
	if _, ok := s.session.ToggleSearch(); !ok {
		return types.Overlays{}, ErrNotInteractive
	}
	return s.session.Overlays(), nil
}

// SetOverlays applies both flags. Asking for both open keeps search.
func (s *Shell) SetOverlays(o types.Overlays) (types.Overlays, error) {
	if !s.session.SetStartMenuOpen(o.StartMenuOpen) {
		return types.Overlays{}, ErrNotInteractive
	}
	if !s.session.SetSearchOpen(o.SearchOpen) {
		return types.Overlays{}, ErrNotInteractive
	}
	return s.session.Overlays(), nil
}

// CompleteBoot skips the rest of the boot animation
func (s *Shell) CompleteBoot() error { return s.transition(s.session.CompleteBoot) }

// Unlock leaves the lock screen
func (s *Shell) Unlock() error { return s.transition(s.session.Unlock) }

// Lock returns to the lock screen
func (s *Shell) Lock() error { return s.transition(s.session.Lock) }

// Shutdown waits for in-flight gestures, closes every window and powers
// off after the animation
func (s *Shell) Shutdown() error { return s.transition(s.session.Shutdown) }

// PowerOn boots a powered off desktop
func (s *Shell) PowerOn() error { return s.transition(s.session.TurnOn) }

func (s *Shell) transition(apply func() bool) error {
	s.gate.Lock()
	defer s.gate.Unlock()
	if !apply() {
		return ErrInvalidTransition
	}
	return nil
}

// Preferences returns the current preferences
func (s *Shell) Preferences() preferences.Preferences {
	return s.prefs.Get()
}

// UpdatePreferences applies a settings change
func (s *Shell) UpdatePreferences(u preferences.Update) (preferences.Preferences, error) {
	var prefs preferences.Preferences
	err := s.interactive(func() error {
		var err error
		prefs, err = s.prefs.Apply(u)
		return err
	})
	return prefs, err
}

// Notes returns the notepad text
func (s *Shell) Notes() string {
	return s.notes.Get()
}

// SaveNotes replaces the notepad text
func (s *Shell) SaveNotes(text string) (string, error) {
	var saved string
	err := s.interactive(func() error {
		var err error
		saved, err = s.notes.Set(text)
		return err
	})
	return saved, err
}

// Events lists calendar events, optionally for a single day
func (s *Shell) Events(date string) []blobs.Event {
	return s.calendar.List(date)
}

// AddEvent stores a calendar event
func (s *Shell) AddEvent(date, title string) (blobs.Event, error) {
	var ev blobs.Event
	err := s.interactive(func() error {
		var err error
		ev, err = s.calendar.Add(date, title)
		return err
	})
	return ev, err
}

// RemoveEvent deletes a calendar event
func (s *Shell) RemoveEvent(eventID string) error {
	return s.interactive(func() error { return s.calendar.Remove(eventID) })
}

func (s *Shell) mount(rec types.WindowRecord) {
	app, ok := s.registry.Get(rec.AppID)
	if !ok {
		s.log.Warn("window opened for unregistered app", zap.String("app_id", rec.AppID))
		return
	}
	view, ok := s.views.Lookup(app.Component)
	if !ok {
		s.log.Warn("no view for component", zap.String("component", app.Component))
		return
	}
	view.Mount(rec)

	s.mu.Lock()
	s.mounts[rec.ID] = mountedView{view: view, appID: rec.AppID}
	s.mu.Unlock()
}

func (s *Shell) unmount(rec types.WindowRecord) {
	s.mu.Lock()
	m, ok := s.mounts[rec.ID]
	delete(s.mounts, rec.ID)
	s.mu.Unlock()

	if ok {
		m.view.Unmount(rec.ID)
	}
}

// Mounted reports the number of windows with a mounted view
func (s *Shell) Mounted() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.mounts)
}
