package desktop

import (
	"sync"
	"testing"
	"time"

	"github.com/deskfolio/deskos/internal/domain/preferences"
	"github.com/deskfolio/deskos/internal/domain/registry"
	"github.com/deskfolio/deskos/internal/domain/search"
	"github.com/deskfolio/deskos/internal/domain/session"
	"github.com/deskfolio/deskos/internal/providers/notify"
	"github.com/deskfolio/deskos/internal/providers/storage"
	"github.com/deskfolio/deskos/internal/shared/clock"
	"github.com/deskfolio/deskos/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDesktop = "desk_test"

var testTimings = session.Config{BootDuration: time.Second, ShutdownDuration: 2 * time.Second}

func newTestShell(t *testing.T, deps Deps) (*Shell, *clock.Manual) {
	t.Helper()
	clk := clock.NewManual(time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	deps.Scheduler = clk
	s := NewShell(testDesktop, Config{Session: testTimings}, deps)
	t.Cleanup(s.Close)
	return s, clk
}

func runningShell(t *testing.T, deps Deps) (*Shell, *clock.Manual) {
	t.Helper()
	s, clk := newTestShell(t, deps)
	clk.Advance(time.Second)
	require.Equal(t, types.SessionLocked, s.State())
	require.NoError(t, s.Unlock())
	return s, clk
}

func TestGesturesRequireRunning(t *testing.T) {
	s, _ := newTestShell(t, Deps{})
	require.Equal(t, types.SessionBooting, s.State())

	_, err := s.Launch("about", SourceIcon)
	assert.ErrorIs(t, err, ErrNotInteractive)
	_, err = s.MoveIcon("about", 10, 10)
	assert.ErrorIs(t, err, ErrNotInteractive)
	_, err = s.ToggleStartMenu()
	assert.ErrorIs(t, err, ErrNotInteractive)
	_, err = s.Search("snake")
	assert.ErrorIs(t, err, ErrNotInteractive)
	_, err = s.SaveNotes("hi")
	assert.ErrorIs(t, err, ErrNotInteractive)

	snap := s.Snapshot()
	assert.Equal(t, types.SessionBooting, snap.Session.State)
	assert.Equal(t, "Initializing system...", snap.Session.BootMessage)
	assert.Empty(t, snap.Windows)
	assert.Empty(t, snap.Icons)
	assert.Empty(t, snap.Taskbar)
	assert.Nil(t, snap.Stats)
}

func TestSessionTriggers(t *testing.T) {
	s, clk := newTestShell(t, Deps{})

	assert.ErrorIs(t, s.Unlock(), ErrInvalidTransition)
	require.NoError(t, s.CompleteBoot())
	assert.ErrorIs(t, s.CompleteBoot(), ErrInvalidTransition)
	require.NoError(t, s.Unlock())
	require.NoError(t, s.Lock())
	require.NoError(t, s.Shutdown())
	assert.ErrorIs(t, s.PowerOn(), ErrInvalidTransition)

	clk.Advance(2 * time.Second)
	assert.Equal(t, types.SessionOff, s.State())
	require.NoError(t, s.PowerOn())
	assert.Equal(t, types.SessionBooting, s.State())
}

func TestLaunchFocusesExistingWindow(t *testing.T) {
	s, _ := runningShell(t, Deps{})

	first, err := s.Launch("about", SourceIcon)
	require.NoError(t, err)
	second, err := s.Launch("about", SourceIcon)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	rec, err := s.Window(first)
	require.NoError(t, err)
	assert.Equal(t, "About Me", rec.Title)
	assert.Equal(t, types.Size{Width: 800, Height: 600}, rec.Size)

	_, err = s.Launch("nope", SourceIcon)
	assert.ErrorIs(t, err, ErrUnknownApp)
}

func TestTaskbarClick(t *testing.T) {
	s, _ := runningShell(t, Deps{})

	about, _ := s.Launch("about", SourceIcon)
	projects, _ := s.Launch("projects", SourceIcon)

	// Inactive window is focused
	require.NoError(t, s.TaskbarClick(about))
	rec, _ := s.Window(about)
	assert.False(t, rec.IsMinimized)
	assert.Equal(t, &about, s.windows.ActiveID())

	// Active window is minimized
	require.NoError(t, s.TaskbarClick(about))
	rec, _ = s.Window(about)
	assert.True(t, rec.IsMinimized)
	assert.Nil(t, s.windows.ActiveID())

	// Minimized window is restored on top
	require.NoError(t, s.TaskbarClick(about))
	rec, _ = s.Window(about)
	other, _ := s.Window(projects)
	assert.False(t, rec.IsMinimized)
	assert.Greater(t, rec.ZIndex, other.ZIndex)

	assert.ErrorIs(t, s.TaskbarClick("window-99"), ErrNotFound)
}

func TestWindowOps(t *testing.T) {
	s, _ := runningShell(t, Deps{})
	id, _ := s.Launch("calculator", SourceIcon)

	require.NoError(t, s.MoveWindow(id, types.Position{X: -50, Y: 5000}))
	require.NoError(t, s.ResizeWindow(id, types.Size{Width: 10, Height: 10}))
	require.NoError(t, s.MaximizeWindow(id))
	rec, _ := s.Window(id)
	assert.Equal(t, types.Position{X: -50, Y: 5000}, rec.Position)
	assert.Equal(t, types.Size{Width: 300, Height: 200}, rec.Size)
	assert.True(t, rec.IsMaximized)

	require.NoError(t, s.MinimizeWindow(id))
	require.NoError(t, s.FocusWindow(id))
	require.NoError(t, s.CloseWindow(id))
	assert.ErrorIs(t, s.CloseWindow(id), ErrNotFound)
	_, err := s.Window(id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLaunchClosesOriginOverlay(t *testing.T) {
	s, _ := runningShell(t, Deps{})

	o, err := s.ToggleStartMenu()
	require.NoError(t, err)
	assert.True(t, o.StartMenuOpen)
	assert.NotEmpty(t, s.Snapshot().StartMenu)

	_, err = s.Launch("skills", SourceStartMenu)
	require.NoError(t, err)
	assert.False(t, s.session.Overlays().StartMenuOpen)

	o, _ = s.ToggleSearch()
	assert.True(t, o.SearchOpen)
	_, err = s.Launch("snake", SourceSearch)
	require.NoError(t, err)
	assert.False(t, s.session.Overlays().SearchOpen)

	o, _ = s.ToggleSearch()
	require.True(t, o.SearchOpen)
	_, _ = s.Launch("tetris", SourceIcon)
	assert.True(t, s.session.Overlays().SearchOpen, "icon launches leave overlays alone")
}

func TestSetOverlays(t *testing.T) {
	s, _ := runningShell(t, Deps{})

	o, err := s.SetOverlays(types.Overlays{StartMenuOpen: true})
	require.NoError(t, err)
	assert.Equal(t, types.Overlays{StartMenuOpen: true}, o)

	o, err = s.SetOverlays(types.Overlays{StartMenuOpen: true, SearchOpen: true})
	require.NoError(t, err)
	assert.Equal(t, types.Overlays{SearchOpen: true}, o)

	require.NoError(t, s.Lock())
	_, err = s.SetOverlays(types.Overlays{})
	assert.ErrorIs(t, err, ErrNotInteractive)
}

func TestShutdownUnmountsViews(t *testing.T) {
	reg := registry.NewDefault()
	views := DefaultViews(reg.List())
	s, clk := runningShell(t, Deps{Registry: reg, Views: views})

	about, _ := s.Launch("about", SourceIcon)
	_, _ = s.Launch("clock", SourceIcon)
	assert.Equal(t, 2, s.Mounted())

	panel, ok := views.Lookup("AboutMeApp")
	require.True(t, ok)
	assert.Equal(t, []string{about}, panel.(*Panel).Mounted())

	require.NoError(t, s.CloseWindow(about))
	assert.Empty(t, panel.(*Panel).Mounted())
	assert.Equal(t, 1, s.Mounted())

	require.NoError(t, s.Shutdown())
	assert.Zero(t, s.Mounted())
	assert.Zero(t, s.windows.Count())
	assert.Equal(t, types.SessionShuttingDown, s.Snapshot().Session.State)

	clk.Advance(2 * time.Second)
	assert.Equal(t, types.SessionOff, s.State())
}

func TestMissingViewRendersPlaceholder(t *testing.T) {
	reg, err := registry.New([]types.AppMetadata{{
		ID:          "ghost",
		Name:        "Ghost",
		Icon:        "👻",
		Component:   "GhostApp",
		Category:    types.CategorySystem,
		DefaultSize: types.Size{Width: 400, Height: 300},
	}})
	require.NoError(t, err)
	s, _ := runningShell(t, Deps{Registry: reg, Views: NewViews()})

	_, err = s.Launch("ghost", SourceIcon)
	require.NoError(t, err)
	assert.Zero(t, s.Mounted())

	snap := s.Snapshot()
	require.Len(t, snap.Windows, 1)
	assert.Equal(t, WindowContent{Placeholder: PlaceholderText}, snap.Windows[0].Content)
	assert.Equal(t, "👻", snap.Taskbar[0].Icon)
}

func TestSnapshotWhileRunning(t *testing.T) {
	s, _ := runningShell(t, Deps{})

	about, _ := s.Launch("about", SourceIcon)
	calc, _ := s.Launch("calculator", SourceIcon)
	require.NoError(t, s.MinimizeWindow(about))

	snap := s.Snapshot()
	assert.Equal(t, testDesktop, snap.DesktopID)
	assert.Len(t, snap.Icons, registry.NewDefault().Len())
	assert.Equal(t, "About Me", snap.Icons[0].Name)

	require.Len(t, snap.Taskbar, 2)
	assert.Equal(t, TaskbarItem{WindowID: about, AppID: "about", Title: "About Me", Icon: "👤", Minimized: true}, snap.Taskbar[0])
	assert.Equal(t, calc, snap.Taskbar[1].WindowID)
	assert.True(t, snap.Taskbar[1].Active)

	require.Len(t, snap.Windows, 2)
	assert.Equal(t, WindowContent{Component: "AboutMeApp", Found: true}, snap.Windows[0].Content)
	require.NotNil(t, snap.Stats)
	assert.Equal(t, 2, snap.Stats.Total)
	assert.Equal(t, 1, snap.Stats.Minimized)
	assert.Empty(t, snap.StartMenu)
}

func TestSearch(t *testing.T) {
	s, _ := runningShell(t, Deps{})

	v, err := s.Search("  ")
	require.NoError(t, err)
	assert.Equal(t, search.OutcomeEmpty, v.Outcome)
	assert.Equal(t, search.EmptyMessage, v.Message)
	assert.Empty(t, v.Results)

	v, _ = s.Search("zzzz")
	assert.Equal(t, search.OutcomeNoMatch, v.Outcome)
	assert.Equal(t, `No results found for "zzzz"`, v.Message)

	v, _ = s.Search("snake")
	assert.Equal(t, search.OutcomeMatch, v.Outcome)
	require.NotEmpty(t, v.Results)
	assert.Equal(t, "snake", v.Results[0].Action.AppID)
}

func TestIconsPersistPerDesktop(t *testing.T) {
	kv := storage.NewMemory()
	s, _ := runningShell(t, Deps{Storage: kv})

	moved, err := s.MoveIcon("about", 500.4, 300.6)
	require.NoError(t, err)
	assert.Equal(t, types.IconPosition{AppID: "about", X: 500, Y: 301}, moved)

	_, err = s.MoveIcon("nope", 1, 1)
	assert.Error(t, err)

	again, _ := runningShell(t, Deps{Storage: kv})
	pos := again.Icons()
	assert.Equal(t, moved, pos[0])

	reset, err := again.ResetIcons()
	require.NoError(t, err)
	assert.Equal(t, types.IconPosition{AppID: "about", X: 40, Y: 40}, reset[0])
}

func TestViewportBoundsIconMoves(t *testing.T) {
	s, _ := runningShell(t, Deps{})

	assert.ErrorIs(t, s.SetViewport(types.Viewport{Width: 0, Height: 600}), ErrInvalidViewport)
	require.NoError(t, s.SetViewport(types.Viewport{Width: 800, Height: 600}))

	moved, err := s.MoveIcon("about", 5000, 5000)
	require.NoError(t, err)
	// 800 - 100 - 40 and 600 - 100 - 60 - 40
	assert.Equal(t, types.IconPosition{AppID: "about", X: 660, Y: 400}, moved)
}

func TestNotificationsFollowVolume(t *testing.T) {
	s, _ := runningShell(t, Deps{})
	events, cancel := s.Bus().Subscribe(32)
	defer cancel()

	_, _ = s.Launch("about", SourceIcon)
	assert.Equal(t, notify.Click, (<-events).Kind)
	assert.Equal(t, notify.Open, (<-events).Kind)

	zero := 0
	_, err := s.UpdatePreferences(preferences.Update{Volume: &zero})
	require.NoError(t, err)

	_, _ = s.Launch("projects", SourceIcon)
	select {
	case ev := <-events:
		t.Fatalf("muted desktop emitted %s", ev.Kind)
	default:
	}
}

func TestAppDocuments(t *testing.T) {
	s, _ := runningShell(t, Deps{})

	text, err := s.SaveNotes("todo: <b>ship</b>")
	require.NoError(t, err)
	assert.Equal(t, "todo: ship", text)
	assert.Equal(t, text, s.Notes())

	ev, err := s.AddEvent("2024-06-01", "Launch")
	require.NoError(t, err)
	assert.Len(t, s.Events("2024-06-01"), 1)
	require.NoError(t, s.RemoveEvent(ev.ID))
	assert.Empty(t, s.Events(""))

	light := preferences.ThemeLight
	prefs, err := s.UpdatePreferences(preferences.Update{Theme: &light})
	require.NoError(t, err)
	assert.Equal(t, prefs, s.Snapshot().Preferences)
}

func TestShutdownWaitsForInFlightLaunch(t *testing.T) {
	s, _ := runningShell(t, Deps{})

	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	s.Bus().OnEvent(func(ev notify.Event) {
		if ev.Kind == notify.Click {
			once.Do(func() {
				close(entered)
				<-release
			})
		}
	})

	launched := make(chan error, 1)
	go func() {
		_, err := s.Launch("about", SourceIcon)
		launched <- err
	}()
	<-entered

	shutdown := make(chan error, 1)
	go func() { shutdown <- s.Shutdown() }()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, types.SessionRunning, s.State(), "shutdown must wait for the launch in flight")

	close(release)
	require.NoError(t, <-launched)
	require.NoError(t, <-shutdown)

	assert.Equal(t, types.SessionShuttingDown, s.State())
	assert.Zero(t, s.windows.Count())
	assert.Zero(t, s.Mounted())
}
