package session

import (
	"sync"
	"time"

	"github.com/deskfolio/deskos/internal/infrastructure/monitoring"
	"github.com/deskfolio/deskos/internal/providers/notify"
	"github.com/deskfolio/deskos/internal/shared/clock"
	"github.com/deskfolio/deskos/internal/shared/types"
	"go.uber.org/zap"
)

// Boot animation constants
const (
	BootTick        = 30 * time.Millisecond
	BootStep        = 2
	MessageInterval = 500 * time.Millisecond

	DefaultBootDuration     = 2300 * time.Millisecond
	DefaultShutdownDuration = 3 * time.Second
)

// BootMessages are shown in order while booting; the last one sticks
var BootMessages = []string{
	"Initializing system...",
	"Loading core modules...",
	"Starting services...",
	"Loading user profile...",
	"Preparing desktop environment...",
	"Almost ready...",
}

// Config contains controller timings
type Config struct {
	BootDuration     time.Duration
	ShutdownDuration time.Duration
}

// DefaultConfig returns the stock timings
func DefaultConfig() Config {
	return Config{
		BootDuration:     DefaultBootDuration,
		ShutdownDuration: DefaultShutdownDuration,
	}
}

// WindowCloser clears every window on shutdown
type WindowCloser interface {
	CloseAll() int
}

// Observer is told about every applied transition
type Observer func(from, to types.SessionState)

// Controller owns session state and overlay flags
type Controller struct {
	mu          sync.Mutex
	state       types.SessionState // Protected by mu
	overlays    types.Overlays     // Protected by mu
	bootStarted time.Time          // Protected by mu
	gen         uint64             // Protected by mu
	timer       clock.Timer        // Protected by mu
	closed      bool               // Protected by mu

	cfg      Config
	sched    clock.Scheduler
	windows  WindowCloser
	notifier notify.Notifier
	observer Observer
	metrics  *monitoring.Metrics
	log      *zap.Logger
}

// NewController creates a controller in booting and schedules boot completion
func NewController(cfg Config, sched clock.Scheduler, windows WindowCloser, notifier notify.Notifier, log *zap.Logger) *Controller {
	if cfg.BootDuration <= 0 {
		cfg.BootDuration = DefaultBootDuration
	}
	if cfg.ShutdownDuration <= 0 {
		cfg.ShutdownDuration = DefaultShutdownDuration
	}
	if sched == nil {
		sched = clock.Real()
	}
	if notifier == nil {
		notifier = notify.Nop
	}
	if log == nil {
		log = zap.NewNop()
	}

	c := &Controller{
		state:    types.SessionBooting,
		cfg:      cfg,
		sched:    sched,
		windows:  windows,
		notifier: notifier,
		log:      log,
	}

	c.mu.Lock()
	c.enterBootingLocked()
	c.mu.Unlock()
	return c
}

// WithMetrics adds metrics tracking to the controller
func (c *Controller) WithMetrics(metrics *monitoring.Metrics) *Controller {
	c.metrics = metrics
	return c
}

// WithObserver registers a transition observer
func (c *Controller) WithObserver(o Observer) *Controller {
	c.observer = o
	return c
}

// State returns the current state
func (c *Controller) State() types.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsInteractive reports whether desktop content may be reached
func (c *Controller) IsInteractive() bool {
	return c.State() == types.SessionRunning
}

// Snapshot returns the state, overlays and boot animation progress
func (c *Controller) Snapshot() types.SessionSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := types.SessionSnapshot{State: c.state}
	if c.state == types.SessionRunning {
		snap.Overlays = c.overlays
	}
	if c.state == types.SessionBooting {
		elapsed := c.sched.Now().Sub(c.bootStarted)
		snap.BootProgress = BootProgress(elapsed)
		snap.BootMessage = BootMessage(elapsed)
	}
	return snap
}

// BootProgress returns the progress bar value after elapsed boot time
func BootProgress(elapsed time.Duration) int {
	if elapsed < 0 {
		return 0
	}
	p := int(elapsed/BootTick) * BootStep
	if p > 100 {
		return 100
	}
	return p
}

// BootMessage returns the status line after elapsed boot time
func BootMessage(elapsed time.Duration) string {
	if elapsed < 0 {
		elapsed = 0
	}
	i := int(elapsed / MessageInterval)
	if i >= len(BootMessages) {
		i = len(BootMessages) - 1
	}
	return BootMessages[i]
}

// CompleteBoot moves booting to locked
func (c *Controller) CompleteBoot() bool {
	c.mu.Lock()
	if c.closed || c.state != types.SessionBooting {
		c.mu.Unlock()
		return false
	}
	c.cancelTimerLocked()
	from := c.setStateLocked(types.SessionLocked)
	c.mu.Unlock()

	c.applied(from, types.SessionLocked)
	notify.Emit(c.notifier, notify.Startup, c.log)
	return true
}

// Unlock moves locked to running
func (c *Controller) Unlock() bool {
	c.mu.Lock()
	if c.closed || c.state != types.SessionLocked {
		c.mu.Unlock()
		return false
	}
	from := c.setStateLocked(types.SessionRunning)
	c.mu.Unlock()

	c.applied(from, types.SessionRunning)
	notify.Emit(c.notifier, notify.Login, c.log)
	return true
}

// Lock moves running to locked, closing overlays
func (c *Controller) Lock() bool {
	c.mu.Lock()
	if c.closed || c.state != types.SessionRunning {
		c.mu.Unlock()
		return false
	}
	from := c.setStateLocked(types.SessionLocked)
	c.mu.Unlock()

	c.applied(from, types.SessionLocked)
	return true
}

// Shutdown clears all windows and overlays, enters shutting_down and
// schedules power off
func (c *Controller) Shutdown() bool {
	c.mu.Lock()
	if c.closed || (c.state != types.SessionRunning && c.state != types.SessionLocked) {
		c.mu.Unlock()
		return false
	}
	from := c.setStateLocked(types.SessionShuttingDown)
	c.schedule(c.cfg.ShutdownDuration, types.SessionShuttingDown, c.finishShutdown)
	c.mu.Unlock()

	closed := 0
	if c.windows != nil {
		closed = c.windows.CloseAll()
	}
	c.log.Info("session shutting down", zap.Int("windows_closed", closed))

	c.applied(from, types.SessionShuttingDown)
	notify.Emit(c.notifier, notify.Shutdown, c.log)
	return true
}

// TurnOn moves off to booting and schedules boot completion
func (c *Controller) TurnOn() bool {
	c.mu.Lock()
	if c.closed || c.state != types.SessionOff {
		c.mu.Unlock()
		return false
	}
	from := c.state
	c.enterBootingLocked()
	c.mu.Unlock()

	c.applied(from, types.SessionBooting)
	return true
}

func (c *Controller) finishShutdown() {
	c.mu.Lock()
	if c.closed || c.state != types.SessionShuttingDown {
		c.mu.Unlock()
		return
	}
	from := c.setStateLocked(types.SessionOff)
	c.timer = nil
	c.mu.Unlock()

	c.applied(from, types.SessionOff)
}

// ToggleStartMenu flips the start menu and closes search. Returns the new
// start menu flag and whether the toggle applied.
func (c *Controller) ToggleStartMenu() (bool, bool) {
	return c.toggle(func(o *types.Overlays) bool {
		o.StartMenuOpen = !o.StartMenuOpen
		o.SearchOpen = false
		return o.StartMenuOpen
	})
}

// ToggleSearch flips search and closes the start menu
func (c *Controller) ToggleSearch() (bool, bool) {
	return c.toggle(func(o *types.Overlays) bool {
		o.SearchOpen = !o.SearchOpen
		o.StartMenuOpen = false
		return o.SearchOpen
	})
}

// SetStartMenuOpen sets the start menu flag; opening closes search
func (c *Controller) SetStartMenuOpen(open bool) bool {
	return c.setOverlay(func(o *types.Overlays) {
		o.StartMenuOpen = open
		if open {
			o.SearchOpen = false
		}
	})
}

// SetSearchOpen sets the search flag; opening closes the start menu
func (c *Controller) SetSearchOpen(open bool) bool {
	return c.setOverlay(func(o *types.Overlays) {
		o.SearchOpen = open
		if open {
			o.StartMenuOpen = false
		}
	})
}

// Overlays returns the overlay flags; both are false outside running
func (c *Controller) Overlays() types.Overlays {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != types.SessionRunning {
		return types.Overlays{}
	}
	return c.overlays
}

// Close cancels pending timers. Later transitions are rejected.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	c.cancelTimerLocked()
}

func (c *Controller) toggle(flip func(o *types.Overlays) bool) (bool, bool) {
	c.mu.Lock()
	if c.closed || c.state != types.SessionRunning {
		c.mu.Unlock()
		return false, false
	}
	opened := flip(&c.overlays)
	c.mu.Unlock()

	if opened {
		notify.Emit(c.notifier, notify.Click, c.log)
	}
	return opened, true
}

func (c *Controller) setOverlay(set func(o *types.Overlays)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || c.state != types.SessionRunning {
		return false
	}
	set(&c.overlays)
	return true
}

// enterBootingLocked must be called with mu held
func (c *Controller) enterBootingLocked() {
	c.setStateLocked(types.SessionBooting)
	c.bootStarted = c.sched.Now()
	c.schedule(c.cfg.BootDuration, types.SessionBooting, func() { c.CompleteBoot() })
}

// setStateLocked switches state, clears overlays and invalidates timers
func (c *Controller) setStateLocked(to types.SessionState) types.SessionState {
	from := c.state
	c.state = to
	c.overlays = types.Overlays{}
	c.gen++
	return from
}

// schedule must be called with mu held, after the state change it guards
func (c *Controller) schedule(d time.Duration, want types.SessionState, fn func()) {
	c.cancelTimerLocked()
	gen := c.gen
	c.timer = c.sched.AfterFunc(d, func() {
		c.mu.Lock()
		stale := c.closed || c.gen != gen || c.state != want
		c.mu.Unlock()
		if stale {
			return
		}
		fn()
	})
}

func (c *Controller) cancelTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) applied(from, to types.SessionState) {
	c.log.Debug("session transition", zap.String("from", string(from)), zap.String("to", string(to)))
	if c.metrics != nil {
		c.metrics.RecordSessionTransition(string(from), string(to))
	}
	if c.observer != nil {
		c.observer(from, to)
	}
}
