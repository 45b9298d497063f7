package window

import (
	"slices"
	"sort"
	"sync"

	"github.com/deskfolio/deskos/internal/infrastructure/monitoring"
	"github.com/deskfolio/deskos/internal/providers/notify"
	"github.com/deskfolio/deskos/internal/shared/id"
	"github.com/deskfolio/deskos/internal/shared/types"
	"go.uber.org/zap"
)

// Geometry defaults
const (
	BaseX       = 100
	BaseY       = 80
	CascadeStep = 30

	DefaultWidth  = 800
	DefaultHeight = 600

	MinWidth  = 300
	MinHeight = 200

	// FirstZIndex is the z-index handed to the first window
	FirstZIndex = 100

	idPrefix = "window"
)

// Hooks observe record creation and removal
type Hooks struct {
	OnCreate func(rec types.WindowRecord)
	OnRemove func(rec types.WindowRecord)
}

// Manager owns window records and stacking order
type Manager struct {
	mu       sync.RWMutex
	windows  []*types.WindowRecord // Creation order, protected by mu
	activeID string                // Protected by mu
	zIndex   *id.Counter
	ids      *id.Sequence

	notifier notify.Notifier
	hooks    Hooks
	metrics  *monitoring.Metrics
	log      *zap.Logger
}

// NewManager creates an empty window manager
func NewManager(notifier notify.Notifier, log *zap.Logger) *Manager {
	if notifier == nil {
		notifier = notify.Nop
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		windows:  make([]*types.WindowRecord, 0, 8),
		zIndex:   id.NewCounter(FirstZIndex),
		ids:      id.NewSequence(idPrefix),
		notifier: notifier,
		log:      log,
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// WithHooks registers lifecycle observers
func (m *Manager) WithHooks(h Hooks) *Manager {
	m.hooks = h
	return m
}

// ClampSize applies the resize floor
func ClampSize(s types.Size) types.Size {
	if s.Width < MinWidth {
		s.Width = MinWidth
	}
	if s.Height < MinHeight {
		s.Height = MinHeight
	}
	return s
}

// Open focuses, restores or creates the window for appID and returns its id
func (m *Manager) Open(appID, title string, size *types.Size) string {
	notify.Emit(m.notifier, notify.Click, m.log)

	m.mu.Lock()

	// Visible match wins over a minimized one
	if w := m.findLocked(appID, false); w != nil {
		m.raiseLocked(w)
		m.mu.Unlock()
		return w.ID
	}

	if w := m.findLocked(appID, true); w != nil {
		m.raiseLocked(w)
		m.mu.Unlock()
		m.log.Debug("window restored", zap.String("window_id", w.ID), zap.String("app_id", appID))
		return w.ID
	}

	sz := types.Size{Width: DefaultWidth, Height: DefaultHeight}
	if size != nil {
		sz = *size
	}

	n := len(m.windows)
	rec := &types.WindowRecord{
		ID:    m.ids.Next(),
		AppID: appID,
		Title: title,
		Position: types.Position{
			X: BaseX + n*CascadeStep,
			Y: BaseY + n*CascadeStep,
		},
		Size:   ClampSize(sz),
		ZIndex: m.zIndex.Next(),
	}
	m.windows = append(m.windows, rec)
	m.activeID = rec.ID
	created := *rec
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.RecordWindowOpened(appID)
	}
	m.log.Debug("window opened",
		zap.String("window_id", created.ID),
		zap.String("app_id", appID),
		zap.Int64("z_index", created.ZIndex))

	if m.hooks.OnCreate != nil {
		m.hooks.OnCreate(created)
	}
	notify.Emit(m.notifier, notify.Open, m.log)
	return created.ID
}

// Close removes a window. Unknown ids are ignored.
func (m *Manager) Close(windowID string) bool {
	m.mu.Lock()
	idx := m.indexLocked(windowID)
	if idx < 0 {
		m.mu.Unlock()
		return false
	}
	removed := *m.windows[idx]
	m.windows = slices.Delete(m.windows, idx, idx+1)
	if m.activeID == windowID {
		m.activeID = ""
	}
	m.mu.Unlock()

	m.afterRemove(removed)
	notify.Emit(m.notifier, notify.Close, m.log)
	return true
}

// CloseAll removes every window and clears the active id
func (m *Manager) CloseAll() int {
	m.mu.Lock()
	removed := make([]types.WindowRecord, len(m.windows))
	for i, w := range m.windows {
		removed[i] = *w
	}
	m.windows = nil
	m.activeID = ""
	m.mu.Unlock()

	for _, rec := range removed {
		m.afterRemove(rec)
	}
	return len(removed)
}

// Minimize hides a window, clearing active if it was the active one
func (m *Manager) Minimize(windowID string) bool {
	m.mu.Lock()
	w := m.getLocked(windowID)
	if w == nil {
		m.mu.Unlock()
		return false
	}
	changed := !w.IsMinimized
	w.IsMinimized = true
	if m.activeID == windowID {
		m.activeID = ""
	}
	m.mu.Unlock()

	if changed {
		notify.Emit(m.notifier, notify.Minimize, m.log)
	}
	return true
}

// Maximize toggles the maximized flag. Geometry is preserved underneath.
func (m *Manager) Maximize(windowID string) bool {
	m.mu.Lock()
	w := m.getLocked(windowID)
	if w == nil {
		m.mu.Unlock()
		return false
	}
	w.IsMaximized = !w.IsMaximized
	m.mu.Unlock()

	notify.Emit(m.notifier, notify.Maximize, m.log)
	return true
}

// Focus raises a window to the top, unminimizes it and makes it active
func (m *Manager) Focus(windowID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := m.getLocked(windowID)
	if w == nil {
		return false
	}
	m.raiseLocked(w)
	return true
}

// UpdatePosition moves a window without clamping
func (m *Manager) UpdatePosition(windowID string, pos types.Position) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := m.getLocked(windowID)
	if w == nil {
		return false
	}
	w.Position = pos
	return true
}

// UpdateSize resizes a window, applying the size floor
func (m *Manager) UpdateSize(windowID string, size types.Size) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	w := m.getLocked(windowID)
	if w == nil {
		return false
	}
	w.Size = ClampSize(size)
	return true
}

// Get retrieves a copy of a window record
func (m *Manager) Get(windowID string) (*types.WindowRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	w := m.getLocked(windowID)
	if w == nil {
		return nil, false
	}
	rec := *w
	return &rec, true
}

// IsActive reports whether windowID is the active window
func (m *Manager) IsActive(windowID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return windowID != "" && m.activeID == windowID
}

// ActiveID returns the active window id, or nil when none is active
func (m *Manager) ActiveID() *string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.activeID == "" {
		return nil
	}
	active := m.activeID
	return &active
}

// List returns every window in creation order
func (m *Manager) List() []types.WindowRecord {
	return m.filter(func(*types.WindowRecord) bool { return true })
}

// Visible returns non-minimized windows in creation order
func (m *Manager) Visible() []types.WindowRecord {
	return m.filter(func(w *types.WindowRecord) bool { return !w.IsMinimized })
}

// Minimized returns minimized windows in creation order
func (m *Manager) Minimized() []types.WindowRecord {
	return m.filter(func(w *types.WindowRecord) bool { return w.IsMinimized })
}

// Stacked returns visible windows sorted bottom to top
func (m *Manager) Stacked() []types.WindowRecord {
	out := m.Visible()
	sort.Slice(out, func(i, j int) bool { return out[i].ZIndex < out[j].ZIndex })
	return out
}

// Top returns the visible window with the highest z-index
func (m *Manager) Top() (*types.WindowRecord, bool) {
	stacked := m.Stacked()
	if len(stacked) == 0 {
		return nil, false
	}
	top := stacked[len(stacked)-1]
	return &top, true
}

// Count returns the number of windows
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.windows)
}

// Stats returns window manager statistics
func (m *Manager) Stats() types.WindowStats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := types.WindowStats{Total: len(m.windows)}
	for _, w := range m.windows {
		if w.IsMinimized {
			stats.Minimized++
		} else {
			stats.Visible++
		}
		if w.IsMaximized {
			stats.Maximized++
		}
		if w.ZIndex > stats.TopZIndex {
			stats.TopZIndex = w.ZIndex
		}
	}
	if m.activeID != "" {
		active := m.activeID
		stats.ActiveWindowID = &active
	}
	return stats
}

func (m *Manager) filter(keep func(*types.WindowRecord) bool) []types.WindowRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.WindowRecord, 0, len(m.windows))
	for _, w := range m.windows {
		if keep(w) {
			out = append(out, *w)
		}
	}
	return out
}

func (m *Manager) afterRemove(rec types.WindowRecord) {
	if m.metrics != nil {
		m.metrics.RecordWindowClosed(rec.AppID)
	}
	m.log.Debug("window closed", zap.String("window_id", rec.ID), zap.String("app_id", rec.AppID))
	if m.hooks.OnRemove != nil {
		m.hooks.OnRemove(rec)
	}
}

// raiseLocked must be called with mu held
func (m *Manager) raiseLocked(w *types.WindowRecord) {
	w.ZIndex = m.zIndex.Next()
	w.IsMinimized = false
	m.activeID = w.ID
}

func (m *Manager) findLocked(appID string, minimized bool) *types.WindowRecord {
	for _, w := range m.windows {
		if w.AppID == appID && w.IsMinimized == minimized {
			return w
		}
	}
	return nil
}

func (m *Manager) getLocked(windowID string) *types.WindowRecord {
	if i := m.indexLocked(windowID); i >= 0 {
		return m.windows[i]
	}
	return nil
}

func (m *Manager) indexLocked(windowID string) int {
	for i, w := range m.windows {
		if w.ID == windowID {
			return i
		}
	}
	return -1
}
