package desktop

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/deskfolio/deskos/internal/shared/id"
	"go.uber.org/zap"
)

// DefaultMaxDesktops caps the live desktops of one process
const DefaultMaxDesktops = 1000

var (
	ErrTooManyDesktops  = errors.New("desktop limit reached")
	ErrInvalidDesktopID = errors.New("invalid desktop id")
	ErrDesktopNotFound  = errors.New("desktop not found")
	ErrHubClosed        = errors.New("hub is closed")
)

// HubConfig configures the hub
type HubConfig struct {
	Shell       Config
	MaxDesktops int
}

// Hub hosts the live desktops
type Hub struct {
	mu     sync.RWMutex
	shells map[string]*Shell // Protected by mu
	closed bool              // Protected by mu

	cfg  HubConfig
	deps Deps
	log  *zap.Logger
}

// NewHub creates an empty hub. Shared collaborators missing from deps
// are created once here so every shell uses the same ones.
func NewHub(cfg HubConfig, deps Deps) *Hub {
	if cfg.MaxDesktops <= 0 {
		cfg.MaxDesktops = DefaultMaxDesktops
	}
	deps = deps.withDefaults()
	if deps.Metrics != nil {
		deps.Registry.WithMetrics(deps.Metrics)
		deps.Search.WithMetrics(deps.Metrics)
	}
	return &Hub{
		shells: make(map[string]*Shell),
		cfg:    cfg,
		deps:   deps,
		log:    deps.Log.Named("hub"),
	}
}

// Create starts a new desktop with a fresh id
func (h *Hub) Create() (*Shell, error) {
	return h.open(id.NewDesktopID().String())
}

// Resume returns the live desktop with desktopID, or starts it again from
// its persisted data
func (h *Hub) Resume(desktopID string) (*Shell, error) {
	if _, ok := id.ParseDesktopID(desktopID); !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDesktopID, desktopID)
	}
	if s, ok := h.Get(desktopID); ok {
		return s, nil
	}
	return h.open(desktopID)
}

func (h *Hub) open(desktopID string) (*Shell, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, ErrHubClosed
	}
	if s, ok := h.shells[desktopID]; ok {
		return s, nil
	}
	if len(h.shells) >= h.cfg.MaxDesktops {
		return nil, fmt.Errorf("%w: %d", ErrTooManyDesktops, h.cfg.MaxDesktops)
	}

	s := NewShell(desktopID, h.cfg.Shell, h.deps)
	h.shells[desktopID] = s
	h.updateGaugeLocked()
	if h.deps.Metrics != nil {
		h.deps.Metrics.IncDesktopsCreated()
	}
	h.log.Info("desktop started", zap.String("desktop_id", desktopID), zap.Int("live", len(h.shells)))
	return s, nil
}

// Get returns a live desktop
func (h *Hub) Get(desktopID string) (*Shell, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	s, ok := h.shells[desktopID]
	return s, ok
}

// Remove stops a desktop. Persisted data is kept.
func (h *Hub) Remove(desktopID string) error {
	h.mu.Lock()
	s, ok := h.shells[desktopID]
	if ok {
		delete(h.shells, desktopID)
		h.updateGaugeLocked()
	}
	h.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrDesktopNotFound, desktopID)
	}
	s.Close()
	h.log.Info("desktop stopped", zap.String("desktop_id", desktopID))
	return nil
}

// Len returns the number of live desktops
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.shells)
}

// IDs returns the live desktop ids, sorted
func (h *Hub) IDs() []string {
	h.mu.RLock()
	ids := make([]string, 0, len(h.shells))
	for k := range h.shells {
		ids = append(ids, k)
	}
	h.mu.RUnlock()

	sort.Strings(ids)
	return ids
}

// Close stops every desktop. Later Create calls fail.
func (h *Hub) Close() {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return
	}
	h.closed = true
	shells := h.shells
	h.shells = make(map[string]*Shell)
	h.updateGaugeLocked()
	h.mu.Unlock()

	for _, s := range shells {
		s.Close()
	}
	h.log.Info("all desktops stopped", zap.Int("count", len(shells)))
}

func (h *Hub) updateGaugeLocked() {
	if h.deps.Metrics != nil {
		h.deps.Metrics.SetDesktopsActive(len(h.shells))
	}
}
