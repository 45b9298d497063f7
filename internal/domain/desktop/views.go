package desktop

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/deskfolio/deskos/internal/shared/types"
)

// PlaceholderText is rendered for windows without a view
const PlaceholderText = "App not found"

// ErrDuplicateView is returned when a component key is registered twice
var ErrDuplicateView = errors.New("view already registered")

// AppView renders one app inside window content areas
type AppView interface {
	// Component is the key AppMetadata.Component refers to
	Component() string
	// Mount is called once when a window showing the view is created
	Mount(win types.WindowRecord)
	// Unmount is called once when that window record disappears
	Unmount(windowID string)
}

// Views is the component lookup table
type Views struct {
	mu    sync.RWMutex
	views map[string]AppView
}

// NewViews creates an empty table
func NewViews() *Views {
	return &Views{views: make(map[string]AppView)}
}

// DefaultViews registers a Panel for every distinct component in apps
func DefaultViews(apps []types.AppMetadata) *Views {
	v := NewViews()
	for _, app := range apps {
		if _, ok := v.Lookup(app.Component); ok {
			continue
		}
		_ = v.Register(NewPanel(app.Component))
	}
	return v
}

// Register adds a view
func (v *Views) Register(view AppView) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	key := view.Component()
	if _, exists := v.views[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateView, key)
	}
	v.views[key] = view
	return nil
}

// Lookup resolves a component key
func (v *Views) Lookup(component string) (AppView, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	view, ok := v.views[component]
	return view, ok
}

// Components returns the registered keys in sorted order
func (v *Views) Components() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	keys := make([]string, 0, len(v.views))
	for k := range v.views {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Panel is a view whose content is rendered client-side. It tracks the
// windows currently showing it.
type Panel struct {
	component string

	mu      sync.Mutex
	mounted map[string]struct{}
}

// NewPanel creates a panel for component
func NewPanel(component string) *Panel {
	return &Panel{component: component, mounted: make(map[string]struct{})}
}

func (p *Panel) Component() string { return p.component }

func (p *Panel) Mount(win types.WindowRecord) {
	p.mu.Lock()
	p.mounted[win.ID] = struct{}{}
	p.mu.Unlock()
}

func (p *Panel) Unmount(windowID string) {
	p.mu.Lock()
	delete(p.mounted, windowID)
	p.mu.Unlock()
}

// Mounted returns the ids of windows showing the panel
func (p *Panel) Mounted() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	ids := make([]string, 0, len(p.mounted))
	for id := range p.mounted {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
