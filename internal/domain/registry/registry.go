package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/deskfolio/deskos/internal/infrastructure/monitoring"
	"github.com/deskfolio/deskos/internal/shared/types"
	"github.com/deskfolio/deskos/internal/shared/utils"
)

// ErrDuplicateApp is returned when registering an id twice
var ErrDuplicateApp = errors.New("app already registered")

// Registry is an ordered catalog of apps
type Registry struct {
	mu      sync.RWMutex
	apps    []types.AppMetadata
	index   map[string]int
	metrics *monitoring.Metrics
}

// New creates a registry holding apps in order
func New(apps []types.AppMetadata) (*Registry, error) {
	r := &Registry{
		apps:  make([]types.AppMetadata, 0, len(apps)),
		index: make(map[string]int, len(apps)),
	}
	for _, app := range apps {
		if err := r.Register(app); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// NewDefault creates a registry holding the built-in catalog
func NewDefault() *Registry {
	r, err := New(Builtin())
	if err != nil {
		panic(fmt.Sprintf("built-in catalog is invalid: %v", err))
	}
	return r
}

// WithMetrics adds metrics tracking to the registry
func (r *Registry) WithMetrics(metrics *monitoring.Metrics) *Registry {
	r.metrics = metrics
	if metrics != nil {
		metrics.SetRegistryApps(r.Len())
	}
	return r
}

// Validate checks an app entry before registration
func Validate(app types.AppMetadata) error {
	if err := utils.ValidateID(app.ID, "id", true); err != nil {
		return err
	}
	if err := utils.ValidateName(app.Name, "name"); err != nil {
		return err
	}
	if app.Component == "" {
		return fmt.Errorf("app %s: component is required", app.ID)
	}
	if !app.Category.Valid() {
		return fmt.Errorf("app %s: unknown category %q", app.ID, app.Category)
	}
	if app.DefaultSize.Width <= 0 || app.DefaultSize.Height <= 0 {
		return fmt.Errorf("app %s: default size must be positive", app.ID)
	}
	return nil
}

// Register appends an app to the catalog
func (r *Registry) Register(app types.AppMetadata) error {
	if err := Validate(app); err != nil {
		return err
	}

	app.SearchKeywords = append([]string(nil), app.SearchKeywords...)

	r.mu.Lock()
	if _, exists := r.index[app.ID]; exists {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrDuplicateApp, app.ID)
	}
	r.index[app.ID] = len(r.apps)
	r.apps = append(r.apps, app)
	n := len(r.apps)
	r.mu.Unlock()

	if r.metrics != nil {
		r.metrics.SetRegistryApps(n)
	}
	return nil
}

// Get retrieves an app by id
func (r *Registry) Get(id string) (types.AppMetadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return types.AppMetadata{}, false
	}
	return clone(r.apps[i]), true
}

// Has reports whether id is registered
func (r *Registry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.index[id]
	return ok
}

// List returns every app in registration order
func (r *Registry) List() []types.AppMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]types.AppMetadata, len(r.apps))
	for i, app := range r.apps {
		out[i] = clone(app)
	}
	return out
}

// IDs returns app ids in registration order
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, len(r.apps))
	for i, app := range r.apps {
		ids[i] = app.ID
	}
	return ids
}

// ByCategory returns apps of one category in registration order
func (r *Registry) ByCategory(category types.Category) []types.AppMetadata {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []types.AppMetadata{}
	for _, app := range r.apps {
		if app.Category == category {
			out = append(out, clone(app))
		}
	}
	return out
}

// Len returns the number of registered apps
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.apps)
}

// Stats returns registry statistics
func (r *Registry) Stats() types.RegistryStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := types.RegistryStats{
		TotalApps:  len(r.apps),
		Categories: make(map[types.Category]int),
	}
	for _, app := range r.apps {
		stats.Categories[app.Category]++
	}
	return stats
}

func clone(app types.AppMetadata) types.AppMetadata {
	app.SearchKeywords = append([]string(nil), app.SearchKeywords...)
	return app
}
