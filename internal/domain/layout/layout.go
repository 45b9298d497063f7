package layout

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/deskfolio/deskos/internal/infrastructure/monitoring"
	"github.com/deskfolio/deskos/internal/providers/storage"
	"github.com/deskfolio/deskos/internal/shared/types"
	"go.uber.org/zap"
)

// Grid geometry
const (
	IconWidth     = 100
	IconHeight    = 100
	Gap           = 20
	Padding       = 40
	TaskbarHeight = 60

	// StorageKey holds the persisted layout
	StorageKey = "desktop-icon-positions"
)

// ErrUnknownIcon is returned when moving an icon that is not on the desktop
var ErrUnknownIcon = errors.New("unknown desktop icon")

// Columns returns how many icons fit in one grid row, at least one
func Columns(viewportWidth int) int {
	cols := (viewportWidth - 2*Padding) / (IconWidth + Gap)
	if cols < 1 {
		return 1
	}
	return cols
}

// Slot returns the default grid position of the icon at index
func Slot(index, columns int) (int, int) {
	col := index % columns
	row := index / columns
	return Padding + col*(IconWidth+Gap), Padding + row*(IconHeight+Gap)
}

// ComputeDefaultGrid lays out icons left to right, top to bottom
func ComputeDefaultGrid(appIDs []string, viewportWidth, viewportHeight int) []types.IconPosition {
	cols := Columns(viewportWidth)
	out := make([]types.IconPosition, len(appIDs))
	for i, appID := range appIDs {
		x, y := Slot(i, cols)
		out[i] = types.IconPosition{AppID: appID, X: x, Y: y}
	}
	return out
}

// Constrain clamps a proposed icon position into the desktop area. When the
// viewport is too small for the range, the padding bound wins.
func Constrain(x, y float64, viewportWidth, viewportHeight int) types.Position {
	maxX := viewportWidth - IconWidth - Padding
	maxY := viewportHeight - IconHeight - TaskbarHeight - Padding
	return types.Position{
		X: clamp(x, Padding, maxX),
		Y: clamp(y, Padding, maxY),
	}
}

func clamp(v float64, lo, hi int) int {
	if math.IsNaN(v) {
		return lo
	}
	if v > float64(hi) {
		v = float64(hi)
	}
	if v < float64(lo) {
		v = float64(lo)
	}
	return int(math.Round(v))
}

// Store holds the icon layout of one desktop
type Store struct {
	// writeMu serializes a mutation with its persist so storage sees
	// layouts in the same order as memory
	writeMu sync.Mutex

	mu        sync.RWMutex
	positions []types.IconPosition // Protected by mu

	kv      storage.KV
	metrics *monitoring.Metrics
	log     *zap.Logger
}

// NewStore creates an empty store backed by kv
func NewStore(kv storage.KV, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{kv: kv, log: log}
}

// WithMetrics adds metrics tracking to the store
func (s *Store) WithMetrics(metrics *monitoring.Metrics) *Store {
	s.metrics = metrics
	return s
}

// Load reads the saved layout. Absence or corruption yields (nil, false).
func (s *Store) Load() ([]types.IconPosition, bool) {
	var saved []types.IconPosition
	err := storage.GetJSON(s.kv, StorageKey, &saved)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		s.log.Warn("discarding unreadable icon layout", zap.Error(err))
		return nil, false
	}
	if saved == nil {
		s.log.Warn("discarding empty icon layout")
		return nil, false
	}
	return saved, true
}

// Save persists the whole layout in one write
func (s *Store) Save(positions []types.IconPosition) error {
	if positions == nil {
		positions = []types.IconPosition{}
	}
	if err := storage.SetJSON(s.kv, StorageKey, positions); err != nil {
		return fmt.Errorf("save icon layout: %w", err)
	}
	return nil
}

// Init loads the saved layout for appIDs, falling back to the default grid.
// Apps absent from the saved layout get their default slot; apps no longer
// installed are dropped. Any repair is persisted.
func (s *Store) Init(appIDs []string, viewportWidth, viewportHeight int) []types.IconPosition {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	saved, ok := s.Load()
	if !ok {
		return s.resetLocked(appIDs, viewportWidth, viewportHeight)
	}

	byApp := make(map[string]types.IconPosition, len(saved))
	for _, p := range saved {
		byApp[p.AppID] = p
	}

	cols := Columns(viewportWidth)
	merged := make([]types.IconPosition, len(appIDs))
	repaired := len(saved) != len(appIDs)
	for i, appID := range appIDs {
		if p, found := byApp[appID]; found {
			merged[i] = p
			continue
		}
		x, y := Slot(i, cols)
		merged[i] = types.IconPosition{AppID: appID, X: x, Y: y}
		repaired = true
	}

	s.mu.Lock()
	s.positions = merged
	s.mu.Unlock()

	if repaired {
		s.persist(merged)
	}
	return copyPositions(merged)
}

// Reset replaces the layout with the default grid and persists it
func (s *Store) Reset(appIDs []string, viewportWidth, viewportHeight int) []types.IconPosition {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.resetLocked(appIDs, viewportWidth, viewportHeight)
}

// resetLocked must be called with writeMu held
func (s *Store) resetLocked(appIDs []string, viewportWidth, viewportHeight int) []types.IconPosition {
	grid := ComputeDefaultGrid(appIDs, viewportWidth, viewportHeight)

	s.mu.Lock()
	s.positions = grid
	s.mu.Unlock()

	s.persist(grid)
	return copyPositions(grid)
}

// Move clamps and applies a drag, writing the layout through to storage
func (s *Store) Move(appID string, x, y float64, viewportWidth, viewportHeight int) (types.IconPosition, error) {
	pos := Constrain(x, y, viewportWidth, viewportHeight)

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	idx := -1
	for i, p := range s.positions {
		if p.AppID == appID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return types.IconPosition{}, fmt.Errorf("%w: %s", ErrUnknownIcon, appID)
	}
	s.positions[idx].X = pos.X
	s.positions[idx].Y = pos.Y
	moved := s.positions[idx]
	snapshot := copyPositions(s.positions)
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.RecordIconMove()
	}
	s.persist(snapshot)
	return moved, nil
}

// Positions returns the current layout
func (s *Store) Positions() []types.IconPosition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyPositions(s.positions)
}

// Position returns the placement of one icon
func (s *Store) Position(appID string) (types.IconPosition, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.positions {
		if p.AppID == appID {
			return p, true
		}
	}
	return types.IconPosition{}, false
}

// persist writes positions, absorbing storage failures
func (s *Store) persist(positions []types.IconPosition) {
	if err := s.Save(positions); err != nil {
		s.log.Warn("icon layout not persisted", zap.Error(err))
	}
}

func copyPositions(in []types.IconPosition) []types.IconPosition {
	out := make([]types.IconPosition, len(in))
	copy(out, in)
	return out
}
