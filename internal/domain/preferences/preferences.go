// Package preferences stores the per-desktop look and sound settings.
package preferences

import (
	"errors"
	"fmt"
	"sync"

	"github.com/deskfolio/deskos/internal/providers/storage"
	"github.com/deskfolio/deskos/internal/shared/utils"
	"go.uber.org/zap"
)

// StorageKey holds the persisted preferences
const StorageKey = "os-preferences"

// Theme selects the color scheme
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// Defaults
const (
	DefaultTheme  = ThemeDark
	DefaultAccent = "#3b82f6"
	DefaultVolume = 50
	MaxVolume     = 100
)

// AccentPalette is the set offered by the settings app
var AccentPalette = []string{
	"#3b82f6", // Blue
	"#ef4444", // Red
	"#10b981", // Green
	"#f59e0b", // Yellow
	"#8b5cf6", // Purple
	"#ec4899", // Pink
	"#6366f1", // Indigo
	"#14b8a6", // Teal
}

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid preference")

// Preferences are the user-tunable desktop settings
type Preferences struct {
	Theme       Theme  `json:"theme"`
	AccentColor string `json:"accentColor"`
	Volume      int    `json:"volume"`
}

// Default returns the stock preferences
func Default() Preferences {
	return Preferences{Theme: DefaultTheme, AccentColor: DefaultAccent, Volume: DefaultVolume}
}

// Muted reports whether sound cues are silenced
func (p Preferences) Muted() bool {
	return p.Volume == 0
}

// Update is a partial change; nil fields are left alone
type Update struct {
	Theme       *Theme  `json:"theme,omitempty"`
	AccentColor *string `json:"accentColor,omitempty"`
	Volume      *int    `json:"volume,omitempty"`
}

// Store holds one desktop's preferences
type Store struct {
	writeMu sync.Mutex // held across an update and its persist

	mu    sync.RWMutex
	prefs Preferences // Protected by mu
	kv    storage.KV
	log   *zap.Logger
}

// NewStore loads saved preferences from kv, falling back to defaults
func NewStore(kv storage.KV, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Store{prefs: Default(), kv: kv, log: log}

	var saved Preferences
	err := storage.GetJSON(kv, StorageKey, &saved)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		log.Warn("discarding unreadable preferences", zap.Error(err))
	default:
		s.prefs = sanitize(saved)
	}
	return s
}

// Get returns the current preferences
func (s *Store) Get() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// Muted reports whether sound cues are silenced
func (s *Store) Muted() bool {
	return s.Get().Muted()
}

// Apply validates and applies u, then persists the result. Volume is
// clamped into 0..100.
func (s *Store) Apply(u Update) (Preferences, error) {
	if u.Theme != nil && *u.Theme != ThemeDark && *u.Theme != ThemeLight {
		return Preferences{}, fmt.Errorf("%w: theme must be dark or light", ErrInvalid)
	}
	if u.AccentColor != nil {
		if err := utils.ValidateHexColor(*u.AccentColor, "accentColor"); err != nil {
			return Preferences{}, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	if u.Theme != nil {
		s.prefs.Theme = *u.Theme
	}
	if u.AccentColor != nil {
		s.prefs.AccentColor = *u.AccentColor
	}
	if u.Volume != nil {
		s.prefs.Volume = clampVolume(*u.Volume)
	}
	next := s.prefs
	s.mu.Unlock()

	if err := storage.SetJSON(s.kv, StorageKey, next); err != nil {
		s.log.Warn("preferences not persisted", zap.Error(err))
	}
	return next, nil
}

func sanitize(p Preferences) Preferences {
	d := Default()
	if p.Theme != ThemeDark && p.Theme != ThemeLight {
		p.Theme = d.Theme
	}
	if utils.ValidateHexColor(p.AccentColor, "accentColor") != nil {
		p.AccentColor = d.AccentColor
	}
	p.Volume = clampVolume(p.Volume)
	return p
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > MaxVolume {
		return MaxVolume
	}
	return v
}
