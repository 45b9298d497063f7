package blobs

import (
	"errors"
	"fmt"
	"sync"

	"github.com/deskfolio/deskos/internal/providers/storage"
	"github.com/deskfolio/deskos/internal/shared/utils"
	"go.uber.org/zap"
)

// NotesKey holds the notes text
const NotesKey = "os-notes"

// ErrTooLarge is returned for oversized documents
var ErrTooLarge = errors.New("document too large")

// Notes is the notepad text of one desktop
type Notes struct {
	mu  sync.Mutex
	kv  storage.KV
	log *zap.Logger
}

// NewNotes creates a notes blob over kv
func NewNotes(kv storage.KV, log *zap.Logger) *Notes {
	if log == nil {
		log = zap.NewNop()
	}
	return &Notes{kv: kv, log: log}
}

// Get returns the saved text, or "" when nothing is stored
func (n *Notes) Get() string {
	n.mu.Lock()
	defer n.mu.Unlock()

	data, err := n.kv.Get(NotesKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			n.log.Warn("notes unreadable", zap.Error(err))
		}
		return ""
	}
	return string(data)
}

// Set replaces the text after stripping markup and returns what was stored
func (n *Notes) Set(text string) (string, error) {
	if len(text) > utils.MaxNotesLength {
		return "", fmt.Errorf("%w: notes exceed %d bytes", ErrTooLarge, utils.MaxNotesLength)
	}
	clean := utils.StripTags(text)

	n.mu.Lock()
	defer n.mu.Unlock()
	if err := n.kv.Set(NotesKey, []byte(clean)); err != nil {
		return "", fmt.Errorf("save notes: %w", err)
	}
	return clean, nil
}
