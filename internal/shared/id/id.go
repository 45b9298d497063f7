// Package id provides centralized ID generation for the desktop backend.
//
// Two kinds of identifiers exist:
//   - ULIDs with a type prefix (desk_*, req_*) for ids that must be
//     unique across the whole process and sortable by creation time
//   - Sequences for ids owned by a single component instance (window-0,
//     window-1, ...), which are never reused by that instance
//
// Sequences are deliberately not global: every window manager owns its own,
// so independent desktops (and tests) never share counters.
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
)

// DesktopID identifies a hosted desktop (one per browser client)
type DesktopID string

// RequestID identifies an API request
type RequestID string

const (
	DesktopPrefix = "desk"
	RequestPrefix = "req"
)

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a new ULID generator
func NewGenerator() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// NewGeneratorWithEntropy creates a generator with custom entropy source.
// Useful for testing with deterministic entropy.
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{
		entropy: entropy,
	}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateString creates a new ULID as a string
func (g *Generator) GenerateString() string {
	return g.Generate().String()
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.GenerateString())
}

// NewDesktopID generates a new desktop ID
func NewDesktopID() DesktopID {
	return DesktopID(Default().GenerateWithPrefix(DesktopPrefix))
}

// NewRequestID generates a new request ID
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}


func (id DesktopID) String() string { return string(id) }
func (id RequestID) String() string { return string(id) }

// IsValid checks if an ID string is a valid ULID
func IsValid(id string) bool {
	_, err := ulid.Parse(id)
	return err == nil
}

// ParseDesktopID accepts ids produced by NewDesktopID
func ParseDesktopID(s string) (DesktopID, bool) {
	rest, ok := strings.CutPrefix(s, DesktopPrefix+"_")
	if !ok || !IsValid(rest) {
		return "", false
	}
	return DesktopID(s), true
}

// Timestamp extracts the timestamp from a ULID
func Timestamp(id string) (time.Time, error) {
	parsed, err := ulid.Parse(id)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}

// Sequence hands out "<prefix>-<n>" ids with n strictly increasing from 0.
// The zero value is not usable; construct with NewSequence.
type Sequence struct {
	prefix string
	next   atomic.Uint64
}

// NewSequence creates a sequence for the given prefix
func NewSequence(prefix string) *Sequence {
	return &Sequence{prefix: prefix}
}

// Next returns the next id in the sequence
func (s *Sequence) Next() string {
	n := s.next.Add(1) - 1
	return fmt.Sprintf("%s-%d", s.prefix, n)
}

// Counter is a monotonic integer source starting at a fixed base.
// Every call to Next returns a value strictly greater than all previous ones.
type Counter struct {
	next atomic.Int64
}

// NewCounter creates a counter whose first value is base
func NewCounter(base int64) *Counter {
	c := &Counter{}
	c.next.Store(base)
	return c
}

// Next returns the current value and advances the counter
func (c *Counter) Next() int64 {
	return c.next.Add(1) - 1
}

// Peek returns the value the next call to Next will produce
func (c *Counter) Peek() int64 {
	return c.next.Load()
}
