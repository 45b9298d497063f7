package notify

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Kind names a sound cue
type Kind string

const (
	Click    Kind = "click"
	Open     Kind = "open"
	Close    Kind = "close"
	Minimize Kind = "minimize"
	Maximize Kind = "maximize"
	Startup  Kind = "startup"
	Shutdown Kind = "shutdown"
	Login    Kind = "login"
)

// Event is one emitted cue
type Event struct {
	Kind      Kind      `json:"kind"`
	DesktopID string    `json:"desktopId,omitempty"`
	At        time.Time `json:"at"`
}

// Notifier receives cues
type Notifier interface {
	Notify(kind Kind)
}

// Func adapts a function to Notifier
type Func func(kind Kind)

// Notify calls f
func (f Func) Notify(kind Kind) { f(kind) }

// Nop discards every cue
var Nop Notifier = Func(func(Kind) {})

// Emit delivers kind to n, absorbing panics
func Emit(n Notifier, kind Kind, log *zap.Logger) {
	if n == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil && log != nil {
			log.Warn("notifier panicked", zap.String("kind", string(kind)), zap.Any("panic", r))
		}
	}()
	n.Notify(kind)
}

// Gate forwards cues only while enabled reports true
type Gate struct {
	next    Notifier
	enabled func() bool
}

// NewGate wraps next
func NewGate(next Notifier, enabled func() bool) *Gate {
	return &Gate{next: next, enabled: enabled}
}

// Notify forwards kind when the gate is open
func (g *Gate) Notify(kind Kind) {
	if g.enabled != nil && !g.enabled() {
		return
	}
	g.next.Notify(kind)
}

// Bus fans cues out to subscribers
type Bus struct {
	desktopID string
	now       func() time.Time

	mu     sync.RWMutex
	subs   map[uint64]chan Event
	nextID uint64
	closed bool

	dropped uint64
	onEvent func(Event)
}

// NewBus creates a bus stamping events with desktopID
func NewBus(desktopID string, now func() time.Time) *Bus {
	if now == nil {
		now = time.Now
	}
	return &Bus{
		desktopID: desktopID,
		now:       now,
		subs:      make(map[uint64]chan Event),
	}
}

// OnEvent registers a hook called for every published event
func (b *Bus) OnEvent(fn func(Event)) {
	b.mu.Lock()
	b.onEvent = fn
	b.mu.Unlock()
}

// Notify publishes kind to all subscribers without blocking
func (b *Bus) Notify(kind Kind) {
	ev := Event{Kind: kind, DesktopID: b.desktopID, At: b.now()}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	if b.onEvent != nil {
		b.onEvent(ev)
	}
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			b.dropped++
		}
	}
}

// Subscribe returns a channel of events and a cancel function
func (b *Bus) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan Event, buffer)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if c, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		})
	}
}

// Subscribers returns the current subscriber count
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Dropped returns how many deliveries were skipped on full buffers
func (b *Bus) Dropped() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dropped
}

// Close closes every subscriber channel; later cues are discarded
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		close(ch)
		delete(b.subs, id)
	}
}
