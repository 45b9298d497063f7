package blobs

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/deskfolio/deskos/internal/providers/storage"
	"github.com/deskfolio/deskos/internal/shared/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CalendarKey holds the event list
const CalendarKey = "os-calendar-events"

// DateLayout is the event date format
const DateLayout = "2006-01-02"

var (
	// ErrInvalidEvent is wrapped by event validation failures
	ErrInvalidEvent = errors.New("invalid event")
	// ErrEventNotFound is returned when removing an unknown event
	ErrEventNotFound = errors.New("event not found")
)

// Event is a single calendar entry
type Event struct {
	ID    string `json:"id"`
	Date  string `json:"date"`
	Title string `json:"title"`
}

// Calendar stores one desktop's events
type Calendar struct {
	mu  sync.Mutex
	kv  storage.KV
	log *zap.Logger
}

// NewCalendar creates a calendar over kv
func NewCalendar(kv storage.KV, log *zap.Logger) *Calendar {
	if log == nil {
		log = zap.NewNop()
	}
	return &Calendar{kv: kv, log: log}
}

// List returns events ordered by date. A non-empty date filters to that day.
func (c *Calendar) List(date string) []Event {
	c.mu.Lock()
	events := c.loadLocked()
	c.mu.Unlock()

	out := make([]Event, 0, len(events))
	for _, e := range events {
		if date == "" || e.Date == date {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Add validates and stores a new event
func (c *Calendar) Add(date, title string) (Event, error) {
	if err := utils.ValidateDate(date, "date"); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return Event{}, fmt.Errorf("%w: date %q is not a real day", ErrInvalidEvent, date)
	}
	title = utils.CleanLine(title)
	if err := utils.ValidateString(title, "title", 1, utils.MaxTitleLength, true); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrInvalidEvent, err)
	}

	ev := Event{ID: uuid.NewString(), Date: date, Title: title}

	c.mu.Lock()
	defer c.mu.Unlock()
	events := append(c.loadLocked(), ev)
	if err := storage.SetJSON(c.kv, CalendarKey, events); err != nil {
		return Event{}, fmt.Errorf("save calendar: %w", err)
	}
	return ev, nil
}

// Remove deletes the event with id
func (c *Calendar) Remove(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	events := c.loadLocked()
	kept := events[:0]
	found := false
	for _, e := range events {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	if !found {
		return ErrEventNotFound
	}
	if err := storage.SetJSON(c.kv, CalendarKey, kept); err != nil {
		return fmt.Errorf("save calendar: %w", err)
	}
	return nil
}

func (c *Calendar) loadLocked() []Event {
	var events []Event
	err := storage.GetJSON(c.kv, CalendarKey, &events)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil
	case err != nil:
		c.log.Warn("calendar unreadable, starting empty", zap.Error(err))
		return nil
	}
	// Entries written before ids existed get one on first read
	repaired := false
	for i := range events {
		if events[i].ID == "" {
			events[i].ID = uuid.NewString()
			repaired = true
		}
	}
	if repaired {
		if err := storage.SetJSON(c.kv, CalendarKey, events); err != nil {
			c.log.Warn("calendar ids not persisted", zap.Error(err))
		}
	}
	return events
}
