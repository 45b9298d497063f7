package http

import (
	"net/http"

	"github.com/deskfolio/deskos/internal/domain/preferences"
	"github.com/gin-gonic/gin"
)

// NotesRequest replaces the notepad text
type NotesRequest struct {
	Notes string `json:"notes"`
}

// EventRequest adds a calendar event
type EventRequest struct {
	Date  string `json:"date" binding:"required"`
	Title string `json:"title" binding:"required"`
}

// GetPreferences returns the desktop settings
func (h *Handlers) GetPreferences(c *gin.Context) {
	s, ok := h.shell(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Preferences())
}

// UpdatePreferences applies a partial settings change
func (h *Handlers) UpdatePreferences(c *gin.Context) {
	var u preferences.Update
	if err := bind(c, &u); err != nil {
		h.fail(c, err)
		return
	}
	s, ok := h.shell(c)
	if !ok {
		return
	}
	prefs, err := s.UpdatePreferences(u)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

// GetNotes returns the notepad text
func (h *Handlers) GetNotes(c *gin.Context) {
	s, ok := h.shell(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": s.Notes()})
}

// SaveNotes stores the notepad text
func (h *Handlers) SaveNotes(c *gin.Context) {
	var req NotesRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	s, ok := h.shell(c)
	if !ok {
		return
	}
	saved, err := s.SaveNotes(req.Notes)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"notes": saved})
}

// ListEvents lists calendar events, filtered by ?date= when given
func (h *Handlers) ListEvents(c *gin.Context) {
	s, ok := h.shell(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": s.Events(c.Query("date"))})
}

// AddEvent stores a calendar event
func (h *Handlers) AddEvent(c *gin.Context) {
	var req EventRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	s, ok := h.shell(c)
	if !ok {
		return
	}
	ev, err := s.AddEvent(req.Date, req.Title)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, ev)
}

// RemoveEvent deletes a calendar event
func (h *Handlers) RemoveEvent(c *gin.Context) {
	s, ok := h.shell(c)
	if !ok {
		return
	}
	eventID := c.Param("eventId")
	if err := s.RemoveEvent(eventID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"event_id": eventID,
	})
}
