package http

import (
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"

	"github.com/deskfolio/deskos/internal/domain/desktop"
	"github.com/deskfolio/deskos/internal/shared/id"
	"github.com/deskfolio/deskos/internal/shared/types"
	"github.com/gin-gonic/gin"
)

// CreateDesktopRequest optionally resumes a previous desktop
type CreateDesktopRequest struct {
	ResumeID string          `json:"resumeId"`
	Viewport *types.Viewport `json:"viewport"`
}

// OpenWindowRequest launches an app
type OpenWindowRequest struct {
	AppID  string         `json:"appId" binding:"required"`
	Source desktop.Source `json:"source"`
}

// PositionRequest moves a window or icon
type PositionRequest struct {
	X *float64 `json:"x" binding:"required"`
	Y *float64 `json:"y" binding:"required"`
}

// SizeRequest resizes a window
type SizeRequest struct {
	Width  *int `json:"width" binding:"required"`
	Height *int `json:"height" binding:"required"`
}

// coordinate converts a JSON number to a window coordinate
func coordinate(v float64, field string) (int, error) {
	if math.IsNaN(v) || v < math.MinInt32 || v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s out of range", errBadRequest, field)
	}
	return int(math.Round(v)), nil
}

var sessionActions = map[string]func(*desktop.Shell) error{
	"boot":     (*desktop.Shell).CompleteBoot,
	"unlock":   (*desktop.Shell).Unlock,
	"lock":     (*desktop.Shell).Lock,
	"shutdown": (*desktop.Shell).Shutdown,
	"power-on": (*desktop.Shell).PowerOn,
}

var windowActions = map[string]func(*desktop.Shell, string) error{
	"focus":    (*desktop.Shell).FocusWindow,
	"minimize": (*desktop.Shell).MinimizeWindow,
	"maximize": (*desktop.Shell).MaximizeWindow,
	"taskbar":  (*desktop.Shell).TaskbarClick,
}

// bind decodes the JSON body, reporting failures as bad requests
func bind(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}

// shell resolves the :id parameter to a live desktop
func (h *Handlers) shell(c *gin.Context) (*desktop.Shell, bool) {
	desktopID := c.Param("id")
	if _, ok := id.ParseDesktopID(desktopID); !ok {
		h.fail(c, fmt.Errorf("%w: %q", desktop.ErrInvalidDesktopID, desktopID))
		return nil, false
	}
	s, ok := h.hub.Get(desktopID)
	if !ok {
		h.fail(c, fmt.Errorf("%w: %s", desktop.ErrDesktopNotFound, desktopID))
		return nil, false
	}
	return s, true
}

// apply runs a tracked shell mutation and answers with the new snapshot
func (h *Handlers) apply(c *gin.Context, operation string, fn func(s *desktop.Shell) error) {
	s, ok := h.shell(c)
	if !ok {
		return
	}
	done := h.track.TrackDesktopOperation(operation)
	err := fn(s)
	done(err)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// CreateDesktop starts a desktop, or resumes one when resumeId is given
func (h *Handlers) CreateDesktop(c *gin.Context) {
	var req CreateDesktopRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	done := h.track.TrackDesktopOperation("create")
	var (
		s   *desktop.Shell
		err error
	)
	status := http.StatusCreated
	if req.ResumeID != "" {
		s, err = h.hub.Resume(req.ResumeID)
		status = http.StatusOK
	} else {
		s, err = h.hub.Create()
	}
	if err == nil && req.Viewport != nil {
		if err = s.SetViewport(*req.Viewport); err != nil && req.ResumeID == "" {
			_ = h.hub.Remove(s.ID())
		}
	}
	done(err)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(status, s.Snapshot())
}

// GetDesktop returns the desktop snapshot
func (h *Handlers) GetDesktop(c *gin.Context) {
	s, ok := h.shell(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// DeleteDesktop stops a desktop; its saved data is kept
func (h *Handlers) DeleteDesktop(c *gin.Context) {
	s, ok := h.shell(c)
	if !ok {
		return
	}
	if err := h.hub.Remove(s.ID()); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"desktop_id": s.ID(),
	})
}

// SetViewport records the client's visible desktop area
func (h *Handlers) SetViewport(c *gin.Context) {
	var vp types.Viewport
	if err := bind(c, &vp); err != nil {
		h.fail(c, err)
		return
	}
	h.apply(c, "viewport", func(s *desktop.Shell) error { return s.SetViewport(vp) })
}

// SessionAction triggers a session transition
func (h *Handlers) SessionAction(c *gin.Context) {
	action := c.Param("action")
	fn, ok := sessionActions[action]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown session action %q", action)})
		return
	}
	h.apply(c, "session_"+action, fn)
}

// ToggleStartMenu flips the start menu
func (h *Handlers) ToggleStartMenu(c *gin.Context) {
	h.apply(c, "toggle_start_menu", func(s *desktop.Shell) error {
		_, err := s.ToggleStartMenu()
		return err
	})
}

// ToggleSearch flips the search overlay
func (h *Handlers) ToggleSearch(c *gin.Context) {
	h.apply(c, "toggle_search", func(s *desktop.Shell) error {
		_, err := s.ToggleSearch()
		return err
	})
}

// SetOverlays sets both overlay flags
func (h *Handlers) SetOverlays(c *gin.Context) {
	var o types.Overlays
	if err := bind(c, &o); err != nil {
		h.fail(c, err)
		return
	}
	h.apply(c, "set_overlays", func(s *desktop.Shell) error {
		_, err := s.SetOverlays(o)
		return err
	})
}

// OpenWindow launches an app, focusing its window if already open
func (h *Handlers) OpenWindow(c *gin.Context) {
	var req OpenWindowRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	switch req.Source {
	case "":
		req.Source = desktop.SourceIcon
	case desktop.SourceIcon, desktop.SourceStartMenu, desktop.SourceSearch:
	default:
		h.fail(c, fmt.Errorf("%w: unknown source %q", errBadRequest, req.Source))
		return
	}
	h.launch(c, req.AppID, req.Source)
}

func (h *Handlers) launch(c *gin.Context, appID string, from desktop.Source) {
	s, ok := h.shell(c)
	if !ok {
		return
	}
	done := h.track.TrackDesktopOperation("launch")
	windowID, err := s.Launch(appID, from)
	done(err)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"windowId": windowID,
		"snapshot": s.Snapshot(),
	})
}

// GetWindow returns one window record
func (h *Handlers) GetWindow(c *gin.Context) {
	s, ok := h.shell(c)
	if !ok {
		return
	}
	rec, err := s.Window(c.Param("wid"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// CloseWindow closes a window
func (h *Handlers) CloseWindow(c *gin.Context) {
	windowID := c.Param("wid")
	h.apply(c, "close_window", func(s *desktop.Shell) error { return s.CloseWindow(windowID) })
}

// WindowAction focuses, minimizes, maximizes or taskbar-clicks a window
func (h *Handlers) WindowAction(c *gin.Context) {
	action := c.Param("action")
	fn, ok := windowActions[action]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("unknown window action %q", action)})
		return
	}
	windowID := c.Param("wid")
	h.apply(c, "window_"+action, func(s *desktop.Shell) error { return fn(s, windowID) })
}

// MoveWindow sets a window's position
func (h *Handlers) MoveWindow(c *gin.Context) {
	var req PositionRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	x, err := coordinate(*req.X, "x")
	if err != nil {
		h.fail(c, err)
		return
	}
	y, err := coordinate(*req.Y, "y")
	if err != nil {
		h.fail(c, err)
		return
	}
	windowID := c.Param("wid")
	pos := types.Position{X: x, Y: y}
	h.apply(c, "move_window", func(s *desktop.Shell) error { return s.MoveWindow(windowID, pos) })
}

// ResizeWindow sets a window's size
func (h *Handlers) ResizeWindow(c *gin.Context) {
	var req SizeRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	windowID := c.Param("wid")
	size := types.Size{Width: *req.Width, Height: *req.Height}
	h.apply(c, "resize_window", func(s *desktop.Shell) error { return s.ResizeWindow(windowID, size) })
}

// ListIcons returns the icon layout
func (h *Handlers) ListIcons(c *gin.Context) {
	s, ok := h.shell(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"icons": s.Icons()})
}

// MoveIcon drops an icon at a new position
func (h *Handlers) MoveIcon(c *gin.Context) {
	var req PositionRequest
	if err := bind(c, &req); err != nil {
		h.fail(c, err)
		return
	}
	s, ok := h.shell(c)
	if !ok {
		return
	}
	done := h.track.TrackDesktopOperation("move_icon")
	pos, err := s.MoveIcon(c.Param("appId"), *req.X, *req.Y)
	done(err)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pos)
}

// LaunchIcon opens the app behind a desktop icon
func (h *Handlers) LaunchIcon(c *gin.Context) {
	h.launch(c, c.Param("appId"), desktop.SourceIcon)
}

// ResetIcons restores the default icon grid
func (h *Handlers) ResetIcons(c *gin.Context) {
	s, ok := h.shell(c)
	if !ok {
		return
	}
	done := h.track.TrackDesktopOperation("reset_icons")
	icons, err := s.ResetIcons()
	done(err)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"icons": icons})
}

// DesktopSearch runs the search overlay query
func (h *Handlers) DesktopSearch(c *gin.Context) {
	query, err := searchQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}
	s, ok := h.shell(c)
	if !ok {
		return
	}
	view, err := s.Search(query)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
