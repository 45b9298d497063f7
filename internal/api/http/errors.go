package http

import (
	"errors"
	"net/http"

	"github.com/deskfolio/deskos/internal/domain/desktop"
	"github.com/deskfolio/deskos/internal/domain/layout"
	"github.com/deskfolio/deskos/internal/domain/preferences"
	"github.com/deskfolio/deskos/internal/providers/blobs"
	"github.com/deskfolio/deskos/internal/providers/contact"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// errBadRequest marks request decoding failures
var errBadRequest = errors.New("bad request")

// statusFor maps domain errors onto HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, errBadRequest),
		errors.Is(err, desktop.ErrInvalidDesktopID),
		errors.Is(err, desktop.ErrInvalidViewport),
		errors.Is(err, preferences.ErrInvalid),
		errors.Is(err, blobs.ErrInvalidEvent),
		errors.Is(err, contact.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, blobs.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, desktop.ErrDesktopNotFound),
		errors.Is(err, desktop.ErrNotFound),
		errors.Is(err, desktop.ErrUnknownApp),
		errors.Is(err, layout.ErrUnknownIcon),
		errors.Is(err, blobs.ErrEventNotFound):
		return http.StatusNotFound
	case errors.Is(err, desktop.ErrNotInteractive),
		errors.Is(err, desktop.ErrInvalidTransition):
		return http.StatusConflict
	case errors.Is(err, desktop.ErrTooManyDesktops),
		errors.Is(err, desktop.ErrHubClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail writes err as {"error": "..."} with its mapped status
func (h *Handlers) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.log.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err))
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
