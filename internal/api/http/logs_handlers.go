package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/deskfolio/deskos/internal/shared/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MaxLogEntries caps one client log batch
const MaxLogEntries = 100

// UILogEntry represents a log entry from the browser
type UILogEntry struct {
	ID        string                 `json:"id"`
	Level     string                 `json:"level"`
	Message   string                 `json:"message"`
	Context   map[string]interface{} `json:"context"`
	Timestamp string                 `json:"timestamp"`
}

// UILogStreamRequest represents a batch of logs from the browser
type UILogStreamRequest struct {
	DesktopID string       `json:"desktopId"`
	Entries   []UILogEntry `json:"entries"`
}

// StreamLogs forwards browser log entries into the server log
func (h *Handlers) StreamLogs(c *gin.Context) {
	var req UILogStreamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid log request format"})
		return
	}
	if len(req.Entries) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No log entries provided"})
		return
	}
	if len(req.Entries) > MaxLogEntries {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("At most %d log entries per batch", MaxLogEntries)})
		return
	}
	if err := utils.ValidateID(req.DesktopID, "desktopId", false); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger := h.log.Named("ui")
	if req.DesktopID != "" {
		logger = logger.With(zap.String("desktop_id", req.DesktopID))
	}

	processed := 0
	for _, entry := range req.Entries {
		if err := utils.ValidateString(entry.Message, "message", 1, utils.MaxMessageLength, true); err != nil {
			logger.Debug("dropping ui log entry", zap.String("ui_log_id", entry.ID), zap.Error(err))
			continue
		}
		logUIEntry(logger, entry)
		processed++
	}

	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"entries_received":  len(req.Entries),
		"entries_processed": processed,
		"timestamp":         time.Now().Unix(),
	})
}

func logUIEntry(logger *zap.Logger, entry UILogEntry) {
	fields := make([]zap.Field, 0, len(entry.Context)+2)
	fields = append(fields,
		zap.String("ui_log_id", entry.ID),
		zap.String("ui_timestamp", entry.Timestamp),
	)
	for key, value := range entry.Context {
		switch v := value.(type) {
		case string:
			fields = append(fields, zap.String(key, v))
		case float64:
			fields = append(fields, zap.Float64(key, v))
		case bool:
			fields = append(fields, zap.Bool(key, v))
		default:
			fields = append(fields, zap.Any(key, v))
		}
	}

	switch entry.Level {
	case "error":
		logger.Error(entry.Message, fields...)
	case "warn":
		logger.Warn(entry.Message, fields...)
	case "debug", "verbose":
		logger.Debug(entry.Message, fields...)
	default:
		logger.Info(entry.Message, fields...)
	}
}
