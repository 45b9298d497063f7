package ws

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/deskfolio/deskos/internal/domain/desktop"
	"github.com/deskfolio/deskos/internal/infrastructure/monitoring"
	"github.com/deskfolio/deskos/internal/providers/notify"
	"github.com/deskfolio/deskos/internal/shared/id"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Message types
const (
	TypePing         = "ping"
	TypePong         = "pong"
	TypeSnapshot     = "snapshot"
	TypeNotification = "notification"
	TypeClosed       = "closed"
	TypeError        = "error"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
	maxMessageSize = 4096
	eventBuffer    = 32
)

// DefaultRefreshInterval is how often a changed snapshot is pushed. Boot
// progress advances on this cadence.
const DefaultRefreshInterval = 100 * time.Millisecond

// Message is a server to client frame
type Message struct {
	Type         string          `json:"type"`
	Snapshot     json.RawMessage `json:"snapshot,omitempty"`
	Notification *notify.Event   `json:"notification,omitempty"`
	Message      string          `json:"message,omitempty"`
	Timestamp    int64           `json:"timestamp"`
}

// inbound is a client to server frame
type inbound struct {
	Type string `json:"type"`
}

// Config configures the stream handler
type Config struct {
	RefreshInterval time.Duration
	// CheckOrigin defaults to accepting every origin, matching the CORS policy
	CheckOrigin func(r *http.Request) bool
}

// DefaultConfig returns the stock stream settings
func DefaultConfig() Config {
	return Config{RefreshInterval: DefaultRefreshInterval}
}

// Handler manages desktop streams
type Handler struct {
	hub      *desktop.Hub
	upgrader websocket.Upgrader
	refresh  time.Duration
	metrics  *monitoring.Metrics
	log      *zap.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(hub *desktop.Hub, cfg Config, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = DefaultRefreshInterval
	}
	if cfg.CheckOrigin == nil {
		cfg.CheckOrigin = func(*http.Request) bool { return true }
	}
	return &Handler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     cfg.CheckOrigin,
		},
		refresh: cfg.RefreshInterval,
		log:     log,
	}
}

// WithMetrics adds metrics tracking to the handler
func (h *Handler) WithMetrics(metrics *monitoring.Metrics) *Handler {
	h.metrics = metrics
	return h
}

// HandleConnection upgrades the request and streams the desktop named by :id
func (h *Handler) HandleConnection(c *gin.Context) {
	desktopID := c.Param("id")
	if _, ok := id.ParseDesktopID(desktopID); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("%v: %q", desktop.ErrInvalidDesktopID, desktopID)})
		return
	}
	shell, ok := h.hub.Get(desktopID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("%v: %s", desktop.ErrDesktopNotFound, desktopID)})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.String("desktop_id", desktopID), zap.Error(err))
		return
	}

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	log := h.log.With(zap.String("desktop_id", desktopID))
	log.Debug("stream opened")
	newStream(conn, shell, h.refresh, h.metrics, log).run(c.Request.Context())
	log.Debug("stream closed")
}

// stream serves one connection. All writes happen on the run goroutine.
type stream struct {
	conn    *websocket.Conn
	shell   *desktop.Shell
	refresh time.Duration
	metrics *monitoring.Metrics
	log     *zap.Logger

	last []byte
}

func newStream(conn *websocket.Conn, shell *desktop.Shell, refresh time.Duration, metrics *monitoring.Metrics, log *zap.Logger) *stream {
	return &stream{conn: conn, shell: shell, refresh: refresh, metrics: metrics, log: log}
}

func (s *stream) run(ctx context.Context) {
	defer s.conn.Close()

	events, cancel := s.shell.Bus().Subscribe(eventBuffer)
	defer cancel()

	requests := make(chan string, 8)
	done := make(chan struct{})
	quit := make(chan struct{})
	defer close(quit)
	go s.readLoop(requests, done, quit)

	refresh := time.NewTicker(s.refresh)
	defer refresh.Stop()
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	if err := s.sendSnapshot(true); err != nil {
		return
	}

	for {
		var err error
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case ev, ok := <-events:
			if !ok {
				s.closeDesktop()
				return
			}
			if err = s.send(Message{Type: TypeNotification, Notification: &ev}); err == nil {
				err = s.sendSnapshot(false)
			}
		case typ := <-requests:
			err = s.handle(typ)
		case <-refresh.C:
			err = s.sendSnapshot(false)
		case <-ping.C:
			err = s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
		}
		if err != nil {
			s.log.Debug("stream write failed", zap.Error(err))
			return
		}
	}
}

func (s *stream) handle(typ string) error {
	switch typ {
	case TypePing:
		return s.send(Message{Type: TypePong})
	case TypeSnapshot:
		return s.sendSnapshot(true)
	default:
		return s.send(Message{Type: TypeError, Message: "unknown message type"})
	}
}

// readLoop decodes client frames until the connection fails
func (s *stream) readLoop(requests chan<- string, done chan<- struct{}, quit <-chan struct{}) {
	defer close(done)

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Debug("websocket read error", zap.Error(err))
			}
			return
		}
		_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg inbound
		if err := sonic.Unmarshal(data, &msg); err != nil {
			msg.Type = ""
		}
		s.record("in", msg.Type)
		select {
		case requests <- msg.Type:
		case <-quit:
			return
		}
	}
}

// sendSnapshot pushes the snapshot, skipping it when unchanged unless forced
func (s *stream) sendSnapshot(force bool) error {
	data, err := sonic.Marshal(s.shell.Snapshot())
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if !force && bytes.Equal(data, s.last) {
		return nil
	}
	s.last = data
	return s.send(Message{Type: TypeSnapshot, Snapshot: data})
}

func (s *stream) send(msg Message) error {
	msg.Timestamp = time.Now().Unix()
	data, err := sonic.Marshal(msg)
	if err != nil {
		return fmt.Errorf("encode %s: %w", msg.Type, err)
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return err
	}
	s.record("out", msg.Type)
	return nil
}

// closeDesktop tells the client its desktop is gone and closes cleanly
func (s *stream) closeDesktop() {
	if err := s.send(Message{Type: TypeClosed, Message: "desktop stopped"}); err != nil {
		return
	}
	_ = s.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "desktop stopped"),
		time.Now().Add(writeWait))
}

func (s *stream) record(direction, msgType string) {
	if s.metrics == nil {
		return
	}
	if msgType == "" {
		msgType = "unknown"
	}
	s.metrics.RecordWSMessage(direction, msgType)
}
