package http

import (
	"net/http"

	"github.com/deskfolio/deskos/internal/domain/content"
	"github.com/deskfolio/deskos/internal/domain/desktop"
	"github.com/deskfolio/deskos/internal/domain/registry"
	"github.com/deskfolio/deskos/internal/domain/search"
	"github.com/deskfolio/deskos/internal/infrastructure/monitoring"
	"github.com/deskfolio/deskos/internal/providers/contact"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Version is reported by the root endpoint
const Version = "1.0.0"

// Deps are the collaborators served over HTTP
type Deps struct {
	Hub      *desktop.Hub
	Registry *registry.Registry
	Search   *search.Index
	Content  *content.Catalog
	Resume   *content.Resume
	Relay    *contact.Relay
	Metrics  *monitoring.Metrics
	Log      *zap.Logger
}

// Handlers contains all HTTP handlers
type Handlers struct {
	hub      *desktop.Hub
	registry *registry.Registry
	search   *search.Index
	content  *content.Catalog
	resume   *content.Resume
	relay    *contact.Relay
	metrics  *monitoring.Metrics
	track    *HandlerMetrics
	log      *zap.Logger
}

// NewHandlers creates a new handler set
func NewHandlers(deps Deps) *Handlers {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Content == nil {
		deps.Content = content.Default()
	}
	if deps.Registry == nil {
		deps.Registry = registry.NewDefault()
	}
	if deps.Search == nil {
		deps.Search = search.NewIndex(deps.Registry, deps.Content)
	}
	if deps.Relay == nil {
		deps.Relay = contact.NewRelay(contact.DefaultConfig(), deps.Log.Named("contact"))
	}
	return &Handlers{
		hub:      deps.Hub,
		registry: deps.Registry,
		search:   deps.Search,
		content:  deps.Content,
		resume:   deps.Resume,
		relay:    deps.Relay,
		metrics:  deps.Metrics,
		track:    NewHandlerMetrics(deps.Metrics),
		log:      deps.Log,
	}
}

// Register mounts every route on r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	if h.metrics != nil {
		r.GET("/metrics", gin.WrapH(h.metrics.Handler()))
		r.GET("/metrics/summary", h.MetricsSummary)
	}
	r.POST("/logs", h.StreamLogs)

	r.GET("/apps", h.ListApps)
	r.GET("/apps/:id", h.GetApp)
	r.GET("/search", h.Search)

	c := r.Group("/content")
	c.GET("/projects", h.Projects)
	c.GET("/skills", h.Skills)
	c.GET("/education", h.Education)
	c.GET("/experience", h.Experience)
	c.GET("/blog", h.Blog)
	c.GET("/resume", h.Resume)

	r.POST("/contact", h.Contact)

	r.POST("/desktops", h.CreateDesktop)
	d := r.Group("/desktops/:id")
	d.GET("", h.GetDesktop)
	d.DELETE("", h.DeleteDesktop)
	d.PUT("/viewport", h.SetViewport)

	d.POST("/session/:action", h.SessionAction)

	d.POST("/overlays/start-menu/toggle", h.ToggleStartMenu)
	d.POST("/overlays/search/toggle", h.ToggleSearch)
	d.PUT("/overlays", h.SetOverlays)

	d.POST("/windows", h.OpenWindow)
	d.GET("/windows/:wid", h.GetWindow)
	d.DELETE("/windows/:wid", h.CloseWindow)
	d.POST("/windows/:wid/:action", h.WindowAction)
	d.PUT("/windows/:wid/position", h.MoveWindow)
	d.PUT("/windows/:wid/size", h.ResizeWindow)

	d.GET("/icons", h.ListIcons)
	d.POST("/icons/reset", h.ResetIcons)
	d.PUT("/icons/:appId", h.MoveIcon)
	d.POST("/icons/:appId/launch", h.LaunchIcon)

	d.GET("/search", h.DesktopSearch)

	d.GET("/preferences", h.GetPreferences)
	d.PUT("/preferences", h.UpdatePreferences)
	d.GET("/notes", h.GetNotes)
	d.PUT("/notes", h.SaveNotes)
	d.GET("/calendar/events", h.ListEvents)
	d.POST("/calendar/events", h.AddEvent)
	d.DELETE("/calendar/events/:eventId", h.RemoveEvent)
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": "deskos",
		"version": Version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	live := 0
	if h.hub != nil {
		live = h.hub.Len()
	}
	c.JSON(http.StatusOK, gin.H{
		"status":        "healthy",
		"desktops":      live,
		"registry":      h.registry.Stats(),
		"contact_relay": gin.H{"configured": h.relay.Configured()},
	})
}
