package http

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/deskfolio/deskos/internal/domain/desktop"
	"github.com/deskfolio/deskos/internal/domain/search"
	"github.com/deskfolio/deskos/internal/providers/contact"
	"github.com/deskfolio/deskos/internal/shared/types"
	"github.com/deskfolio/deskos/internal/shared/utils"
	"github.com/gin-gonic/gin"
)

// ListApps lists the registered apps, optionally for one category
func (h *Handlers) ListApps(c *gin.Context) {
	done := h.track.TrackCatalogOperation("list_apps")

	category := types.Category(c.Query("category"))
	if category != "" && !category.Valid() {
		err := fmt.Errorf("%w: unknown category %q", errBadRequest, category)
		done(err)
		h.fail(c, err)
		return
	}

	apps := h.registry.List()
	if category != "" {
		apps = h.registry.ByCategory(category)
	}
	done(nil)

	c.JSON(http.StatusOK, gin.H{
		"apps":  apps,
		"stats": h.registry.Stats(),
	})
}

// GetApp returns one registry entry
func (h *Handlers) GetApp(c *gin.Context) {
	appID := c.Param("id")
	if err := utils.ValidateID(appID, "app_id", true); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	app, ok := h.registry.Get(appID)
	if !ok {
		h.fail(c, fmt.Errorf("%w: %s", desktop.ErrUnknownApp, appID))
		return
	}
	c.JSON(http.StatusOK, app)
}

// Search runs a catalog search outside any desktop
func (h *Handlers) Search(c *gin.Context) {
	query, err := searchQuery(c)
	if err != nil {
		h.fail(c, err)
		return
	}

	done := h.track.TrackCatalogOperation("search")
	results := h.search.Search(query)
	outcome := search.Classify(query, results)
	done(nil)

	c.JSON(http.StatusOK, desktop.SearchView{
		Query:   query,
		Results: results,
		Outcome: outcome,
		Message: search.Message(query, outcome),
	})
}

func searchQuery(c *gin.Context) (string, error) {
	query := strings.TrimSpace(c.Query("q"))
	if err := utils.ValidateString(query, "q", 0, utils.MaxQueryLength, false); err != nil {
		return "", fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return query, nil
}

// Projects lists portfolio projects
func (h *Handlers) Projects(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"projects": h.content.Projects})
}

// Skills lists skills
func (h *Handlers) Skills(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"skills": h.content.Skills})
}

// Education lists education entries
func (h *Handlers) Education(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"education": h.content.Education})
}

// Experience lists the work history
func (h *Handlers) Experience(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"experience": h.content.Experience})
}

// Blog lists blog posts
func (h *Handlers) Blog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"posts": h.content.BlogPosts})
}

// Resume serves the resume document as a download
func (h *Handlers) Resume(c *gin.Context) {
	if h.resume == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "resume not available"})
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.resume.Name))
	c.Data(http.StatusOK, h.resume.MIME, h.resume.Data)
}

// Contact relays a contact form submission
func (h *Handlers) Contact(c *gin.Context) {
	var msg contact.Message
	if err := c.ShouldBindJSON(&msg); err != nil {
		h.fail(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}

	res, err := h.relay.Submit(c.Request.Context(), msg)
	if err != nil {
		h.fail(c, err)
		return
	}
	if !res.Sent {
		c.JSON(http.StatusBadGateway, res)
		return
	}
	c.JSON(http.StatusOK, res)
}
