package search

import (
	"fmt"
	"strings"

	"github.com/deskfolio/deskos/internal/domain/content"
	"github.com/deskfolio/deskos/internal/infrastructure/monitoring"
	"github.com/deskfolio/deskos/internal/shared/types"
)

// Limit caps the number of results
const Limit = 10

// Result presentation
const (
	ProjectsAppID    = "projects"
	SkillsAppID      = "skills"
	ProjectIcon      = "💼"
	SkillIcon        = "⚡"
	SkillDescription = "Technical skill"

	EmptyMessage = "Type to search through apps, projects, and skills"
)

// Outcome classifies a search for rendering
type Outcome string

const (
	OutcomeEmpty   Outcome = "empty"
	OutcomeNoMatch Outcome = "no_match"
	OutcomeMatch   Outcome = "match"
)

// AppSource lists apps in catalog order
type AppSource interface {
	List() []types.AppMetadata
}

// Index searches apps and content
type Index struct {
	apps    AppSource
	content *content.Catalog
	metrics *monitoring.Metrics
}

// NewIndex creates an index over apps and cat
func NewIndex(apps AppSource, cat *content.Catalog) *Index {
	if cat == nil {
		cat = &content.Catalog{}
	}
	return &Index{apps: apps, content: cat}
}

// WithMetrics adds metrics tracking to the index
func (x *Index) WithMetrics(metrics *monitoring.Metrics) *Index {
	x.metrics = metrics
	return x
}

// Search returns up to Limit matches for query
func (x *Index) Search(query string) []types.SearchResult {
	results := x.search(query)
	if x.metrics != nil {
		x.metrics.RecordSearch(string(Classify(query, results)))
	}
	return results
}

func (x *Index) search(query string) []types.SearchResult {
	q := strings.ToLower(strings.TrimSpace(query))
	results := []types.SearchResult{}
	if q == "" {
		return results
	}

	full := func() bool { return len(results) >= Limit }

	if x.apps != nil {
		for _, app := range x.apps.List() {
			if full() {
				return results
			}
			if matchApp(app, q) {
				results = append(results, types.SearchResult{
					Type:        types.ResultApp,
					Title:       app.Name,
					Description: app.Description,
					Icon:        app.Icon,
					Action:      openApp(app.ID),
				})
			}
		}
	}

	for _, p := range x.content.Projects {
		if full() {
			return results
		}
		if contains(p.Title, q) || contains(p.Description, q) {
			results = append(results, types.SearchResult{
				Type:        types.ResultProject,
				Title:       p.Title,
				Description: p.Description,
				Icon:        ProjectIcon,
				Action:      openApp(ProjectsAppID),
			})
		}
	}

	for _, s := range x.content.Skills {
		if full() {
			return results
		}
		if contains(s.Label, q) {
			results = append(results, types.SearchResult{
				Type:        types.ResultSkill,
				Title:       s.Label,
				Description: SkillDescription,
				Icon:        SkillIcon,
				Action:      openApp(SkillsAppID),
			})
		}
	}

	return results
}

// Classify tells an empty query apart from a query without matches
func Classify(query string, results []types.SearchResult) Outcome {
	switch {
	case strings.TrimSpace(query) == "":
		return OutcomeEmpty
	case len(results) == 0:
		return OutcomeNoMatch
	default:
		return OutcomeMatch
	}
}

// Message returns the placeholder shown for an outcome without results
func Message(query string, outcome Outcome) string {
	switch outcome {
	case OutcomeEmpty:
		return EmptyMessage
	case OutcomeNoMatch:
		return fmt.Sprintf("No results found for %q", query)
	default:
		return ""
	}
}

func matchApp(app types.AppMetadata, q string) bool {
	if contains(app.Name, q) || contains(app.Description, q) {
		return true
	}
	for _, k := range app.SearchKeywords {
		if contains(k, q) {
			return true
		}
	}
	return false
}

func contains(s, lowerQuery string) bool {
	return strings.Contains(strings.ToLower(s), lowerQuery)
}

func openApp(appID string) types.Action {
	return types.Action{Kind: types.ActionOpenApp, AppID: appID}
}
