package registry

import (
	"testing"

	"github.com/deskfolio/deskos/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinCatalog(t *testing.T) {
	r := NewDefault()

	assert.Equal(t, []string{
		"about", "projects", "skills", "contact", "resume", "gallery",
		"settings", "clock", "calendar", "calculator", "tictactoe", "rps",
		"notes", "snake", "tetris",
	}, r.IDs())

	projects, ok := r.Get("projects")
	require.True(t, ok)
	assert.Equal(t, "Projects", projects.Name)
	assert.Equal(t, types.Size{Width: 900, Height: 650}, projects.DefaultSize)
	assert.Equal(t, "ProjectsApp", projects.Component)

	calc, _ := r.Get("calculator")
	assert.Equal(t, types.Size{Width: 320, Height: 480}, calc.DefaultSize)

	_, ok = r.Get("minesweeper")
	assert.False(t, ok)
}

func TestRegisterRejectsInvalid(t *testing.T) {
	base := types.AppMetadata{
		ID:          "guestbook",
		Name:        "Guestbook",
		Component:   "GuestbookApp",
		Category:    types.CategoryPersonal,
		DefaultSize: types.Size{Width: 500, Height: 600},
	}

	tests := []struct {
		name   string
		mutate func(*types.AppMetadata)
	}{
		{"missing id", func(a *types.AppMetadata) { a.ID = "" }},
		{"unsafe id", func(a *types.AppMetadata) { a.ID = "../x" }},
		{"missing name", func(a *types.AppMetadata) { a.Name = "" }},
		{"missing component", func(a *types.AppMetadata) { a.Component = "" }},
		{"bad category", func(a *types.AppMetadata) { a.Category = "games" }},
		{"zero size", func(a *types.AppMetadata) { a.DefaultSize = types.Size{} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := base
			tt.mutate(&app)
			r, err := New(nil)
			require.NoError(t, err)
			assert.Error(t, r.Register(app))
			assert.Equal(t, 0, r.Len())
		})
	}

	r, _ := New([]types.AppMetadata{base})
	assert.ErrorIs(t, r.Register(base), ErrDuplicateApp)

	_, err := New([]types.AppMetadata{base, base})
	assert.ErrorIs(t, err, ErrDuplicateApp)
}

func TestReturnsCopies(t *testing.T) {
	r := NewDefault()
	app, _ := r.Get("about")
	app.SearchKeywords[0] = "mutated"
	app.Name = "mutated"

	again, _ := r.Get("about")
	assert.Equal(t, "about", again.SearchKeywords[0])
	assert.Equal(t, "About Me", again.Name)

	list := r.List()
	list[0].SearchKeywords[0] = "mutated"
	again, _ = r.Get("about")
	assert.Equal(t, "about", again.SearchKeywords[0])
}

func TestByCategoryAndStats(t *testing.T) {
	r := NewDefault()

	work := r.ByCategory(types.CategoryWork)
	var ids []string
	for _, a := range work {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"projects", "skills", "resume", "gallery"}, ids)

	stats := r.Stats()
	assert.Equal(t, r.Len(), stats.TotalApps)
	assert.Equal(t, 4, stats.Categories[types.CategoryWork])
	assert.Equal(t, stats.TotalApps,
		stats.Categories[types.CategoryWork]+stats.Categories[types.CategoryPersonal]+stats.Categories[types.CategorySystem])
	assert.True(t, r.Has("rps"))
}
