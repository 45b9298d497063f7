package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/deskfolio/deskos/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const guestbookYAML = `apps:
  - id: guestbook
    name: Guestbook
    icon: "📖"
    component: GuestbookApp
    category: personal
    defaultSize:
      width: 500
      height: 600
    searchKeywords: [guestbook, sign]
    description: Leave a note
`

const terminalTOML = `[[apps]]
id = "terminal"
name = "Terminal"
icon = "🖥️"
component = "TerminalApp"
category = "system"
searchKeywords = ["shell", "cli"]
description = "A pretend shell"

[apps.defaultSize]
width = 640
height = 400
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSeedLoadsYAMLAndTOML(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a-guestbook.yaml", guestbookYAML)
	writeFile(t, dir, "nested/deeper/terminal.toml", terminalTOML)
	writeFile(t, dir, "README.md", "# not a catalog")

	r := NewDefault()
	builtins := r.Len()

	loaded, failed, err := NewSeeder(r, dir, nil).Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, loaded)
	assert.Equal(t, 0, failed)
	assert.Equal(t, builtins+2, r.Len())

	guestbook, ok := r.Get("guestbook")
	require.True(t, ok)
	assert.Equal(t, types.CategoryPersonal, guestbook.Category)
	assert.Equal(t, types.Size{Width: 500, Height: 600}, guestbook.DefaultSize)
	assert.Equal(t, []string{"guestbook", "sign"}, guestbook.SearchKeywords)

	terminal, ok := r.Get("terminal")
	require.True(t, ok)
	assert.Equal(t, types.Size{Width: 640, Height: 400}, terminal.DefaultSize)

	// Seeded entries follow the built-ins, in file order
	ids := r.IDs()
	assert.Equal(t, []string{"guestbook", "terminal"}, ids[builtins:])
}

func TestSeedSkipsBadFilesAndDuplicates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.yml", "apps: [ {id: ")
	writeFile(t, dir, "dupe.yaml", `apps:
  - id: projects
    name: Projects Again
    component: ProjectsApp
    category: work
    defaultSize: {width: 100, height: 100}
  - id: guestbook
    name: Guestbook
    component: GuestbookApp
    category: personal
    defaultSize: {width: 500, height: 600}
`)

	r := NewDefault()
	loaded, failed, err := NewSeeder(r, dir, nil).Seed(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, loaded)
	assert.Equal(t, 2, failed)

	projects, _ := r.Get("projects")
	assert.Equal(t, "Projects", projects.Name, "built-in entries win")
}

func TestSeedMissingDirectory(t *testing.T) {
	r := NewDefault()
	loaded, failed, err := NewSeeder(r, filepath.Join(t.TempDir(), "absent"), nil).Seed(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, loaded)
	assert.Zero(t, failed)

	loaded, _, err = NewSeeder(r, "", nil).Seed(context.Background())
	assert.NoError(t, err)
	assert.Zero(t, loaded)
}

func TestSeedCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", guestbookYAML)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := NewSeeder(NewDefault(), dir, nil).Seed(ctx)
	assert.Error(t, err)
}
