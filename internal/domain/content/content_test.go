package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cat := Default()
	assert.Len(t, cat.Projects, 4)
	assert.Len(t, cat.Skills, 13)
	assert.Equal(t, "HTML", cat.Skills[0].Label)
	assert.NotEmpty(t, cat.BlogPosts)
	assert.NotEmpty(t, cat.Education)

	// Fresh copy every call
	cat.Skills[0].Label = "changed"
	assert.Equal(t, "HTML", Default().Skills[0].Label)
}

func TestLoadFileOverridesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
projects:
  - title: Deskfolio
    description: A desktop in the browser
    github: https://example.com/deskfolio
skills:
  - icon: fab fa-golang
    label: Go
`), 0o644))

	cat, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, cat.Projects, 1)
	assert.Equal(t, "Deskfolio", cat.Projects[0].Title)
	require.Len(t, cat.Skills, 1)
	assert.Equal(t, "Go", cat.Skills[0].Label)

	// Untouched sections keep their defaults
	assert.Equal(t, Default().BlogPosts, cat.BlogPosts)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("projects: [ {title: "), 0o644))
	_, err = LoadFile(path)
	assert.Error(t, err)
}

func TestLoadResumeDetectsType(t *testing.T) {
	dir := t.TempDir()
	pdf := filepath.Join(dir, "resume.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n"), 0o644))

	r, err := LoadResume(pdf)
	require.NoError(t, err)
	assert.Equal(t, "resume.pdf", r.Name)
	assert.Equal(t, "application/pdf", r.MIME)

	txt := filepath.Join(dir, "resume.txt")
	require.NoError(t, os.WriteFile(txt, []byte("Plain resume"), 0o644))
	r, err = LoadResume(txt)
	require.NoError(t, err)
	assert.Contains(t, r.MIME, "text/plain")

	_, err = LoadResume(filepath.Join(dir, "nope.pdf"))
	assert.Error(t, err)
}
