// Package content serves the read-only portfolio data rendered by the apps
// and scanned by search.
package content

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/deskfolio/deskos/internal/shared/types"
	"github.com/gabriel-vasile/mimetype"
	"github.com/goccy/go-yaml"
)

// Catalog holds the static portfolio collections
type Catalog struct {
	Projects   []types.Project    `json:"projects" yaml:"projects"`
	Skills     []types.Skill      `json:"skills" yaml:"skills"`
	Education  []types.Education  `json:"education" yaml:"education"`
	Experience []types.Experience `json:"experience" yaml:"experience"`
	BlogPosts  []types.BlogPost   `json:"blogPosts" yaml:"blogPosts"`
}

// LoadFile reads a YAML catalog. Sections absent from the file keep the
// built-in defaults.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content file: %w", err)
	}

	var file Catalog
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode content file: %w", err)
	}

	cat := Default()
	if file.Projects != nil {
		cat.Projects = file.Projects
	}
	if file.Skills != nil {
		cat.Skills = file.Skills
	}
	if file.Education != nil {
		cat.Education = file.Education
	}
	if file.Experience != nil {
		cat.Experience = file.Experience
	}
	if file.BlogPosts != nil {
		cat.BlogPosts = file.BlogPosts
	}
	return cat, nil
}

// Resume is a downloadable document
type Resume struct {
	Name string
	MIME string
	Data []byte
}

// LoadResume reads a resume file and detects its content type
func LoadResume(path string) (*Resume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resume: %w", err)
	}
	return &Resume{
		Name: filepath.Base(path),
		MIME: mimetype.Detect(data).String(),
		Data: data,
	}, nil
}
