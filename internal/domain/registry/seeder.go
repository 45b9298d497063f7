package registry

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"github.com/deskfolio/deskos/internal/shared/types"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
)

// CatalogPattern selects catalog files below the catalog directory
const CatalogPattern = "**/*.{yaml,yml,toml}"

// catalogFile is the on-disk shape of a catalog file
type catalogFile struct {
	Apps []types.AppMetadata `yaml:"apps" toml:"apps"`
}

// Seeder loads extra apps from catalog files
type Seeder struct {
	registry *Registry
	dir      string
	pattern  string
	log      *zap.Logger
}

// NewSeeder creates a seeder reading from dir
func NewSeeder(registry *Registry, dir string, log *zap.Logger) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{
		registry: registry,
		dir:      dir,
		pattern:  CatalogPattern,
		log:      log.Named("seeder"),
	}
}

// Seed registers every valid entry found below the catalog directory. Files
// are processed in lexical path order; entries keep their in-file order.
// Invalid files and entries are logged and skipped.
func (s *Seeder) Seed(ctx context.Context) (loaded, failed int, err error) {
	if s.dir == "" {
		return 0, 0, nil
	}
	if _, statErr := os.Stat(s.dir); errors.Is(statErr, fs.ErrNotExist) {
		s.log.Warn("catalog directory not found", zap.String("dir", s.dir))
		return 0, 0, nil
	}

	files, err := s.discover(ctx)
	if err != nil {
		return 0, 0, err
	}

	for _, path := range files {
		apps, decodeErr := decodeCatalog(path)
		if decodeErr != nil {
			s.log.Warn("skipping catalog file", zap.String("path", path), zap.Error(decodeErr))
			failed++
			continue
		}
		for _, app := range apps {
			if regErr := s.registry.Register(app); regErr != nil {
				s.log.Warn("skipping catalog entry",
					zap.String("path", path),
					zap.String("app_id", app.ID),
					zap.Error(regErr))
				failed++
				continue
			}
			loaded++
		}
	}

	s.log.Info("catalog seeded",
		zap.String("dir", s.dir),
		zap.Int("files", len(files)),
		zap.Int("loaded", loaded),
		zap.Int("failed", failed))
	return loaded, failed, nil
}

// discover walks the catalog directory and returns matching files sorted
func (s *Seeder) discover(ctx context.Context) ([]string, error) {
	var (
		mu    sync.Mutex
		files []string
	)

	conf := fastwalk.Config{Follow: false}
	err := fastwalk.Walk(&conf, s.dir, func(p string, d os.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil || d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(s.dir, p)
		if relErr != nil {
			return nil
		}
		matched, matchErr := doublestar.Match(s.pattern, filepath.ToSlash(rel))
		if matchErr != nil || !matched {
			return nil
		}

		mu.Lock()
		files = append(files, p)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk catalog directory: %w", err)
	}

	sort.Strings(files)
	return files, nil
}

func decodeCatalog(path string) ([]types.AppMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file catalogFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &file)
	default:
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return file.Apps, nil
}
