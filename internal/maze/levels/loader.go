// Package levels provides the built-in level catalogs and loading of user catalogs.
// This package depends on maze but maze does not depend on levels.
package levels

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-maze/internal/maze/levels/formats"
)

// Loader handles loading catalogs from a directory.
type Loader struct {
	Root string
}

// NewLoader creates a new catalog loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all catalog files.
// Files that fail to parse are reported in the returned error while the
// remaining catalogs are still returned, sorted by ID.
func (l *Loader) LoadAll() ([]*formats.Catalog, error) {
	var (
		catalogs []*formats.Catalog
		errs     []error
	)

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		cat, err := l.LoadFile(path)
		if err != nil {
			errs = append(errs, err)
			return nil
		}

		catalogs = append(catalogs, cat)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(catalogs, func(i, j int) bool {
		return catalogs[i].ID < catalogs[j].ID
	})

	return catalogs, errors.Join(errs...)
}

// LoadFile loads a single catalog file.
func (l *Loader) LoadFile(path string) (*formats.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	cat, err := parseByExtension(data, ext)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", path, err)
	}
	cat.FilePath = path

	return cat, nil
}

// LoadByID loads a specific catalog by ID.
func (l *Loader) LoadByID(id string) (*formats.Catalog, error) {
	catalogs, err := l.LoadAll()
	if err != nil && len(catalogs) == 0 {
		return nil, err
	}

	for _, cat := range catalogs {
		if cat.ID == id {
			return cat, nil
		}
	}

	return nil, fmt.Errorf("catalog not found: %s", id)
}

// DefaultDir returns the user catalog directory, or empty if home is unavailable.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".maze", "levels")
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (*formats.Catalog, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return nil, fmt.Errorf("unsupported extension: %s", ext)
	}
}
