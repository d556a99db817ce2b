package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-maze/internal/maze"
	"github.com/vovakirdan/tui-maze/internal/maze/levels/formats"
	"github.com/vovakirdan/tui-maze/internal/registry"
)

//go:embed catalogs/*.yaml
var builtinFS embed.FS

// ErrDuplicateCatalog is returned when a catalog ID is already registered.
var ErrDuplicateCatalog = errors.New("catalog already registered")

var (
	mu    sync.RWMutex
	known = make(map[string]*formats.Catalog)
)

func init() {
	for _, cat := range Builtin() {
		if err := Register(cat); err != nil {
			panic(err)
		}
	}
}

// Builtin returns the catalogs shipped with the binary, sorted by ID.
var Builtin = sync.OnceValue(func() []*formats.Catalog {
	entries, err := fs.Glob(builtinFS, "catalogs/*.yaml")
	if err != nil {
		panic(fmt.Sprintf("levels: listing built-in catalogs: %v", err))
	}

	catalogs := make([]*formats.Catalog, 0, len(entries))
	for _, name := range entries {
		data, err := builtinFS.ReadFile(name)
		if err != nil {
			panic(fmt.Sprintf("levels: reading %s: %v", name, err))
		}
		cat, err := formats.ParseYAML(data)
		if err != nil {
			panic(fmt.Sprintf("levels: built-in catalog %s: %v", path.Base(name), err))
		}
		catalogs = append(catalogs, cat)
	}

	sort.Slice(catalogs, func(i, j int) bool {
		return catalogs[i].ID < catalogs[j].ID
	})
	return catalogs
})

// Register makes a catalog playable through the game registry.
func Register(cat *formats.Catalog) error {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := known[cat.ID]; exists || registry.Exists(cat.ID) {
		return fmt.Errorf("levels: %w: %q", ErrDuplicateCatalog, cat.ID)
	}

	registry.Register(cat.ID, func() registry.Game {
		return maze.NewGame(cat.ID, cat.Title(), cat.Levels)
	})
	known[cat.ID] = cat
	return nil
}

// Unregister removes a catalog from both this package and the game registry.
func Unregister(id string) {
	mu.Lock()
	defer mu.Unlock()

	delete(known, id)
	registry.Unregister(id)
}

// RegisterDir loads every catalog under dir and registers it.
// Returns the catalogs that were registered; per-file problems are joined into the error.
func RegisterDir(dir string) ([]*formats.Catalog, error) {
	catalogs, loadErr := NewLoader(dir).LoadAll()

	errs := []error{loadErr}
	registered := make([]*formats.Catalog, 0, len(catalogs))
	for _, cat := range catalogs {
		if err := Register(cat); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", cat.FilePath, err))
			continue
		}
		registered = append(registered, cat)
	}
	return registered, errors.Join(errs...)
}

// Get returns a registered catalog by ID.
func Get(id string) (*formats.Catalog, bool) {
	mu.RLock()
	defer mu.RUnlock()

	cat, ok := known[id]
	return cat, ok
}

// All returns every registered catalog, sorted by ID.
func All() []*formats.Catalog {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]*formats.Catalog, 0, len(known))
	for _, cat := range known {
		result = append(result, cat)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result
}
