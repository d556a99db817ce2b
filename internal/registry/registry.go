// Package registry provides a global registry of playable level catalogs.
// Catalogs register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-maze/internal/core"
)

// ErrUnknownCatalog is returned by Create for an unregistered ID.
var ErrUnknownCatalog = errors.New("unknown catalog")

// Game is the interface the platform drives once per tick.
// Implementations contain pure logic with no Bubble Tea dependency.
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns the catalog identifier (e.g., "classic").
	// Used for CLI commands and clear-time storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// LevelCount returns the number of levels in the catalog.
	LevelCount() int

	// Reset starts a new session.
	// The RuntimeConfig provides screen dimensions, tick rate and the session layout.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by one fixed tick using an input snapshot.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current progression state.
	State() core.GameState
}

// Logged is implemented by games that report status messages to the
// platform's logger. The platform calls SetLogger before Reset.
type Logged interface {
	SetLogger(logger *log.Logger)
}

// GameInfo contains metadata about a registered catalog.
type GameInfo struct {
	ID     string
	Title  string
	Levels int
}

// Factory is a function that creates a new game over a catalog.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a catalog factory to the registry.
// Typically called from an init() function.
// Panics if a catalog with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: catalog %q already registered", id))
	}

	factories[id] = f

	// Get metadata by creating a temporary instance
	g := f()
	infos[id] = GameInfo{ID: id, Title: g.Title(), Levels: g.LevelCount()}
}

// Unregister removes a catalog. Used by tests and when reloading user catalogs.
func Unregister(id string) {
	mu.Lock()
	defer mu.Unlock()

	delete(factories, id)
	delete(infos, id)
}

// List returns information about all registered catalogs, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new game by catalog ID.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: %w %q", ErrUnknownCatalog, id)
	}

	return f(), nil
}

// Exists checks if a catalog with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
