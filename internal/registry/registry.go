// Package registry provides a global registry of built-in game definitions.
// Games register themselves in init() functions, allowing the CLI to
// discover and load games without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/arcade3d/internal/config"
)

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID     string
	Title  string
	Levels int
}

// Factory returns a freshly decoded game definition.
type Factory func() (config.GameFile, error)

var (
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
	mu        sync.RWMutex
)

// Register adds a game factory to the registry.
// Typically called from a game's init() function.
// Panics if a game with the same ID is already registered or if the
// factory cannot produce its definition.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	g, err := f()
	if err != nil {
		panic(fmt.Sprintf("registry: game %q: %v", id, err))
	}

	factories[id] = f
	infos[id] = GameInfo{ID: id, Title: g.Title, Levels: len(g.Levels)}
}

// RegisterYAML registers a game backed by an embedded YAML definition.
func RegisterYAML(id string, data []byte) {
	Register(id, func() (config.GameFile, error) {
		return config.ParseGame(data)
	})
}

// List returns information about all registered games, sorted by ID.
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

// Create decodes the definition of a registered game.
// Returns an error if the game ID is not registered.
func Create(id string) (config.GameFile, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return config.GameFile{}, fmt.Errorf("registry: unknown game %q", id)
	}
	return f()
}

// Exists checks if a game with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
