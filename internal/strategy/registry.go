package strategy

import (
	"fmt"
	"sort"
	"sync"

	"github.com/quantmind-br/assetmanifest/internal/manifest"
)

// DefaultName is the name of the built-in flat mapping strategy
const DefaultName = "default"

var (
	registryMu sync.RWMutex
	registry   = map[string]Strategy{
		DefaultName: Default{},
		"vite":      Vite{},
		"entries":   Entries{},
	}
)

// Register makes s available under name. A Funcs value missing one of its
// operations is rejected.
func Register(name string, s Strategy) error {
	if name == "" {
		return fmt.Errorf("%w: loader name cannot be empty", manifest.ErrConfiguration)
	}
	if s == nil {
		return fmt.Errorf("%w: loader %q is nil", manifest.ErrConfiguration, name)
	}
	if f, ok := s.(Funcs); ok {
		if err := f.Validate(); err != nil {
			return fmt.Errorf("loader %q: %w", name, err)
		}
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = s
	return nil
}

// Lookup returns the strategy registered under name. An empty name selects
// the default strategy.
func Lookup(name string) (Strategy, error) {
	if name == "" {
		name = DefaultName
	}

	registryMu.RLock()
	defer registryMu.RUnlock()
	s, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown loader %q", manifest.ErrConfiguration, name)
	}
	return s, nil
}

// Names returns the registered strategy names, sorted
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
