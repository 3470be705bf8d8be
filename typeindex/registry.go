// Package typeindex provides a TypeLoader backed by a precompiled enum
// registry, the stand-in for classpath reflection when none is available.
package typeindex

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/cfgprops/cfgprops"
)

// Registry maps fully-qualified type names to their enum constants, in
// declaration order. It implements cfgprops.TypeLoader.
type Registry struct {
	mu    sync.RWMutex
	types map[string][]string
}

// registryFile is the YAML shape of a registry file:
//
//	types:
//	  com.example.LogLevel: [OFF, ERROR, WARN, INFO]
type registryFile struct {
	Types map[string][]string `yaml:"types"`
}

// New creates a registry from an in-memory table. Useful for tests and for
// plugin-supplied lookup tables.
func New(types map[string][]string) *Registry {
	r := &Registry{types: make(map[string][]string, len(types))}
	for name, constants := range types {
		r.types[name] = constants
	}

	return r
}

// Load reads one or more YAML registry files, merged in order. Later files
// override earlier declarations of the same type.
func Load(paths ...string) (*Registry, error) {
	r := New(nil)

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read type registry %s: %w", path, err)
		}

		var file registryFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse type registry %s: %w", path, err)
		}

		r.mu.Lock()
		for name, constants := range file.Types {
			r.types[name] = constants
		}
		r.mu.Unlock()
	}

	return r, nil
}

// LoadEnumConstants returns the constants registered for typeName, or
// ErrTypeUnavailable when the type is unknown.
func (r *Registry) LoadEnumConstants(typeName string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	constants, ok := r.types[typeName]
	if !ok {
		return nil, fmt.Errorf("%w: %s", cfgprops.ErrTypeUnavailable, typeName)
	}

	out := make([]string, len(constants))
	copy(out, constants)

	return out, nil
}

var _ cfgprops.TypeLoader = (*Registry)(nil)
