// Package catalog implements the metadata catalog consumed by the completion
// engine, loaded from Spring-style configuration metadata JSON files.
package catalog

import (
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cfgprops/cfgprops"
)

// Catalog is an in-memory, reloadable property catalog. It implements
// cfgprops.Catalog and is safe for concurrent use: readers see a consistent
// snapshot while Replace swaps in a new generation.
type Catalog struct {
	logger *zap.Logger

	mu         sync.RWMutex
	props      []*cfgprops.PropertyMetadata // catalog order
	byName     map[string]*cfgprops.PropertyMetadata
	mapProps   []string
	generation uint64
}

// New creates an empty catalog.
func New(logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Catalog{
		logger: logger,
		byName: make(map[string]*cfgprops.PropertyMetadata),
	}
}

// Replace swaps the catalog contents for a new property list and bumps the
// generation counter. Derived caches keyed on Generation become stale.
func (c *Catalog) Replace(props []*cfgprops.PropertyMetadata) {
	byName := make(map[string]*cfgprops.PropertyMetadata, len(props))

	var mapProps []string

	for _, p := range props {
		byName[p.Name] = p
		if cfgprops.ParseType(p.Type).Kind == cfgprops.ContainerMap {
			mapProps = append(mapProps, p.Name)
		}
	}

	// Longest names first so LookupByName's fallback resolves the most
	// specific map property.
	sort.Slice(mapProps, func(i, j int) bool {
		return len(mapProps[i]) > len(mapProps[j])
	})

	c.mu.Lock()
	defer c.mu.Unlock()

	c.props = props
	c.byName = byName
	c.mapProps = mapProps
	c.generation++

	c.logger.Info("catalog replaced",
		zap.Int("properties", len(props)),
		zap.Int("mapProperties", len(mapProps)),
		zap.Uint64("generation", c.generation))
}

// Generation returns the reload counter. It changes on every Replace.
func (c *Catalog) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.generation
}

// Len returns the number of properties.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.props)
}

// All returns the properties in catalog order.
func (c *Catalog) All() []*cfgprops.PropertyMetadata {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*cfgprops.PropertyMetadata, len(c.props))
	copy(out, c.props)

	return out
}

// QueryByNamePrefix returns, in catalog order, every property whose name
// starts with filter. The empty filter matches all properties.
func (c *Catalog) QueryByNamePrefix(filter string) []*cfgprops.PropertyMetadata {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*cfgprops.PropertyMetadata

	for _, p := range c.props {
		if strings.HasPrefix(p.Name, filter) {
			out = append(out, p)
		}
	}

	return out
}

// LookupByName returns the property with the given name. Map-key paths
// resolve to their map property: "logging.level.web" finds "logging.level".
func (c *Catalog) LookupByName(name string) (*cfgprops.PropertyMetadata, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if p, ok := c.byName[name]; ok {
		return p, true
	}

	for _, mapProp := range c.mapProps {
		if strings.HasPrefix(name, mapProp+".") {
			return c.byName[mapProp], true
		}
	}

	return nil, false
}

// MapPropertyNames returns the names of all map-typed properties.
func (c *Catalog) MapPropertyNames() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, len(c.mapProps))
	copy(out, c.mapProps)

	return out
}

var _ cfgprops.Catalog = (*Catalog)(nil)
