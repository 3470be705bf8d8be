package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/cfgprops/cfgprops"
)

// Spring configuration metadata wire format. Only the parts the completion
// engine consumes are modeled; unknown fields are ignored.
type metadataFile struct {
	Properties []metadataProperty `json:"properties"`
	Hints      []metadataHint     `json:"hints"`
}

type metadataProperty struct {
	Name         string               `json:"name"`
	Type         string               `json:"type"`
	Description  string               `json:"description"`
	SourceType   string               `json:"sourceType"`
	DefaultValue any                  `json:"defaultValue"`
	Deprecation  *metadataDeprecation `json:"deprecation"`
	Deprecated   bool                 `json:"deprecated"` // legacy flag
}

type metadataDeprecation struct {
	Level       string `json:"level"`
	Reason      string `json:"reason"`
	Replacement string `json:"replacement"`
}

type metadataHint struct {
	Name      string              `json:"name"`
	Values    []metadataHintValue `json:"values"`
	Providers []metadataProvider  `json:"providers"`
}

type metadataHintValue struct {
	Value       any    `json:"value"`
	Description string `json:"description"`
}

type metadataProvider struct {
	Name       string         `json:"name"`
	Parameters map[string]any `json:"parameters"`
}

// Load builds a catalog from one or more metadata files, merged in order.
// A property declared in several files keeps its first declaration's slot;
// later hints still attach.
func Load(logger *zap.Logger, paths ...string) (*Catalog, error) {
	c := New(logger)
	if err := c.Reload(paths...); err != nil {
		return nil, err
	}

	return c, nil
}

// Reload re-reads the given metadata files and replaces the catalog
// contents in one generation.
func (c *Catalog) Reload(paths ...string) error {
	var (
		props  []*cfgprops.PropertyMetadata
		byName = make(map[string]*cfgprops.PropertyMetadata)
		hints  []metadataHint
	)

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read catalog %s: %w", path, err)
		}

		var file metadataFile
		if err := json.Unmarshal(data, &file); err != nil {
			return fmt.Errorf("parse catalog %s: %w", path, err)
		}

		for _, mp := range file.Properties {
			if mp.Name == "" {
				continue
			}
			if _, dup := byName[mp.Name]; dup {
				continue
			}

			p := &cfgprops.PropertyMetadata{
				Name:         mp.Name,
				Type:         mp.Type,
				Description:  mp.Description,
				SourceType:   mp.SourceType,
				DefaultValue: renderDefault(mp.DefaultValue),
				Deprecation:  deprecationLevel(mp),
			}
			if mp.Deprecation != nil {
				p.Replacement = mp.Deprecation.Replacement
			}

			byName[p.Name] = p
			props = append(props, p)
		}

		hints = append(hints, file.Hints...)
	}

	for _, h := range hints {
		attachHint(byName, h)
	}

	c.Replace(props)

	return nil
}

// attachHint wires a hint block to its property. The hint name addresses the
// property directly for value hints, or with a ".keys"/".values" suffix for
// map properties.
func attachHint(byName map[string]*cfgprops.PropertyMetadata, h metadataHint) {
	name := h.Name
	target := "values"

	if strings.HasSuffix(name, ".keys") {
		name = strings.TrimSuffix(name, ".keys")
		target = "keys"
	} else {
		name = strings.TrimSuffix(name, ".values")
	}

	p, ok := byName[name]
	if !ok {
		return
	}

	var values []cfgprops.ValueHint
	for _, v := range h.Values {
		values = append(values, cfgprops.ValueHint{
			Value:       renderDefault(v.Value),
			Description: v.Description,
		})
	}

	var providers []cfgprops.ValueProvider
	for _, vp := range h.Providers {
		providers = append(providers, cfgprops.ValueProvider{
			Name:       vp.Name,
			Parameters: vp.Parameters,
		})
	}

	if target == "keys" {
		p.Hints.KeyHints = append(p.Hints.KeyHints, values...)
		p.Hints.KeyProviders = append(p.Hints.KeyProviders, providers...)
	} else {
		p.Hints.ValueHints = append(p.Hints.ValueHints, values...)
		p.Hints.ValueProviders = append(p.Hints.ValueProviders, providers...)
	}
}

func deprecationLevel(mp metadataProperty) cfgprops.DeprecationLevel {
	if mp.Deprecation == nil {
		if mp.Deprecated {
			return cfgprops.DeprecationWarning
		}

		return cfgprops.DeprecationNone
	}

	if mp.Deprecation.Level == "error" {
		return cfgprops.DeprecationError
	}

	return cfgprops.DeprecationWarning
}

// renderDefault renders a JSON default value as the string a user would type.
func renderDefault(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}

		return "false"
	case float64:
		// JSON numbers; render integers without a decimal point.
		if val == float64(int64(val)) {
			return fmt.Sprintf("%d", int64(val))
		}

		return fmt.Sprintf("%g", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
