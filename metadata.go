// Package cfgprops implements context-aware completion for key=value
// configuration files whose valid keys and value shapes are described by an
// external metadata catalog.
package cfgprops

// DeprecationLevel is the catalog-assigned deprecation severity of a property.
type DeprecationLevel int

// Deprecation levels, in increasing severity.
const (
	DeprecationNone DeprecationLevel = iota
	DeprecationWarning
	DeprecationError
)

// String returns the catalog wire form of the level.
func (d DeprecationLevel) String() string {
	switch d {
	case DeprecationWarning:
		return "warning"
	case DeprecationError:
		return "error"
	default:
		return "none"
	}
}

// PropertyMetadata describes a single configuration property as declared by
// the metadata catalog. Instances are owned by the catalog and treated as
// read-only by the completion engine.
type PropertyMetadata struct {
	// Name is the fully-qualified dotted property name, unique in the catalog.
	Name string

	// Type is the declared type signature, possibly generic
	// (e.g. "java.util.Map<java.lang.String,java.lang.Integer>").
	Type string

	// Description is the human-readable documentation, if any.
	Description string

	// DefaultValue is the declared default, rendered as a string. Empty when
	// the catalog declares none.
	DefaultValue string

	// SourceType is the class that contributes the property, if declared.
	SourceType string

	// Deprecation is the deprecation severity. DeprecationError means the
	// property is deprecated for removal.
	Deprecation DeprecationLevel

	// Replacement names the property superseding this one, if deprecated.
	Replacement string

	// Hints carries the catalog-declared key/value hints and providers.
	Hints Hints
}

// Hints groups the literal hints and dynamic providers declared for a
// property. Slice order is catalog-insertion order and is preserved in
// completion output.
type Hints struct {
	KeyHints       []ValueHint
	ValueHints     []ValueHint
	KeyProviders   []ValueProvider
	ValueProviders []ValueProvider
}

// ValueHint is a literal candidate value with optional documentation.
type ValueHint struct {
	Value       string
	Description string
}

// ValueProvider is a catalog-declared dynamic suggestion source. Providers
// are surfaced for diagnostics but never executed by the engine: there is no
// safe generic execution model for them on this side of the boundary.
type ValueProvider struct {
	Name       string
	Parameters map[string]any
}

// Catalog is the read-only metadata source consulted during resolution.
// Implementations must be safe for concurrent use.
type Catalog interface {
	// QueryByNamePrefix returns, in catalog order, every property whose name
	// matches the filter. An empty filter matches all properties.
	QueryByNamePrefix(filter string) []*PropertyMetadata

	// LookupByName returns the property with the given name. Implementations
	// may resolve map-key paths (e.g. "logging.level.web" to the map property
	// "logging.level"); the returned metadata's Name reports which property
	// actually matched.
	LookupByName(name string) (*PropertyMetadata, bool)

	// MapPropertyNames returns the names of all map-typed properties.
	MapPropertyNames() []string
}

// DocumentAccessor supplies the text of the line containing a caret offset.
type DocumentAccessor interface {
	// LineToCaret returns the text from the start of the caret's line up to
	// the caret, along with the absolute offset of the line start. It fails
	// with ErrOffsetOutOfRange when the offset does not lie in the document.
	LineToCaret(caretOffset int) (text string, lineStart int, err error)
}
