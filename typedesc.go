package cfgprops

import (
	"regexp"
	"strings"
)

// ContainerKind classifies a property's declared type signature.
type ContainerKind int

// Container kinds.
const (
	ContainerScalar ContainerKind = iota
	ContainerMap
)

// TypeDescriptor is the structured form of a type signature. It is derived
// on demand from PropertyMetadata.Type and never stored in the catalog.
type TypeDescriptor struct {
	Kind      ContainerKind
	KeyType   string
	ValueType string
}

// mapTypePattern decomposes a map signature into its key and value type
// parameters: the first group runs up to the first comma, the second group
// is everything after it up to the closing bracket. This is a textual
// parser, not a generic one: a nested generic in the value position stays
// a single opaque string, brackets included.
var mapTypePattern = regexp.MustCompile(`^java\.util\.Map<([^,]+),(.*)>$`)

// ParseType parses a declared type signature. Signatures that do not match
// the map shape (including malformed generics) degrade to scalar with empty
// key and value types.
func ParseType(signature string) TypeDescriptor {
	m := mapTypePattern.FindStringSubmatch(signature)
	if m == nil {
		return TypeDescriptor{Kind: ContainerScalar}
	}
	return TypeDescriptor{
		Kind:      ContainerMap,
		KeyType:   m[1],
		ValueType: m[2],
	}
}

// Introspectable reports whether a type name extracted from a signature can
// be handed to enum introspection. Nested generics cannot.
func Introspectable(typeName string) bool {
	return !strings.Contains(typeName, "<")
}
