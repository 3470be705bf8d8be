package cfgprops

import (
	"strings"

	"go.uber.org/zap"
)

// TypeLoader resolves a fully-qualified type name to its enumerated
// constants. Production implementations may sit on a precompiled type
// registry or a plugin-supplied lookup table; any failure means "no enum
// data" and is never surfaced past the introspector.
//
// Implementations with a hang-prone backend should bound their own latency;
// the engine does not impose a timeout here.
type TypeLoader interface {
	LoadEnumConstants(typeName string) ([]string, error)
}

// EnumIntrospector turns a type's enum constants into value candidates.
type EnumIntrospector struct {
	loader TypeLoader
	logger *zap.Logger
}

// NewEnumIntrospector creates an introspector over the given loader.
// A nil loader yields an introspector that never produces candidates.
func NewEnumIntrospector(loader TypeLoader, logger *zap.Logger) *EnumIntrospector {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &EnumIntrospector{loader: loader, logger: logger}
}

// Complete emits one hint per enum constant of typeName, lowercased and
// filtered by case-insensitive substring containment. An empty filter
// accepts all constants. Unresolvable types produce nothing.
func (e *EnumIntrospector) Complete(typeName, filter string, emit func(ValueHint)) {
	if e.loader == nil || typeName == "" {
		return
	}

	constants, err := e.loader.LoadEnumConstants(typeName)
	if err != nil {
		// Expected whenever the type is not an enum known to the loader.
		e.logger.Debug("no enum data for type",
			zap.String("type", typeName),
			zap.Error(err))

		return
	}

	lowered := strings.ToLower(filter)
	for _, c := range constants {
		name := strings.ToLower(c)
		if lowered == "" || strings.Contains(name, lowered) {
			emit(ValueHint{Value: name})
		}
	}
}
