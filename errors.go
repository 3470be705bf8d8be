package cfgprops

import "errors"

// Sentinel errors.
var (
	// ErrOffsetOutOfRange is returned when a caret offset does not lie
	// within the document.
	ErrOffsetOutOfRange = errors.New("cfgprops: offset out of range")

	// ErrTypeUnavailable is returned by TypeLoader implementations when a
	// type cannot be resolved. The engine treats it as "no enum data".
	ErrTypeUnavailable = errors.New("cfgprops: type unavailable")

	// ErrConfigNotFound is returned when no .cfgprops.yaml is found.
	ErrConfigNotFound = errors.New("cfgprops: no .cfgprops.yaml found")
)
