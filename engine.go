package cfgprops

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Options are the visibility and ordering policy flags for name completion.
type Options struct {
	// ShowErrorDeprecated includes properties deprecated for removal.
	ShowErrorDeprecated bool

	// SortDeprecatedLast orders deprecated properties after the rest while
	// preserving relative catalog order within each group.
	SortDeprecatedLast bool
}

// DefaultOptions returns the default policy: error-deprecated properties
// shown, deprecated properties sorted last.
func DefaultOptions() Options {
	return Options{ShowErrorDeprecated: true, SortDeprecatedLast: true}
}

// ItemKind classifies a completion candidate.
type ItemKind int

// Item kinds.
const (
	ItemProperty ItemKind = iota
	ItemKey
	ItemValue
)

// CompletionItem is one candidate in a completion result. It carries enough
// information for a UI to render and apply it without further resolver calls.
type CompletionItem struct {
	Kind ItemKind

	// Value is the text inserted when the candidate is accepted.
	Value string

	// Display is the text shown in the popup. Defaults to Value.
	Display string

	// Detail is a short annotation, typically the declared type signature.
	Detail string

	// Description is optional documentation for the candidate.
	Description string

	// Deprecation carries the candidate's deprecation severity, for
	// rendering (strikethrough etc.).
	Deprecation DeprecationLevel

	// StartOffset and EndOffset delimit the replacement span
	// [StartOffset, EndOffset) in absolute document offsets; EndOffset is
	// the caret.
	StartOffset int
	EndOffset   int

	// sortLast pushes the candidate after all others in the final ordering.
	sortLast bool
}

// SortsLast reports whether ordering policy placed the item in the trailing
// (deprecated) group.
func (it CompletionItem) SortsLast() bool {
	return it.sortLast
}

// ResultSink receives resolved candidates. Add is called zero or more times
// in final order, then Done exactly once; the sink must not be written to
// afterward.
type ResultSink interface {
	Add(item CompletionItem)
	Done()
}

// Engine resolves completion queries against a metadata catalog. It holds no
// mutable state across requests; a single Engine serves concurrent queries.
type Engine struct {
	catalog  Catalog
	enums    *EnumIntrospector
	hints    *HintAggregator
	opts     Options
	logger   *zap.Logger
	observer func(ProviderDiagnostic)
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(logger *zap.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTypeLoader sets the reflection capability used for enum introspection.
// Without one, enum candidates are simply never produced.
func WithTypeLoader(loader TypeLoader) EngineOption {
	return func(e *Engine) {
		e.enums = NewEnumIntrospector(loader, e.logger)
	}
}

// WithOptions sets the visibility/ordering policy flags.
func WithOptions(opts Options) EngineOption {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithProviderObserver registers a diagnostics callback invoked for every
// declared dynamic provider encountered during resolution.
func WithProviderObserver(fn func(ProviderDiagnostic)) EngineOption {
	return func(e *Engine) {
		e.observer = fn
	}
}

// Catalog returns the metadata catalog the engine resolves against.
func (e *Engine) Catalog() Catalog {
	return e.catalog
}

// NewEngine creates a completion engine over a catalog.
func NewEngine(catalog Catalog, opts ...EngineOption) *Engine {
	e := &Engine{
		catalog: catalog,
		opts:    DefaultOptions(),
		logger:  zap.NewNop(),
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.enums == nil {
		e.enums = NewEnumIntrospector(nil, e.logger)
	} else {
		e.enums.logger = e.logger
	}

	e.hints = NewHintAggregator(e.logger, e.observer)

	return e
}

// Resolve executes one completion query: it reads the caret's line from doc,
// classifies the request, resolves candidates, and emits them to sink in
// final order followed by Done. All faults are contained: an invalid offset
// is logged and yields zero candidates, and no error crosses this boundary.
func (e *Engine) Resolve(ctx context.Context, doc DocumentAccessor, caretOffset int, sink ResultSink) {
	defer sink.Done()

	line, lineStart, err := doc.LineToCaret(caretOffset)
	if err != nil {
		e.logger.Warn("completion aborted", zap.Int("caret", caretOffset), zap.Error(err))

		return
	}

	e.logger.Debug("completion on", zap.String("line", line))

	cc := ParseLineContext(line, lineStart, caretOffset)

	var items []CompletionItem

	switch cc.Kind {
	case KindName:
		items = e.completePropertyNames(&cc)
	case KindValue:
		items = e.completePropertyValues(&cc)
	case KindNone:
	}

	if ctx.Err() != nil {
		return
	}

	for _, it := range orderItems(items) {
		sink.Add(it)
	}
}

// completePropertyNames resolves candidates for a property-name position.
// A filter that extends a known map property's name past its separator is a
// map-key completion; otherwise the catalog is queried for matching names.
func (e *Engine) completePropertyNames(cc *CompletionContext) []CompletionItem {
	mark := time.Now()
	filter := cc.NamePrefix

	var items []CompletionItem

	if filter != "" {
		for _, mapProp := range e.catalog.MapPropertyNames() {
			if !strings.HasPrefix(filter, mapProp+string(keySeparator)) {
				continue
			}

			meta, ok := e.catalog.LookupByName(mapProp)
			if !ok {
				continue
			}

			cc.Kind = KindMapKeyName
			key := filter[len(mapProp)+1:]
			keyStart := cc.ReplacementStart + len(mapProp) + 1

			e.logger.Debug("completing map key",
				zap.String("property", mapProp),
				zap.String("key", key))

			desc := ParseType(meta.Type)
			if Introspectable(desc.KeyType) {
				e.enums.Complete(desc.KeyType, key, func(h ValueHint) {
					items = append(items, e.hintItem(ItemKey, h, keyStart, cc.CaretOffset))
				})
			}

			e.hints.KeyHints(meta, key, func(h ValueHint) {
				items = append(items, e.hintItem(ItemKey, h, keyStart, cc.CaretOffset))
			})

			e.hints.ReportKeyProviders(meta)
		}
	}

	seen := make(map[string]struct{})

	for _, meta := range e.catalog.QueryByNamePrefix(filter) {
		if _, dup := seen[meta.Name]; dup {
			continue
		}

		if meta.Deprecation == DeprecationError && !e.opts.ShowErrorDeprecated {
			continue
		}

		seen[meta.Name] = struct{}{}
		items = append(items, CompletionItem{
			Kind:        ItemProperty,
			Value:       meta.Name,
			Display:     meta.Name,
			Detail:      meta.Type,
			Description: meta.Description,
			Deprecation: meta.Deprecation,
			StartOffset: cc.ReplacementStart,
			EndOffset:   cc.CaretOffset,
			sortLast:    e.opts.SortDeprecatedLast && meta.Deprecation != DeprecationNone,
		})
	}

	e.logger.Debug("name completion done",
		zap.String("filter", filter),
		zap.Int("candidates", len(items)),
		zap.Duration("elapsed", time.Since(mark)))

	return items
}

// completePropertyValues resolves candidates for a value position. Candidate
// groups are concatenated in a fixed order: booleans, declared-type enums,
// map-value-type enums, declared value hints. Groups are not deduplicated
// against each other.
func (e *Engine) completePropertyValues(cc *CompletionContext) []CompletionItem {
	mark := time.Now()

	propName := cc.NamePrefix
	if propName == "" {
		return nil
	}

	meta, ok := e.catalog.LookupByName(propName)
	if !ok {
		// Unknown properties are simply not completable.
		e.logger.Debug("no metadata for property", zap.String("property", propName))

		return nil
	}

	if meta.Name != propName {
		// The catalog resolved a map-key path to its map property.
		cc.Kind = KindMapKeyValue
	}

	filter := cc.ValueFilter
	desc := ParseType(meta.Type)

	var items []CompletionItem

	emit := func(h ValueHint) {
		items = append(items, e.hintItem(ItemValue, h, cc.ReplacementStart, cc.CaretOffset))
	}

	// Boolean-typed properties (or map values) always offer both literals,
	// regardless of filter.
	if meta.Type == TypeBoolean || desc.ValueType == TypeBoolean {
		emit(ValueHint{Value: "true"})
		emit(ValueHint{Value: "false"})
	}

	e.enums.Complete(meta.Type, filter, emit)

	if Introspectable(desc.ValueType) {
		e.enums.Complete(desc.ValueType, filter, emit)
	}

	e.hints.ValueHints(meta, filter, emit)
	e.hints.ReportValueProviders(meta)

	e.logger.Debug("value completion done",
		zap.String("property", propName),
		zap.String("filter", filter),
		zap.Int("candidates", len(items)),
		zap.Duration("elapsed", time.Since(mark)))

	return items
}

func (e *Engine) hintItem(kind ItemKind, h ValueHint, start, caret int) CompletionItem {
	return CompletionItem{
		Kind:        kind,
		Value:       h.Value,
		Display:     h.Value,
		Description: h.Description,
		StartOffset: start,
		EndOffset:   caret,
	}
}

// orderItems applies the final ordering policy: a stable partition moving
// sort-last items behind the rest. Relative order within each group is
// untouched.
func orderItems(items []CompletionItem) []CompletionItem {
	if len(items) == 0 {
		return items
	}

	ordered := make([]CompletionItem, 0, len(items))
	for _, it := range items {
		if !it.sortLast {
			ordered = append(ordered, it)
		}
	}

	for _, it := range items {
		if it.sortLast {
			ordered = append(ordered, it)
		}
	}

	return ordered
}
