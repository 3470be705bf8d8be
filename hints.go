package cfgprops

import (
	"strings"

	"go.uber.org/zap"
)

// ProviderDiagnostic surfaces a declared-but-unexecuted dynamic provider.
// The engine never runs providers; it only reports their presence so a
// consuming layer can log or display them.
type ProviderDiagnostic struct {
	Property   string
	Kind       string // "key" or "value"
	Name       string
	Parameters map[string]any
}

// HintAggregator matches catalog-declared hints against a filter and reports
// dynamic providers.
//
// Matching is deliberately asymmetric: value hints match by substring
// containment, map-key hints by prefix. Both accept everything on an empty
// filter. Catalog order is preserved.
type HintAggregator struct {
	logger   *zap.Logger
	observer func(ProviderDiagnostic)
}

// NewHintAggregator creates an aggregator. observer may be nil.
func NewHintAggregator(logger *zap.Logger, observer func(ProviderDiagnostic)) *HintAggregator {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &HintAggregator{logger: logger, observer: observer}
}

// ValueHints emits every value hint whose value contains filter.
func (h *HintAggregator) ValueHints(meta *PropertyMetadata, filter string, emit func(ValueHint)) {
	for _, hint := range meta.Hints.ValueHints {
		if filter == "" || strings.Contains(hint.Value, filter) {
			emit(hint)
		}
	}
}

// KeyHints emits every key hint whose value starts with keyFilter.
func (h *HintAggregator) KeyHints(meta *PropertyMetadata, keyFilter string, emit func(ValueHint)) {
	for _, hint := range meta.Hints.KeyHints {
		if strings.HasPrefix(hint.Value, keyFilter) {
			emit(hint)
		}
	}
}

// ReportValueProviders logs the value providers declared for a property.
func (h *HintAggregator) ReportValueProviders(meta *PropertyMetadata) {
	h.report(meta, "value", meta.Hints.ValueProviders)
}

// ReportKeyProviders logs the key providers declared for a property.
func (h *HintAggregator) ReportKeyProviders(meta *PropertyMetadata) {
	h.report(meta, "key", meta.Hints.KeyProviders)
}

func (h *HintAggregator) report(meta *PropertyMetadata, kind string, providers []ValueProvider) {
	for _, vp := range providers {
		h.logger.Debug("dynamic provider declared (not executed)",
			zap.String("property", meta.Name),
			zap.String("kind", kind),
			zap.String("provider", vp.Name),
			zap.Any("parameters", vp.Parameters))

		if h.observer != nil {
			h.observer(ProviderDiagnostic{
				Property:   meta.Name,
				Kind:       kind,
				Name:       vp.Name,
				Parameters: vp.Parameters,
			})
		}
	}
}
