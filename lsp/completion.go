package lsp

import (
	"context"
	"fmt"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/cfgprops/cfgprops"
)

// Completion handles textDocument/completion requests. The engine runs the
// query off this handler via the scheduler; the handler waits for the
// sink's closing signal (or request cancellation) before answering.
func (s *Server) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	defer s.traceHandler("Completion")()
	s.logger.Debug("Completion",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.Uint32("line", params.Position.Line),
		zap.Uint32("character", params.Position.Character))

	doc, ok := s.getDocument(params.TextDocument.URI)
	if !ok {
		return nil, nil //nolint:nilnil
	}

	s.mu.RLock()
	content := doc.Content
	snapshot := doc.Snapshot
	s.mu.RUnlock()

	caret := offsetAt(content, params.Position)

	collector := cfgprops.NewCollector()
	s.scheduler.Submit(ctx, snapshot, caret, collector)

	items, err := collector.Wait(ctx)
	if err != nil {
		// Request cancelled; the late results are stale by definition.
		s.logger.Debug("completion superseded", zap.Error(err))

		return &protocol.CompletionList{IsIncomplete: false}, nil
	}

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        s.convertItems(content, items),
	}, nil
}

// convertItems maps engine candidates to protocol completion items. The
// engine's final ordering is preserved through zero-padded sort text.
func (s *Server) convertItems(content string, items []cfgprops.CompletionItem) []protocol.CompletionItem {
	out := make([]protocol.CompletionItem, 0, len(items))

	for i, it := range items {
		item := protocol.CompletionItem{
			Label:      it.Display,
			Kind:       completionItemKind(it.Kind),
			Detail:     it.Detail,
			SortText:   fmt.Sprintf("%04d", i),
			FilterText: it.Value,
			TextEdit: &protocol.TextEdit{
				Range: protocol.Range{
					Start: positionAt(content, it.StartOffset),
					End:   positionAt(content, it.EndOffset),
				},
				NewText: it.Value,
			},
		}

		if it.Description != "" {
			item.Documentation = &protocol.MarkupContent{
				Kind:  protocol.Markdown,
				Value: it.Description,
			}
		}

		if it.Deprecation != cfgprops.DeprecationNone {
			item.Deprecated = true
		}

		out = append(out, item)
	}

	return out
}

func completionItemKind(kind cfgprops.ItemKind) protocol.CompletionItemKind {
	switch kind {
	case cfgprops.ItemProperty:
		return protocol.CompletionItemKindProperty
	case cfgprops.ItemKey:
		return protocol.CompletionItemKindField
	case cfgprops.ItemValue:
		return protocol.CompletionItemKindValue
	default:
		return protocol.CompletionItemKindText
	}
}
