package lsp

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/cfgprops/cfgprops"
)

var hoverNamePattern = regexp.MustCompile(`[^=\s]+`)

// Hover handles textDocument/hover requests by showing the metadata of the
// property named on the hovered line: type, documentation, default value,
// and deprecation notice.
func (s *Server) Hover(_ context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	defer s.traceHandler("Hover")()
	s.logger.Debug("Hover",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.Uint32("line", params.Position.Line),
		zap.Uint32("character", params.Position.Character))

	doc, ok := s.getDocument(params.TextDocument.URI)
	if !ok {
		return nil, nil //nolint:nilnil
	}

	s.mu.RLock()
	content := doc.Content
	s.mu.RUnlock()

	line, lineStart := lineAround(content, offsetAt(content, params.Position))
	col := min(int(params.Position.Character), len(line))

	// Only the name region, before any '=', carries hoverable properties.
	nameRegion := line
	if eq := strings.IndexByte(line, '='); eq >= 0 {
		if col > eq {
			return nil, nil //nolint:nilnil
		}
		nameRegion = line[:eq]
	}

	var name string
	var span []int
	for _, tok := range hoverNamePattern.FindAllStringIndex(nameRegion, -1) {
		if col >= tok[0] && col <= tok[1] {
			name = nameRegion[tok[0]:tok[1]]
			span = tok

			break
		}
	}

	if name == "" {
		return nil, nil //nolint:nilnil
	}

	meta, ok := s.engine.Catalog().LookupByName(name)
	if !ok {
		return nil, nil //nolint:nilnil
	}

	rng := protocol.Range{
		Start: positionAt(content, lineStart+span[0]),
		End:   positionAt(content, lineStart+span[1]),
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hoverContent(meta),
		},
		Range: &rng,
	}, nil
}

// hoverContent renders property metadata as markdown.
func hoverContent(meta *cfgprops.PropertyMetadata) string {
	var b strings.Builder

	fmt.Fprintf(&b, "**%s**", meta.Name)
	if meta.Type != "" {
		fmt.Fprintf(&b, " `%s`", meta.Type)
	}

	if meta.Description != "" {
		b.WriteString("\n\n")
		b.WriteString(meta.Description)
	}

	if meta.DefaultValue != "" {
		fmt.Fprintf(&b, "\n\nDefault: `%s`", meta.DefaultValue)
	}

	switch meta.Deprecation {
	case cfgprops.DeprecationWarning:
		b.WriteString("\n\n*Deprecated*")
	case cfgprops.DeprecationError:
		b.WriteString("\n\n*Deprecated for removal*")
	case cfgprops.DeprecationNone:
	}

	if meta.Replacement != "" {
		fmt.Fprintf(&b, ", use `%s` instead", meta.Replacement)
	}

	return b.String()
}

// lineAround returns the full line containing offset and its start offset.
func lineAround(content string, offset int) (string, int) {
	start := strings.LastIndexByte(content[:offset], '\n') + 1

	end := len(content)
	if nl := strings.IndexByte(content[start:], '\n'); nl >= 0 {
		end = start + nl
	}

	return content[start:end], start
}
