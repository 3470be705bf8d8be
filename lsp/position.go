package lsp

import (
	"strings"

	"go.lsp.dev/protocol"
)

// URIToPath converts a file:// document URI to a filesystem path.
func URIToPath(docURI protocol.DocumentURI) string {
	if !strings.HasPrefix(string(docURI), "file://") {
		return string(docURI)
	}

	return docURI.Filename()
}

// offsetAt converts an LSP position to a byte offset in content. Columns are
// clamped to the line length.
func offsetAt(content string, pos protocol.Position) int {
	off := 0
	for range pos.Line {
		nl := strings.IndexByte(content[off:], '\n')
		if nl < 0 {
			return len(content)
		}
		off += nl + 1
	}

	lineLen := len(content) - off
	if nl := strings.IndexByte(content[off:], '\n'); nl >= 0 {
		lineLen = nl
	}

	return off + min(int(pos.Character), lineLen)
}

// positionAt converts a byte offset in content to an LSP position.
func positionAt(content string, offset int) protocol.Position {
	if offset > len(content) {
		offset = len(content)
	}
	if offset < 0 {
		offset = 0
	}

	prefix := content[:offset]
	line := strings.Count(prefix, "\n")
	lastNL := strings.LastIndexByte(prefix, '\n')

	return protocol.Position{
		Line:      uint32(line),
		Character: uint32(offset - lastNL - 1),
	}
}
