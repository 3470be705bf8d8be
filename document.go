package cfgprops

import (
	"fmt"
	"strings"
)

// Document is an immutable text snapshot implementing DocumentAccessor.
type Document struct {
	text string
}

// NewDocument wraps a text snapshot.
func NewDocument(text string) *Document {
	return &Document{text: text}
}

// Text returns the full snapshot text.
func (d *Document) Text() string {
	return d.text
}

// LineToCaret returns the text from the caret's line start up to the caret
// and the absolute line-start offset.
func (d *Document) LineToCaret(caretOffset int) (string, int, error) {
	if caretOffset < 0 || caretOffset > len(d.text) {
		return "", 0, fmt.Errorf("%w: %d not in [0, %d]", ErrOffsetOutOfRange, caretOffset, len(d.text))
	}

	lineStart := strings.LastIndexByte(d.text[:caretOffset], '\n') + 1

	return d.text[lineStart:caretOffset], lineStart, nil
}
