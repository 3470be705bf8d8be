package cfgprops

import (
	"regexp"
	"strings"
)

// CompletionKind indicates what kind of completion a caret position asks for.
type CompletionKind string

// Completion kinds.
const (
	KindNone        CompletionKind = "none"
	KindName        CompletionKind = "name"
	KindValue       CompletionKind = "value"
	KindMapKeyName  CompletionKind = "map_key_name"
	KindMapKeyValue CompletionKind = "map_key_value"
)

// propNamePattern matches one property-name token: any run of characters
// that is neither whitespace nor '='.
var propNamePattern = regexp.MustCompile(`[^=\s]+`)

// CompletionContext is the per-query classification of the caret position.
// The parser produces KindName or KindValue (or KindNone); the resolvers
// refine the kind to the map variants when a map property is recognized.
type CompletionContext struct {
	Kind CompletionKind

	// LineToCaret is the raw line text from line start to caret.
	LineToCaret string

	// LineStartOffset and CaretOffset are absolute document offsets.
	LineStartOffset int
	CaretOffset     int

	// NamePrefix is the extracted property-name token. For KindValue it is
	// the property whose value is being completed. Empty means no token was
	// found before the caret.
	NamePrefix string

	// ValueFilter is the trimmed value-region text used to filter value
	// candidates. An empty filter accepts every candidate, so the empty
	// string doubles as "no filter".
	ValueFilter string

	// ReplacementStart is the absolute offset where an accepted candidate's
	// text replaces the document, the span being [ReplacementStart, caret).
	ReplacementStart int
}

// ParseLineContext classifies the completion request for a line-to-caret
// slice. lineStart and caret are absolute document offsets.
//
// The name region is everything before the first '='; the last name token
// in it wins, so leading indentation or stray tokens are skipped. The value
// region is everything after the first '='. The value anchor is located by
// searching for the first occurrence of the trimmed filter from the '='
// onward; when the filter text recurs earlier in the untrimmed region the
// anchor can land on the wrong occurrence. That quirk is inherited behavior
// and is left as is.
func ParseLineContext(lineToCaret string, lineStart, caret int) CompletionContext {
	cc := CompletionContext{
		Kind:             KindNone,
		LineToCaret:      lineToCaret,
		LineStartOffset:  lineStart,
		CaretOffset:      caret,
		ReplacementStart: lineStart,
	}

	if strings.Contains(lineToCaret, commentMarker) {
		return cc
	}

	eq := strings.IndexByte(lineToCaret, '=')

	nameRegion := lineToCaret
	if eq >= 0 {
		nameRegion = lineToCaret[:eq]
	}

	prefixOffset := 0
	if tokens := propNamePattern.FindAllStringIndex(nameRegion, -1); len(tokens) > 0 {
		last := tokens[len(tokens)-1]
		cc.NamePrefix = nameRegion[last[0]:last[1]]
		prefixOffset = last[0]
	}

	if eq < 0 {
		cc.Kind = KindName
		cc.ReplacementStart = lineStart + prefixOffset

		return cc
	}

	cc.Kind = KindValue

	valueRegion := lineToCaret[eq+1:]
	if valueRegion == "" {
		// Nothing typed after '=': complete with an empty filter anchored
		// right after the separator.
		cc.ReplacementStart = lineStart + eq + 1

		return cc
	}

	cc.ValueFilter = strings.TrimSpace(valueRegion)
	cc.ReplacementStart = lineStart + eq + strings.Index(lineToCaret[eq:], cc.ValueFilter)

	return cc
}
