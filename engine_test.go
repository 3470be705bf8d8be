package cfgprops_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cfgprops/cfgprops"
)

func TestNameCompletionByPrefix(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	items := resolveLine(t, engine, "server.ss")

	want := []string{"server.ssl.enabled"}
	if diff := cmp.Diff(want, itemValues(items)); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}

	if items[0].Kind != cfgprops.ItemProperty {
		t.Errorf("Kind = %v, want ItemProperty", items[0].Kind)
	}
	if items[0].Detail != "java.lang.Boolean" {
		t.Errorf("Detail = %q, want the declared type", items[0].Detail)
	}
	if items[0].StartOffset != 0 || items[0].EndOffset != len("server.ss") {
		t.Errorf("replacement span = [%d, %d), want [0, %d)",
			items[0].StartOffset, items[0].EndOffset, len("server.ss"))
	}
}

func TestNameCompletionEmptyFilterMatchesAll(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	items := resolveLine(t, engine, "")
	if len(items) != len(testProperties()) {
		t.Errorf("got %d candidates, want %d", len(items), len(testProperties()))
	}
}

func TestNameCompletionSkipsIndentation(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	line := "   server.po"
	items := resolveLine(t, engine, line)

	want := []string{"server.port"}
	if diff := cmp.Diff(want, itemValues(items)); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}
	if items[0].StartOffset != 3 {
		t.Errorf("StartOffset = %d, want 3 (token start, not line start)", items[0].StartOffset)
	}
}

func TestNameCompletionDeprecatedOrdering(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	items := resolveLine(t, engine, "server.")

	// Deprecated properties trail the active ones, keeping relative order.
	want := []string{"server.port", "server.ssl.enabled", "server.address", "server.old-port"}
	if diff := cmp.Diff(want, itemValues(items)); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}

	if !items[2].SortsLast() || !items[3].SortsLast() {
		t.Error("deprecated items should report SortsLast")
	}
	if items[2].Deprecation != cfgprops.DeprecationWarning {
		t.Errorf("Deprecation = %v, want warning", items[2].Deprecation)
	}
}

func TestNameCompletionKeepsCatalogOrderWithoutSorting(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, cfgprops.WithOptions(cfgprops.Options{
		ShowErrorDeprecated: true,
		SortDeprecatedLast:  false,
	}))

	items := resolveLine(t, engine, "server.")

	want := []string{"server.port", "server.ssl.enabled", "server.address", "server.old-port"}
	if diff := cmp.Diff(want, itemValues(items)); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestNameCompletionHidesErrorDeprecated(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t, cfgprops.WithOptions(cfgprops.Options{
		ShowErrorDeprecated: false,
		SortDeprecatedLast:  true,
	}))

	for _, v := range itemValues(resolveLine(t, engine, "server.")) {
		if v == "server.old-port" {
			t.Error("error-deprecated property should be hidden")
		}
	}
}

func TestNameCompletionDeduplicates(t *testing.T) {
	t.Parallel()

	engine := cfgprops.NewEngine(dupCatalog{})

	items := resolveLine(t, engine, "dup")
	if len(items) != 1 {
		t.Errorf("got %d candidates, want 1 after dedupe: %v", len(items), itemValues(items))
	}
}

// dupCatalog returns the same property twice from a prefix query.
type dupCatalog struct{}

func (dupCatalog) QueryByNamePrefix(string) []*cfgprops.PropertyMetadata {
	p := &cfgprops.PropertyMetadata{Name: "dup.prop", Type: "java.lang.String"}

	return []*cfgprops.PropertyMetadata{p, p}
}

func (dupCatalog) LookupByName(string) (*cfgprops.PropertyMetadata, bool) { return nil, false }
func (dupCatalog) MapPropertyNames() []string                            { return nil }

func TestBooleanValueCompletion(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	tests := []struct {
		name string
		line string
	}{
		{name: "empty filter", line: "server.ssl.enabled="},
		{name: "filter does not narrow booleans", line: "server.ssl.enabled=tr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			items := resolveLine(t, engine, tt.line)

			want := []string{"true", "false"}
			if diff := cmp.Diff(want, itemValues(items)); diff != "" {
				t.Errorf("candidates mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBooleanValueCompletionSpan(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	line := "server.ssl.enabled="
	items := resolveLine(t, engine, line)

	// An empty value region anchors the replacement right after the '='.
	for _, it := range items {
		if it.StartOffset != len(line) || it.EndOffset != len(line) {
			t.Errorf("%s span = [%d, %d), want [%d, %d)",
				it.Value, it.StartOffset, it.EndOffset, len(line), len(line))
		}
	}
}

func TestEnumValueCompletion(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	tests := []struct {
		name string
		line string
		want []string
	}{
		{name: "all constants lowercased", line: "sample.mode=", want: []string{"alpha", "beta"}},
		{name: "substring match", line: "sample.mode=ph", want: []string{"alpha"}},
		{name: "match is case insensitive", line: "sample.mode=PH", want: []string{"alpha"}},
		{name: "no match", line: "sample.mode=zz", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			items := resolveLine(t, engine, tt.line)

			var got []string
			if len(items) > 0 {
				got = itemValues(items)
			}

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("candidates mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMapValueCompletionResolvesKeyPath(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	// The property name is a map-key path; the catalog resolves it to the
	// map property and the value completes from the map's value type.
	items := resolveLine(t, engine, "logging.level.org.springframework=IN")

	want := []string{"info"}
	if diff := cmp.Diff(want, itemValues(items)); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestMapValueCompletionBooleanValueType(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	// Boolean literals come first, then declared value hints; the groups are
	// concatenated, never merged.
	items := resolveLine(t, engine, "feature.flags.new-ui=")

	want := []string{"true", "false", "on"}
	if diff := cmp.Diff(want, itemValues(items)); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestValueHintFiltering(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	items := resolveLine(t, engine, "spring.profiles.active=ro")

	want := []string{"prod"}
	if diff := cmp.Diff(want, itemValues(items)); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}

	// Hint filtering is case sensitive, unlike enum filtering.
	if items := resolveLine(t, engine, "spring.profiles.active=RO"); len(items) != 0 {
		t.Errorf("case-mismatched hint filter should yield nothing, got %v", itemValues(items))
	}
}

func TestMapKeyCompletionFromHints(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	line := "app.servers.pr"
	items := resolveLine(t, engine, line)

	want := []string{"prod"}
	if diff := cmp.Diff(want, itemValues(items)); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}

	if items[0].Kind != cfgprops.ItemKey {
		t.Errorf("Kind = %v, want ItemKey", items[0].Kind)
	}

	// The replacement span covers only the key, past the map property's dot.
	wantStart := len("app.servers.")
	if items[0].StartOffset != wantStart || items[0].EndOffset != len(line) {
		t.Errorf("replacement span = [%d, %d), want [%d, %d)",
			items[0].StartOffset, items[0].EndOffset, wantStart, len(line))
	}
}

func TestMapKeyCompletionIsolatesKeyFilter(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	// The key filter is everything past the map property's separator; a hint
	// equal to the typed key still matches by prefix.
	items := resolveLine(t, engine, "app.servers.prod")

	want := []string{"prod"}
	if diff := cmp.Diff(want, itemValues(items)); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestMapKeyCompletionFromEnumKeyType(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	items := resolveLine(t, engine, "metrics.export.al")

	want := []string{"alpha"}
	if diff := cmp.Diff(want, itemValues(items)); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}
}

func TestProviderObserver(t *testing.T) {
	t.Parallel()

	var diags []cfgprops.ProviderDiagnostic

	engine := newTestEngine(t, cfgprops.WithProviderObserver(func(d cfgprops.ProviderDiagnostic) {
		diags = append(diags, d)
	}))

	resolveLine(t, engine, "spring.profiles.active=")

	if len(diags) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(diags))
	}
	if diags[0].Property != "spring.profiles.active" || diags[0].Kind != "value" || diags[0].Name != "spring-profile-name" {
		t.Errorf("unexpected diagnostic: %+v", diags[0])
	}

	diags = nil
	resolveLine(t, engine, "app.servers.pr")

	if len(diags) != 1 || diags[0].Kind != "key" || diags[0].Name != "any" {
		t.Errorf("unexpected key provider diagnostics: %+v", diags)
	}
}

func TestCommentLineYieldsNothing(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	if items := resolveLine(t, engine, "# sample.mode="); len(items) != 0 {
		t.Errorf("comment line should yield nothing, got %v", itemValues(items))
	}
}

func TestUnknownPropertyValueYieldsNothing(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	if items := resolveLine(t, engine, "unknown.prop=x"); len(items) != 0 {
		t.Errorf("unknown property should yield nothing, got %v", itemValues(items))
	}
}

func TestValueWithoutPropertyNameYieldsNothing(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	if items := resolveLine(t, engine, "=x"); len(items) != 0 {
		t.Errorf("separator without a name should yield nothing, got %v", itemValues(items))
	}
}

func TestResolveOutOfRangeOffsetStillSignalsDone(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	// resolveAt fails the test if the sink never closes.
	if items := resolveAt(t, engine, "a=1", 100); len(items) != 0 {
		t.Errorf("out-of-range caret should yield nothing, got %v", itemValues(items))
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	first := itemValues(resolveLine(t, engine, "sample.mode="))
	second := itemValues(resolveLine(t, engine, "sample.mode="))

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated resolution diverged (-first +second):\n%s", diff)
	}
}

func TestResolveMultiLineDocument(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(t)

	text := "server.port=8080\nsample.mode="
	items := resolveAt(t, engine, text, len(text))

	want := []string{"alpha", "beta"}
	if diff := cmp.Diff(want, itemValues(items)); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}

	// Spans are absolute document offsets, not line-local ones.
	wantStart := len("server.port=8080\nsample.mode=")
	if items[0].StartOffset != wantStart {
		t.Errorf("StartOffset = %d, want %d", items[0].StartOffset, wantStart)
	}
}

func TestEngineWithoutTypeLoaderSkipsEnums(t *testing.T) {
	t.Parallel()

	engine := cfgprops.NewEngine(testCatalog())

	if items := resolveLine(t, engine, "sample.mode="); len(items) != 0 {
		t.Errorf("no loader should mean no enum candidates, got %v", itemValues(items))
	}

	// Boolean literals do not depend on introspection.
	items := resolveLine(t, engine, "server.ssl.enabled=")

	want := []string{"true", "false"}
	if diff := cmp.Diff(want, itemValues(items)); diff != "" {
		t.Errorf("candidates mismatch (-want +got):\n%s", diff)
	}
}
