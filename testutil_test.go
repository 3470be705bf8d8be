package cfgprops_test

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/cfgprops/cfgprops"
	"github.com/cfgprops/cfgprops/catalog"
	"github.com/cfgprops/cfgprops/typeindex"
)

// testProperties is the shared fixture catalog: a handful of scalar, boolean,
// enum, and map-typed properties with hints and providers.
func testProperties() []*cfgprops.PropertyMetadata {
	return []*cfgprops.PropertyMetadata{
		{
			Name:         "server.port",
			Type:         "java.lang.Integer",
			Description:  "Server HTTP port.",
			DefaultValue: "8080",
		},
		{
			Name: "server.ssl.enabled",
			Type: "java.lang.Boolean",
		},
		{
			Name:        "server.address",
			Type:        "java.lang.String",
			Deprecation: cfgprops.DeprecationWarning,
			Replacement: "server.host",
		},
		{
			Name:        "server.old-port",
			Type:        "java.lang.Integer",
			Deprecation: cfgprops.DeprecationError,
			Replacement: "server.port",
		},
		{
			Name: "sample.mode",
			Type: "com.example.Mode",
		},
		{
			Name: "logging.level",
			Type: "java.util.Map<java.lang.String,com.example.LogLevel>",
		},
		{
			Name: "app.servers",
			Type: "java.util.Map<java.lang.String,java.lang.String>",
			Hints: cfgprops.Hints{
				KeyHints: []cfgprops.ValueHint{
					{Value: "prod", Description: "Production cluster."},
					{Value: "staging"},
					{Value: "dev"},
				},
				KeyProviders: []cfgprops.ValueProvider{
					{Name: "any", Parameters: map[string]any{"target": "java.lang.String"}},
				},
			},
		},
		{
			Name: "metrics.export",
			Type: "java.util.Map<com.example.Mode,java.lang.String>",
		},
		{
			Name: "feature.flags",
			Type: "java.util.Map<java.lang.String,java.lang.Boolean>",
			Hints: cfgprops.Hints{
				ValueHints: []cfgprops.ValueHint{{Value: "on"}},
			},
		},
		{
			Name: "spring.profiles.active",
			Type: "java.lang.String",
			Hints: cfgprops.Hints{
				ValueHints: []cfgprops.ValueHint{
					{Value: "dev"},
					{Value: "prod"},
					{Value: "test"},
				},
				ValueProviders: []cfgprops.ValueProvider{
					{Name: "spring-profile-name"},
				},
			},
		},
	}
}

func testCatalog() *catalog.Catalog {
	c := catalog.New(zap.NewNop())
	c.Replace(testProperties())

	return c
}

func testLoader() cfgprops.TypeLoader {
	return typeindex.New(map[string][]string{
		"com.example.Mode":     {"ALPHA", "BETA"},
		"com.example.LogLevel": {"OFF", "ERROR", "WARN", "INFO", "DEBUG", "TRACE"},
	})
}

func newTestEngine(t *testing.T, opts ...cfgprops.EngineOption) *cfgprops.Engine {
	t.Helper()

	opts = append([]cfgprops.EngineOption{cfgprops.WithTypeLoader(testLoader())}, opts...)

	return cfgprops.NewEngine(testCatalog(), opts...)
}

// resolveLine resolves completions for a single line with the caret at its
// end and returns the items in final order.
func resolveLine(t *testing.T, engine *cfgprops.Engine, line string) []cfgprops.CompletionItem {
	t.Helper()

	return resolveAt(t, engine, line, len(line))
}

func resolveAt(t *testing.T, engine *cfgprops.Engine, text string, caret int) []cfgprops.CompletionItem {
	t.Helper()

	sink := cfgprops.NewCollector()
	engine.Resolve(context.Background(), cfgprops.NewDocument(text), caret, sink)

	items, err := sink.Wait(context.Background())
	if err != nil {
		t.Fatalf("Wait() error: %v", err)
	}

	return items
}

func itemValues(items []cfgprops.CompletionItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Value
	}

	return out
}
