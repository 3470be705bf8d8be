package lsp_test

import (
	"context"
	"sync"
	"testing"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/cfgprops/cfgprops"
	"github.com/cfgprops/cfgprops/catalog"
	"github.com/cfgprops/cfgprops/lsp"
	"github.com/cfgprops/cfgprops/typeindex"
)

// mockClient records client-bound notifications and satisfies
// protocol.Client for tests.
type mockClient struct {
	mu          sync.Mutex
	logMessages []*protocol.LogMessageParams
	diagnostics []*protocol.PublishDiagnosticsParams
}

func (m *mockClient) Progress(_ context.Context, _ *protocol.ProgressParams) error {
	return nil
}

func (m *mockClient) WorkDoneProgressCreate(_ context.Context, _ *protocol.WorkDoneProgressCreateParams) error {
	return nil
}

func (m *mockClient) LogMessage(_ context.Context, params *protocol.LogMessageParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logMessages = append(m.logMessages, params)

	return nil
}

func (m *mockClient) PublishDiagnostics(_ context.Context, params *protocol.PublishDiagnosticsParams) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.diagnostics = append(m.diagnostics, params)

	return nil
}

func (m *mockClient) ShowMessage(_ context.Context, _ *protocol.ShowMessageParams) error {
	return nil
}

func (m *mockClient) ShowMessageRequest(_ context.Context, _ *protocol.ShowMessageRequestParams) (*protocol.MessageActionItem, error) {
	return nil, nil //nolint:nilnil
}

func (m *mockClient) Telemetry(_ context.Context, _ interface{}) error {
	return nil
}

func (m *mockClient) RegisterCapability(_ context.Context, _ *protocol.RegistrationParams) error {
	return nil
}

func (m *mockClient) UnregisterCapability(_ context.Context, _ *protocol.UnregistrationParams) error {
	return nil
}

func (m *mockClient) ApplyEdit(_ context.Context, _ *protocol.ApplyWorkspaceEditParams) (bool, error) {
	return false, nil
}

func (m *mockClient) Configuration(_ context.Context, _ *protocol.ConfigurationParams) ([]interface{}, error) {
	return nil, nil
}

func (m *mockClient) WorkspaceFolders(_ context.Context) ([]protocol.WorkspaceFolder, error) {
	return nil, nil
}

var _ protocol.Client = (*mockClient)(nil)

// newTestServer builds a server over a small fixture catalog with an enum
// registry wired in.
func newTestServer(t *testing.T) (*lsp.Server, *mockClient) {
	t.Helper()

	cat := catalog.New(zap.NewNop())
	cat.Replace([]*cfgprops.PropertyMetadata{
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
				KeyHints: []cfgprops.ValueHint{{Value: "prod"}, {Value: "staging"}},
			},
		},
	})

	loader := typeindex.New(map[string][]string{
		"com.example.Mode":     {"ALPHA", "BETA"},
		"com.example.LogLevel": {"OFF", "ERROR", "WARN", "INFO", "DEBUG", "TRACE"},
	})

	engine := cfgprops.NewEngine(cat,
		cfgprops.WithLogger(zap.NewNop()),
		cfgprops.WithTypeLoader(loader))

	client := &mockClient{}
	server := lsp.NewServer(client, zap.NewNop(), engine, nil)

	return server, client
}

// openDoc initializes the server (if needed by the test flow it is harmless
// to repeat) and opens a document with the given content.
func openDoc(t *testing.T, server *lsp.Server, uri protocol.DocumentURI, text string) {
	t.Helper()

	ctx := context.Background()

	if _, err := server.Initialize(ctx, &protocol.InitializeParams{}); err != nil {
		t.Fatalf("Initialize() error: %v", err)
	}
	if err := server.Initialized(ctx, &protocol.InitializedParams{}); err != nil {
		t.Fatalf("Initialized() error: %v", err)
	}

	err := server.DidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:     uri,
			Version: 1,
			Text:    text,
		},
	})
	if err != nil {
		t.Fatalf("DidOpen() error: %v", err)
	}
}

// completionAt requests completion at the given position and returns the list.
func completionAt(t *testing.T, server *lsp.Server, uri protocol.DocumentURI, line, character uint32) *protocol.CompletionList {
	t.Helper()

	result, err := server.Completion(context.Background(), &protocol.CompletionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: uri},
			Position:     protocol.Position{Line: line, Character: character},
		},
	})
	if err != nil {
		t.Fatalf("Completion() error: %v", err)
	}

	return result
}

func labels(list *protocol.CompletionList) []string {
	if list == nil {
		return nil
	}

	out := make([]string, len(list.Items))
	for i, it := range list.Items {
		out[i] = it.Label
	}

	return out
}
