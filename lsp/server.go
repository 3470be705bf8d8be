// Package lsp implements a Language Server Protocol server for key=value
// configuration files backed by a metadata catalog.
package lsp

import (
	"context"
	"sync"

	"go.lsp.dev/protocol"
	"go.uber.org/zap"

	"github.com/cfgprops/cfgprops"
	"github.com/cfgprops/cfgprops/catalog"
)

// Server implements the LSP Server interface for configuration files.
type Server struct {
	protocol.Server

	client protocol.Client
	logger *zap.Logger

	// Document state
	mu        sync.RWMutex
	documents map[protocol.DocumentURI]*Document

	// Completion machinery
	engine    *cfgprops.Engine
	scheduler *cfgprops.Scheduler
	catalog   *catalog.Catalog // nil when the catalog is externally supplied

	// Server state
	initialized   bool
	shutdown      bool
	workspaceRoot string
}

// Document represents an open document in the server.
type Document struct {
	URI      protocol.DocumentURI
	Version  int32
	Content  string
	Snapshot *cfgprops.Document
}

// NewServer creates a new LSP server over a completion engine. When cat is
// non-nil the server also discovers and hot-reloads workspace metadata
// catalogs on initialize.
func NewServer(client protocol.Client, logger *zap.Logger, engine *cfgprops.Engine, cat *catalog.Catalog) *Server {
	return &Server{
		client:    client,
		logger:    logger,
		documents: make(map[protocol.DocumentURI]*Document),
		engine:    engine,
		scheduler: cfgprops.NewScheduler(engine, cfgprops.WithSchedulerLogger(logger)),
		catalog:   cat,
	}
}

// Initialize handles the initialize request.
func (s *Server) Initialize(_ context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	s.logger.Info("Initialize")

	if params.RootURI != "" {
		s.workspaceRoot = URIToPath(params.RootURI)
	} else if params.RootPath != "" {
		s.workspaceRoot = params.RootPath
	}

	if s.workspaceRoot != "" && s.catalog != nil {
		s.loadWorkspaceCatalogs()
	}

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			// Full document sync - client sends entire content on change
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
			},
			// Hover shows property metadata
			HoverProvider: true,
			// Completion for property names, map keys and values
			CompletionProvider: &protocol.CompletionOptions{
				TriggerCharacters: []string{"=", "."},
				ResolveProvider:   false,
			},
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    "cfgprops-lsp",
			Version: "0.1.0",
		},
	}, nil
}

// loadWorkspaceCatalogs discovers metadata files under the workspace root,
// merges them into the catalog, and keeps them hot-reloaded.
func (s *Server) loadWorkspaceCatalogs() {
	paths, err := catalog.Discover(s.workspaceRoot)
	if err != nil {
		s.logger.Warn("catalog discovery failed",
			zap.String("root", s.workspaceRoot),
			zap.Error(err))

		return
	}

	if len(paths) == 0 {
		s.logger.Info("no metadata catalogs in workspace", zap.String("root", s.workspaceRoot))

		return
	}

	if err := s.catalog.Reload(paths...); err != nil {
		s.logger.Error("catalog load failed", zap.Error(err))

		return
	}

	s.logger.Info("workspace catalogs loaded",
		zap.Strings("paths", paths),
		zap.Int("properties", s.catalog.Len()))

	if _, err := catalog.Watch(s.catalog, s.logger, paths...); err != nil {
		s.logger.Warn("catalog watch unavailable", zap.Error(err))
	}
}

// Initialized handles the initialized notification.
func (s *Server) Initialized(_ context.Context, _ *protocol.InitializedParams) error {
	s.logger.Info("Initialized")
	s.initialized = true

	return nil
}

// Shutdown handles the shutdown request.
func (s *Server) Shutdown(_ context.Context) error {
	s.logger.Info("Shutdown")
	s.shutdown = true
	s.scheduler.Wait()

	return nil
}

// Exit handles the exit notification.
func (s *Server) Exit(_ context.Context) error {
	s.logger.Info("Exit")

	return nil
}

// DidOpen handles textDocument/didOpen notifications.
func (s *Server) DidOpen(_ context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.logger.Info("DidOpen", zap.String("uri", string(params.TextDocument.URI)))

	doc := &Document{
		URI:      params.TextDocument.URI,
		Version:  params.TextDocument.Version,
		Content:  params.TextDocument.Text,
		Snapshot: cfgprops.NewDocument(params.TextDocument.Text),
	}

	s.mu.Lock()
	s.documents[params.TextDocument.URI] = doc
	s.mu.Unlock()

	return nil
}

// DidChange handles textDocument/didChange notifications.
func (s *Server) DidChange(_ context.Context, params *protocol.DidChangeTextDocumentParams) error {
	s.logger.Debug("DidChange",
		zap.String("uri", string(params.TextDocument.URI)),
		zap.Int32("version", params.TextDocument.Version))

	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.documents[params.TextDocument.URI]
	if !ok {
		s.logger.Warn("DidChange for unknown document", zap.String("uri", string(params.TextDocument.URI)))

		return nil
	}

	// Full sync - take the last content change (should only be one)
	if len(params.ContentChanges) > 0 {
		doc.Content = params.ContentChanges[len(params.ContentChanges)-1].Text
		doc.Version = params.TextDocument.Version
		doc.Snapshot = cfgprops.NewDocument(doc.Content)
	}

	return nil
}

// DidClose handles textDocument/didClose notifications.
func (s *Server) DidClose(_ context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.logger.Info("DidClose", zap.String("uri", string(params.TextDocument.URI)))

	s.mu.Lock()
	delete(s.documents, params.TextDocument.URI)
	s.mu.Unlock()

	return nil
}

// DidSave handles textDocument/didSave notifications.
func (s *Server) DidSave(_ context.Context, params *protocol.DidSaveTextDocumentParams) error {
	s.logger.Info("DidSave", zap.String("uri", string(params.TextDocument.URI)))

	return nil
}

// getDocument returns a document by URI (read-locked).
func (s *Server) getDocument(uri protocol.DocumentURI) (*Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.documents[uri]

	return doc, ok
}
