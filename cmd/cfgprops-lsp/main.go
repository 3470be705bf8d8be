// Command cfgprops-lsp is a Language Server Protocol server for key=value
// configuration files described by metadata catalogs.
package main

import (
	"context"
	"flag"
	"io"
	"os"
	"strings"

	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cfgprops/cfgprops"
	"github.com/cfgprops/cfgprops/catalog"
	"github.com/cfgprops/cfgprops/lsp"
	"github.com/cfgprops/cfgprops/typeindex"
)

var (
	catalogFlag = flag.String("catalog", "", "comma-separated metadata catalog files (workspace discovery still applies)")
	typesFlag   = flag.String("types", "", "comma-separated enum type registry files")
	debugFlag   = flag.Bool("debug", false, "Enable debug logging")
)

func main() {
	flag.Parse()

	// Set up logging to stderr (stdout is for LSP communication)
	config := zap.NewDevelopmentConfig()
	config.OutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	if *debugFlag {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	logger, err := config.Build()
	if err != nil {
		panic(err)
	}

	defer func() {
		_ = logger.Sync()
	}()

	logger.Info("Starting cfgprops-lsp server")

	ctx := context.Background()

	err = run(ctx, logger, os.Stdin, os.Stdout)
	if err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}

func run(ctx context.Context, logger *zap.Logger, in io.Reader, out io.Writer) error {
	cat := catalog.New(logger)

	if *catalogFlag != "" {
		if err := cat.Reload(splitList(*catalogFlag)...); err != nil {
			return err
		}
	}

	var loader cfgprops.TypeLoader
	if *typesFlag != "" {
		registry, err := typeindex.Load(splitList(*typesFlag)...)
		if err != nil {
			return err
		}
		loader = registry
	}

	engine := cfgprops.NewEngine(cat,
		cfgprops.WithLogger(logger),
		cfgprops.WithTypeLoader(loader))

	// Create a JSON-RPC stream connection over stdio
	stream := jsonrpc2.NewStream(&readWriteCloser{in, out})
	conn := jsonrpc2.NewConn(stream)

	// Create a client to send notifications to the editor
	client := protocol.ClientDispatcher(conn, logger)

	// Server logs also reach the editor's LSP log view via window/logMessage.
	level := zapcore.InfoLevel
	if *debugFlag {
		level = zapcore.DebugLevel
	}
	serverLogger := lsp.NewLSPLogger(client, logger.Core(), level)

	server := lsp.NewServer(client, serverLogger, engine, cat)

	// Register the server handler with the connection
	conn.Go(ctx, protocol.ServerHandler(server, nil))

	// Wait for the connection to close
	<-conn.Done()

	return conn.Err()
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}

	return out
}

// readWriteCloser wraps separate reader/writer into io.ReadWriteCloser.
type readWriteCloser struct {
	io.Reader
	io.Writer
}

func (rwc *readWriteCloser) Close() error {
	if c, ok := rwc.Writer.(io.Closer); ok {
		return c.Close()
	}

	return nil
}
