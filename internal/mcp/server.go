// Package mcp exposes the extraction pipeline as a Model Context Protocol
// tool so coding assistants can request focused diff context over stdio.
package mcp

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/diffscope/internal/extract"
)

// Server manages the MCP server lifecycle.
type Server struct {
	extractor *extract.Extractor
	mcp       *server.MCPServer
}

// NewServer creates an MCP server wrapping the given extractor.
func NewServer(extractor *extract.Extractor, version string) *Server {
	mcpServer := server.NewMCPServer(
		"diffscope-mcp",
		version,
		server.WithToolCapabilities(true),
	)

	AddExtractContextTool(mcpServer, extractor)

	return &Server{
		extractor: extractor,
		mcp:       mcpServer,
	}
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		slog.Info("starting MCP server on stdio")
		errCh <- server.ServeStdio(s.mcp)
	}()

	select {
	case <-sigCh:
		slog.Info("received shutdown signal, stopping")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
