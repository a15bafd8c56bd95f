package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/diffscope/internal/config"
	"github.com/mvp-joe/diffscope/internal/extract"
	"github.com/mvp-joe/diffscope/internal/mcp"
	"github.com/mvp-joe/diffscope/internal/parsers"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for diff context extraction",
	Long: `Start the Model Context Protocol (MCP) server that lets LLM-powered
coding assistants request focused review context for a diff.

The MCP server:
- Accepts unified diff text via the extract_context tool
- Returns numbered diffs, minimal enclosing blocks, and token costs
- Communicates via stdio (standard MCP transport)

Example:
  diffscope mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	extractor, err := extract.NewExtractor(optionsFromConfig(cfg), parsers.NewVueSplitter(), nil)
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}

	server := mcp.NewServer(extractor, Version)
	if err := server.Serve(context.Background()); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}
