package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/diffscope/internal/diff"
	"github.com/mvp-joe/diffscope/internal/extract"
)

// AddExtractContextTool registers the extract_context tool with an MCP
// server. This function is composable - it can be combined with other tool
// registrations.
func AddExtractContextTool(s *server.MCPServer, extractor *extract.Extractor) {
	tool := mcp.NewTool(
		"extract_context",
		mcp.WithDescription("Extract focused review context from a unified diff: a numbered diff view plus the minimal enclosing code blocks around every changed line, with token cost against the configured model budget."),
		mcp.WithString("diff",
			mcp.Required(),
			mcp.Description("Unified diff text, single or multi-file (git diff output)")),
		mcp.WithString("path",
			mcp.Description("File path override when the diff lacks ---/+++ headers")),
	)

	s.AddTool(tool, createExtractContextHandler(extractor))
}

// createExtractContextHandler creates the handler function for the
// extract_context tool.
func createExtractContextHandler(extractor *extract.Extractor) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		diffText, ok := argsMap["diff"].(string)
		if !ok || diffText == "" {
			return mcp.NewToolResultError("diff parameter is required"), nil
		}

		pathOverride, _ := argsMap["path"].(string)

		var results []*extract.FileContext
		for _, section := range diff.SplitSections(diffText) {
			oldPath, newPath := diff.SectionPaths(section)
			if newPath == "" {
				newPath = pathOverride
			}
			if newPath == "" {
				continue
			}

			fc, err := extractor.ExtractFile(ctx, diff.FileDiff{
				OldPath: oldPath,
				NewPath: newPath,
				Patch:   section,
			})
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			results = append(results, fc)
		}

		payload, err := json.Marshal(results)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(string(payload)), nil
	}
}
