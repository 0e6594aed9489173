package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lexandro/classindex/index"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// LookupArgs defines the input parameters for the classindex_lookup tool.
type LookupArgs struct {
	Query      string `json:"query" jsonschema:"Class to find: simple name, name prefix, fully-qualified name, wildcard (com.example.*) or /regex/"`
	MaxResults int    `json:"maxResults,omitempty" jsonschema:"Maximum number of classes to return (default 50)"`
}

// LookupHandler holds the dependencies for the lookup tool.
type LookupHandler struct {
	ClassIndex *index.ClassIndex
	RootDir    string
	Logger     *slog.Logger
}

// Handle processes a classindex_lookup request.
func (h *LookupHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args LookupArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.Query == "" {
		h.Logger.Warn("classindex_lookup called with empty query")
		return errorResult("Error: query parameter is required"), nil, nil
	}

	results, err := h.ClassIndex.Lookup(args.Query, args.MaxResults)
	if err != nil {
		h.Logger.Error("classindex_lookup failed", "query", args.Query, "error", err)
		return errorResult(fmt.Sprintf("Lookup error: %v", err)), nil, nil
	}

	h.Logger.Info("classindex_lookup",
		"query", args.Query,
		"results", len(results),
		"elapsed", time.Since(start),
	)

	return textResult(FormatEntries(results, h.RootDir)), nil, nil
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
