package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lexandro/classindex/index"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// FilesArgs defines the input parameters for the classindex_files tool.
type FilesArgs struct {
	Pattern    string `json:"pattern" jsonschema:"Glob pattern over file paths relative to the root (e.g. src/**/util/*.java)"`
	MaxResults int    `json:"maxResults,omitempty" jsonschema:"Maximum number of results to return (default 50)"`
}

// FilesHandler holds the dependencies for the files tool.
type FilesHandler struct {
	ClassIndex *index.ClassIndex
	RootDir    string
	Logger     *slog.Logger
}

// Handle processes a classindex_files request.
func (h *FilesHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args FilesArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.Pattern == "" {
		h.Logger.Warn("classindex_files called with empty pattern")
		return errorResult("Error: pattern parameter is required"), nil, nil
	}

	results, err := h.ClassIndex.SearchByPathGlob(args.Pattern, args.MaxResults)
	if err != nil {
		h.Logger.Error("classindex_files failed", "pattern", args.Pattern, "error", err)
		return errorResult(fmt.Sprintf("Search error: %v", err)), nil, nil
	}

	h.Logger.Info("classindex_files",
		"pattern", args.Pattern,
		"results", len(results),
		"elapsed", time.Since(start),
	)

	return textResult(FormatEntries(results, h.RootDir)), nil, nil
}
