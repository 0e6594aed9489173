package tools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// ReindexArgs defines the input parameters for the classindex_reindex tool.
type ReindexArgs struct{}

// ReindexFunc rescans the root, rewrites the index file and refreshes the
// in-memory index. It is provided by main.go to avoid circular dependencies.
type ReindexFunc func() (classCount int, outputPath string, elapsed string, err error)

// ReindexHandler holds the dependencies for the reindex tool.
type ReindexHandler struct {
	DoReindex ReindexFunc
	Logger    *slog.Logger
}

// Handle processes a classindex_reindex request.
func (h *ReindexHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ReindexArgs) (*mcp.CallToolResult, any, error) {
	h.Logger.Info("classindex_reindex started")

	classCount, outputPath, elapsed, err := h.DoReindex()
	if err != nil {
		h.Logger.Error("classindex_reindex failed", "error", err)
		return errorResult(fmt.Sprintf("Reindex error: %v", err)), nil, nil
	}

	h.Logger.Info("classindex_reindex complete",
		"classes", classCount,
		"output", outputPath,
		"elapsed", elapsed,
	)

	return textResult(fmt.Sprintf("Reindex complete: %d classes written to %s in %s", classCount, outputPath, elapsed)), nil, nil
}
