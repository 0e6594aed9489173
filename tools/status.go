package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/lexandro/classindex/index"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// StatusArgs defines the input parameters for the classindex_status tool (none required).
type StatusArgs struct{}

// StatusHandler holds the dependencies for the status tool.
type StatusHandler struct {
	ClassIndex *index.ClassIndex
	StartTime  time.Time
	RootDir    string
	OutputPath string
	Logger     *slog.Logger
}

// Handle processes a classindex_status request.
func (h *StatusHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args StatusArgs) (*mcp.CallToolResult, any, error) {
	var builder strings.Builder

	classCount := h.ClassIndex.Count()
	docCount := h.ClassIndex.DocumentCount()
	duplicates := h.ClassIndex.Duplicates()
	uptime := time.Since(h.StartTime)

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	h.Logger.Info("classindex_status",
		"classes", classCount,
		"duplicates", len(duplicates),
		"memory", memStats.Alloc,
		"uptime", uptime,
	)

	builder.WriteString("=== classindex Status ===\n\n")
	builder.WriteString(fmt.Sprintf("Root directory: %s\n", h.RootDir))
	builder.WriteString(fmt.Sprintf("Index file: %s\n", h.OutputPath))
	builder.WriteString(fmt.Sprintf("Uptime: %s\n", formatDuration(int(uptime.Seconds()))))
	builder.WriteString(fmt.Sprintf("Indexed classes: %d\n", classCount))
	builder.WriteString(fmt.Sprintf("Search documents: %d\n", docCount))
	builder.WriteString(fmt.Sprintf("Memory usage: %s (heap: %s)\n",
		formatFileSize(int64(memStats.Alloc)),
		formatFileSize(int64(memStats.HeapAlloc)),
	))

	if report := FormatDuplicates(duplicates, h.RootDir); report != "" {
		builder.WriteString("\n")
		builder.WriteString(report)
	}

	return textResult(builder.String()), nil, nil
}
