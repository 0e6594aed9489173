package server

import (
	"github.com/lexandro/classindex/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Version is reported to MCP clients.
const Version = "0.1.0"

// Setup creates and configures the MCP server with all tool registrations.
func Setup(
	lookupHandler *tools.LookupHandler,
	filesHandler *tools.FilesHandler,
	statusHandler *tools.StatusHandler,
	reindexHandler *tools.ReindexHandler,
) *mcp.Server {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "classindex",
			Version: Version,
		},
		&mcp.ServerOptions{
			Instructions: `This server answers "which file defines class X" for a Java source tree from a prebuilt class index (class_index.csv).

- Use classindex_lookup to find the file declaring a class by simple or fully-qualified name
- Use classindex_files to list the classes declared under a path glob
- The index is built at startup; call classindex_reindex after files change`,
		},
	)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "classindex_lookup",
		Description: `Find the source file that declares a class.

Query formats:
  - Simple name: "Helper" (exact simple names rank first, then name prefixes)
  - Fully-qualified name: "com.example.util.Helper"
  - Wildcard: "com.example.*" or "*Service"
  - /regex/: regular expression over the whole fully-qualified name (e.g. "/.*\.util\..*/")`,
	}, lookupHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name: "classindex_files",
		Description: `List indexed classes whose file path matches a glob pattern (relative to the root).

Pattern examples:
  - "src/main/java/**/*.java" - all main sources
  - "**/util/*.java" - classes in any util directory`,
	}, filesHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "classindex_status",
		Description: "Show index status: class count, duplicate class names, memory usage, and uptime.",
	}, statusHandler.Handle)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "classindex_reindex",
		Description: "Rescan the root, rewrite class_index.csv and refresh the in-memory index.",
	}, reindexHandler.Handle)

	return mcpServer
}
