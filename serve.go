package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/lexandro/classindex/ignore"
	"github.com/lexandro/classindex/index"
	"github.com/lexandro/classindex/language"
	"github.com/lexandro/classindex/server"
	"github.com/lexandro/classindex/tools"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// runServe builds the index and serves it over MCP on stdio until the client
// disconnects or the process is interrupted. Stdout belongs to the transport.
func runServe(args []string, stderr io.Writer) int {
	var rootDir string
	var excludes excludePatterns
	var useGitignore bool
	var logLevel string
	var logFile string

	flags := flag.NewFlagSet("classindex serve", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.StringVar(&rootDir, "root", "", "Project root directory (default: current working directory)")
	flags.Var(&excludes, "exclude", "Glob of paths to skip, relative to the root (repeatable)")
	flags.BoolVar(&useGitignore, "gitignore", false, "Skip paths ignored by the root .gitignore")
	flags.StringVar(&logLevel, "log-level", "info", "Log level: debug|info|warn|error")
	flags.StringVar(&logFile, "log-file", "", "Log file path (default: stderr)")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if flags.NArg() != 0 {
		printUsage(stderr)
		return exitUsage
	}

	if rootDir == "" {
		var err error
		rootDir, err = os.Getwd()
		if err != nil {
			fmt.Fprintf(stderr, "Error getting working directory: %v\n", err)
			return exitFailure
		}
	}
	rootDir, err := resolveRoot(rootDir)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	logger := setupLogger(logLevel, logFile, stderr)
	logger.Info("starting classindex server", "root", rootDir)

	ignoreMatcher, err := ignore.NewMatcher(ignore.MatcherOptions{
		RootDir:        rootDir,
		CustomPatterns: excludes,
		UseGitignore:   useGitignore,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	classIndex, err := index.NewClassIndex()
	if err != nil {
		logger.Error("failed to create class index", "error", err)
		return exitFailure
	}
	defer classIndex.Close()

	extractor := index.NewExtractor(language.Java)
	outputPath := ""
	var reindexMu sync.Mutex
	doReindex := func() (int, string, string, error) {
		reindexMu.Lock()
		defer reindexMu.Unlock()

		start := time.Now()
		// Pick up .gitignore edits made since the last build.
		ignoreMatcher.Reload()
		entries, written, err := buildIndex(rootDir, extractor, ignoreMatcher, logger)
		if err != nil {
			return 0, "", "", err
		}
		if err := classIndex.Replace(rootDir, entries); err != nil {
			return 0, "", "", fmt.Errorf("refreshing class index: %w", err)
		}
		outputPath = written
		return len(entries), written, time.Since(start).Round(time.Millisecond).String(), nil
	}

	count, _, elapsed, err := doReindex()
	if err != nil {
		logger.Error("initial indexing failed", "error", err)
		return exitFailure
	}
	logger.Info("initial indexing complete", "classes", count, "duration", elapsed)

	lookupHandler := &tools.LookupHandler{ClassIndex: classIndex, RootDir: rootDir, Logger: logger}
	filesHandler := &tools.FilesHandler{ClassIndex: classIndex, RootDir: rootDir, Logger: logger}
	statusHandler := &tools.StatusHandler{
		ClassIndex: classIndex,
		StartTime:  time.Now(),
		RootDir:    rootDir,
		OutputPath: outputPath,
		Logger:     logger,
	}
	reindexHandler := &tools.ReindexHandler{DoReindex: doReindex, Logger: logger}

	mcpServer := server.Setup(lookupHandler, filesHandler, statusHandler, reindexHandler)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("MCP server starting on stdio")
	if err := mcpServer.Run(ctx, &mcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("MCP server error", "error", err)
		return exitFailure
	}
	return exitOK
}
