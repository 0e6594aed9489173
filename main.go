package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lexandro/classindex/ignore"
	"github.com/lexandro/classindex/index"
	"github.com/lexandro/classindex/language"
)

// Exit codes.
const (
	exitOK      = 0
	exitUsage   = 1 // missing or invalid command-line arguments
	exitFailure = 2 // the walk, the index write or the server failed
)

// excludePatterns is a repeatable CLI flag for custom ignore patterns.
type excludePatterns []string

func (e *excludePatterns) String() string { return strings.Join(*e, ", ") }
func (e *excludePatterns) Set(value string) error {
	*e = append(*e, value)
	return nil
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches to a subcommand and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) > 0 {
		switch args[0] {
		case "lookup":
			return runLookup(args[1:], stdout, stderr)
		case "serve":
			return runServe(args[1:], stderr)
		}
	}
	return runBuild(args, stdout, stderr)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: classindex [flags] <target_dir>")
	fmt.Fprintln(w, "       classindex lookup [-root dir] [-max-results n] <query>")
	fmt.Fprintln(w, "       classindex serve [-root dir] [flags]")
	fmt.Fprintln(w, "\nA target directory named lookup or serve needs a path prefix, e.g. ./serve")
}

// runBuild scans the target directory and writes class_index.csv into it.
func runBuild(args []string, stdout, stderr io.Writer) int {
	var excludes excludePatterns
	var useGitignore bool
	var logLevel string
	var logFile string

	flags := flag.NewFlagSet("classindex", flag.ContinueOnError)
	flags.SetOutput(stdout)
	flags.Var(&excludes, "exclude", "Glob of paths to skip, relative to the target directory (repeatable)")
	flags.BoolVar(&useGitignore, "gitignore", false, "Skip paths ignored by the target directory's .gitignore")
	flags.StringVar(&logLevel, "log-level", "warn", "Log level: debug|info|warn|error")
	flags.StringVar(&logFile, "log-file", "", "Log file path (default: stderr)")
	flags.Usage = func() {
		printUsage(stdout)
		fmt.Fprintln(stdout, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return exitUsage
	}

	rootDir, err := resolveRoot(flags.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	logger := setupLogger(logLevel, logFile, stderr)

	ignoreMatcher, err := ignore.NewMatcher(ignore.MatcherOptions{
		RootDir:        rootDir,
		CustomPatterns: excludes,
		UseGitignore:   useGitignore,
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	entries, outputPath, err := buildIndex(rootDir, index.NewExtractor(language.Java), ignoreMatcher, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	fmt.Fprintf(stdout, "%d classes indexed to %s\n", len(entries), outputPath)
	return exitOK
}

// resolveRoot makes dir absolute and checks that it is an existing directory.
func resolveRoot(dir string) (string, error) {
	rootDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	info, err := os.Stat(rootDir)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s: %w", rootDir, index.ErrNotDirectory)
	}
	return rootDir, nil
}

// setupLogger creates an slog.Logger writing to fallback or a file.
func setupLogger(level string, logFile string, fallback io.Writer) *slog.Logger {
	var logLevel slog.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelWarn
	}

	writer := fallback
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(fallback, "Warning: cannot open log file %s: %v, falling back to stderr\n", logFile, err)
		} else {
			writer = f
		}
	}

	handler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: logLevel})
	return slog.New(handler)
}
