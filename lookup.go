package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"

	"github.com/lexandro/classindex/index"
)

// runLookup answers a query against an existing class_index.csv.
func runLookup(args []string, stdout, stderr io.Writer) int {
	var rootDir string
	var maxResults int

	flags := flag.NewFlagSet("classindex lookup", flag.ContinueOnError)
	flags.SetOutput(stdout)
	flags.StringVar(&rootDir, "root", ".", "Directory holding class_index.csv")
	flags.IntVar(&maxResults, "max-results", index.DefaultMaxResults, "Maximum number of classes to print")
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

	rootDir, err := resolveRoot(rootDir)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	entries, err := index.ReadCSV(filepath.Join(rootDir, index.OutputFileName))
	if err != nil {
		fmt.Fprintf(stderr, "Error loading class index: %v\n", err)
		return exitFailure
	}

	classIndex, err := index.NewClassIndex()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}
	defer classIndex.Close()

	if err := classIndex.Replace(rootDir, entries); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitFailure
	}

	results, err := classIndex.Lookup(flags.Arg(0), maxResults)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	if len(results) == 0 {
		fmt.Fprintln(stdout, "No classes matched.")
		return exitOK
	}
	for _, entry := range results {
		fmt.Fprintf(stdout, "%s\t%s\n", entry.FullyQualifiedName, entry.FilePath)
	}
	return exitOK
}
