package main

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/lexandro/classindex/ignore"
	"github.com/lexandro/classindex/index"
)

// performIndexing walks rootDir and extracts one entry per source file that
// declares a public type, in discovery order. Files that cannot be read are
// logged and skipped; only a failure of the walk itself is returned.
func performIndexing(
	rootDir string,
	extractor *index.Extractor,
	ignoreMatcher *ignore.Matcher,
	logger *slog.Logger,
) ([]index.Entry, error) {
	entries := make([]index.Entry, 0)
	seen := make(map[string]string)

	err := index.Discover(rootDir, extractor.Source(), ignoreMatcher, func(path string) error {
		result, err := extractor.ScanFile(path)
		if err != nil {
			logger.Warn("skipping file", "path", path, "error", err)
			return nil
		}

		absolutePath, err := filepath.Abs(path)
		if err != nil {
			logger.Warn("skipping file", "path", path, "error", err)
			return nil
		}
		entry, ok := result.Entry(absolutePath)
		if !ok {
			logger.Debug("no public type", "path", absolutePath)
			return nil
		}
		if first, dup := seen[entry.FullyQualifiedName]; dup {
			logger.Debug("duplicate class name", "class", entry.FullyQualifiedName, "path", absolutePath, "first", first)
		} else {
			seen[entry.FullyQualifiedName] = absolutePath
		}
		entries = append(entries, entry)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// buildIndex runs the pipeline and writes the CSV inside rootDir.
// It returns the entries and the path of the written file.
func buildIndex(
	rootDir string,
	extractor *index.Extractor,
	ignoreMatcher *ignore.Matcher,
	logger *slog.Logger,
) ([]index.Entry, string, error) {
	entries, err := performIndexing(rootDir, extractor, ignoreMatcher, logger)
	if err != nil {
		return nil, "", err
	}

	outputPath := filepath.Join(rootDir, index.OutputFileName)
	if err := index.WriteCSV(outputPath, entries); err != nil {
		return nil, "", fmt.Errorf("writing class index: %w", err)
	}
	logger.Info("class index written", "path", outputPath, "classes", len(entries))
	return entries, outputPath, nil
}
