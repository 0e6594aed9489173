package tools

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lexandro/classindex/index"
)

// FormatEntries formats class index rows as human-readable text.
// When rootDir is set, paths are shown relative to it.
func FormatEntries(entries []index.Entry, rootDir string) string {
	if len(entries) == 0 {
		return "No classes matched."
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Found %d classes:\n\n", len(entries)))

	width := 0
	for _, entry := range entries {
		width = max(width, len(entry.FullyQualifiedName))
	}
	for _, entry := range entries {
		builder.WriteString(fmt.Sprintf("  %-*s  %s\n", width, entry.FullyQualifiedName, displayPath(entry.FilePath, rootDir)))
	}

	return builder.String()
}

// FormatDuplicates lists every class name declared by more than one file,
// sorted by name.
func FormatDuplicates(duplicates map[string][]string, rootDir string) string {
	if len(duplicates) == 0 {
		return ""
	}

	names := make([]string, 0, len(duplicates))
	for name := range duplicates {
		names = append(names, name)
	}
	sort.Strings(names)

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Duplicate class names: %d\n", len(names)))
	for _, name := range names {
		builder.WriteString(fmt.Sprintf("  %s\n", name))
		for _, path := range duplicates[name] {
			builder.WriteString(fmt.Sprintf("    %s\n", displayPath(path, rootDir)))
		}
	}
	return builder.String()
}

func displayPath(path string, rootDir string) string {
	if rootDir == "" {
		return path
	}
	rel, err := filepath.Rel(rootDir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}

// formatFileSize converts bytes to a human-readable string.
func formatFileSize(bytes int64) string {
	switch {
	case bytes >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	case bytes >= 1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	minutes := seconds / 60
	if minutes < 60 {
		return fmt.Sprintf("%dm%ds", minutes, seconds%60)
	}
	return fmt.Sprintf("%dh%dm", minutes/60, minutes%60)
}
