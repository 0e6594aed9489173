package ignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
)

// Matcher decides which paths discovery skips. It combines user-supplied
// doublestar patterns with, optionally, the root .gitignore. A Matcher built
// from zero options ignores nothing.
// Thread-safe: Reload() acquires a write lock, ShouldIgnore()/ShouldIgnoreDir() acquire a read lock.
type Matcher struct {
	mu             sync.RWMutex
	rootDir        string
	useGitignore   bool
	gitIgnore      gitignore.GitIgnore
	customPatterns []string
}

// MatcherOptions configures the ignore matcher.
type MatcherOptions struct {
	RootDir        string
	CustomPatterns []string
	UseGitignore   bool
}

// NewMatcher validates the custom patterns and loads .gitignore when asked to.
func NewMatcher(options MatcherOptions) (*Matcher, error) {
	patterns := make([]string, 0, len(options.CustomPatterns))
	for _, pattern := range options.CustomPatterns {
		pattern = filepath.ToSlash(strings.TrimSpace(pattern))
		if pattern == "" {
			continue
		}
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
		patterns = append(patterns, pattern)
	}

	matcher := &Matcher{
		rootDir:        options.RootDir,
		useGitignore:   options.UseGitignore,
		customPatterns: patterns,
	}
	if matcher.useGitignore {
		matcher.gitIgnore = loadIgnoreFile(filepath.Join(options.RootDir, ".gitignore"), options.RootDir)
	}
	return matcher, nil
}

// ShouldIgnore returns true if the file at absolutePath should not be discovered.
func (m *Matcher) ShouldIgnore(absolutePath string) bool {
	return m.match(absolutePath, false)
}

// ShouldIgnoreDir returns true if a directory should be skipped entirely during traversal.
// The root itself is never ignored.
func (m *Matcher) ShouldIgnoreDir(absolutePath string) bool {
	if filepath.Clean(absolutePath) == filepath.Clean(m.rootDir) {
		return false
	}
	return m.match(absolutePath, true)
}

func (m *Matcher) match(absolutePath string, isDir bool) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if len(m.customPatterns) == 0 && m.gitIgnore == nil {
		return false
	}

	relativePath, err := filepath.Rel(m.rootDir, absolutePath)
	if err != nil {
		relativePath = absolutePath
	}
	relativePath = filepath.ToSlash(relativePath)

	if m.gitIgnore != nil {
		if match := m.gitIgnore.Relative(relativePath, isDir); match != nil && match.Ignore() {
			return true
		}
	}

	return m.matchesCustomPatterns(relativePath)
}

// matchesCustomPatterns checks the relative path, then its base name, against every -exclude pattern.
func (m *Matcher) matchesCustomPatterns(relativePath string) bool {
	baseName := pathBase(relativePath)
	for _, pattern := range m.customPatterns {
		if matched, err := doublestar.Match(pattern, relativePath); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, baseName); err == nil && matched {
			return true
		}
	}
	return false
}

// Reload re-reads the root .gitignore. It is a no-op when .gitignore support is off.
func (m *Matcher) Reload() {
	if !m.useGitignore {
		return
	}
	newGitIgnore := loadIgnoreFile(filepath.Join(m.rootDir, ".gitignore"), m.rootDir)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.gitIgnore = newGitIgnore
}

// loadIgnoreFile returns nil when the file is missing or unreadable.
func loadIgnoreFile(filePath string, baseDir string) gitignore.GitIgnore {
	f, err := os.Open(filePath)
	if err != nil {
		return nil
	}
	defer f.Close()

	return gitignore.New(f, baseDir, nil)
}

func pathBase(slashPath string) string {
	if i := strings.LastIndexByte(slashPath, '/'); i >= 0 {
		return slashPath[i+1:]
	}
	return slashPath
}
