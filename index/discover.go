package index

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lexandro/classindex/language"
)

// ErrNotDirectory is returned by Discover when the root is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// IgnoreChecker is consulted during discovery to prune paths.
type IgnoreChecker interface {
	ShouldIgnoreDir(absolutePath string) bool
	ShouldIgnore(absolutePath string) bool
}

// Discover walks root and calls visit once for every file whose name carries
// the source's suffix, in lexical walk order. A missing or non-directory root
// and any error met while walking abort the walk; so does an error from visit.
// checker may be nil.
func Discover(root string, source *language.Source, checker IgnoreChecker, visit func(path string) error) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("reading root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}

	// WalkDir does not descend into a symlinked root; a trailing separator
	// makes its initial Lstat resolve the link.
	walkRoot := root
	if linfo, err := os.Lstat(root); err == nil && linfo.Mode()&fs.ModeSymlink != 0 {
		walkRoot = root + string(filepath.Separator)
	}

	return filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walking %s: %w", path, err)
		}
		if d.IsDir() {
			if checker != nil && checker.ShouldIgnoreDir(path) {
				return filepath.SkipDir
			}
			return nil
		}
		if !source.Matches(d.Name()) || !isSourceFile(path, d) {
			return nil
		}
		if checker != nil && checker.ShouldIgnore(path) {
			return nil
		}
		return visit(path)
	})
}

// isSourceFile accepts regular files and symlinks that do not resolve to a
// directory. Dangling links are accepted so the read failure gets reported.
func isSourceFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	target, err := os.Stat(path)
	if err != nil {
		return true
	}
	return target.Mode().IsRegular()
}
