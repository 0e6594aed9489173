// Package index turns a source tree into a flat class index: discovery of
// source files, per-file extraction of the package and primary public type,
// the two-column CSV artifact, and an in-memory lookup index over it.
package index

import "strings"

// OutputFileName is the name of the index file written inside the scanned root.
const OutputFileName = "class_index.csv"

// Entry is one row of the class index.
type Entry struct {
	FullyQualifiedName string // package + "." + type, or the bare type name
	FilePath           string // absolute path of the declaring file
}

// ScanResult holds what the extractor found in a single file.
// An empty field means the declaration was not found.
type ScanResult struct {
	Package  string
	TypeName string
}

// Entry builds the index entry for the file at path. ok is false when no
// public type was found; such files contribute nothing to the index.
func (r ScanResult) Entry(path string) (Entry, bool) {
	if r.TypeName == "" {
		return Entry{}, false
	}
	return Entry{
		FullyQualifiedName: FullyQualifiedName(r.Package, r.TypeName),
		FilePath:           path,
	}, true
}

// FullyQualifiedName joins a package and a simple type name. A file in the
// default package is keyed by its simple name alone.
func FullyQualifiedName(pkg, typeName string) string {
	if pkg == "" {
		return typeName
	}
	return pkg + "." + typeName
}

// SimpleName returns the last dotted segment of a fully-qualified name.
func SimpleName(fullyQualifiedName string) string {
	return fullyQualifiedName[strings.LastIndexByte(fullyQualifiedName, '.')+1:]
}
