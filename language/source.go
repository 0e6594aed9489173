package language

import (
	"regexp"
	"strings"
)

// Pattern fragments shared by the declaration rules. Whitespace covers the
// Unicode separators as well as ASCII blanks, and identifiers accept any
// Unicode letter or digit plus underscore.
const (
	whitespace = `[\s\v\p{Z}\x{85}\x{1c}-\x{1f}]`
	identifier = `[\p{L}\p{N}_]+`
)

// Source describes one source language: which files belong to it and the two
// line-anchored rules that pull out the namespace and the primary public type.
// Both rules capture their value in group 1.
type Source struct {
	Name    string
	Suffix  string
	Package *regexp.Regexp
	Type    *regexp.Regexp
}

// Java matches `package a.b.c;` and `public class|interface|enum|record Name`
// at the start of a line. Anything else, including annotations or modifiers
// in between, is deliberately not recognised.
var Java = &Source{
	Name:   "Java",
	Suffix: ".java",
	Package: regexp.MustCompile(
		`^` + whitespace + `*package` + whitespace + `+(` + identifier + `(?:\.` + identifier + `)*)` + whitespace + `*;`,
	),
	Type: regexp.MustCompile(
		`^` + whitespace + `*public` + whitespace + `+(?:class|interface|enum|record)` + whitespace + `+(` + identifier + `)`,
	),
}

// Matches reports whether a file name carries this language's suffix.
// The comparison is case-sensitive.
func (s *Source) Matches(fileName string) bool {
	return strings.HasSuffix(fileName, s.Suffix)
}

// MatchPackage returns the namespace declared on line, if any.
func (s *Source) MatchPackage(line string) (string, bool) {
	return firstGroup(s.Package, line)
}

// MatchType returns the public type name declared on line, if any.
func (s *Source) MatchType(line string) (string, bool) {
	return firstGroup(s.Type, line)
}

func firstGroup(re *regexp.Regexp, line string) (string, bool) {
	m := re.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}
