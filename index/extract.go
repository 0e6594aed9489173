package index

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"unicode/utf8"

	"github.com/lexandro/classindex/language"
)

// ErrInvalidUTF8 is returned for a line that does not decode as UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// Extractor applies a language's package and type rules to source files.
type Extractor struct {
	source *language.Source
}

// NewExtractor creates an extractor for the given language.
func NewExtractor(source *language.Source) *Extractor {
	return &Extractor{source: source}
}

// Source returns the language the extractor applies.
func (e *Extractor) Source() *language.Source {
	return e.source
}

// ScanFile opens path and scans it. On any error the result is empty.
func (e *Extractor) ScanFile(path string) (ScanResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ScanResult{}, err
	}
	defer f.Close()

	return e.Scan(f)
}

// Scan reads r line by line and keeps the first package match and the first
// type match. Reading stops as soon as both are known, so nothing past that
// point is read or validated. On any error the result is empty.
func (e *Extractor) Scan(r io.Reader) (ScanResult, error) {
	// Lines have no length limit; the buffer grows to fit the longest one read.
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), math.MaxInt)
	scanner.Split(scanUniversalLines)

	var result ScanResult
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Bytes()
		if !utf8.Valid(line) {
			return ScanResult{}, fmt.Errorf("line %d: %w", lineNumber, ErrInvalidUTF8)
		}
		text := string(line)

		if result.Package == "" {
			if pkg, ok := e.source.MatchPackage(text); ok {
				result.Package = pkg
			}
		}
		if result.TypeName == "" {
			if name, ok := e.source.MatchType(text); ok {
				result.TypeName = name
			}
		}
		if result.Package != "" && result.TypeName != "" {
			return result, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return ScanResult{}, fmt.Errorf("line %d: %w", lineNumber+1, err)
	}
	return result, nil
}

// scanUniversalLines is a bufio.SplitFunc that ends lines at "\n", "\r\n" or
// a lone "\r". Terminators are not part of the token.
func scanUniversalLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	i := bytes.IndexAny(data, "\r\n")
	if i < 0 {
		if atEOF {
			return len(data), data, nil
		}
		return 0, nil, nil
	}
	if data[i] == '\n' {
		return i + 1, data[:i], nil
	}
	if i+1 < len(data) {
		if data[i+1] == '\n' {
			return i + 2, data[:i], nil
		}
		return i + 1, data[:i], nil
	}
	if !atEOF {
		// A trailing '\r' may be the first half of "\r\n".
		return 0, nil, nil
	}
	return i + 1, data[:i], nil
}
