package index

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/bmatcuk/doublestar/v4"
)

// DefaultMaxResults caps lookups and glob searches when the caller passes 0.
const DefaultMaxResults = 50

// ErrEmptyQuery is returned by Lookup for a blank query.
var ErrEmptyQuery = errors.New("query is required")

// ClassIndex is an in-memory, searchable view of a class index.
// Entries keep their row order; Bleve only resolves queries to row numbers.
type ClassIndex struct {
	mu      sync.RWMutex
	index   bleve.Index
	rootDir string
	entries []Entry
}

// classDocument is the document structure stored in Bleve. All fields are
// keywords: names are matched whole, by prefix, wildcard or regexp.
type classDocument struct {
	Name   string `json:"name"`
	Simple string `json:"simple"`
}

// NewClassIndex creates an empty in-memory class index.
func NewClassIndex() (*ClassIndex, error) {
	bleveIndex, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("creating bleve index: %w", err)
	}
	return &ClassIndex{index: bleveIndex}, nil
}

func buildIndexMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	for _, field := range []string{"name", "simple"} {
		fieldMapping := bleve.NewKeywordFieldMapping()
		fieldMapping.Store = false
		fieldMapping.IncludeInAll = false
		docMapping.AddFieldMappingsAt(field, fieldMapping)
	}

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// docID zero-pads the row number so that sorting by _id keeps row order.
func docID(row int) string {
	return fmt.Sprintf("%09d", row)
}

// Replace swaps the whole content of the index. rootDir is used to relativize
// paths for glob searches.
func (ci *ClassIndex) Replace(rootDir string, entries []Entry) error {
	newIndex, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("creating bleve index: %w", err)
	}

	batch := newIndex.NewBatch()
	for row, entry := range entries {
		doc := classDocument{
			Name:   entry.FullyQualifiedName,
			Simple: SimpleName(entry.FullyQualifiedName),
		}
		if err := batch.Index(docID(row), doc); err != nil {
			newIndex.Close()
			return fmt.Errorf("indexing %s: %w", entry.FullyQualifiedName, err)
		}
	}
	if err := newIndex.Batch(batch); err != nil {
		newIndex.Close()
		return fmt.Errorf("indexing batch: %w", err)
	}

	ci.mu.Lock()
	defer ci.mu.Unlock()

	old := ci.index
	ci.index = newIndex
	ci.rootDir = rootDir
	ci.entries = append([]Entry(nil), entries...)
	if err := old.Close(); err != nil {
		return fmt.Errorf("closing old index: %w", err)
	}
	return nil
}

// Lookup finds classes by name.
// Query format:
//   - /regex/: regular expression over the whole fully-qualified name
//   - text with * or ?: wildcard over the fully-qualified name
//   - anything else: exact fully-qualified name, exact simple name, or simple name prefix
//
// Results are ordered by relevance, then by row order.
func (ci *ClassIndex) Lookup(queryString string, maxResults int) ([]Entry, error) {
	queryString = strings.TrimSpace(queryString)
	if queryString == "" {
		return nil, ErrEmptyQuery
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	ci.mu.RLock()
	defer ci.mu.RUnlock()

	searchRequest := bleve.NewSearchRequestOptions(buildQuery(queryString), maxResults, 0, false)
	searchRequest.SortBy([]string{"-_score", "_id"})

	searchResults, err := ci.index.Search(searchRequest)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	results := make([]Entry, 0, len(searchResults.Hits))
	for _, hit := range searchResults.Hits {
		row, err := strconv.Atoi(hit.ID)
		if err != nil || row < 0 || row >= len(ci.entries) {
			continue
		}
		results = append(results, ci.entries[row])
	}
	return results, nil
}

// buildQuery parses the query string into a Bleve query.
func buildQuery(queryString string) query.Query {
	if strings.HasPrefix(queryString, "/") && strings.HasSuffix(queryString, "/") && len(queryString) > 2 {
		regexpQuery := bleve.NewRegexpQuery(queryString[1 : len(queryString)-1])
		regexpQuery.SetField("name")
		return regexpQuery
	}

	if strings.ContainsAny(queryString, "*?") {
		wildcardQuery := bleve.NewWildcardQuery(queryString)
		wildcardQuery.SetField("name")
		return wildcardQuery
	}

	exactName := bleve.NewTermQuery(queryString)
	exactName.SetField("name")
	exactName.SetBoost(3)

	exactSimple := bleve.NewTermQuery(queryString)
	exactSimple.SetField("simple")
	exactSimple.SetBoost(2)

	simplePrefix := bleve.NewPrefixQuery(queryString)
	simplePrefix.SetField("simple")

	return bleve.NewDisjunctionQuery(exactName, exactSimple, simplePrefix)
}

// SearchByPathGlob returns entries whose path, relative to the root and with
// forward slashes, matches a doublestar pattern. Row order is kept.
func (ci *ClassIndex) SearchByPathGlob(pattern string, maxResults int) ([]Entry, error) {
	pattern = strings.ReplaceAll(pattern, "\\", "/")
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid glob pattern: %s", pattern)
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	ci.mu.RLock()
	defer ci.mu.RUnlock()

	var results []Entry
	for _, entry := range ci.entries {
		if len(results) >= maxResults {
			break
		}
		if matched, err := doublestar.Match(pattern, ci.relativePath(entry.FilePath)); err == nil && matched {
			results = append(results, entry)
		}
	}
	return results, nil
}

func (ci *ClassIndex) relativePath(path string) string {
	if ci.rootDir != "" {
		if rel, err := filepath.Rel(ci.rootDir, path); err == nil {
			path = rel
		}
	}
	return filepath.ToSlash(path)
}

// Count returns the number of entries.
func (ci *ClassIndex) Count() int {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	return len(ci.entries)
}

// Entries returns a copy of all entries in row order.
func (ci *ClassIndex) Entries() []Entry {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	return append([]Entry(nil), ci.entries...)
}

// Duplicates maps each fully-qualified name declared by more than one file
// to those files' paths, in row order.
func (ci *ClassIndex) Duplicates() map[string][]string {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	return FindDuplicates(ci.entries)
}

// FindDuplicates maps each repeated fully-qualified name to its paths.
func FindDuplicates(entries []Entry) map[string][]string {
	paths := make(map[string][]string)
	for _, entry := range entries {
		paths[entry.FullyQualifiedName] = append(paths[entry.FullyQualifiedName], entry.FilePath)
	}
	for name, p := range paths {
		if len(p) < 2 {
			delete(paths, name)
		}
	}
	return paths
}

// DocumentCount returns the number of documents in the Bleve index.
func (ci *ClassIndex) DocumentCount() uint64 {
	ci.mu.RLock()
	defer ci.mu.RUnlock()
	count, _ := ci.index.DocCount()
	return count
}

// Close closes the Bleve index.
func (ci *ClassIndex) Close() error {
	ci.mu.Lock()
	defer ci.mu.Unlock()
	return ci.index.Close()
}
