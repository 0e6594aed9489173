package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClassIndex(t *testing.T) *ClassIndex {
	t.Helper()
	ci, err := NewClassIndex()
	require.NoError(t, err)
	t.Cleanup(func() { ci.Close() })

	require.NoError(t, ci.Replace("/project", []Entry{
		{FullyQualifiedName: "com.example.util.Helper", FilePath: "/project/src/com/example/util/Helper.java"},
		{FullyQualifiedName: "com.example.util.HelperImpl", FilePath: "/project/src/com/example/util/HelperImpl.java"},
		{FullyQualifiedName: "Listener", FilePath: "/project/Listener.java"},
		{FullyQualifiedName: "a.Foo", FilePath: "/project/a/Foo.java"},
		{FullyQualifiedName: "b.Foo", FilePath: "/project/b/Foo.java"},
		{FullyQualifiedName: "a.Foo", FilePath: "/project/copy/a/Foo.java"},
	}))
	return ci
}

func names(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.FullyQualifiedName)
	}
	return out
}

func Test_ClassIndex_Empty(t *testing.T) {
	ci, err := NewClassIndex()
	require.NoError(t, err)
	defer ci.Close()

	results, err := ci.Lookup("Anything", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, 0, ci.Count())
}

func Test_ClassIndex_LookupSimpleName(t *testing.T) {
	ci := newTestClassIndex(t)

	results, err := ci.Lookup("Foo", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.Foo", "b.Foo", "a.Foo"}, names(results))
	assert.Equal(t, "/project/copy/a/Foo.java", results[2].FilePath)
}

func Test_ClassIndex_LookupExactFullyQualifiedName(t *testing.T) {
	ci := newTestClassIndex(t)

	results, err := ci.Lookup("b.Foo", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.Foo"}, names(results))
}

func Test_ClassIndex_LookupPrefixRanksExactFirst(t *testing.T) {
	ci := newTestClassIndex(t)

	results, err := ci.Lookup("Helper", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "com.example.util.Helper", results[0].FullyQualifiedName)
	assert.Equal(t, "com.example.util.HelperImpl", results[1].FullyQualifiedName)
}

func Test_ClassIndex_LookupWildcard(t *testing.T) {
	ci := newTestClassIndex(t)

	results, err := ci.Lookup("com.example.*", 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"com.example.util.Helper", "com.example.util.HelperImpl"}, names(results))
}

func Test_ClassIndex_LookupRegexp(t *testing.T) {
	ci := newTestClassIndex(t)

	results, err := ci.Lookup(`/[ab]\.Fo+/`, 10)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.Foo", "b.Foo", "a.Foo"}, names(results))
}

func Test_ClassIndex_LookupMaxResults(t *testing.T) {
	ci := newTestClassIndex(t)

	results, err := ci.Lookup("Foo", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func Test_ClassIndex_LookupEmptyQuery(t *testing.T) {
	ci := newTestClassIndex(t)

	_, err := ci.Lookup("   ", 10)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func Test_ClassIndex_SearchByPathGlob(t *testing.T) {
	ci := newTestClassIndex(t)

	results, err := ci.SearchByPathGlob("src/**/*.java", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"com.example.util.Helper", "com.example.util.HelperImpl"}, names(results))

	results, err = ci.SearchByPathGlob("**/a/Foo.java", 10)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	_, err = ci.SearchByPathGlob("[bad", 10)
	assert.Error(t, err)
}

func Test_ClassIndex_Duplicates(t *testing.T) {
	ci := newTestClassIndex(t)

	assert.Equal(t, map[string][]string{
		"a.Foo": {"/project/a/Foo.java", "/project/copy/a/Foo.java"},
	}, ci.Duplicates())
}

func Test_ClassIndex_ReplaceDropsOldEntries(t *testing.T) {
	ci := newTestClassIndex(t)

	require.NoError(t, ci.Replace("/other", []Entry{{FullyQualifiedName: "x.Only", FilePath: "/other/Only.java"}}))

	assert.Equal(t, 1, ci.Count())
	assert.Equal(t, uint64(1), ci.DocumentCount())
	results, err := ci.Lookup("Foo", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}
