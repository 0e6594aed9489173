package tools

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/lexandro/classindex/index"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestClassIndex(t *testing.T) *index.ClassIndex {
	t.Helper()
	ci, err := index.NewClassIndex()
	require.NoError(t, err)
	t.Cleanup(func() { ci.Close() })

	require.NoError(t, ci.Replace("/project", []index.Entry{
		{FullyQualifiedName: "com.example.util.Helper", FilePath: "/project/src/com/example/util/Helper.java"},
		{FullyQualifiedName: "Listener", FilePath: "/project/Listener.java"},
		{FullyQualifiedName: "a.Foo", FilePath: "/project/a/Foo.java"},
		{FullyQualifiedName: "a.Foo", FilePath: "/project/copy/Foo.java"},
	}))
	return ci
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

// --- LookupHandler ---

func Test_LookupHandler_EmptyQuery(t *testing.T) {
	h := &LookupHandler{ClassIndex: newTestClassIndex(t), Logger: testLogger()}

	result, _, err := h.Handle(context.Background(), nil, LookupArgs{})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "query parameter is required")
}

func Test_LookupHandler_Found(t *testing.T) {
	h := &LookupHandler{ClassIndex: newTestClassIndex(t), RootDir: "/project", Logger: testLogger()}

	result, _, err := h.Handle(context.Background(), nil, LookupArgs{Query: "Helper"})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "Found 1 classes")
	assert.Contains(t, text, "com.example.util.Helper")
	assert.Contains(t, text, "src/com/example/util/Helper.java")
}

func Test_LookupHandler_NoMatch(t *testing.T) {
	h := &LookupHandler{ClassIndex: newTestClassIndex(t), Logger: testLogger()}

	result, _, err := h.Handle(context.Background(), nil, LookupArgs{Query: "Nothing"})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "No classes matched.", resultText(t, result))
}

func Test_LookupHandler_BadRegexp(t *testing.T) {
	h := &LookupHandler{ClassIndex: newTestClassIndex(t), Logger: testLogger()}

	result, _, err := h.Handle(context.Background(), nil, LookupArgs{Query: "/(unclosed/"})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "Lookup error")
}

// --- FilesHandler ---

func Test_FilesHandler_EmptyPattern(t *testing.T) {
	h := &FilesHandler{ClassIndex: newTestClassIndex(t), Logger: testLogger()}

	result, _, err := h.Handle(context.Background(), nil, FilesArgs{})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "pattern parameter is required")
}

func Test_FilesHandler_GlobSearch(t *testing.T) {
	h := &FilesHandler{ClassIndex: newTestClassIndex(t), RootDir: "/project", Logger: testLogger()}

	result, _, err := h.Handle(context.Background(), nil, FilesArgs{Pattern: "src/**/*.java"})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	text := resultText(t, result)
	assert.Contains(t, text, "Found 1 classes")
	assert.Contains(t, text, "com.example.util.Helper")
	assert.NotContains(t, text, "Listener")
}

func Test_FilesHandler_InvalidPattern(t *testing.T) {
	h := &FilesHandler{ClassIndex: newTestClassIndex(t), Logger: testLogger()}

	result, _, err := h.Handle(context.Background(), nil, FilesArgs{Pattern: "[bad"})
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

// --- StatusHandler ---

func Test_StatusHandler_Handle(t *testing.T) {
	h := &StatusHandler{
		ClassIndex: newTestClassIndex(t),
		StartTime:  time.Now(),
		RootDir:    "/project",
		OutputPath: "/project/class_index.csv",
		Logger:     testLogger(),
	}

	result, _, err := h.Handle(context.Background(), nil, StatusArgs{})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	text := resultText(t, result)
	for _, check := range []string{
		"classindex Status",
		"Root directory: /project",
		"Index file: /project/class_index.csv",
		"Indexed classes: 4",
		"Search documents: 4",
		"Duplicate class names: 1",
		"copy/Foo.java",
	} {
		assert.Contains(t, text, check)
	}
}

// --- ReindexHandler ---

func Test_ReindexHandler_Success(t *testing.T) {
	h := &ReindexHandler{
		DoReindex: func() (int, string, string, error) {
			return 42, "/project/class_index.csv", "1.5s", nil
		},
		Logger: testLogger(),
	}

	result, _, err := h.Handle(context.Background(), nil, ReindexArgs{})
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "Reindex complete: 42 classes written to /project/class_index.csv in 1.5s", resultText(t, result))
}

func Test_ReindexHandler_Error(t *testing.T) {
	h := &ReindexHandler{
		DoReindex: func() (int, string, string, error) {
			return 0, "", "", errors.New("permission denied")
		},
		Logger: testLogger(),
	}

	result, _, err := h.Handle(context.Background(), nil, ReindexArgs{})
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "permission denied")
}
