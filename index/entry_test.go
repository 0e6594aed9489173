package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_ScanResult_Entry(t *testing.T) {
	entry, ok := ScanResult{Package: "com.example.util", TypeName: "Helper"}.Entry("/src/Helper.java")
	assert.True(t, ok)
	assert.Equal(t, Entry{FullyQualifiedName: "com.example.util.Helper", FilePath: "/src/Helper.java"}, entry)

	entry, ok = ScanResult{TypeName: "Listener"}.Entry("/src/Listener.java")
	assert.True(t, ok)
	assert.Equal(t, "Listener", entry.FullyQualifiedName)

	_, ok = ScanResult{Package: "com.example"}.Entry("/src/package-info.java")
	assert.False(t, ok)

	_, ok = ScanResult{}.Entry("/src/Empty.java")
	assert.False(t, ok)
}

func Test_SimpleName(t *testing.T) {
	assert.Equal(t, "Helper", SimpleName("com.example.util.Helper"))
	assert.Equal(t, "Listener", SimpleName("Listener"))
	assert.Equal(t, "", SimpleName(""))
}
