package inventory

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestScan_ExtensionFilter(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.jar", "content a")
	writeFile(t, dir, "b.jar", "content b")
	writeFile(t, dir, "c.txt", "not a plugin")
	writeFile(t, dir, "README.md", "docs")

	result, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, result.Artifacts, 2)
	assert.Equal(t, "a.jar", result.Artifacts[0].Filename)
	assert.Equal(t, "b.jar", result.Artifacts[1].Filename)
	assert.Empty(t, result.Skipped)
}

func TestScan_MissingDirectory(t *testing.T) {
	result, err := Scan(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Empty(t, result.Artifacts)
	assert.Empty(t, result.Skipped)
}

func TestScan_EmptyDirectory(t *testing.T) {
	result, err := Scan(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, result.Artifacts)
}

func TestScan_DuplicateContentRetained(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "copy-1.jar", "identical bytes")
	writeFile(t, dir, "copy-2.jar", "identical bytes")

	result, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, result.Artifacts, 2)
	assert.Equal(t, result.Artifacts[0].Hash, result.Artifacts[1].Hash)
	assert.NotEqual(t, result.Artifacts[0].Filename, result.Artifacts[1].Filename)
}

func TestScan_SubdirectoriesIgnored(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "top.jar", "top")
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	writeFile(t, sub, "nested.jar", "nested")

	result, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, result.Artifacts, 1)
	assert.Equal(t, "top.jar", result.Artifacts[0].Filename)
}

func TestScan_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "plain.jar", "bytes")

	_, err := Scan(filepath.Join(dir, "plain.jar"))
	require.Error(t, err)
	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Contains(t, ioErr.Filename, "plain.jar")
}

func TestScan_UnreadableFileSkippedAndReported(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits not enforced on windows")
	}
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission bits not enforced")
	}

	dir := t.TempDir()
	writeFile(t, dir, "good.jar", "readable")
	writeFile(t, dir, "bad.jar", "unreadable")
	require.NoError(t, os.Chmod(filepath.Join(dir, "bad.jar"), 0o000))

	result, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, result.Artifacts, 1)
	assert.Equal(t, "good.jar", result.Artifacts[0].Filename)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "bad.jar", result.Skipped[0].Filename)
	assert.Contains(t, result.Skipped[0].Error(), "bad.jar")
}
