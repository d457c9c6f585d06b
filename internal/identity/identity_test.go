package identity

import (
	"bytes"
	"crypto/rand"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chunkedReader yields at most n bytes per Read to exercise streaming.
type chunkedReader struct {
	r io.Reader
	n int
}

func (c *chunkedReader) Read(p []byte) (int, error) {
	if len(p) > c.n {
		p = p[:c.n]
	}
	return c.r.Read(p)
}

func TestCompute_Deterministic(t *testing.T) {
	content := []byte("plugin bytes")

	first, err := Compute(bytes.NewReader(content))
	require.NoError(t, err)
	second, err := Compute(bytes.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, first, 128) // hex-encoded sha512
}

func TestCompute_ChunkSizeIndependent(t *testing.T) {
	content := make([]byte, 64*1024+17)
	_, err := rand.Read(content)
	require.NoError(t, err)

	whole, err := Compute(bytes.NewReader(content))
	require.NoError(t, err)

	for _, chunk := range []int{1, 7, 512, 8192} {
		chunked, err := Compute(&chunkedReader{r: bytes.NewReader(content), n: chunk})
		require.NoError(t, err)
		assert.Equal(t, whole, chunked, "chunk size %d changed the digest", chunk)
	}
}

func TestCompute_ContentOnly(t *testing.T) {
	a, err := Compute(bytes.NewReader([]byte("same")))
	require.NoError(t, err)
	b, err := Compute(bytes.NewReader([]byte("same")))
	require.NoError(t, err)
	c, err := Compute(bytes.NewReader([]byte("different")))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
}

func TestComputeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plugin.jar")
	require.NoError(t, os.WriteFile(path, []byte("jar content"), 0o644))

	fromFile, err := ComputeFile(path)
	require.NoError(t, err)
	fromBytes, err := Compute(bytes.NewReader([]byte("jar content")))
	require.NoError(t, err)

	assert.Equal(t, fromBytes, fromFile)
}

func TestComputeFile_Missing(t *testing.T) {
	_, err := ComputeFile(filepath.Join(t.TempDir(), "absent.jar"))
	assert.Error(t, err)
}
