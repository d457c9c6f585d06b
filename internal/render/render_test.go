package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTable_Alignment(t *testing.T) {
	var buf bytes.Buffer
	Table(&buf, []string{"Package", "Version"}, [][]string{
		{"essentialsx", "2.21.2"},
		{"worldedit", "7.3.0"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Package"))
	assert.True(t, strings.HasPrefix(lines[1], "-------"))
	// Version column starts at the same offset in every row.
	offset := strings.Index(lines[2], "2.21.2")
	assert.Equal(t, offset, strings.Index(lines[3], "7.3.0"))
}

func TestTable_WideRunes(t *testing.T) {
	var buf bytes.Buffer
	Table(&buf, []string{"Name", "Downloads"}, [][]string{
		{"日本語プラグイン", "100"},
		{"short", "2"},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, strings.Index(lines[2], "100"), strings.Index(lines[3], "2"))
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 50, "short"},
		{strings.Repeat("a", 60), 50, strings.Repeat("a", 47) + "..."},
		{"exactly-ten", 50, "exactly-ten"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Truncate(tt.in, tt.max))
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KiB"},
		{3 * 1024 * 1024, "3.0 MiB"},
		{int64(5) * 1024 * 1024 * 1024, "5.0 GiB"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBytes(tt.in))
	}
}

func TestBar_Disabled(t *testing.T) {
	var buf bytes.Buffer
	bar := NewBar(&buf, false)
	bar.Update("plugin.jar", 50, 100)
	bar.Finish()
	assert.Empty(t, buf.String())
}

func TestBar_KnownTotal(t *testing.T) {
	var buf bytes.Buffer
	bar := NewBar(&buf, true)
	bar.Update("plugin.jar", 50, 100)
	out := buf.String()
	assert.Contains(t, out, "plugin.jar")
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "#")

	bar.Finish()
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}

func TestBar_UnknownTotal(t *testing.T) {
	var buf bytes.Buffer
	bar := NewBar(&buf, true)
	bar.Update("plugin.jar", 2048, -1)
	assert.Contains(t, buf.String(), "2.0 KiB")
	assert.NotContains(t, buf.String(), "%")
}
