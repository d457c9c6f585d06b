package render

import (
	"fmt"
	"io"
	"strings"
)

const barWidth = 30

// Bar renders an in-place download progress bar. It degrades to a byte
// counter when the total size is unknown.
type Bar struct {
	w       io.Writer
	enabled bool
	started bool
}

// NewBar creates a progress bar. When enabled is false (non-TTY, JSON logs)
// all updates are silent.
func NewBar(w io.Writer, enabled bool) *Bar {
	return &Bar{w: w, enabled: enabled}
}

// Update redraws the bar for the named file. Safe to call on every chunk.
func (b *Bar) Update(filename string, written, total int64) {
	if !b.enabled {
		return
	}
	b.started = true

	if total <= 0 {
		fmt.Fprintf(b.w, "\r%s  %s", filename, FormatBytes(written))
		return
	}

	ratio := float64(written) / float64(total)
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio * barWidth)
	bar := strings.Repeat("#", filled) + strings.Repeat("-", barWidth-filled)
	fmt.Fprintf(b.w, "\r%s  [%s] %5.1f%%  %s / %s",
		filename, bar, ratio*100, FormatBytes(written), FormatBytes(total))
}

// Finish terminates the current line, if anything was drawn.
func (b *Bar) Finish() {
	if b.enabled && b.started {
		fmt.Fprintln(b.w)
		b.started = false
	}
}
