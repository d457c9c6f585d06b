// Package render draws width-aligned tables and download progress for the
// CLI. Multi-width runes in plugin titles and descriptions are accounted for
// so columns stay aligned.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
)

const columnGap = 2

// Table writes rows under headers with columns padded to their widest cell.
func Table(w io.Writer, headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	writeRow := func(cells []string) {
		var b strings.Builder
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			b.WriteString(cell)
			if i < len(cells)-1 {
				fill := widths[i] - runewidth.StringWidth(cell) + columnGap
				b.WriteString(strings.Repeat(" ", fill))
			}
		}
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}

	writeRow(headers)
	underline := make([]string, len(headers))
	for i, h := range headers {
		underline[i] = strings.Repeat("-", runewidth.StringWidth(h))
	}
	writeRow(underline)
	for _, row := range rows {
		writeRow(row)
	}
}

// Truncate shortens s to at most max display cells, appending "..." when it
// had to cut.
func Truncate(s string, max int) string {
	if runewidth.StringWidth(s) <= max {
		return s
	}
	return runewidth.Truncate(s, max, "...")
}

// FormatBytes renders a byte count in human units.
func FormatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGT"[exp])
}
