// Package textutil provides ANSI- and unicode-aware text utilities for TUI rendering.
package textutil

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// TruncateEllipsis is the unicode ellipsis character used for truncation.
const TruncateEllipsis = "…"

// VisualWidth returns the number of terminal columns a plain string occupies.
func VisualWidth(s string) int {
	return runewidth.StringWidth(s)
}

// VisualWidthStyled returns the visual width of a string that may contain ANSI
// escape codes.
func VisualWidthStyled(s string) int {
	return ansi.StringWidth(s)
}

// Truncate truncates s to fit within maxWidth visual columns, appending an
// ellipsis when anything was cut. Escape codes are preserved.
func Truncate(s string, maxWidth int) string {
	if maxWidth <= 0 {
		return ""
	}
	if VisualWidthStyled(s) <= maxWidth {
		return s
	}
	return ansi.Truncate(s, maxWidth, TruncateEllipsis)
}

// PadRightVisual pads a plain string with spaces to targetWidth visual columns.
// If the string is already wider than targetWidth, it's truncated.
func PadRightVisual(s string, targetWidth int) string {
	currentWidth := VisualWidth(s)
	if currentWidth >= targetWidth {
		return Truncate(s, targetWidth)
	}
	return s + runewidth.FillRight("", targetWidth-currentWidth)
}

// Splice composites two equally sized blocks column-wise: the first cols
// columns of every line come from upper and the rest from lower. Lines missing
// from either block count as empty.
func Splice(upper, lower string, cols int) string {
	if cols <= 0 {
		return lower
	}
	up := strings.Split(upper, "\n")
	low := strings.Split(lower, "\n")
	n := max(len(up), len(low))

	var b strings.Builder
	for i := range n {
		if i > 0 {
			b.WriteByte('\n')
		}
		var u, l string
		if i < len(up) {
			u = up[i]
		}
		if i < len(low) {
			l = low[i]
		}
		left := ansi.Truncate(u, cols, "")
		if w := ansi.StringWidth(left); w < cols {
			left += strings.Repeat(" ", cols-w)
		}
		b.WriteString(left)
		b.WriteString(ansi.TruncateLeft(l, cols, ""))
	}
	return b.String()
}
