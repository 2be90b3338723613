package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// renderModal draws card centered over base, keeping the base visible around it.
// base is clipped or padded to width x height first.
func renderModal(base, card string, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	canvas := padLines(base, width, height)
	framed := strings.Split(modalStyle.MaxWidth(width).Render(card), "\n")
	if len(framed) > height {
		framed = framed[:height]
	}
	cardWidth := 0
	for _, l := range framed {
		cardWidth = max(cardWidth, ansi.StringWidth(l))
	}
	x := max(0, (width-cardWidth)/2)
	y := max(0, (height-len(framed))/2)
	for i, line := range framed {
		row := y + i
		if row >= len(canvas) {
			break
		}
		canvas[row] = splice(canvas[row], line, x, cardWidth, width)
	}
	return strings.Join(canvas, "\n")
}

// splice replaces columns [x, x+w) of target with overlay.
func splice(target, overlay string, x, w, width int) string {
	left := ansi.Truncate(target, x, "")
	if lw := ansi.StringWidth(left); lw < x {
		left += strings.Repeat(" ", x-lw)
	}
	mid := fitWidth(overlay, w)
	right := ""
	if end := x + w; end < width {
		right = ansi.TruncateLeft(target, end, "")
	}
	return fitWidth(left+mid+right, width)
}

func padLines(s string, width, height int) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = fitWidth(lines[i], width)
	}
	return lines
}

func fitWidth(s string, width int) string {
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}
