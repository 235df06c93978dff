package overlay

import (
	"bytes"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/ansi"
	"github.com/muesli/reflow/truncate"
)

// String-space compositing: a foreground block is spliced into the
// background line by line. The background's ANSI state is carried across
// the splice so styles re-open correctly on the right side.

var shadowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#333333"))

// getLines splits s into lines and reports the widest printable width.
func getLines(s string) (lines []string, widest int) {
	lines = strings.Split(s, "\n")
	for _, l := range lines {
		w := ansi.PrintableRuneWidth(l)
		if w > widest {
			widest = w
		}
	}
	return lines, widest
}

// PlaceOverlay draws fg over bg with fg's top-left cell at (x, y). The
// origin is clamped so fg stays inside bg. A foreground at least as large
// as the background in both dimensions replaces it outright.
func PlaceOverlay(x, y int, fg, bg string, shadow bool) string {
	if shadow {
		fg = withShadow(fg)
	}
	fgLines, fgWidth := getLines(fg)
	bgLines, bgWidth := getLines(bg)
	fgHeight := len(fgLines)
	bgHeight := len(bgLines)

	if fgWidth >= bgWidth && fgHeight >= bgHeight {
		return fg
	}

	x = clamp(x, 0, bgWidth-fgWidth)
	y = clamp(y, 0, bgHeight-fgHeight)

	var b strings.Builder
	for i, bgLine := range bgLines {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i < y || i >= y+fgHeight {
			b.WriteString(bgLine)
			continue
		}

		pos := 0
		if x > 0 {
			left := truncate.String(bgLine, uint(x))
			pos = ansi.PrintableRuneWidth(left)
			b.WriteString(left)
			if pos < x {
				b.WriteString(strings.Repeat(" ", x-pos))
				pos = x
			}
		}

		fgLine := fgLines[i-y]
		b.WriteString(fgLine)
		pos += ansi.PrintableRuneWidth(fgLine)

		right := cutLeft(bgLine, pos)
		lineWidth := ansi.PrintableRuneWidth(bgLine)
		rightWidth := ansi.PrintableRuneWidth(right)
		if rightWidth <= lineWidth-pos {
			b.WriteString(strings.Repeat(" ", lineWidth-rightWidth-pos))
		}
		b.WriteString(right)
	}
	return b.String()
}

// PlaceCentered draws fg centered over bg.
func PlaceCentered(fg, bg string, shadow bool) string {
	if shadow {
		fg = withShadow(fg)
	}
	fgLines, fgWidth := getLines(fg)
	bgLines, bgWidth := getLines(bg)
	x := (bgWidth - fgWidth) / 2
	y := (len(bgLines) - len(fgLines)) / 2
	return PlaceOverlay(x, y, fg, bg, false)
}

// withShadow composites fg onto a shade field offset one cell down-right.
func withShadow(fg string) string {
	lines, width := getLines(fg)
	shade := shadowStyle.Render(strings.Repeat("░", width))
	var bg strings.Builder
	bg.WriteString(strings.Repeat(" ", width+1))
	for range lines {
		bg.WriteByte('\n')
		bg.WriteByte(' ')
		bg.WriteString(shade)
	}
	return PlaceOverlay(0, 0, fg, bg.String(), false)
}

// cutLeft drops the first cutWidth printable columns of s. ANSI sequences
// left of the cut are folded into a carried style prefix (dropped again
// when a reset closes them) so the remainder re-opens styled; sequences
// right of the cut pass through. A wide rune straddling the cut
// contributes its right half as a plain space, keeping the remainder's
// printable width exactly the line width minus the cut.
func cutLeft(s string, cutWidth int) string {
	if cutWidth <= 0 {
		return s
	}
	var (
		pos     int
		inSeq   bool
		pending bytes.Buffer
		out     bytes.Buffer
	)
	for _, r := range s {
		if r == ansi.Marker || inSeq {
			inSeq = true
			if out.Len() == 0 {
				pending.WriteRune(r)
				if ansi.IsTerminator(r) {
					inSeq = false
					if bytes.HasSuffix(pending.Bytes(), []byte("[0m")) {
						pending.Reset()
					}
				}
			} else {
				out.WriteRune(r)
				if ansi.IsTerminator(r) {
					inSeq = false
				}
			}
			continue
		}
		w := runewidth.RuneWidth(r)
		switch {
		case pos+w <= cutWidth:
			// Fully left of the cut.
		case pos >= cutWidth:
			if out.Len() == 0 {
				out.Write(pending.Bytes())
			}
			out.WriteRune(r)
		default:
			if out.Len() == 0 {
				out.Write(pending.Bytes())
			}
			out.WriteByte(' ')
		}
		pos += w
	}
	return out.String()
}

func clamp(v, lower, upper int) int {
	return min(max(v, lower), upper)
}
