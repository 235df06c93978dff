package colorsel

import "fmt"

// Palette is the minimal palette surface the selector edits. Entry 0 is by
// convention the mask entry.
type Palette interface {
	Len() int
	Get(i int) (r, g, b uint8)
	Set(i int, r, g, b uint8)
}

// TablePalette is a flat in-memory palette.
type TablePalette struct {
	entries [][3]uint8
}

func NewTablePalette(n int) *TablePalette {
	return &TablePalette{entries: make([][3]uint8, n)}
}

func (p *TablePalette) Len() int {
	return len(p.entries)
}

// Get returns entry i, or black when i is out of range.
func (p *TablePalette) Get(i int) (r, g, b uint8) {
	if i < 0 || i >= len(p.entries) {
		return 0, 0, 0
	}
	e := p.entries[i]
	return e[0], e[1], e[2]
}

// Set writes entry i. Out-of-range writes are dropped.
func (p *TablePalette) Set(i int, r, g, b uint8) {
	if i < 0 || i >= len(p.entries) {
		return
	}
	p.entries[i] = [3]uint8{r, g, b}
}

// DefaultPalette builds the 256-entry startup palette: the mask entry,
// a 6x6x6 color cube, and a gray ramp.
func DefaultPalette() *TablePalette {
	p := NewTablePalette(256)
	i := 1
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p.Set(i, uint8(r*51), uint8(g*51), uint8(b*51))
				i++
			}
		}
	}
	for g := 0; i < 256; g++ {
		v := uint8(g * 255 / 38)
		p.Set(i, v, v, v)
		i++
	}
	return p
}

// GrayPalette builds a 256-entry gray ramp.
func GrayPalette() *TablePalette {
	p := NewTablePalette(256)
	for i := 0; i < 256; i++ {
		v := uint8(i)
		p.Set(i, v, v, v)
	}
	return p
}

// PresetPalette returns a fresh copy of the named built-in palette.
func PresetPalette(name string) (*TablePalette, error) {
	switch name {
	case "", "default":
		return DefaultPalette(), nil
	case "gray", "grey":
		return GrayPalette(), nil
	}
	return nil, fmt.Errorf("unknown palette %q (have: default, gray)", name)
}

// CopyInto overwrites dst's entries with src's, up to the shorter length.
func CopyInto(dst, src Palette) {
	n := min(dst.Len(), src.Len())
	for i := 0; i < n; i++ {
		r, g, b := src.Get(i)
		dst.Set(i, r, g, b)
	}
}

// BestFit returns the index of the palette entry nearest to r,g,b by
// luminance-weighted distance. Entry 0 is the mask entry and is skipped,
// so a palette with fewer than two entries yields 0.
func BestFit(pal Palette, r, g, b uint8) int {
	best := 0
	bestDist := -1
	for i := 1; i < pal.Len(); i++ {
		er, eg, eb := pal.Get(i)
		d := colorDistance(r, g, b, er, eg, eb)
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
			if d == 0 {
				break
			}
		}
	}
	return best
}

func colorDistance(r1, g1, b1, r2, g2, b2 uint8) int {
	dr := int(r1) - int(r2)
	dg := int(g1) - int(g2)
	db := int(b1) - int(b2)
	return 30*dr*dr + 59*dg*dg + 11*db*db
}

// Luminance returns the perceptual luminance of an RGB value, 0-255.
func Luminance(r, g, b uint8) int {
	return (30*int(r) + 59*int(g) + 11*int(b)) / 100
}
