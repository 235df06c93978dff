package colorsel

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Model identifies the color model a value was authored in.
type Model int

const (
	ModelRGB Model = iota
	ModelHSV
	ModelGray
	ModelMask
	ModelIndex
)

func (m Model) String() string {
	switch m {
	case ModelHSV:
		return "HSV"
	case ModelGray:
		return "Gray"
	case ModelMask:
		return "Mask"
	case ModelIndex:
		return "Index"
	default:
		return "RGB"
	}
}

// ParseModel parses a model name as produced by Model.String.
func ParseModel(s string) (Model, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "rgb":
		return ModelRGB, nil
	case "hsv":
		return ModelHSV, nil
	case "gray", "grey":
		return ModelGray, nil
	case "mask":
		return ModelMask, nil
	case "index":
		return ModelIndex, nil
	}
	return ModelRGB, fmt.Errorf("unknown color model %q", s)
}

// Color is a model-tagged color value. Only the fields belonging to its
// model are meaningful: R/G/B for RGB, H/S/V for HSV, Gray for Gray,
// Index for Index. The mask color has no components.
type Color struct {
	Model Model
	R     uint8
	G     uint8
	B     uint8
	H     float64 // degrees, 0-360
	S     float64 // percent, 0-100
	V     float64 // percent, 0-100
	Gray  uint8
	Index int
}

func NewRGB(r, g, b uint8) Color {
	return Color{Model: ModelRGB, R: r, G: g, B: b}
}

func NewHSV(h, s, v float64) Color {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return Color{
		Model: ModelHSV,
		H:     h,
		S:     math.Min(math.Max(s, 0), 100),
		V:     math.Min(math.Max(v, 0), 100),
	}
}

func NewGray(v uint8) Color {
	return Color{Model: ModelGray, Gray: v}
}

func NewMask() Color {
	return Color{Model: ModelMask}
}

func NewIndex(i int) Color {
	return Color{Model: ModelIndex, Index: i}
}

// RGB resolves the color to 8-bit RGB. Index colors resolve through pal;
// the mask color and out-of-range indices resolve to black.
func (c Color) RGB(pal Palette) (r, g, b uint8) {
	switch c.Model {
	case ModelRGB:
		return c.R, c.G, c.B
	case ModelHSV:
		return colorful.Hsv(c.H, c.S/100, c.V/100).RGB255()
	case ModelGray:
		return c.Gray, c.Gray, c.Gray
	case ModelIndex:
		if pal != nil && c.Index >= 0 && c.Index < pal.Len() {
			return pal.Get(c.Index)
		}
		return 0, 0, 0
	default:
		return 0, 0, 0
	}
}

// HSV resolves the color to hue (degrees), saturation and value (percent).
func (c Color) HSV(pal Palette) (h, s, v float64) {
	if c.Model == ModelHSV {
		return c.H, c.S, c.V
	}
	r, g, b := c.RGB(pal)
	h, s, v = colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}.Hsv()
	return h, s * 100, v * 100
}

// Hex renders the resolved RGB value as "#rrggbb".
func (c Color) Hex(pal Palette) string {
	r, g, b := c.RGB(pal)
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// String renders the canonical textual form understood by ParseColor.
func (c Color) String() string {
	switch c.Model {
	case ModelRGB:
		return fmt.Sprintf("rgb{%d,%d,%d}", c.R, c.G, c.B)
	case ModelHSV:
		return fmt.Sprintf("hsv{%g,%g,%g}", c.H, c.S, c.V)
	case ModelGray:
		return fmt.Sprintf("gray{%d}", c.Gray)
	case ModelIndex:
		return fmt.Sprintf("index{%d}", c.Index)
	default:
		return "mask"
	}
}

// ParseColor parses the textual color forms: "mask", "#rgb", "#rrggbb",
// "rgb{r,g,b}", "hsv{h,s,v}", "gray{v}" and "index{n}".
func ParseColor(s string) (Color, error) {
	t := strings.ToLower(strings.TrimSpace(s))
	if t == "" {
		return Color{}, fmt.Errorf("empty color")
	}
	if t == "mask" {
		return NewMask(), nil
	}
	if strings.HasPrefix(t, "#") {
		return parseHex(t)
	}

	open := strings.IndexByte(t, '{')
	if open < 0 || !strings.HasSuffix(t, "}") {
		return Color{}, fmt.Errorf("bad color %q", s)
	}
	name := t[:open]
	fields := strings.Split(t[open+1:len(t)-1], ",")

	switch name {
	case "rgb":
		if len(fields) != 3 {
			return Color{}, fmt.Errorf("rgb color needs 3 components, got %d", len(fields))
		}
		r, err1 := parseByte(fields[0])
		g, err2 := parseByte(fields[1])
		b, err3 := parseByte(fields[2])
		if err := firstErr(err1, err2, err3); err != nil {
			return Color{}, fmt.Errorf("bad color %q: %w", s, err)
		}
		return NewRGB(r, g, b), nil
	case "hsv":
		if len(fields) != 3 {
			return Color{}, fmt.Errorf("hsv color needs 3 components, got %d", len(fields))
		}
		vals := make([]float64, 3)
		for i, f := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return Color{}, fmt.Errorf("bad color %q: %w", s, err)
			}
			vals[i] = v
		}
		return NewHSV(vals[0], vals[1], vals[2]), nil
	case "gray", "grey":
		if len(fields) != 1 {
			return Color{}, fmt.Errorf("gray color needs 1 component, got %d", len(fields))
		}
		v, err := parseByte(fields[0])
		if err != nil {
			return Color{}, fmt.Errorf("bad color %q: %w", s, err)
		}
		return NewGray(v), nil
	case "index":
		if len(fields) != 1 {
			return Color{}, fmt.Errorf("index color needs 1 component, got %d", len(fields))
		}
		n, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil || n < 0 {
			return Color{}, fmt.Errorf("bad color %q", s)
		}
		return NewIndex(n), nil
	}
	return Color{}, fmt.Errorf("bad color %q", s)
}

func parseHex(t string) (Color, error) {
	hex := t[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("bad hex color %q", t)
	}
	n, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("bad hex color %q", t)
	}
	return NewRGB(uint8(n>>16), uint8(n>>8), uint8(n)), nil
}

func parseByte(s string) (uint8, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	if n < 0 || n > 255 {
		return 0, fmt.Errorf("component %d out of range", n)
	}
	return uint8(n), nil
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
