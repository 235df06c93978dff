package tooltip

// Align names where the popup's pointing arrow attaches relative to the
// target, so the popup body sits on the opposite side: an arrow at the
// popup's top-left puts the body below and right of the target.
type Align int

const (
	AlignNone Align = iota
	AlignTop
	AlignBottom
	AlignLeft
	AlignRight
	AlignTopLeft
	AlignTopRight
	AlignBottomLeft
	AlignBottomRight
)

func (a Align) String() string {
	switch a {
	case AlignTop:
		return "top"
	case AlignBottom:
		return "bottom"
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignTopLeft:
		return "top-left"
	case AlignTopRight:
		return "top-right"
	case AlignBottomLeft:
		return "bottom-left"
	case AlignBottomRight:
		return "bottom-right"
	}
	return "none"
}

// attempts is the candidate search order for each starting alignment: the
// preferred alignment first, then its complement, then the remaining pair.
// Four candidates total; the first whose clamped rectangle clears the
// target wins. The order is significant and must stay stable.
var attempts = map[Align][4]Align{
	AlignTop:    {AlignTop, AlignBottom, AlignRight, AlignLeft},
	AlignBottom: {AlignBottom, AlignTop, AlignLeft, AlignRight},
	AlignLeft:   {AlignLeft, AlignRight, AlignBottom, AlignTop},
	AlignRight:  {AlignRight, AlignLeft, AlignTop, AlignBottom},

	AlignTopLeft:     {AlignTopLeft, AlignBottomRight, AlignBottomLeft, AlignTopRight},
	AlignTopRight:    {AlignTopRight, AlignBottomLeft, AlignTopLeft, AlignBottomRight},
	AlignBottomLeft:  {AlignBottomLeft, AlignTopRight, AlignBottomRight, AlignTopLeft},
	AlignBottomRight: {AlignBottomRight, AlignTopLeft, AlignTopRight, AlignBottomLeft},
}

// origin computes the candidate popup origin for one alignment: flush
// against the target on the side the arrow points away from, centered on
// the other axis for pure side alignments.
func origin(a Align, t Rect, s Size) Point {
	cx := t.X + (t.W-s.W)/2
	cy := t.Y + (t.H-s.H)/2
	switch a {
	case AlignTop:
		return Point{cx, t.Y + t.H}
	case AlignBottom:
		return Point{cx, t.Y - s.H}
	case AlignLeft:
		return Point{t.X + t.W, cy}
	case AlignRight:
		return Point{t.X - s.W, cy}
	case AlignTopLeft:
		return Point{t.X + t.W, t.Y + t.H}
	case AlignTopRight:
		return Point{t.X - s.W, t.Y + t.H}
	case AlignBottomLeft:
		return Point{t.X + t.W, t.Y - s.H}
	default: // AlignBottomRight
		return Point{t.X - s.W, t.Y - s.H}
	}
}

// Place searches for a popup position that stays inside the display and
// does not cover the target. Each candidate origin is clamped into the
// display first; a candidate that still intersects the target is rejected
// and the next alignment in the sequence is tried. ok is false when all
// four candidates collide, which callers treat as "show nothing".
func Place(target Rect, display Size, popup Size, prefer Align) (Point, Align, bool) {
	if prefer == AlignNone {
		prefer = AlignBottom
	}
	seq, ok := attempts[prefer]
	if !ok {
		seq = attempts[AlignBottom]
	}
	for _, a := range seq {
		p := origin(a, target, popup)
		p.X = clamp(p.X, display.W-popup.W)
		p.Y = clamp(p.Y, display.H-popup.H)
		if !(Rect{p.X, p.Y, popup.W, popup.H}).Intersects(target) {
			return p, a, true
		}
	}
	return Point{}, prefer, false
}

// clamp pins v into [0, hi]. When the popup is larger than the display hi
// goes negative and the low bound wins, so the overflow hangs off the far
// edge rather than the origin side.
func clamp(v, hi int) int {
	if v > hi {
		v = hi
	}
	if v < 0 {
		v = 0
	}
	return v
}
