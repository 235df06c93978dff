package tooltip

// Point is a position in cell coordinates.
type Point struct {
	X, Y int
}

// Size is a width/height pair in cells.
type Size struct {
	W, H int
}

// Rect is an axis-aligned rectangle in cell coordinates.
type Rect struct {
	X, Y, W, H int
}

// Intersects reports whether r and o share any cell. Rectangles that only
// touch edges do not intersect, and an empty rectangle covers no cell so
// it intersects nothing.
func (r Rect) Intersects(o Rect) bool {
	if r.W <= 0 || r.H <= 0 || o.W <= 0 || o.H <= 0 {
		return false
	}
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}
