package scheme

// Point is a position in scene coordinates (pixels, y grows downward).
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p translated by -q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Node box metrics. A node's position is the top-left corner of its box.
// Inputs occupy the first rows below the title bar on the left edge,
// outputs the rows after them on the right edge. Each connection's stem
// sticks out of the box by StemLength and edges attach at its tip.
const (
	NodeWidth    = 180.0
	TitleHeight  = 28.0
	RowHeight    = 22.0
	StemLength   = 12.0
	nodeMinimumH = TitleHeight + RowHeight
)

// DefaultPasteOffset is how far pasted nodes are moved from the position
// they were copied at, so a paste never lands exactly on its source.
var DefaultPasteOffset = Pt(20, 20)

// NodeHeight returns the height of a node box with the given number of
// connection rows.
func NodeHeight(rows int) float64 {
	if rows < 1 {
		return nodeMinimumH
	}
	return TitleHeight + float64(rows)*RowHeight
}
