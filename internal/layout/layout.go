package layout

import (
	"fmt"
	"math"
)

// Rect represents a window position and size.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Mode selects the tiling algorithm for a workspace.
type Mode int

const (
	Monocle Mode = iota
	Grid
	HorizontalStack
	VerticalStack
	Fibonacci

	modeCount
)

var modeNames = [...]string{
	Monocle:         "monocle",
	Grid:            "grid",
	HorizontalStack: "hstack",
	VerticalStack:   "vstack",
	Fibonacci:       "fibonacci",
}

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// Valid reports whether m is one of the defined layout modes.
func (m Mode) Valid() bool {
	return m >= 0 && m < modeCount
}

// Count returns the number of defined layout modes.
func Count() int {
	return int(modeCount)
}

// ParseMode resolves a layout name from configuration.
func ParseMode(name string) (Mode, error) {
	for m, n := range modeNames {
		if n == name {
			return Mode(m), nil
		}
	}
	return 0, fmt.Errorf("unknown layout mode: %q", name)
}

// Params carries the screen rectangle and inset configuration for an
// arrange call.
type Params struct {
	Screen     Rect
	Gap        int
	Border     int
	MonocleGap bool
}

// Effective applies the single-window optimization: a workspace with one
// client (or none) always uses monocle, whatever mode it has configured.
func Effective(m Mode, clientCount int) Mode {
	if clientCount <= 1 {
		return Monocle
	}
	return m
}

// Arrange computes target rectangles for n tiled clients under the given
// mode. Only tiled clients are placed; callers apply the result to the
// tiled prefix of the workspace collection in list order.
func Arrange(m Mode, n int, p Params) []Rect {
	if n <= 0 {
		return nil
	}

	switch m {
	case Monocle:
		return monocle(n, p)
	case HorizontalStack:
		return stack(n, p, false)
	case VerticalStack:
		return stack(n, p, true)
	case Grid:
		return grid(n, p)
	case Fibonacci:
		return fibonacci(n, p)
	default:
		return monocle(n, p)
	}
}

// monocle gives every tiled client the full screen rectangle, inset by
// the gap on all four sides when configured.
func monocle(n int, p Params) []Rect {
	r := p.Screen
	if p.MonocleGap {
		r.X += p.Gap
		r.Y += p.Gap
		r.Width -= 2 * p.Gap
		r.Height -= 2 * p.Gap
	}

	rects := make([]Rect, n)
	for i := range rects {
		rects[i] = r
	}
	return rects
}

// stack divides the screen into n segments along one axis. Segment sizes
// are span minus (n+1) gaps, integer-divided, with the remainder given one
// pixel at a time to the leading segments so the sizes sum exactly to the
// available span. Window dimensions subtract the X border on both sides.
func stack(n int, p Params, vertical bool) []Rect {
	span := p.Screen.Width
	cross := p.Screen.Height
	if vertical {
		span, cross = cross, span
	}

	segs := split(span-(n+1)*p.Gap, n)
	crossSize := cross - 2*p.Gap - 2*p.Border

	rects := make([]Rect, n)
	pos := p.Gap
	for i, seg := range segs {
		if vertical {
			rects[i] = Rect{
				X:      p.Screen.X + p.Gap,
				Y:      p.Screen.Y + pos,
				Width:  crossSize,
				Height: seg - 2*p.Border,
			}
		} else {
			rects[i] = Rect{
				X:      p.Screen.X + pos,
				Y:      p.Screen.Y + p.Gap,
				Width:  seg - 2*p.Border,
				Height: crossSize,
			}
		}
		pos += seg + p.Gap
	}
	return rects
}

// grid partitions clients into ceil(sqrt(n)) columns. Column and row
// sizes spread their remainder like the stack layouts, so the cells
// cover the full screen minus gaps; the last row simply holds fewer
// clients when n is not a multiple of the column count.
func grid(n int, p Params) []Rect {
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	rows := int(math.Ceil(float64(n) / float64(cols)))

	widths := split(p.Screen.Width-(cols+1)*p.Gap, cols)
	heights := split(p.Screen.Height-(rows+1)*p.Gap, rows)

	xs := make([]int, cols)
	for i, x := 0, p.Screen.X+p.Gap; i < cols; i++ {
		xs[i] = x
		x += widths[i] + p.Gap
	}
	ys := make([]int, rows)
	for i, y := 0, p.Screen.Y+p.Gap; i < rows; i++ {
		ys[i] = y
		y += heights[i] + p.Gap
	}

	rects := make([]Rect, n)
	for i := 0; i < n; i++ {
		row := i / cols
		col := i % cols
		rects[i] = Rect{
			X:      xs[col],
			Y:      ys[row],
			Width:  widths[col] - 2*p.Border,
			Height: heights[row] - 2*p.Border,
		}
	}
	return rects
}

// split divides avail into n segments summing exactly to avail; the
// leading segments take the integer remainder one pixel each.
func split(avail, n int) []int {
	base := avail / n
	rem := avail % n
	segs := make([]int, n)
	for i := range segs {
		segs[i] = base
		if i < rem {
			segs[i]++
		}
	}
	return segs
}

// fibonacci halves the remaining screen area per client in list order,
// alternating the split axis. The last client takes whatever remains.
func fibonacci(n int, p Params) []Rect {
	remaining := Rect{
		X:      p.Screen.X + p.Gap,
		Y:      p.Screen.Y + p.Gap,
		Width:  p.Screen.Width - 2*p.Gap,
		Height: p.Screen.Height - 2*p.Gap,
	}

	rects := make([]Rect, n)
	for i := 0; i < n; i++ {
		if i == n-1 {
			rects[i] = inset(remaining, p.Border)
			break
		}

		if i%2 == 0 {
			// Vertical split: client takes the left half.
			half := (remaining.Width - p.Gap) / 2
			rects[i] = inset(Rect{remaining.X, remaining.Y, half, remaining.Height}, p.Border)
			remaining.X += half + p.Gap
			remaining.Width -= half + p.Gap
		} else {
			// Horizontal split: client takes the top half.
			half := (remaining.Height - p.Gap) / 2
			rects[i] = inset(Rect{remaining.X, remaining.Y, remaining.Width, half}, p.Border)
			remaining.Y += half + p.Gap
			remaining.Height -= half + p.Gap
		}
	}
	return rects
}

// inset shrinks a cell by the border width on each side, so the drawn
// window plus its X border fills the cell.
func inset(r Rect, border int) Rect {
	return Rect{
		X:      r.X,
		Y:      r.Y,
		Width:  r.Width - 2*border,
		Height: r.Height - 2*border,
	}
}
