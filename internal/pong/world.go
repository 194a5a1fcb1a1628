package pong

import "math"

// Rect is an axis-aligned box in screen coordinates, y growing downwards.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Left() int   { return r.X }
func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Top() int    { return r.Y }
func (r Rect) Bottom() int { return r.Y + r.H }

// Overlaps reports whether the two boxes share interior area. Touching
// edges do not count.
func (r Rect) Overlaps(o Rect) bool {
	return r.Left() < o.Right() && r.Right() > o.Left() &&
		r.Top() < o.Bottom() && r.Bottom() > o.Top()
}

// World is a snapshot of everything the renderer draws.
type World struct {
	Player        Rect
	Opponent      Rect
	Ball          Rect
	DX, DY        int
	PlayerScore   int
	OpponentScore int
}

// Discretize maps value in [0, max) onto one of bins buckets, saturating
// at the first and last bucket outside that range.
func Discretize(value, max float64, bins int) int {
	if bins <= 0 {
		return 0
	}
	idx := math.Floor(value / max * float64(bins))
	if math.IsNaN(idx) || idx < 0 {
		return 0
	}
	if idx > float64(bins-1) {
		return bins - 1
	}
	return int(idx)
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	return -1
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
