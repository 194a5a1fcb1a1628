package viz

import (
	"math"

	"github.com/san-kum/rlenv/internal/pendulum"
	"github.com/san-kum/rlenv/internal/pong"
)

// DrawPendulum paints the rod and bob with the pivot at the canvas centre.
// theta = 0 points straight up, the balanced position the reward favours.
func DrawPendulum(c *Canvas, s pendulum.Snapshot) {
	cw, ch := c.Dots()
	cx, cy := cw/2, ch/2
	reach := 0.45 * float64(min(cw, ch))
	if s.Length > 0 && s.Length < 1 {
		reach *= s.Length
	}
	bx := cx + int(math.Round(reach*math.Sin(s.Theta)))
	by := cy - int(math.Round(reach*math.Cos(s.Theta)))

	c.Blob(cx, cy, 0)
	c.DrawLine(cx, cy, bx, by)
	c.Blob(bx, by, 1)
	drawTorque(c, cx, ch-2, s.Torque, cw/4)
}

// drawTorque is a horizontal gauge below the pivot; its length follows
// the applied torque.
func drawTorque(c *Canvas, cx, y int, torque float64, span int) {
	n := int(math.Round(torque / 2 * float64(span)))
	if n == 0 {
		return
	}
	c.DrawLine(cx, y, cx+n, y)
}

// DrawPong scales the playfield onto the canvas and paints both paddles,
// the ball and a dashed centre line.
func DrawPong(c *Canvas, w pong.World, cfg pong.Config) {
	cw, ch := c.Dots()
	sx := float64(cw) / float64(cfg.Width)
	sy := float64(ch) / float64(cfg.Height)
	fill := func(r pong.Rect) {
		x0 := int(float64(r.X) * sx)
		y0 := int(float64(r.Y) * sy)
		x1 := int(math.Ceil(float64(r.Right()) * sx))
		y1 := int(math.Ceil(float64(r.Bottom()) * sy))
		c.FillRect(x0, y0, max(x1-x0, 1), max(y1-y0, 1))
	}
	for y := 0; y < ch; y += 4 {
		c.Set(cw/2, y)
		c.Set(cw/2, y+1)
	}
	fill(w.Opponent)
	fill(w.Player)
	fill(w.Ball)
}
