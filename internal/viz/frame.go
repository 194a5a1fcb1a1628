package viz

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/rlenv/internal/pendulum"
)

// FrameRenderer turns pendulum snapshots into plain text frames and writes
// them to an io.Writer, typically a uilive.Writer that redraws in place.
type FrameRenderer struct {
	out    io.Writer
	canvas *Canvas
	frames int
}

func NewFrameRenderer(out io.Writer, width, height int) *FrameRenderer {
	return &FrameRenderer{out: out, canvas: NewCanvas(width, height)}
}

// Frame renders s without writing it anywhere.
func (r *FrameRenderer) Frame(s pendulum.Snapshot) string {
	r.canvas.Clear()
	DrawPendulum(r.canvas, s)

	var b strings.Builder
	b.WriteString(r.canvas.String())
	fmt.Fprintf(&b, "step %-5d θ %+7.3f  θ' %+7.3f  τ %+5.2f\n", s.Steps, s.Theta, s.ThetaDot, s.Torque)
	fmt.Fprintf(&b, "reward %9.3f  upright streak %d", s.Reward, s.SuccessSteps)
	if s.Done {
		b.WriteString("  [done]")
	}
	b.WriteByte('\n')
	return b.String()
}

func (r *FrameRenderer) Draw(s pendulum.Snapshot) error {
	if r.out == nil {
		return nil
	}
	r.frames++
	_, err := io.WriteString(r.out, r.Frame(s))
	return err
}

// Frames counts the frames written so far.
func (r *FrameRenderer) Frames() int { return r.frames }

// Close flushes writers that buffer, such as uilive, and otherwise does
// nothing. The underlying writer stays open.
func (r *FrameRenderer) Close() error {
	if f, ok := r.out.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}
