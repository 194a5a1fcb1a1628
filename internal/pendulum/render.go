package pendulum

import (
	"fmt"

	"github.com/san-kum/rlenv/internal/dynamo"
)

// Render modes accepted by Env.Render.
const (
	ModeHuman = "human"
	ModeANSI  = "ansi"
)

// Snapshot is a read-only copy of the environment handed to renderers.
type Snapshot struct {
	Theta        float64
	ThetaDot     float64
	Torque       float64
	Reward       float64
	SuccessSteps int
	Steps        int
	Done         bool
	Length       float64
}

// Renderer draws snapshots somewhere outside the simulation.
type Renderer interface {
	Draw(s Snapshot) error
	Close() error
}

// Framer is implemented by renderers that can produce a text frame.
type Framer interface {
	Frame(s Snapshot) string
}

// AttachRenderer replaces the current renderer without closing it.
func (e *Env) AttachRenderer(r Renderer) {
	e.renderer = r
}

// Render hands the current snapshot to the attached renderer. In ANSI mode
// the text frame is returned instead of drawn.
func (e *Env) Render(mode string) (string, error) {
	switch mode {
	case ModeHuman:
		if e.renderer == nil {
			return "", dynamo.ErrNoRenderer
		}
		return "", e.renderer.Draw(e.Snapshot())
	case ModeANSI:
		f, ok := e.renderer.(Framer)
		if !ok {
			return "", dynamo.ErrNoRenderer
		}
		return f.Frame(e.Snapshot()), nil
	default:
		return "", fmt.Errorf("%w: %q", dynamo.ErrUnsupportedMode, mode)
	}
}

// Close releases the renderer. Calling Close twice is a no-op.
func (e *Env) Close() error {
	if e.renderer == nil {
		return nil
	}
	err := e.renderer.Close()
	e.renderer = nil
	return err
}
