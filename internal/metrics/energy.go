package metrics

import (
	"math"

	"github.com/san-kum/rlenv/internal/dynamo"
)

// Energy averages the mechanical energy of a Hamiltonian system over an episode.
type Energy struct {
	sys     dynamo.Hamiltonian
	samples int
	total   float64
}

func NewEnergy(sys dynamo.Hamiltonian) *Energy {
	return &Energy{sys: sys}
}

func (e *Energy) Name() string { return "energy" }

func (e *Energy) Observe(x dynamo.State, u dynamo.Control, t float64) {
	e.total += e.sys.Energy(x)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Reset() {
	e.total = 0
	e.samples = 0
}

// PeakEnergy tracks the largest energy seen, which for the pendulum tells
// how close a swing came to the unstable position.
type PeakEnergy struct {
	sys  dynamo.Hamiltonian
	peak float64
	seen bool
}

func NewPeakEnergy(sys dynamo.Hamiltonian) *PeakEnergy {
	return &PeakEnergy{sys: sys}
}

func (p *PeakEnergy) Name() string { return "peak_energy" }

func (p *PeakEnergy) Observe(x dynamo.State, u dynamo.Control, t float64) {
	en := p.sys.Energy(x)
	if !p.seen {
		p.peak, p.seen = en, true
		return
	}
	p.peak = math.Max(p.peak, en)
}

func (p *PeakEnergy) Value() float64 { return p.peak }

func (p *PeakEnergy) Reset() {
	p.peak = 0
	p.seen = false
}
