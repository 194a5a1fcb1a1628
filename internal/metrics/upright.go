package metrics

import (
	"math"

	"github.com/san-kum/rlenv/internal/dynamo"
)

// Upright is the fraction of observed steps with |theta| below Tolerance.
type Upright struct {
	Tolerance float64
	hits      int
	samples   int
}

func NewUpright(tolerance float64) *Upright {
	return &Upright{Tolerance: tolerance}
}

func (u *Upright) Name() string {
	return "upright_ratio"
}

func (u *Upright) Observe(x dynamo.State, c dynamo.Control, t float64) {
	if len(x) == 0 {
		return
	}
	u.samples++
	if math.Abs(x[0]) < u.Tolerance {
		u.hits++
	}
}

func (u *Upright) Value() float64 {
	if u.samples == 0 {
		return 0
	}
	return float64(u.hits) / float64(u.samples)
}

func (u *Upright) Reset() {
	u.hits = 0
	u.samples = 0
}
