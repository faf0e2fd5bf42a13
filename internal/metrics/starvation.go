package metrics

import (
	"math"

	"github.com/jamesmaino/DEBtutorial/internal/deb"
	"github.com/jamesmaino/DEBtutorial/internal/engine"
)

// Starvation reports the fraction of samples whose reserve density sits
// below the level needed to pay maintenance from mobilized reserve,
// e < p_M * V^(1/3) / v. Shrinking sets in past that point.
type Starvation struct {
	name       string
	params     deb.Params
	violations int
	samples    int
}

func NewStarvation(p deb.Params) *Starvation {
	return &Starvation{name: "starvation", params: p}
}

func (s *Starvation) Name() string { return s.name }

func (s *Starvation) Observe(x engine.State, t float64) {
	if len(x) < 2 || x[deb.StateStructure] <= 0 {
		return
	}
	s.samples++

	density := x[deb.StateReserve] / x[deb.StateStructure]
	threshold := s.params.PM * math.Cbrt(x[deb.StateStructure]) / s.params.V
	if density < threshold {
		s.violations++
	}
}

func (s *Starvation) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.violations) / float64(s.samples)
}

func (s *Starvation) Reset() {
	s.violations = 0
	s.samples = 0
}
