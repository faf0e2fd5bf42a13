package metrics

import (
	"github.com/jamesmaino/DEBtutorial/internal/deb"
	"github.com/jamesmaino/DEBtutorial/internal/engine"
)

// ReserveDensity reports the time-averaged reserve per unit structure,
// E/V in J/cm^3. Under constant food it settles near f*p_Am/v.
type ReserveDensity struct {
	name    string
	sum     float64
	samples int
}

func NewReserveDensity() *ReserveDensity {
	return &ReserveDensity{name: "reserve_density"}
}

func (r *ReserveDensity) Name() string { return r.name }

func (r *ReserveDensity) Observe(x engine.State, t float64) {
	if len(x) < 2 || x[deb.StateStructure] <= 0 {
		return
	}
	r.sum += x[deb.StateReserve] / x[deb.StateStructure]
	r.samples++
}

func (r *ReserveDensity) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return r.sum / float64(r.samples)
}

func (r *ReserveDensity) Reset() {
	r.sum = 0
	r.samples = 0
}
