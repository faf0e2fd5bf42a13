package metrics

import (
	"github.com/jamesmaino/DEBtutorial/internal/deb"
	"github.com/jamesmaino/DEBtutorial/internal/engine"
)

// UltimateFraction tracks how far growth has progressed: the latest
// structural volume over the ultimate volume for the configured food.
type UltimateFraction struct {
	name     string
	ultimate float64
	latest   float64
	seen     bool
}

func NewUltimateFraction(p deb.Params) *UltimateFraction {
	return &UltimateFraction{name: "ultimate_fraction", ultimate: p.UltimateStructure()}
}

func (u *UltimateFraction) Name() string { return u.name }

func (u *UltimateFraction) Observe(x engine.State, t float64) {
	if len(x) < 2 {
		return
	}
	u.latest = x[deb.StateStructure]
	u.seen = true
}

func (u *UltimateFraction) Value() float64 {
	if !u.seen || u.ultimate <= 0 {
		return 0
	}
	return u.latest / u.ultimate
}

func (u *UltimateFraction) Reset() {
	u.latest = 0
	u.seen = false
}
