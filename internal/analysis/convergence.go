package analysis

import (
	"github.com/jamesmaino/DEBtutorial/internal/deb"
	"github.com/jamesmaino/DEBtutorial/internal/engine"
)

// ConvergenceTime finds when the recorded structure first reaches
// frac*vInf, interpolating linearly between samples. The second return
// is false when the trajectory never gets there.
func ConvergenceTime(res *engine.Result, vInf, frac float64) (float64, bool) {
	target := frac * vInf

	for i := range res.Times {
		v := res.States[i][deb.StateStructure]
		if v < target {
			continue
		}
		if i == 0 {
			return res.Times[0], true
		}
		prevT := res.Times[i-1]
		prevV := res.States[i-1][deb.StateStructure]
		span := v - prevV
		if span <= 0 {
			return res.Times[i], true
		}
		return prevT + (target-prevV)/span*(res.Times[i]-prevT), true
	}

	return 0, false
}
