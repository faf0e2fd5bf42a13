package analysis

import (
	"math"

	"github.com/jamesmaino/DEBtutorial/internal/deb"
	"github.com/jamesmaino/DEBtutorial/internal/engine"
)

// Report summarizes how far a numeric trajectory strays from the
// closed-form curve. Errors are relative to the analytic structure.
type Report struct {
	N         int     // samples compared
	MaxRel    float64 // worst relative structure error
	WorstTime float64 // sample time of the worst error
	RMSE      float64 // root mean square of the relative errors
}

// CrossCheck compares every recorded sample against the closed-form
// curve. Samples where the analytic structure is not positive are
// skipped rather than divided by.
func CrossCheck(res *engine.Result, vb *deb.VonBertalanffy) Report {
	var rep Report
	var sumSq float64

	for i, tm := range res.Times {
		want := vb.StructureAt(tm)
		if want <= 0 {
			continue
		}
		rel := math.Abs(res.States[i][deb.StateStructure]-want) / want
		if rel > rep.MaxRel {
			rep.MaxRel = rel
			rep.WorstTime = tm
		}
		sumSq += rel * rel
		rep.N++
	}

	if rep.N > 0 {
		rep.RMSE = math.Sqrt(sumSq / float64(rep.N))
	}
	return rep
}
