package analysis

import (
	"math"
	"testing"

	"github.com/jamesmaino/DEBtutorial/internal/deb"
	"github.com/jamesmaino/DEBtutorial/internal/engine"
)

// curveResult samples the closed-form trajectory onto a Result, as a
// perfectly converged integrator would record it.
func curveResult(vb *deb.VonBertalanffy, times []float64) *engine.Result {
	res := &engine.Result{
		Times:  times,
		States: make([]engine.State, len(times)),
	}
	for i, tm := range times {
		res.States[i] = engine.State{vb.ReserveAt(tm), vb.StructureAt(tm)}
	}
	return res
}

func TestCrossCheckExactCurve(t *testing.T) {
	vb := deb.NewVonBertalanffy(deb.DefaultParams(), 0.01)
	res := curveResult(vb, engine.Linspace(0, 5000, 101))

	rep := CrossCheck(res, vb)

	if rep.N != 101 {
		t.Errorf("expected 101 samples compared, got %d", rep.N)
	}
	if rep.MaxRel > 1e-12 {
		t.Errorf("exact curve should show no error, got %e", rep.MaxRel)
	}
	if rep.RMSE > 1e-12 {
		t.Errorf("exact curve should show no rmse, got %e", rep.RMSE)
	}
}

func TestCrossCheckSpotsWorstSample(t *testing.T) {
	vb := deb.NewVonBertalanffy(deb.DefaultParams(), 0.01)
	times := engine.Linspace(0, 5000, 101)
	res := curveResult(vb, times)

	res.States[50][deb.StateStructure] *= 1.01

	rep := CrossCheck(res, vb)

	if math.Abs(rep.MaxRel-0.01) > 1e-9 {
		t.Errorf("expected 1%% worst error, got %e", rep.MaxRel)
	}
	if rep.WorstTime != times[50] {
		t.Errorf("expected worst sample at t=%f, got %f", times[50], rep.WorstTime)
	}
}

func TestConvergenceTimeMatchesClosedForm(t *testing.T) {
	vb := deb.NewVonBertalanffy(deb.DefaultParams(), 0.01)
	res := curveResult(vb, engine.Linspace(0, 5000, 501))

	got, ok := ConvergenceTime(res, vb.UltimateStructure(), 0.5)
	if !ok {
		t.Fatal("expected the trajectory to reach half its ultimate size")
	}

	want := vb.TimeToFraction(0.5)
	if math.Abs(got-want) > 5.0 {
		t.Errorf("expected crossing near t=%f, got %f", want, got)
	}
}

func TestConvergenceTimeNeverReached(t *testing.T) {
	vb := deb.NewVonBertalanffy(deb.DefaultParams(), 0.01)
	res := curveResult(vb, engine.Linspace(0, 100, 11))

	if _, ok := ConvergenceTime(res, vb.UltimateStructure(), 0.99); ok {
		t.Error("a 100 day run should not approach the ultimate size")
	}
}

func TestConvergenceTimeAlreadyConverged(t *testing.T) {
	vb := deb.NewVonBertalanffy(deb.DefaultParams(), 0.01)
	res := curveResult(vb, engine.Linspace(0, 100, 11))

	// The target sits below the initial structure, so the first sample wins.
	got, ok := ConvergenceTime(res, 0.01, 0.5)
	if !ok || got != 0 {
		t.Errorf("expected crossing at the anchor, got %f (ok=%v)", got, ok)
	}
}

func TestDominantPeriodFindsCycle(t *testing.T) {
	// 300 samples truncate to a 256 window holding exactly 8 cycles.
	series := make([]float64, 300)
	for i := range series {
		series[i] = 5.0 + 0.3*math.Sin(2*math.Pi*float64(i)/32.0)
	}

	period, power := DominantPeriod(series, 1.0)

	if math.Abs(period-32.0) > 0.5 {
		t.Errorf("expected period 32, got %f", period)
	}
	if power <= 0 {
		t.Error("expected a positive peak power")
	}
}

func TestDominantPeriodDegenerate(t *testing.T) {
	if period, _ := DominantPeriod([]float64{1, 2}, 1.0); period != 0 {
		t.Errorf("short series should have no period, got %f", period)
	}

	flat := make([]float64, 64)
	for i := range flat {
		flat[i] = 3.5
	}
	if period, _ := DominantPeriod(flat, 1.0); period != 0 {
		t.Errorf("flat series should have no period, got %f", period)
	}

	series := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	if period, _ := DominantPeriod(series, 0); period != 0 {
		t.Errorf("non-positive dt should yield no period, got %f", period)
	}
}
