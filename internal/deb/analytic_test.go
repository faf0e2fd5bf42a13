package deb

import (
	"math"
	"testing"
)

func TestVonBertalanffyAnchorsAtInitialVolume(t *testing.T) {
	vb := NewVonBertalanffy(DefaultParams(), 0.01)

	if got := vb.StructureAt(0); math.Abs(got-0.01)/0.01 > 1e-12 {
		t.Errorf("curve must start at V0: got %g", got)
	}
}

func TestVonBertalanffyApproachesUltimateSize(t *testing.T) {
	p := DefaultParams()
	vb := NewVonBertalanffy(p, 0.01)

	vInf := vb.UltimateStructure()
	if math.Abs(vInf-p.UltimateStructure())/vInf > 1e-12 {
		t.Fatalf("curve and params disagree on V_inf: %g vs %g", vInf, p.UltimateStructure())
	}
	if got := vb.StructureAt(1e6); math.Abs(got-vInf)/vInf > 1e-9 {
		t.Errorf("late-time structure: got %g, want %g", got, vInf)
	}
}

func TestVonBertalanffyMonotone(t *testing.T) {
	vb := NewVonBertalanffy(DefaultParams(), 0.01)

	prev := vb.StructureAt(0)
	for i := 1; i <= 100; i++ {
		cur := vb.StructureAt(float64(i) * 50)
		if cur < prev {
			t.Fatalf("curve decreased at t=%d: %g < %g", i*50, cur, prev)
		}
		prev = cur
	}
}

func TestReserveAtTracksEquilibriumDensity(t *testing.T) {
	p := DefaultParams()
	p.F = 0.8
	vb := NewVonBertalanffy(p, 0.01)

	for _, tt := range []float64{0, 100, 1000, 5000} {
		want := p.EquilibriumDensity() * vb.StructureAt(tt)
		if got := vb.ReserveAt(tt); math.Abs(got-want)/want > 1e-12 {
			t.Errorf("reserve at t=%g: got %g, want %g", tt, got, want)
		}
	}
}

func TestTimeToFractionRoundTrip(t *testing.T) {
	vb := NewVonBertalanffy(DefaultParams(), 0.01)

	t99 := vb.TimeToFraction(0.99)
	got := vb.StructureAt(t99) / vb.UltimateStructure()
	if math.Abs(got-0.99) > 1e-9 {
		t.Errorf("structure fraction at t99: got %g, want 0.99", got)
	}
}

func TestTimeToFractionEdges(t *testing.T) {
	p := DefaultParams()
	vb := NewVonBertalanffy(p, 0.01)

	if got := vb.TimeToFraction(0); got != 0 {
		t.Errorf("zero fraction: got %g, want 0", got)
	}
	if got := vb.TimeToFraction(1); !math.IsInf(got, 1) {
		t.Errorf("full fraction is asymptotic: got %g, want +Inf", got)
	}

	// already at ultimate size
	atLimit := NewVonBertalanffy(p, p.UltimateStructure())
	if got := atLimit.TimeToFraction(0.99); got != 0 {
		t.Errorf("organism at V_inf reaches any fraction immediately: got %g", got)
	}
}
