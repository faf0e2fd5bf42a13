package metrics

import (
	"math"
	"testing"

	"github.com/jamesmaino/DEBtutorial/internal/deb"
	"github.com/jamesmaino/DEBtutorial/internal/engine"
)

func TestReserveDensityMean(t *testing.T) {
	m := NewReserveDensity()

	m.Observe(engine.State{10.0, 1.0}, 0)
	m.Observe(engine.State{20.0, 1.0}, 1)

	if math.Abs(m.Value()-15.0) > 1e-12 {
		t.Errorf("expected mean density 15, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestReserveDensitySkipsDegenerateStructure(t *testing.T) {
	m := NewReserveDensity()

	m.Observe(engine.State{10.0, 0.0}, 0)
	if m.Value() != 0 {
		t.Error("samples with no structure should not count")
	}

	m.Observe(engine.State{10.0, 2.0}, 1)
	if math.Abs(m.Value()-5.0) > 1e-12 {
		t.Errorf("expected density 5, got %f", m.Value())
	}
}

func TestUltimateFraction(t *testing.T) {
	p := deb.DefaultParams()
	vInf := p.UltimateStructure()

	m := NewUltimateFraction(p)
	if m.Value() != 0 {
		t.Error("expected zero before any observation")
	}

	m.Observe(engine.State{0, vInf / 2}, 0)
	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected fraction 0.5, got %f", m.Value())
	}

	m.Observe(engine.State{0, vInf}, 1)
	if math.Abs(m.Value()-1.0) > 1e-12 {
		t.Errorf("expected fraction 1, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestStarvationFraction(t *testing.T) {
	p := deb.DefaultParams()
	m := NewStarvation(p)

	// At V = 1 the threshold density is p_M/v = 900 J/cm^3.
	m.Observe(engine.State{1000.0, 1.0}, 0)
	m.Observe(engine.State{500.0, 1.0}, 1)

	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected half the samples starved, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestStarvationNeverFiresAtEquilibrium(t *testing.T) {
	p := deb.DefaultParams()
	m := NewStarvation(p)

	// Equilibrium density f*p_Am/v = 5000 clears the threshold at any
	// size below the ultimate volume.
	vInf := p.UltimateStructure()
	density := p.EquilibriumDensity()
	for _, v := range []float64{0.01, 1.0, vInf * 0.99} {
		m.Observe(engine.State{density * v, v}, 0)
	}

	if m.Value() != 0 {
		t.Errorf("well-fed organism should never starve, got %f", m.Value())
	}
}
