package engine

import (
	"errors"
	"math"
	"testing"
)

func TestState_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		state State
		valid bool
	}{
		{"empty", State{}, true},
		{"reserve and structure", State{50, 0.01}, true},
		{"zeros", State{0.0, 0.0}, true},
		{"with NaN", State{50, math.NaN()}, false},
		{"with +Inf", State{math.Inf(1), 0.01}, false},
		{"with -Inf", State{50, math.Inf(-1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.state.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestState_Clone(t *testing.T) {
	a := State{1, 2}
	b := a.Clone()

	b[0] = 99
	if a[0] != 1 {
		t.Error("Clone must produce an independent copy")
	}
}

func TestState_Arithmetic(t *testing.T) {
	a := State{1, 2}
	b := State{4, 6}

	sum := a.Add(b)
	if sum[0] != 5 || sum[1] != 8 {
		t.Errorf("Add failed: got %v", sum)
	}

	diff := b.Sub(a)
	if diff[0] != 3 || diff[1] != 4 {
		t.Errorf("Sub failed: got %v", diff)
	}

	scaled := a.Scale(2)
	if scaled[0] != 2 || scaled[1] != 4 {
		t.Errorf("Scale failed: got %v", scaled)
	}

	if got := (State{3, 4}).Norm(); math.Abs(got-5) > 1e-12 {
		t.Errorf("Norm failed: got %v", got)
	}
}

func TestResult_Accessors(t *testing.T) {
	r := &Result{
		Times:  []float64{0, 1, 2},
		States: []State{{10, 1}, {20, 2}, {30, 3}},
	}

	col := r.Component(1)
	if len(col) != 3 || col[0] != 1 || col[2] != 3 {
		t.Errorf("Component failed: got %v", col)
	}

	tf, xf := r.Final()
	if tf != 2 || xf[0] != 30 {
		t.Errorf("Final failed: got t=%v x=%v", tf, xf)
	}

	if r.Len() != 3 {
		t.Errorf("Len failed: got %d", r.Len())
	}

	empty := &Result{}
	if tf, xf := empty.Final(); tf != 0 || xf != nil {
		t.Errorf("Final on empty result: got t=%v x=%v", tf, xf)
	}
}

func TestConfigValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate, got %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative dt", func(c *Config) { c.Dt = -0.1 }},
		{"zero tolerance", func(c *Config) { c.Tolerance = 0 }},
		{"min above max", func(c *Config) { c.MinDt = 100 }},
		{"zero min dt", func(c *Config) { c.MinDt = 0 }},
		{"zero step budget", func(c *Config) { c.MaxSteps = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSimError(t *testing.T) {
	err := SimError{Time: 1.5, Step: 150, Message: "reserve went negative", Err: ErrNonPhysical}

	expected := "step 150 (t=1.5000): reserve went negative"
	if err.Error() != expected {
		t.Errorf("SimError.Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, ErrNonPhysical) {
		t.Error("SimError must unwrap to its sentinel")
	}
}
