package deb_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/jamesmaino/DEBtutorial/internal/deb"
	"github.com/jamesmaino/DEBtutorial/internal/engine"
	"github.com/jamesmaino/DEBtutorial/internal/integrators"
)

func tightConfig() engine.Config {
	cfg := engine.DefaultConfig()
	cfg.Tolerance = 1e-8
	return cfg
}

func mustSimulate(m *deb.GrowthModel, x0 engine.State, times []float64) *engine.Result {
	GinkgoHelper()
	sim := engine.New(m, integrators.NewRK45(), tightConfig())
	res, err := sim.SampleAt(context.Background(), x0, times)
	Expect(err).NotTo(HaveOccurred())
	Expect(res.Truncated).To(BeFalse())
	Expect(res.Len()).To(Equal(len(times)))
	return res
}

var _ = Describe("growth under constant food", func() {
	var (
		params deb.Params
		times  []float64
	)

	BeforeEach(func() {
		params = deb.DefaultParams()
		times = engine.Linspace(0, 5000, 1000)
	})

	It("matches the closed-form von Bertalanffy curve everywhere", func() {
		sets := []deb.Params{
			params,
			{PAm: 100, EG: 28, V: 0.02, PM: 18, F: 0.7},
			{PAm: 42.5, EG: 10, V: 0.05, PM: 6.5, F: 1.0},
		}
		for _, p := range sets {
			m := deb.New(p)
			vb := deb.NewVonBertalanffy(p, 0.01)
			res := mustSimulate(m, m.InitialState(0.01), times)

			maxRel := 0.0
			for k, tq := range res.Times {
				want := vb.StructureAt(tq)
				got := res.States[k][deb.StateStructure]
				if rel := math.Abs(got-want) / want; rel > maxRel {
					maxRel = rel
				}
			}
			Expect(maxRel).To(BeNumerically("<", 1e-3),
				"numerical structure departed from the analytic curve for f=%g", p.F)
		}
	})

	It("returns the initial state untouched at the anchor time", func() {
		m := deb.New(params)
		x0 := m.InitialState(0.01)
		res := mustSimulate(m, x0, times)

		Expect(res.Times[0]).To(Equal(times[0]))
		Expect(res.States[0][deb.StateReserve]).To(Equal(x0[deb.StateReserve]))
		Expect(res.States[0][deb.StateStructure]).To(Equal(x0[deb.StateStructure]))
	})

	It("never shrinks and never exceeds ultimate size at full food", func() {
		m := deb.New(params)
		res := mustSimulate(m, m.InitialState(0.01), times)

		vInf := params.UltimateStructure()
		structure := res.Component(deb.StateStructure)
		for k := 1; k < len(structure); k++ {
			Expect(structure[k]).To(BeNumerically(">=", structure[k-1]*(1-1e-9)),
				"structure shrank at t=%g", res.Times[k])
			Expect(structure[k]).To(BeNumerically("<=", vInf*(1+1e-6)),
				"structure overshot V_inf at t=%g", res.Times[k])
		}
	})

	It("reaches within 1% of ultimate size on the reference scenario", func() {
		m := deb.New(params)
		res := mustSimulate(m, m.InitialState(0.01), times)

		vInf := params.UltimateStructure()
		Expect(vInf).To(BeNumerically("~", 171.5, 0.1))

		_, final := res.Final()
		Expect(final[deb.StateStructure]).To(BeNumerically("~", vInf, 0.01*vInf))
	})
})

var _ = Describe("growth under seasonal food", func() {
	var (
		params deb.Params
		times  []float64
	)

	BeforeEach(func() {
		params = deb.DefaultParams()
		times = engine.Linspace(0, 3650, 3651)
	})

	It("stays below the full-food trajectory and keeps oscillating", func() {
		full := deb.New(params)
		fullRes := mustSimulate(full, full.InitialState(0.01), times)

		forced := deb.NewForced(params, deb.NewSeasonal(0.8, 0.1, 365))
		forcedRes := mustSimulate(forced, forced.InitialState(0.01), times)

		fullV := fullRes.Component(deb.StateStructure)
		forcedV := forcedRes.Component(deb.StateStructure)
		for k := 1; k < len(times); k++ {
			Expect(forcedV[k]).To(BeNumerically("<", fullV[k]),
				"seasonal trajectory crossed the full-food curve at t=%g", times[k])
		}

		// direction of growth flips every season once near the asymptote
		flips := 0
		for k := len(times) - 730; k < len(times)-1; k++ {
			if (forcedV[k+1]-forcedV[k])*(forcedV[k]-forcedV[k-1]) < 0 {
				flips++
			}
		}
		Expect(flips).To(BeNumerically(">=", 2))
	})

	It("settles around the mean-food ultimate size", func() {
		forced := deb.NewForced(params, deb.NewSeasonal(0.8, 0.1, 365))
		res := mustSimulate(forced, forced.InitialState(0.01), times)

		meanFood := params
		meanFood.F = 0.8
		vInf := meanFood.UltimateStructure()

		lastPeriod := res.Component(deb.StateStructure)[len(times)-365:]
		mean := 0.0
		for _, v := range lastPeriod {
			mean += v
		}
		mean /= float64(len(lastPeriod))

		Expect(mean).To(BeNumerically("~", vInf, 0.05*vInf))
	})
})

var _ = Describe("domain validation", func() {
	var times []float64

	BeforeEach(func() {
		times = engine.Linspace(0, 100, 11)
	})

	It("refuses out-of-domain rate parameters before integrating", func() {
		bad := deb.DefaultParams()
		bad.PM = 0
		sim := engine.New(deb.New(bad), integrators.NewRK45(), engine.DefaultConfig())

		res, err := sim.SampleAt(context.Background(), engine.State{50, 0.01}, times)

		Expect(res).To(BeNil())
		Expect(errors.Is(err, engine.ErrParameterBounds)).To(BeTrue())
	})

	It("refuses a non-positive initial structure", func() {
		m := deb.New(deb.DefaultParams())
		sim := engine.New(m, integrators.NewRK45(), engine.DefaultConfig())

		res, err := sim.SampleAt(context.Background(), engine.State{50, 0}, times)

		Expect(res).To(BeNil())
		Expect(errors.Is(err, engine.ErrNonPhysical)).To(BeTrue())
	})

	It("truncates instead of emitting non-physical states", func() {
		starved := deb.DefaultParams()
		starved.F = 0
		m := deb.New(starved)

		cfg := engine.DefaultConfig()
		cfg.Adaptive = false
		cfg.Dt = 100
		sim := engine.New(m, integrators.NewEuler(), cfg)

		// plenty of reserve, none incoming: coarse Euler steps drive the
		// reserve negative and the run must stop with the prefix intact
		res, err := sim.SampleAt(context.Background(), engine.State{50, 0.01}, engine.Linspace(0, 5000, 51))

		Expect(err).NotTo(HaveOccurred())
		Expect(res.Truncated).To(BeTrue())
		Expect(res.Len()).To(BeNumerically(">=", 1))
		Expect(res.Len()).To(BeNumerically("<", 51))
		Expect(res.Errors).NotTo(BeEmpty())
		Expect(errors.Is(res.Errors[0], engine.ErrNonPhysical)).To(BeTrue())
	})
})
