package kepler_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/orbprop/internal/kepler"
	"github.com/san-kum/orbprop/internal/orbit"
)

const (
	sunGM   = 1.32e11      // km^3/s^2
	earthMu = 398600.4418  // km^3/s^2
)

func heliocentric() orbit.StateVector {
	return orbit.StateVector{
		R: orbit.Vec3{150e6, 0, -2e3},
		V: orbit.Vec3{1.2, 29.4, 0.01},
	}
}

// orbitPeriod computes the period from the energy term beta.
func orbitPeriod(st orbit.StateVector, mu float64) float64 {
	beta := 2*mu/st.R.Norm() - st.V.Dot(st.V)
	return 2 * math.Pi * mu * math.Pow(beta, -1.5)
}

func relErr(got, want orbit.Vec3) float64 {
	return got.Sub(want).Norm() / want.Norm()
}

var _ = Describe("universal-variable propagation", func() {
	var prop *kepler.Propagator

	BeforeEach(func() {
		var err error
		prop, err = kepler.New(sunGM)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("zero-step identity", func() {
		It("returns the exact input state with zero diagnostics", func() {
			st := heliocentric()
			res, err := prop.Propagate(st, []float64{0}, orbit.Days)
			Expect(err).NotTo(HaveOccurred())

			step := res.Steps[0]
			Expect(step.State).To(Equal(st))
			Expect(step.Status).To(Equal(orbit.StatusConverged))
			Expect(step.Diag.OuterIters).To(BeZero())
			Expect(step.Diag.InnerIters).To(BeZero())
			Expect(step.Diag.TimeError).To(BeZero())
		})
	})

	Describe("round trip", func() {
		It("returns to the initial state after forward then backward propagation", func() {
			st := heliocentric()
			fwd, err := prop.Propagate(st, []float64{100}, orbit.Days)
			Expect(err).NotTo(HaveOccurred())
			Expect(fwd.Steps[0].Status).To(Equal(orbit.StatusConverged))

			back, err := prop.Propagate(fwd.Steps[0].State, []float64{-100}, orbit.Days)
			Expect(err).NotTo(HaveOccurred())
			Expect(back.Steps[0].Status).To(Equal(orbit.StatusConverged))

			Expect(relErr(back.Steps[0].State.R, st.R)).To(BeNumerically("<", 1e-6))
			Expect(relErr(back.Steps[0].State.V, st.V)).To(BeNumerically("<", 1e-6))
		})
	})

	Describe("conservation laws", func() {
		It("preserves specific energy and angular momentum on every converged step", func() {
			st := heliocentric()
			e0 := st.Energy(sunGM)
			h0 := st.AngularMomentum()

			times := []float64{1, 10, 50, 100, 200, 365.25, -50}
			res, err := prop.Propagate(st, times, orbit.Days)
			Expect(err).NotTo(HaveOccurred())

			for i, step := range res.Steps {
				Expect(step.Err).NotTo(HaveOccurred())

				e := step.State.Energy(sunGM)
				Expect(math.Abs(e-e0) / math.Abs(e0)).To(BeNumerically("<", 1e-9),
					"energy drift at step %d", i)

				h := step.State.AngularMomentum()
				Expect(h.Sub(h0).Norm() / h0.Norm()).To(BeNumerically("<", 1e-9),
					"angular momentum drift at step %d", i)
			}
		})
	})

	Describe("diagnostics bounds", func() {
		It("keeps converged steps within the time tolerance and the iteration ceiling", func() {
			st := heliocentric()
			times := make([]float64, 400)
			for i := range times {
				times[i] = float64(i-50) * 3.5
			}

			res, err := prop.Propagate(st, times, orbit.Days)
			Expect(err).NotTo(HaveOccurred())

			for i, step := range res.Steps {
				if step.Status != orbit.StatusConverged {
					continue
				}
				Expect(step.Diag.TimeError).To(BeNumerically("<=", 1.0),
					"time error at step %d", i)
				Expect(step.Diag.OuterIters).To(BeNumerically("<=", 25),
					"outer iterations at step %d", i)
			}
		})
	})

	Describe("period wrap", func() {
		It("propagating N whole periods plus a remainder matches the remainder alone", func() {
			st := heliocentric()
			p := orbitPeriod(st, sunGM)
			remainder := 0.1 * p

			res, err := prop.Propagate(st, []float64{remainder, 5*p + remainder}, orbit.Seconds)
			Expect(err).NotTo(HaveOccurred())

			short := res.Steps[0].State
			long := res.Steps[1].State
			Expect(relErr(long.R, short.R)).To(BeNumerically("<", 1e-5))
			Expect(relErr(long.V, short.V)).To(BeNumerically("<", 1e-5))
		})

		It("returns near the initial state after exactly one period", func() {
			st := heliocentric()
			p := orbitPeriod(st, sunGM)

			res, err := prop.Propagate(st, []float64{p}, orbit.Seconds)
			Expect(err).NotTo(HaveOccurred())
			Expect(res.Steps[0].Status).To(Equal(orbit.StatusConverged))

			Expect(relErr(res.Steps[0].State.R, st.R)).To(BeNumerically("<", 1e-3))
			Expect(relErr(res.Steps[0].State.V, st.V)).To(BeNumerically("<", 1e-3))
		})
	})

	Describe("heliocentric scenario", func() {
		It("propagates a year without losing convergence or energy", func() {
			st := heliocentric()
			res, err := prop.Propagate(st, []float64{365.25}, orbit.Days)
			Expect(err).NotTo(HaveOccurred())

			step := res.Steps[0]
			Expect(step.Status).To(Equal(orbit.StatusConverged))

			// A year is close to (but not exactly) one period at this
			// energy: the state stays on the same orbit.
			e := step.State.Energy(sunGM)
			Expect(math.Abs(e-st.Energy(sunGM)) / math.Abs(st.Energy(sunGM))).
				To(BeNumerically("<", 1e-9))
			Expect(step.State.Radius()).To(BeNumerically("~", st.Radius(), 0.05*st.Radius()))
		})
	})

	Describe("time units", func() {
		It("treats 1 day and 86400 seconds identically", func() {
			st := heliocentric()

			inDays, err := prop.Propagate(st, []float64{1}, orbit.Days)
			Expect(err).NotTo(HaveOccurred())
			inSeconds, err := prop.Propagate(st, []float64{86400}, orbit.Seconds)
			Expect(err).NotTo(HaveOccurred())

			Expect(inDays.Steps[0].State).To(Equal(inSeconds.Steps[0].State))
			Expect(inDays.Steps[0].Diag).To(Equal(inSeconds.Steps[0].Diag))
		})
	})

	Describe("hyperbolic orbits", func() {
		It("converges without the period-wrap correction", func() {
			hyper, err := kepler.New(earthMu)
			Expect(err).NotTo(HaveOccurred())

			st := orbit.StateVector{
				R: orbit.Vec3{7000, 0, 0},
				V: orbit.Vec3{0, 12, 0.5},
			}
			res, err := hyper.Propagate(st, []float64{600, 3600, 86400}, orbit.Seconds)
			Expect(err).NotTo(HaveOccurred())

			e0 := st.Energy(earthMu)
			for _, step := range res.Steps {
				Expect(step.Status).To(Equal(orbit.StatusConverged))
				e := step.State.Energy(earthMu)
				Expect(math.Abs(e-e0) / math.Abs(e0)).To(BeNumerically("<", 1e-9))
			}
		})
	})
})
