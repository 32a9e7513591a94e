package thermal

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/regolith-sim/regolith/internal/physics"
	"github.com/regolith-sim/regolith/internal/planet"
	"github.com/regolith-sim/regolith/internal/solar"
)

var _ = Describe("CO2 frost at the surface", func() {
	const step = 360.0

	newFrostStack := func(temperature float64, forcing Forcing) *Stack {
		s, err := NewStack(planet.Mars(), Spec{{3, 0.05}}, 0, temperature, forcing, physics.CO2, true)
		Expect(err).NotTo(HaveOccurred())
		return s
	}

	Context("below the condensation point with net cooling", func() {
		It("freezes frost instead of cooling further", func() {
			s := newFrostStack(physics.CO2.CondensationTemperature-0.01, constantForcing{})

			_, err := s.AdvanceOneStep(0, 0, step, nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Condensate()).To(BeNumerically(">", 0))
			// All cooling energy went into freezing, none into temperature.
			Expect(s.Temperature(0)).To(BeNumerically("~", physics.CO2.CondensationTemperature-0.01, 1e-9))
		})
	})

	Context("below the condensation point with net heating", func() {
		It("passes the inflow to the temperature update", func() {
			// A strong beam overwhelms radiation at 140 K.
			s := newFrostStack(140, constantForcing{irradiance: 600})

			before := s.Temperature(0)
			_, err := s.AdvanceOneStep(0, 12, step, nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Condensate()).To(BeZero())
			Expect(s.Temperature(0)).To(BeNumerically(">", before))
		})
	})

	Context("above the condensation point with frost present", func() {
		It("sublimates before any warming", func() {
			s := newFrostStack(200, constantForcing{irradiance: 600})
			s.layers[0].Condensate = 1e3 // far more than one step can consume

			before := s.Temperature(0)
			frostBefore := s.Condensate()
			_, err := s.AdvanceOneStep(0, 12, step, nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Condensate()).To(BeNumerically("<", frostBefore))
			// Sublimation absorbed the whole inflow; conduction is zero in a
			// uniform stack, so the temperature holds.
			Expect(s.Temperature(0)).To(BeNumerically("~", before, 1e-9))
		})

		It("folds leftover energy back into warming when frost runs out", func() {
			thin := 1e-6
			s := newFrostStack(200, constantForcing{irradiance: 600})
			s.layers[0].Condensate = thin

			bare := newFrostStack(200, constantForcing{irradiance: 600})

			_, err := s.AdvanceOneStep(0, 12, step, nil)
			Expect(err).NotTo(HaveOccurred())
			_, err = bare.AdvanceOneStep(0, 12, step, nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Condensate()).To(BeZero())
			Expect(s.Temperature(0)).To(BeNumerically(">", 200))
			// The thin frost layer absorbed latent heat plus darkened the
			// albedo, so the frosted stack cannot out-warm the bare one.
			Expect(s.Temperature(0)).To(BeNumerically("<", bare.Temperature(0)))
		})
	})

	Context("above the condensation point, bare ground, net cooling", func() {
		It("cools freely without freezing", func() {
			s := newFrostStack(200, constantForcing{})

			_, err := s.AdvanceOneStep(0, 0, step, nil)
			Expect(err).NotTo(HaveOccurred())

			Expect(s.Condensate()).To(BeZero())
			Expect(s.Temperature(0)).To(BeNumerically("<", 200))
		})
	})

	Context("frost albedo", func() {
		It("darkens absorption to one minus the cap albedo", func() {
			s := newFrostStack(200, constantForcing{})
			Expect(s.absorption()).To(Equal(planet.Mars().Absorption))

			s.layers[0].Condensate = 1
			Expect(s.absorption()).To(Equal(1 - physics.CO2.Albedo))
		})
	})

	Describe("a polar winter run", func() {
		It("never drives the frost burden negative", func() {
			mars := planet.Mars()
			forcing := solar.New(mars)
			latitude := -70 * math.Pi / 180
			s, err := NewStack(mars, Spec{{9, 0.015}, {10, 0.3}}, latitude, 150, forcing, physics.CO2, true)
			Expect(err).NotTo(HaveOccurred())

			trueLongitude := 0.0
			for hour := 0; hour < 24*5; hour++ {
				_, err := s.AdvanceOneStep(trueLongitude, float64(hour%24), 3600, nil)
				Expect(err).NotTo(HaveOccurred())
				Expect(s.Condensate()).To(BeNumerically(">=", 0))
			}
		})
	})
})
