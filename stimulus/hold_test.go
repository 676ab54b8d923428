package stimulus

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("HoldStrategy", func() {
	var (
		timing   Timing
		strategy HoldStrategy
		probe    Probe
	)

	BeforeEach(func() {
		timing = Timing{Period: 5e-9, NumSteps: 2, PinSlew: 30e-12}

		// A setup time of 1.2ns is stored as the stimulus edge offset -1.2ns.
		strategy = NewHoldStrategy(timing, SetupTimes{
			"Tsu_RA_rise": -1.2e-9,
			"Tsu_RA_fall": -1.2e-9,
		})
		probe, _ = FindProbe(DefaultProbes(), "RA")
	})

	It("should skip stops closer to the setup time than a transition", func() {
		stops := Stops{
			Rise: []float64{1.19e-9, 0.5e-9},
			Fall: []float64{1.19e-9, 1.19e-9},
		}

		pulses, err := strategy.Pulses(probe, stops)

		Expect(err).NotTo(HaveOccurred())
		Expect(pulses).To(HaveLen(2))

		safe := pulses[0]
		Expect(safe.Repeat).To(BeTrue())
		Expect(safe.Start).To(BeNumerically("~", 20e-9, 1e-18))
		Expect(safe.End).To(BeNumerically("~", 40e-9, 1e-18))

		ck := timing.CycleStart(1) + 15e-9
		app := pulses[1]
		Expect(app.Inverted).To(BeFalse())
		Expect(app.Start).To(BeNumerically("~", ck-1.2e-9, 1e-18))
		Expect(app.End).To(BeNumerically("~", ck-0.5e-9, 1e-18))
	})

	It("should invert the falling application pulse", func() {
		stops := Stops{
			Rise: []float64{1.19e-9, 1.19e-9},
			Fall: []float64{0, 1.19e-9},
		}

		pulses, err := strategy.Pulses(probe, stops)

		Expect(err).NotTo(HaveOccurred())
		Expect(pulses).To(HaveLen(2))
		Expect(pulses[1].Inverted).To(BeTrue())
		Expect(pulses[1].End).To(BeNumerically("~", 35e-9, 1e-18))
	})

	It("should derive clock edges from the template", func() {
		edges, err := strategy.Edges(probe, nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(edges.Rise).To(HaveLen(2))
		Expect(edges.Rise[1]).To(BeNumerically("~", 85e-9, 1e-18))
		Expect(edges.Fall[1]).To(BeNumerically("~", 105e-9, 1e-18))
	})

	It("should derive stimulus edges from the setup times", func() {
		wa, _ := FindProbe(DefaultProbes(), "WA")
		strategy.SetupTimes["Tsu_WA_rise"] = -0.1e-9
		strategy.SetupTimes["Tsu_WA_fall"] = -0.2e-9

		edges, err := strategy.Edges(wa, nil)

		Expect(err).NotTo(HaveOccurred())
		Expect(edges.Rise[0]).To(BeNumerically("~", 14.9e-9, 1e-18))
		Expect(edges.Fall[0]).To(BeNumerically("~", 34.8e-9, 1e-18))
	})

	It("should fail without the setup time of the probe", func() {
		wd, _ := FindProbe(DefaultProbes(), "WD")

		_, err := strategy.Pulses(wd, Stops{
			Rise: []float64{0, 0},
			Fall: []float64{0, 0},
		})

		Expect(err).To(MatchError(ContainSubstring("Tsu_WD_rise")))
	})
})
