package deck

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tsuho/macro"
	"github.com/sarchlab/tsuho/stimulus"
)

var _ = Describe("SpectreEmitter", func() {
	var (
		m       macro.Macro
		timing  stimulus.Timing
		emitter *SpectreEmitter
	)

	schedule := func(strategy stimulus.Strategy, probes ...stimulus.Probe) *stimulus.Schedule {
		sched, err := stimulus.Scheduler{Timing: timing, Strategy: strategy}.
			Build(probes, nil, true)
		Expect(err).NotTo(HaveOccurred())
		return sched
	}

	wd := stimulus.Probe{
		Name:            "WD",
		Terminal:        "WD",
		ProbePoint:      "X.nWD0",
		RelativeToClock: true,
	}

	BeforeEach(func() {
		m = macro.New(2, 2, 1.2, 25)
		timing = stimulus.Timing{Period: 5e-9, NumSteps: 3, PinSlew: 2e-11}
		emitter = MakeBuilder().
			WithConditions(macro.Conditions{ClockSlew: 1e-10, PinSlew: 2e-11}).
			WithPreamble("preamble.scs").
			Build(m)
	})

	It("should write the prolog", func() {
		d, err := emitter.Emit(schedule(stimulus.SetupStrategy{Timing: timing}, wd))

		Expect(err).NotTo(HaveOccurred())
		Expect(d.Ocean).To(BeEmpty())
		Expect(d.Spectre).To(HavePrefix(
			"// Setup and hold time analysis for PS4X2\n" +
				"//\n" +
				"// PS4X2\n" +
				"// 4 words, 2 bits, at 1.2V, 25°C\n" +
				"//\n" +
				"include \"preamble.scs\"\n" +
				"include \"netlist.cir\"\n" +
				"\n" +
				"// Operating Conditions\n" +
				"o1 options temp=25 tnom=25\n" +
				"parameters vdd=1.2\n" +
				"parameters tslewck=1e-10 tslewpin=2e-11\n"))
	})

	It("should connect the circuit under test", func() {
		d, err := emitter.Emit(schedule(stimulus.SetupStrategy{Timing: timing}, wd))

		Expect(err).NotTo(HaveOccurred())
		Expect(d.Spectre).To(ContainSubstring(
			"X (CK RE RA RA RD1 RD0 WE WA WA WD WD VDD 0) PS4X2\n" +
				"VDD (VDD 0) vsource type=dc dc=vdd\n"))
	})

	It("should overlay the two clocks", func() {
		d, err := emitter.Emit(schedule(stimulus.SetupStrategy{Timing: timing}, wd))

		Expect(err).NotTo(HaveOccurred())
		Expect(d.Spectre).To(ContainSubstring(
			"VCK0 (nCK1 0) vsource type=pulse val0=0 val1=vdd " +
				"delay=1.5e-08-tslewck/2 width=5e-09-tslewck period=2e-08 " +
				"rise=tslewck fall=tslewck\n" +
				"VCK1 (CK nCK1) vsource type=pulse val0=0 val1=vdd " +
				"delay=5e-09-tslewck/2 width=5e-09-tslewck period=2e-08 " +
				"rise=tslewck fall=tslewck\n"))
	})

	It("should chain one source per setup pulse", func() {
		d, err := emitter.Emit(schedule(stimulus.SetupStrategy{Timing: timing}, wd))

		Expect(err).NotTo(HaveOccurred())
		Expect(d.Spectre).To(ContainSubstring(
			"VWD0 (nVWD0 0) vsource type=pulse val0=0 val1=vdd " +
				"delay=1.25e-08-tslewpin/2 width=2e-08-tslewpin " +
				"rise=tslewpin fall=tslewpin\n"))
		Expect(d.Spectre).To(ContainSubstring("VWD1 (nVWD1 nVWD0) "))
		Expect(d.Spectre).To(ContainSubstring("VWD2 (WD nVWD1) "))
		Expect(d.Spectre).NotTo(ContainSubstring("VWD3"))
	})

	It("should end with the analysis", func() {
		re := stimulus.DefaultProbes()[0]
		d, err := emitter.Emit(
			schedule(stimulus.SetupStrategy{Timing: timing}, wd, re))

		Expect(err).NotTo(HaveOccurred())
		Expect(d.Spectre).To(HaveSuffix(
			"// Analysis\n" +
				"tran tran stop=2.15e-07 errpreset=liberal readns=nodeset.ns\n" +
				"save CK X.XAD.nWE0 WD RE X.nWD0 X.XRWCKG.X0.n1\n"))
	})

	It("should write repeating and inverted hold pulses", func() {
		hold := stimulus.NewHoldStrategy(timing, stimulus.SetupTimes{
			"Tsu_WD_rise": -1.2e-9,
			"Tsu_WD_fall": -1.2e-9,
		})

		d, err := emitter.Emit(schedule(hold, wd))

		Expect(err).NotTo(HaveOccurred())
		Expect(d.Spectre).To(ContainSubstring(
			"VWD0 (nVWD0 0) vsource type=pulse val0=0 val1=vdd " +
				"delay=2e-08-tslewpin/2 width=2e-08-tslewpin period=7e-08 "))
		Expect(d.Spectre).To(ContainSubstring("val1=-vdd"))
		Expect(strings.Count(d.Spectre, "period=7e-08")).To(Equal(1))
	})

	It("should reject probes without pulses", func() {
		sched := schedule(stimulus.SetupStrategy{Timing: timing}, wd)
		sched.Probes[0].Pulses = nil

		_, err := emitter.Emit(sched)

		Expect(err).To(MatchError(ContainSubstring("probe WD")))
	})

	It("should use the circuit name override", func() {
		e := MakeBuilder().WithCircuit("SRAM").WithDescription("corner ss").Build(m)

		d, err := e.Emit(schedule(stimulus.SetupStrategy{Timing: timing}, wd))

		Expect(err).NotTo(HaveOccurred())
		Expect(d.Spectre).To(ContainSubstring("// SRAM\n"))
		Expect(d.Spectre).To(ContainSubstring("// corner ss\n//\n"))
		Expect(d.Spectre).To(ContainSubstring(" VDD 0) SRAM\n"))
		Expect(d.Spectre).NotTo(ContainSubstring("preamble"))
	})

	It("should panic on an empty macro", func() {
		Expect(func() { MakeBuilder().Build(macro.Macro{Name: "X"}) }).To(Panic())
	})
})
