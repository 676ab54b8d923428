package cmd

import (
	"io"

	"github.com/pkg/errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/tsuho/characterization"
	"github.com/sarchlab/tsuho/spectre"
)

var _ = Describe("Macro arguments", func() {
	It("should parse the macro and the conditions", func() {
		m, err := parseMacroArgs(
			[]string{"4", "8", "1.1", "25", "20e-12", "30e-12"})

		Expect(err).NotTo(HaveOccurred())
		Expect(m.macro.Name).To(Equal("PS16X8"))
		Expect(m.macro.VDD).To(Equal(1.1))
		Expect(m.macro.Temp).To(Equal(25.0))
		Expect(m.conditions.ClockSlew).To(Equal(20e-12))
		Expect(m.conditions.PinSlew).To(Equal(30e-12))
	})

	It("should name the argument that is not a number", func() {
		_, err := parseMacroArgs(
			[]string{"4", "eight", "1.1", "25", "20e-12", "30e-12"})

		Expect(err).To(MatchError(ContainSubstring("argument 2")))
	})

	It("should reject an empty macro", func() {
		_, err := parseMacroArgs(
			[]string{"0", "8", "1.1", "25", "20e-12", "30e-12"})

		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Exit code", func() {
	It("should pass on the status of a failing tool", func() {
		err := errors.Wrap(&characterization.StageError{
			Stage:     characterization.StageSimulate,
			Iteration: 2,
			Err:       &spectre.ExitError{Tool: "spectre", Status: 3},
		}, "setup")

		Expect(exitCode(err)).To(Equal(3))
	})

	It("should be 1 for other errors", func() {
		Expect(exitCode(errors.New("bad argument"))).To(Equal(1))
	})
})

var _ = Describe("Settings", func() {
	execute := func(args ...string) error {
		rootCmd.SetArgs(args)
		rootCmd.SetOut(io.Discard)
		rootCmd.SetErr(io.Discard)

		return rootCmd.Execute()
	}

	It("should report a step count below two instead of panicking", func() {
		var err error
		Expect(func() {
			err = execute("deck", "--num-steps", "1",
				"4", "8", "1.1", "25", "20e-12", "30e-12")
		}).NotTo(Panic())

		Expect(err).To(MatchError(ContainSubstring("at least 2 steps")))
	})

	It("should report a threshold ratio of 1 instead of panicking", func() {
		var err error
		Expect(func() {
			err = execute("characterize", "--threshold-ratio", "1",
				"4", "8", "1.1", "25", "20e-12", "30e-12")
		}).NotTo(Panic())

		Expect(err).To(MatchError(ContainSubstring("threshold ratio")))
	})
})
