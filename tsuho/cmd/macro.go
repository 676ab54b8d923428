package cmd

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sarchlab/tsuho/characterization"
	"github.com/sarchlab/tsuho/deck"
	"github.com/sarchlab/tsuho/macro"
	"github.com/sarchlab/tsuho/stimulus"
)

const macroArgsUsage = "NADDR NBITS VDD TEMP TSLEWCK TSLEWPIN"

// macroArgs are the positional arguments shared by the commands that
// simulate a macro.
type macroArgs struct {
	macro      macro.Macro
	conditions macro.Conditions
}

func parseMacroArgs(args []string) (macroArgs, error) {
	var m macroArgs

	ints := make([]int, 2)
	for i := range ints {
		v, err := strconv.Atoi(args[i])
		if err != nil {
			return m, errors.Wrapf(err, "argument %d", i+1)
		}
		ints[i] = v
	}

	floats := make([]float64, 4)
	for i := range floats {
		v, err := strconv.ParseFloat(args[i+2], 64)
		if err != nil {
			return m, errors.Wrapf(err, "argument %d", i+3)
		}
		floats[i] = v
	}

	if ints[0] <= 0 || ints[1] <= 0 {
		return m, errors.New("NADDR and NBITS must be positive")
	}

	m.macro = macro.New(ints[0], ints[1], floats[0], floats[1])
	m.conditions = macro.Conditions{ClockSlew: floats[2], PinSlew: floats[3]}

	return m, nil
}

func (m macroArgs) timing() stimulus.Timing {
	return stimulus.Timing{
		Period:   cfg.Period,
		NumSteps: cfg.NumSteps,
		PinSlew:  m.conditions.PinSlew,
	}
}

func (m macroArgs) emitter() *deck.SpectreEmitter {
	return deck.MakeBuilder().
		WithConditions(m.conditions).
		WithPreamble(cfg.Preamble).
		WithNetlist(cfg.Netlist).
		WithNodeset(cfg.Nodeset).
		WithDescription(m.macro.Describe()).
		Build(m.macro)
}

// strategy picks the strategy of a figure. The hold strategy reads the setup
// times from setupFile.
func (m macroArgs) strategy(
	hold bool,
	setupFile string,
) (stimulus.Strategy, error) {
	if !hold {
		return stimulus.SetupStrategy{Timing: m.timing()}, nil
	}

	table, err := characterization.LoadSetupTimes(setupFile)
	if err != nil {
		return nil, err
	}

	return stimulus.NewHoldStrategy(m.timing(), table), nil
}

func addSimulationFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("period", 0, "Clock period T in seconds")
	cmd.Flags().Int("num-steps", 0, "Number of stops swept per iteration")
}

// applySimulationFlags lets the flags that were given override the
// configuration and validates the result.
func applySimulationFlags(cmd *cobra.Command) error {
	if cmd.Flags().Changed("period") {
		cfg.Period, _ = cmd.Flags().GetFloat64("period")
	}

	if cmd.Flags().Changed("num-steps") {
		cfg.NumSteps, _ = cmd.Flags().GetInt("num-steps")
	}

	return cfg.Validate()
}
