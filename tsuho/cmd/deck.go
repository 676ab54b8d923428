package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/tsuho/stimulus"
)

var deckCmd = &cobra.Command{
	Use:   "deck " + macroArgsUsage,
	Short: "Print the simulator deck of the first iteration.",
	Long: "`deck` prints the Spectre input of the first iteration, which " +
		"sweeps the default interval of every probe. With --hold, the setup " +
		"times are read from --setup-times.",
	Args: cobra.ExactArgs(6),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := applySimulationFlags(cmd)
		if err != nil {
			return err
		}

		m, err := parseMacroArgs(args)
		if err != nil {
			return err
		}

		hold, _ := cmd.Flags().GetBool("hold")
		setupFile, _ := cmd.Flags().GetString("setup-times")

		s, err := m.strategy(hold, setupFile)
		if err != nil {
			return err
		}

		scheduler := stimulus.Scheduler{Timing: m.timing(), Strategy: s}
		sched, err := scheduler.Build(stimulus.DefaultProbes(), nil, true)
		if err != nil {
			return err
		}

		d, err := m.emitter().Emit(sched)
		if err != nil {
			return err
		}

		fmt.Print(d.Spectre)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(deckCmd)
	addSimulationFlags(deckCmd)
	deckCmd.Flags().Bool("hold", false, "Print the deck of a hold run")
	deckCmd.Flags().String("setup-times", "setup.csv",
		"Setup times used by a hold run")
}
