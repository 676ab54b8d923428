package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/tsuho/characterization"
	"github.com/sarchlab/tsuho/stimulus"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze PSFASCII " + macroArgsUsage,
	Short: "Print the propagation delays found in a waveform dump.",
	Long: "`analyze` measures the propagation delays in a PSF ASCII dump " +
		"produced by the deck of the first iteration and prints them per " +
		"probe, edge and cycle.",
	Args: cobra.ExactArgs(7),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := applySimulationFlags(cmd)
		if err != nil {
			return err
		}

		m, err := parseMacroArgs(args[1:])
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

		analyzer := characterization.DumpAnalyzer{
			Threshold: m.macro.Threshold(),
		}
		results, err := analyzer.Analyze(args[0], sched)
		if err != nil {
			return err
		}

		for _, r := range results {
			fmt.Printf("%s:\n", r.Probe)
			for _, e := range []stimulus.Edge{stimulus.Rise, stimulus.Fall} {
				stops := r.Stops.Of(e)
				for cycle, slot := range r.Slots(e) {
					if !slot.Valid {
						fmt.Printf("  %-4s cycle %d stop %8.4gps  -\n",
							e, cycle, stops[cycle]*1e12)
						continue
					}

					fmt.Printf("  %-4s cycle %d stop %8.4gps  Tpd %.4gps\n",
						e, cycle, stops[cycle]*1e12, slot.Delay*1e12)
				}
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	addSimulationFlags(analyzeCmd)
	analyzeCmd.Flags().Bool("hold", false, "The dump comes from a hold run")
	analyzeCmd.Flags().String("setup-times", "setup.csv",
		"Setup times used by a hold run")
}
