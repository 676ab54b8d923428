package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/tsuho/datarecording"
)

var reportCmd = &cobra.Command{
	Use:   "report DB",
	Short: "Print the final intervals stored in a recording.",
	Long: "`report` reads a database written by `characterize --record` and " +
		"prints the intervals of the last iteration of every run.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reader, err := datarecording.NewReader(args[0])
		if err != nil {
			return err
		}
		defer reader.Close()

		datarecording.MapRunTables(reader)

		entries, err := datarecording.FinalIntervals(context.Background(), reader)
		if err != nil {
			return err
		}

		run := ""
		for _, e := range entries {
			if e.RunID+e.Figure != run {
				run = e.RunID + e.Figure
				fmt.Printf("%s %s, iteration %d, precision %.4gps\n",
					e.RunID, e.Figure, e.Iteration, e.Precision*1e12)
			}

			fmt.Printf("  %s_%s_%s: [%s, %s]\n",
				e.Figure, e.Probe, e.Edge,
				bound(e.Lower, e.LowerOpen), bound(e.Upper, e.UpperOpen))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func bound(v float64, open bool) string {
	if open {
		return "open"
	}

	return fmt.Sprintf("%.4gps", v*1e12)
}
