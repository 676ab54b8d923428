package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sarchlab/tsuho/artifact"
)

var mergeEdgesCmd = &cobra.Command{
	Use:   "merge-edges FILE...",
	Short: "Sum the rise and fall values of margin files.",
	Long: "`merge-edges` reads key,value files and prints, for every " +
		"<name>_rise row, the sum with the matching <name>_fall row under " +
		"the key <name>.",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			t, err := artifact.ReadFile(path)
			if err != nil {
				return err
			}

			merged, err := artifact.MergeEdges(t)
			if err != nil {
				return errors.Wrap(err, path)
			}

			err = artifact.Write(os.Stdout, merged)
			if err != nil {
				return err
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(mergeEdgesCmd)
}
