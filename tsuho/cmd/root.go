// Package cmd provides the command-line interface for Tsuho.
package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/tsuho/config"
	"github.com/sarchlab/tsuho/spectre"
)

var envFiles []string

// cfg is loaded before any subcommand runs.
var cfg config.Config

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tsuho",
	Short: "Tsuho characterizes the setup and hold times of memory macros.",
	Long: `Tsuho characterizes the setup and hold times of memory macros. ` +
		`It sweeps the stimulus edges of every input around the clock edge, ` +
		`simulates the macro with Spectre, and narrows the passing window ` +
		`until the requested precision is reached.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFiles...)
		if err != nil {
			return err
		}

		return cfg.Validate()
	},
}

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env", nil,
		"Read settings from the given .env files instead of ./.env")
}

// Execute adds all child commands to the root command and sets flags
// appropriately. A failing external tool makes the process exit with the
// tool's status.
func Execute() {
	err := rootCmd.Execute()
	if err == nil {
		atexit.Exit(0)
	}

	atexit.Exit(exitCode(err))
}

func exitCode(err error) int {
	var exitErr *spectre.ExitError
	if errors.As(err, &exitErr) && exitErr.Status != 0 {
		return exitErr.Status
	}

	return 1
}

func notice(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
}
