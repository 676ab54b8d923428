package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/pkg/browser"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/sarchlab/tsuho/characterization"
	"github.com/sarchlab/tsuho/datarecording"
	"github.com/sarchlab/tsuho/hooking"
	"github.com/sarchlab/tsuho/monitoring"
	"github.com/sarchlab/tsuho/spectre"
	"github.com/sarchlab/tsuho/stimulus"
)

var characterizeCmd = &cobra.Command{
	Use:   "characterize " + macroArgsUsage,
	Short: "Measure the setup and hold times of a macro.",
	Long: "`characterize` runs the setup characterization and then the hold " +
		"characterization of a macro. The margins are written to setup.csv " +
		"and hold.csv in the work directory after every iteration. With " +
		"--setup or --hold only one of them runs; a hold run reads the " +
		"setup times from setup.csv.",
	Args: cobra.ExactArgs(6),
	RunE: func(cmd *cobra.Command, args []string) error {
		err := applySimulationFlags(cmd)
		if err != nil {
			return err
		}

		err = applyCharacterizeFlags(cmd)
		if err != nil {
			return err
		}

		m, err := parseMacroArgs(args)
		if err != nil {
			return err
		}

		setupOnly, _ := cmd.Flags().GetBool("setup")
		holdOnly, _ := cmd.Flags().GetBool("hold")
		if setupOnly && holdOnly {
			return errors.New("--setup and --hold cannot be used together")
		}

		r := newRunner(cmd, m)
		defer r.close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		switch {
		case setupOnly:
			_, err = r.newSetup().Run(ctx)
		case holdOnly:
			var setupTimes stimulus.SetupTimes
			setupTimes, err = characterization.LoadSetupTimes(r.artifact("setup"))
			if err != nil {
				return err
			}
			_, err = r.newHold(setupTimes).Run(ctx)
		default:
			_, _, err = characterization.SetupHold{
				Setup:   r.newSetup(),
				NewHold: r.newHold,
			}.Run(ctx)
		}

		r.reportStages()

		return err
	},
}

func init() {
	rootCmd.AddCommand(characterizeCmd)
	addSimulationFlags(characterizeCmd)

	f := characterizeCmd.Flags()
	f.Bool("setup", false, "Only characterize the setup times")
	f.Bool("hold", false, "Only characterize the hold times")
	f.String("work-dir", "", "Directory the simulations run in")
	f.Int("max-iterations", 0, "Maximum number of iterations per run")
	f.Float64("target-precision", 0, "Precision in seconds to stop at")
	f.Float64("threshold-ratio", 0,
		"Delay ratio to the baseline that still passes")
	f.String("record", "",
		"Record the observations into the given SQLite database")
	f.Bool("monitor", false, "Serve the progress over HTTP")
	f.Int("monitor-port", 0, "Port of the monitoring server")
	f.Bool("open-monitor", false, "Open the monitoring page in a browser")
}

func applyCharacterizeFlags(cmd *cobra.Command) error {
	f := cmd.Flags()

	if f.Changed("work-dir") {
		cfg.WorkDir, _ = f.GetString("work-dir")
	}

	if f.Changed("max-iterations") {
		cfg.MaxIterations, _ = f.GetInt("max-iterations")
	}

	if f.Changed("target-precision") {
		cfg.TargetPrecision, _ = f.GetFloat64("target-precision")
	}

	if f.Changed("threshold-ratio") {
		cfg.ThresholdRatio, _ = f.GetFloat64("threshold-ratio")
	}

	if f.Changed("record") {
		cfg.RecordPath, _ = f.GetString("record")
	}

	if f.Changed("monitor-port") {
		cfg.MonitorPort, _ = f.GetInt("monitor-port")
	}

	return cfg.Validate()
}

// runner builds the controllers of one invocation and attaches the hooks
// requested on the command line.
type runner struct {
	macro    macroArgs
	logger   *log.Logger
	timer    *hooking.StageTimer
	recorder datarecording.DataRecorder
	monitor  *monitoring.Monitor
}

func newRunner(cmd *cobra.Command, m macroArgs) *runner {
	r := &runner{
		macro:  m,
		logger: log.New(os.Stderr, "", log.LstdFlags),
		timer:  hooking.NewStageTimer(hooking.NewWallClock()),
	}

	notice("Characterizing %s (%s)\n", m.macro.Name, m.macro.Describe())

	if cfg.RecordPath != "" {
		r.recorder = datarecording.NewDataRecorder(cfg.RecordPath)
	}

	enableMonitor, _ := cmd.Flags().GetBool("monitor")
	openMonitor, _ := cmd.Flags().GetBool("open-monitor")
	if enableMonitor || openMonitor {
		r.monitor = monitoring.NewMonitor().WithPortNumber(cfg.MonitorPort)
		url := r.monitor.StartServer()

		if openMonitor {
			err := browser.OpenURL(url + "/api/runs")
			if err != nil {
				notice("Failed to open browser: %v\n", err)
			}
		}
	}

	return r
}

func (r *runner) artifact(name string) string {
	return filepath.Join(cfg.WorkDir, name+".csv")
}

func (r *runner) newSetup() *characterization.Controller {
	return r.build("setup", stimulus.SetupStrategy{Timing: r.macro.timing()})
}

func (r *runner) newHold(
	setupTimes stimulus.SetupTimes,
) *characterization.Controller {
	return r.build("hold",
		stimulus.NewHoldStrategy(r.macro.timing(), setupTimes))
}

func (r *runner) build(
	name string,
	s stimulus.Strategy,
) *characterization.Controller {
	sim := spectre.MakeBuilder().
		WithWorkDir(filepath.Join(cfg.WorkDir, name)).
		WithSpectreCommand(cfg.SpectreCommand).
		WithAPS(cfg.APS).
		Build()

	c := characterization.MakeBuilder().
		WithTiming(r.macro.timing()).
		WithStrategy(s).
		WithEmitter(r.macro.emitter()).
		WithSimulator(sim).
		WithAnalyzer(characterization.DumpAnalyzer{
			Threshold: r.macro.macro.Threshold(),
		}).
		WithThresholdRatio(cfg.ThresholdRatio).
		WithMaxIterations(cfg.MaxIterations).
		WithTargetPrecision(cfg.TargetPrecision).
		WithArtifact(r.artifact(name)).
		Build(name)

	c.AcceptHook(hooking.NewProgressLogger(r.logger))
	c.AcceptHook(r.timer)

	if r.recorder != nil {
		c.AcceptHook(datarecording.NewRunRecorder(r.recorder, c.ID()))
	}

	if r.monitor != nil {
		r.monitor.RegisterRun(c)
		c.AcceptHook(r.monitor.NewProgressHook(name, cfg.MaxIterations))
	}

	return c
}

func (r *runner) reportStages() {
	for _, s := range []characterization.Stage{
		characterization.StageSimulate,
		characterization.StageAnalyze,
	} {
		n := r.timer.Count(string(s))
		if n == 0 {
			continue
		}

		r.logger.Printf("%s: %d runs, %.3gs on average",
			s, n, r.timer.AverageTime(string(s)))
	}
}

func (r *runner) close() {
	if r.recorder != nil {
		r.recorder.Close()
	}
}
