package characterization

import (
	"context"

	"github.com/pkg/errors"

	"github.com/sarchlab/tsuho/artifact"
	"github.com/sarchlab/tsuho/stimulus"
)

// LoadSetupTimes reads the margins of a setup run.
func LoadSetupTimes(path string) (stimulus.SetupTimes, error) {
	table, err := artifact.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "load setup times")
	}

	return stimulus.SetupTimes(table.Map()), nil
}

// SetupHold characterizes the setup times first and then the hold times,
// which are measured relative to the setup times.
type SetupHold struct {
	// Setup is the setup run. Its artifact is where the hold run reads the
	// setup times from.
	Setup *Controller

	// NewHold creates the hold run once the setup times are known.
	NewHold func(setupTimes stimulus.SetupTimes) *Controller
}

// Run runs both characterizations. The hold run does not start if the setup
// run fails.
func (s SetupHold) Run(ctx context.Context) (setup, hold Result, err error) {
	if s.Setup.artifactPath == "" {
		return setup, hold, errors.New("setup run has no artifact")
	}

	setup, err = s.Setup.Run(ctx)
	if err != nil {
		return setup, hold, errors.Wrap(err, "setup")
	}

	setupTimes, err := LoadSetupTimes(s.Setup.artifactPath)
	if err != nil {
		return setup, hold, err
	}

	hold, err = s.NewHold(setupTimes).Run(ctx)
	if err != nil {
		return setup, hold, errors.Wrap(err, "hold")
	}

	return setup, hold, nil
}
