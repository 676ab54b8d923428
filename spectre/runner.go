// Package spectre runs the circuit simulator and the analysis environment as
// external processes.
package spectre

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/sarchlab/tsuho/deck"
)

// File names used inside the work directory.
const (
	InputFile   = "input.scs"
	OceanFile   = "analyze.ocn"
	SpectreLog  = "spectre.out"
	OceanLog    = "CDS.log"
	dumpRelPath = "tran.tran.tran"
)

// ExitError reports that an external tool finished with a non-zero status.
type ExitError struct {
	Tool   string
	Status int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Tool, e.Status)
}

// A Command is an executable followed by its leading arguments.
type Command []string

// A Runner executes decks in a work directory.
type Runner struct {
	workDir string
	spectre Command
	ocean   Command
	output  string
	stdout  io.Writer
	stderr  io.Writer
	aps     bool
}

// Simulate writes the deck into the work directory, runs the simulator on it,
// and returns the path of the transient waveform dump. The OCEAN script is run
// afterwards if the deck carries one.
func (r *Runner) Simulate(ctx context.Context, d deck.Deck) (string, error) {
	err := os.MkdirAll(r.workDir, 0o755)
	if err != nil {
		return "", errors.Wrap(err, "creating work directory")
	}

	err = r.writeFile(InputFile, d.Spectre)
	if err != nil {
		return "", err
	}

	args := append([]string{}, r.spectre[1:]...)
	args = append(args, InputFile, "+escchars", "+log", SpectreLog,
		"-format", "psfascii", "-raw", r.output)
	if r.aps {
		args = append(args, "+aps")
	}

	err = r.run(ctx, "spectre", r.spectre[0], args)
	if err != nil {
		return "", err
	}

	if d.Ocean != "" {
		err = r.runOcean(ctx, d.Ocean)
		if err != nil {
			return "", err
		}
	}

	return r.DumpPath(), nil
}

// DumpPath returns where the simulator leaves the transient waveforms.
func (r *Runner) DumpPath() string {
	if filepath.IsAbs(r.output) {
		return filepath.Join(r.output, dumpRelPath)
	}

	return filepath.Join(r.workDir, r.output, dumpRelPath)
}

// WorkDir returns the directory the tools run in.
func (r *Runner) WorkDir() string {
	return r.workDir
}

func (r *Runner) runOcean(ctx context.Context, script string) error {
	err := r.writeFile(OceanFile, script)
	if err != nil {
		return err
	}

	args := append([]string{}, r.ocean[1:]...)
	args = append(args, "-nograph", "-log", OceanLog, "-replay", OceanFile)

	return r.run(ctx, "ocean", r.ocean[0], args)
}

func (r *Runner) writeFile(name, content string) error {
	path := filepath.Join(r.workDir, name)
	fmt.Fprintf(os.Stderr, "Generating %s\n", path)

	err := os.WriteFile(path, []byte(content), 0o644)

	return errors.Wrapf(err, "writing %s", name)
}

func (r *Runner) run(
	ctx context.Context,
	tool, name string,
	args []string,
) error {
	fmt.Fprintf(os.Stderr, "Executing %s in %s\n", tool, r.workDir)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.workDir
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Tool: tool, Status: exitErr.ExitCode()}
	}

	return errors.Wrapf(err, "running %s", tool)
}
