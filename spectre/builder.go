package spectre

import (
	"io"
)

// A Builder can build Runners.
type Builder struct {
	workDir string
	spectre Command
	ocean   Command
	output  string
	stdout  io.Writer
	stderr  io.Writer
	aps     bool
}

// MakeBuilder creates a builder with the default Cadence tool invocations.
func MakeBuilder() Builder {
	return Builder{
		workDir: ".",
		spectre: Command{"cds_mmsim", "spectre"},
		ocean:   Command{"cds_ic6", "ocean"},
		output:  "psf",
		aps:     true,
	}
}

// WithWorkDir sets the directory the tools run in.
func (b Builder) WithWorkDir(dir string) Builder {
	b.workDir = dir
	return b
}

// WithSpectreCommand sets the simulator invocation.
func (b Builder) WithSpectreCommand(cmd Command) Builder {
	b.spectre = cmd
	return b
}

// WithOceanCommand sets the analysis environment invocation.
func (b Builder) WithOceanCommand(cmd Command) Builder {
	b.ocean = cmd
	return b
}

// WithOutput sets the raw output directory, relative to the work directory.
func (b Builder) WithOutput(dir string) Builder {
	b.output = dir
	return b
}

// WithStdout forwards the standard output of the tools. By default it is
// discarded.
func (b Builder) WithStdout(w io.Writer) Builder {
	b.stdout = w
	return b
}

// WithStderr forwards the standard error of the tools. By default it is
// discarded.
func (b Builder) WithStderr(w io.Writer) Builder {
	b.stderr = w
	return b
}

// WithAPS enables or disables the accelerated parallel simulator.
func (b Builder) WithAPS(enabled bool) Builder {
	b.aps = enabled
	return b
}

// Build creates a Runner.
func (b Builder) Build() *Runner {
	b.parametersMustBeValid()

	return &Runner{
		workDir: b.workDir,
		spectre: b.spectre,
		ocean:   b.ocean,
		output:  b.output,
		stdout:  b.stdout,
		stderr:  b.stderr,
		aps:     b.aps,
	}
}

func (b Builder) parametersMustBeValid() {
	if len(b.spectre) == 0 {
		panic("spectre command is not set")
	}

	if len(b.ocean) == 0 {
		panic("ocean command is not set")
	}

	if b.output == "" {
		panic("output directory is not set")
	}
}
