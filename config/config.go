// Package config collects the settings of a characterization from .env files
// and TSUHO_ environment variables.
package config

import (
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

// DefaultFile is the .env file read when Load is given no path.
const DefaultFile = ".env"

// EnvPrefix starts the name of every environment variable read by Load.
const EnvPrefix = "TSUHO_"

// Config holds everything needed to set up and run a characterization.
type Config struct {
	SpectreCommand []string
	APS            bool

	Preamble string
	Netlist  string
	Nodeset  string
	WorkDir  string

	Period          float64
	NumSteps        int
	ThresholdRatio  float64
	MaxIterations   int
	TargetPrecision float64

	ClockSlew float64
	PinSlew   float64

	MonitorPort int
	RecordPath  string
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		SpectreCommand:  []string{"cds_mmsim", "spectre"},
		APS:             true,
		Netlist:         "netlist.cir",
		Nodeset:         "nodeset.ns",
		WorkDir:         ".",
		Period:          5e-9,
		NumSteps:        3,
		ThresholdRatio:  1.05,
		MaxIterations:   10,
		TargetPrecision: 1e-12,
		ClockSlew:       10e-12,
		PinSlew:         10e-12,
	}
}

// Load starts from the defaults and applies the given .env files, then the
// environment. Variables already in the environment win over the files. With
// no path, the default .env file is read if it exists.
func Load(paths ...string) (Config, error) {
	c := DefaultConfig()

	file, err := readFiles(paths)
	if err != nil {
		return c, err
	}

	lookup := func(name string) (string, bool) {
		name = EnvPrefix + name
		if v, ok := os.LookupEnv(name); ok {
			return v, true
		}

		v, ok := file[name]

		return v, ok
	}

	err = c.apply(lookup)

	return c, err
}

// Validate reports the first setting that a characterization cannot run
// with.
func (c Config) Validate() error {
	switch {
	case len(c.SpectreCommand) == 0:
		return errors.New(EnvPrefix + "SPECTRE: empty command")
	case c.Netlist == "":
		return errors.New(EnvPrefix + "NETLIST: not set")
	case c.Nodeset == "":
		return errors.New(EnvPrefix + "NODESET: not set")
	case c.Period <= 0:
		return errors.Errorf("period must be positive, got %g", c.Period)
	case c.NumSteps < 2:
		return errors.Errorf("at least 2 steps are needed, got %d", c.NumSteps)
	case c.ThresholdRatio <= 1:
		return errors.Errorf("threshold ratio must be greater than 1, got %g",
			c.ThresholdRatio)
	case c.MaxIterations <= 0:
		return errors.Errorf("max iterations must be positive, got %d",
			c.MaxIterations)
	case c.TargetPrecision < 0:
		return errors.Errorf("target precision must not be negative, got %g",
			c.TargetPrecision)
	case c.ClockSlew < 0 || c.PinSlew < 0:
		return errors.New("slews must not be negative")
	case c.MonitorPort < 0 || c.MonitorPort > 65535:
		return errors.Errorf("invalid monitor port %d", c.MonitorPort)
	}

	return nil
}

func readFiles(paths []string) (map[string]string, error) {
	if len(paths) > 0 {
		values, err := godotenv.Read(paths...)
		return values, errors.Wrap(err, "read env file")
	}

	_, err := os.Stat(DefaultFile)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}

	values, err := godotenv.Read(DefaultFile)

	return values, errors.Wrap(err, "read env file")
}

type lookupFunc func(name string) (string, bool)

func (c *Config) apply(lookup lookupFunc) error {
	p := parser{lookup: lookup}

	p.command("SPECTRE", &c.SpectreCommand)
	p.boolean("APS", &c.APS)
	p.str("PREAMBLE", &c.Preamble)
	p.str("NETLIST", &c.Netlist)
	p.str("NODESET", &c.Nodeset)
	p.str("WORK_DIR", &c.WorkDir)
	p.float("PERIOD", &c.Period)
	p.integer("NUM_STEPS", &c.NumSteps)
	p.float("THRESHOLD_RATIO", &c.ThresholdRatio)
	p.integer("MAX_ITERATIONS", &c.MaxIterations)
	p.float("TARGET_PRECISION", &c.TargetPrecision)
	p.float("CLOCK_SLEW", &c.ClockSlew)
	p.float("PIN_SLEW", &c.PinSlew)
	p.integer("MONITOR_PORT", &c.MonitorPort)
	p.str("RECORD", &c.RecordPath)

	return p.err
}

// parser keeps the first error so that the fields can be set in a row.
type parser struct {
	lookup lookupFunc
	err    error
}

func (p *parser) str(name string, dst *string) {
	if v, ok := p.lookup(name); ok {
		*dst = v
	}
}

func (p *parser) command(name string, dst *[]string) {
	v, ok := p.lookup(name)
	if !ok {
		return
	}

	fields := strings.Fields(v)
	if len(fields) == 0 {
		p.fail(name, errors.New("empty command"))
		return
	}

	*dst = fields
}

func (p *parser) float(name string, dst *float64) {
	v, ok := p.lookup(name)
	if !ok {
		return
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		p.fail(name, err)
		return
	}

	*dst = f
}

func (p *parser) integer(name string, dst *int) {
	v, ok := p.lookup(name)
	if !ok {
		return
	}

	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		p.fail(name, err)
		return
	}

	*dst = i
}

func (p *parser) boolean(name string, dst *bool) {
	v, ok := p.lookup(name)
	if !ok {
		return
	}

	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		p.fail(name, err)
		return
	}

	*dst = b
}

func (p *parser) fail(name string, err error) {
	if p.err == nil {
		p.err = errors.Wrapf(err, "%s%s", EnvPrefix, name)
	}
}
