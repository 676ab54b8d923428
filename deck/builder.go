package deck

import "github.com/sarchlab/tsuho/macro"

// A Builder can build SpectreEmitters.
type Builder struct {
	conditions  macro.Conditions
	circuit     string
	preamble    string
	netlist     string
	nodeset     string
	description string
}

// MakeBuilder creates a builder with the default include files.
func MakeBuilder() Builder {
	return Builder{
		netlist: "netlist.cir",
		nodeset: "nodeset.ns",
	}
}

// WithConditions sets the clock and pin transition times.
func (b Builder) WithConditions(c macro.Conditions) Builder {
	b.conditions = c
	return b
}

// WithCircuit sets the name of the subcircuit to instantiate. It defaults to
// the macro name.
func (b Builder) WithCircuit(name string) Builder {
	b.circuit = name
	return b
}

// WithPreamble sets a file included before the netlist, typically holding the
// device models.
func (b Builder) WithPreamble(path string) Builder {
	b.preamble = path
	return b
}

// WithNetlist sets the netlist file that defines the macro.
func (b Builder) WithNetlist(path string) Builder {
	b.netlist = path
	return b
}

// WithNodeset sets the nodeset file read by the transient analysis.
func (b Builder) WithNodeset(path string) Builder {
	b.nodeset = path
	return b
}

// WithDescription adds a line to the header comment.
func (b Builder) WithDescription(d string) Builder {
	b.description = d
	return b
}

// Build creates a SpectreEmitter for the macro.
func (b Builder) Build(m macro.Macro) *SpectreEmitter {
	b.parametersMustBeValid(m)

	circuit := b.circuit
	if circuit == "" {
		circuit = m.Name
	}

	return &SpectreEmitter{
		macro:       m,
		conditions:  b.conditions,
		circuit:     circuit,
		preamble:    b.preamble,
		netlist:     b.netlist,
		nodeset:     b.nodeset,
		description: b.description,
	}
}

func (b Builder) parametersMustBeValid(m macro.Macro) {
	if m.NumAddr <= 0 || m.NumBits <= 0 {
		panic("macro must have at least one address line and one bit")
	}

	if m.Name == "" && b.circuit == "" {
		panic("circuit name is not set")
	}

	if b.netlist == "" {
		panic("netlist is not set")
	}

	if b.nodeset == "" {
		panic("nodeset is not set")
	}
}
