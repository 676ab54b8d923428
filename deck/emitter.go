package deck

import (
	"fmt"

	"github.com/sarchlab/tsuho/macro"
	"github.com/sarchlab/tsuho/stimulus"
)

// A Deck is the input of one simulation round. Ocean holds an optional
// post-processing script and may be empty.
type Deck struct {
	Spectre string
	Ocean   string
}

// Nodes that are saved in addition to the probe terminals and probe points.
var extraSavedNodes = []string{"CK", "X.XAD.nWE0"}

// A SpectreEmitter writes SPECTRE decks for one macro at one set of
// operating conditions.
type SpectreEmitter struct {
	macro       macro.Macro
	conditions  macro.Conditions
	circuit     string
	preamble    string
	netlist     string
	nodeset     string
	description string
}

// Emit renders the schedule into a deck.
func (e *SpectreEmitter) Emit(sched *stimulus.Schedule) (Deck, error) {
	w := &Writer{}
	w.Comment("Setup and hold time analysis for " + e.macro.Name)
	e.writeProlog(w)
	w.Stmt("parameters",
		P("tslewck", e.conditions.ClockSlew),
		P("tslewpin", e.conditions.PinSlew))
	w.Skip()

	w.Comment("Circuit Under Test")
	w.Instance("X", e.terminals(), e.circuit)
	w.VDC("VDD", "VDD", "vdd")
	w.Skip()

	e.writeClock(w, sched.Timing)

	w.Comment("Stimuli Generation")
	for _, ps := range sched.Probes {
		if err := e.writeStimulus(w, sched.Timing, ps); err != nil {
			return Deck{}, err
		}
	}
	w.Skip()

	w.Comment("Analysis")
	w.Tran(sched.Timing.SimulationTime(), "liberal", e.nodeset)
	w.Stmt(append([]interface{}{"save"}, e.savedNodes(sched)...)...)

	return Deck{Spectre: w.String()}, nil
}

func (e *SpectreEmitter) writeProlog(w *Writer) {
	w.Comment("", e.circuit, e.macro.Describe(), "")
	if e.description != "" {
		w.Comment(e.description, "")
	}

	if e.preamble != "" {
		w.Include(e.preamble)
	}
	w.Include(e.netlist)
	w.Skip()

	w.Comment("Operating Conditions")
	w.Stmt("o1 options", P("temp", e.macro.Temp), P("tnom", e.macro.Temp))
	w.Stmt("parameters", P("vdd", e.macro.VDD))
}

// terminals lists the connections of the macro instance. All address lines of
// a port share one node so that a single source drives them.
func (e *SpectreEmitter) terminals() []string {
	m := e.macro

	terms := []string{"CK", "RE"}
	terms = append(terms, repeat("RA", m.NumAddr)...)
	terms = append(terms, indexed("RD", m.NumBits)...)
	terms = append(terms, "WE")
	terms = append(terms, repeat("WA", m.NumAddr)...)
	terms = append(terms, repeat("WD", m.NumBits)...)
	terms = append(terms, "VDD", "0")

	return terms
}

// writeClock overlays two clock sources. The first carries the critical edge
// at which the margins are measured. The second provides a safe edge that
// puts the sequential cells into a known state after a violation.
func (e *SpectreEmitter) writeClock(w *Writer, t stimulus.Timing) {
	w.Comment("Clock Generation")
	w.VPulse("VCK0", "nCK1", "0", 0, "vdd", PulseShape{
		Delay:  Num(3*t.Period) + "-tslewck/2",
		Width:  Num(t.Period) + "-tslewck",
		Period: 4 * t.Period,
		Rise:   "tslewck",
		Fall:   "tslewck",
	})
	w.VPulse("VCK1", "CK", "nCK1", 0, "vdd", PulseShape{
		Delay:  Num(t.Period) + "-tslewck/2",
		Width:  Num(t.Period) + "-tslewck",
		Period: 4 * t.Period,
		Rise:   "tslewck",
		Fall:   "tslewck",
	})
	w.Skip()
}

// writeStimulus chains one pulse source per pulse in series between ground
// and the probe terminal.
func (e *SpectreEmitter) writeStimulus(
	w *Writer,
	t stimulus.Timing,
	ps stimulus.ProbeSchedule,
) error {
	if len(ps.Pulses) == 0 {
		return fmt.Errorf("probe %s has no stimulus pulses", ps.Probe.Name)
	}

	name := "V" + ps.Probe.Name
	nodes := []string{"0"}
	for i := 0; i < len(ps.Pulses)-1; i++ {
		nodes = append(nodes, fmt.Sprintf("n%s%d", name, i))
	}
	nodes = append(nodes, ps.Probe.Terminal)

	for i, p := range ps.Pulses {
		val1 := "vdd"
		if p.Inverted {
			val1 = "-vdd"
		}

		var period interface{}
		if p.Repeat {
			period = t.CycleLength()
		}

		w.VPulse(fmt.Sprintf("%s%d", name, i), nodes[i+1], nodes[i], "0", val1,
			PulseShape{
				Delay:  Num(p.Start) + "-tslewpin/2",
				Width:  Num(p.Width()) + "-tslewpin",
				Period: period,
				Rise:   "tslewpin",
				Fall:   "tslewpin",
			})
	}

	return nil
}

func (e *SpectreEmitter) savedNodes(sched *stimulus.Schedule) []interface{} {
	var nodes []interface{}
	for _, n := range extraSavedNodes {
		nodes = append(nodes, n)
	}

	for _, ps := range sched.Probes {
		nodes = append(nodes, ps.Probe.Terminal)
	}

	for _, ps := range sched.Probes {
		nodes = append(nodes, ps.Probe.ProbePoint)
	}

	return nodes
}

func repeat(name string, n int) []string {
	s := make([]string, n)
	for i := range s {
		s[i] = name
	}

	return s
}

func indexed(name string, n int) []string {
	s := make([]string, 0, n)
	for i := n - 1; i >= 0; i-- {
		s = append(s, fmt.Sprintf("%s%d", name, i))
	}

	return s
}
