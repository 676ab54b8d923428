// Package macro describes the memory macro under characterization and the
// operating conditions it is simulated at.
package macro

import "fmt"

// A Macro is a memory macro of a given size, simulated at a supply voltage and
// junction temperature.
type Macro struct {
	Name    string
	NumAddr int
	NumBits int
	VDD     float64
	Temp    float64
}

// New creates a macro with the default name derived from its size.
func New(numAddr, numBits int, vdd, temp float64) Macro {
	m := Macro{
		NumAddr: numAddr,
		NumBits: numBits,
		VDD:     vdd,
		Temp:    temp,
	}
	m.Name = fmt.Sprintf("PS%dX%d", m.NumWords(), numBits)

	return m
}

// NumWords returns the number of words stored in the macro.
func (m Macro) NumWords() int {
	return 1 << m.NumAddr
}

// Threshold returns the voltage at which signal transitions are detected.
func (m Macro) Threshold() float64 {
	return m.VDD / 2
}

// Describe returns a one-line summary of the macro and its conditions.
func (m Macro) Describe() string {
	return fmt.Sprintf("%d words, %d bits, at %gV, %g°C",
		m.NumWords(), m.NumBits, m.VDD, m.Temp)
}

// Conditions holds the transition times applied during a characterization.
type Conditions struct {
	// ClockSlew is the transition time of the clock edges.
	ClockSlew float64

	// PinSlew is the transition time of the stimulus edges.
	PinSlew float64
}
