// Package deck produces the simulator input that realizes a stimulus schedule.
package deck

import (
	"fmt"
	"strings"
)

// A Param is a name=value argument of a statement. Params with a nil value
// are left out.
type Param struct {
	Name  string
	Value interface{}
}

// P creates a Param.
func P(name string, value interface{}) Param {
	return Param{Name: name, Value: value}
}

// A Writer accumulates the lines of a SPECTRE netlist.
type Writer struct {
	lines []string
}

// Skip adds an empty line.
func (w *Writer) Skip() {
	w.lines = append(w.lines, "")
}

// Comment adds one comment line per argument. Empty arguments produce bare
// comment markers.
func (w *Writer) Comment(lines ...string) {
	for _, l := range lines {
		w.lines = append(w.lines, strings.TrimSpace("// "+l))
	}
}

// Include adds include statements for the files.
func (w *Writer) Include(files ...string) {
	for _, f := range files {
		w.lines = append(w.lines, fmt.Sprintf("include %q", f))
	}
}

// Stmt adds a statement made of the space-separated arguments.
func (w *Writer) Stmt(args ...interface{}) {
	fields := make([]string, 0, len(args))
	for _, a := range args {
		if s, ok := argify(a); ok {
			fields = append(fields, s)
		}
	}

	w.lines = append(w.lines, strings.Join(fields, " "))
}

// Instance adds a subcircuit or primitive instance.
func (w *Writer) Instance(name string, terminals []string, args ...interface{}) {
	all := append([]interface{}{name, "(" + strings.Join(terminals, " ") + ")"},
		args...)
	w.Stmt(all...)
}

// VSource adds a voltage source between out and gnd.
func (w *Writer) VSource(name, out, gnd, kind string, args ...interface{}) {
	all := append([]interface{}{"vsource", P("type", kind)}, args...)
	w.Instance(name, []string{out, gnd}, all...)
}

// VDC adds a constant voltage source referenced to ground.
func (w *Writer) VDC(name, out string, v interface{}) {
	w.VSource(name, out, "0", "dc", P("dc", v))
}

// PulseShape describes the timing of a pulse source. Nil fields are omitted.
type PulseShape struct {
	Delay  interface{}
	Width  interface{}
	Period interface{}
	Rise   interface{}
	Fall   interface{}
}

// VPulse adds a pulse voltage source.
func (w *Writer) VPulse(name, out, gnd string, val0, val1 interface{}, s PulseShape) {
	w.VSource(name, out, gnd, "pulse",
		P("val0", val0), P("val1", val1),
		P("delay", s.Delay), P("width", s.Width), P("period", s.Period),
		P("rise", s.Rise), P("fall", s.Fall))
}

// Tran adds a transient analysis.
func (w *Writer) Tran(stop float64, errpreset, readns string) {
	w.Stmt("tran", "tran",
		P("stop", stop), P("errpreset", errpreset), P("readns", readns))
}

// String returns the netlist text.
func (w *Writer) String() string {
	var b strings.Builder
	for _, l := range w.lines {
		b.WriteString(strings.ReplaceAll(l, "\n", " \\\n"))
		b.WriteByte('\n')
	}

	return b.String()
}

// Num formats a number the way the simulator reads it back without loss of
// the relevant digits.
func Num(v float64) string {
	return fmt.Sprintf("%.8g", v)
}

func argify(v interface{}) (string, bool) {
	switch v := v.(type) {
	case nil:
		return "", false
	case Param:
		s, ok := argify(v.Value)
		if !ok {
			return "", false
		}
		return v.Name + "=" + s, true
	case int:
		return fmt.Sprintf("%d", v), true
	case float64:
		return Num(v), true
	case string:
		return v, true
	default:
		return fmt.Sprint(v), true
	}
}
