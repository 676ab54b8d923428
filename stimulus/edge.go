package stimulus

// Edge is the logical direction of a transition.
type Edge int

// The two edge directions. Every probe is characterized once per direction.
const (
	Rise Edge = iota
	Fall
)

// Edges lists both directions in reporting order.
var Edges = []Edge{Rise, Fall}

func (e Edge) String() string {
	if e == Rise {
		return "rise"
	}

	return "fall"
}

// A Key identifies one characterized (probe, edge) pair.
type Key struct {
	Probe string
	Edge  Edge
}

func (k Key) String() string {
	return k.Probe + "_" + k.Edge.String()
}

// Label returns the artifact label of the key for a metric, for example
// "Tsu_RA_rise".
func (k Key) Label(metric string) string {
	return metric + "_" + k.String()
}
