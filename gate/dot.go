package gate

import (
	"fmt"
	"io"
)

// WriteDot writes the gate-dependency graph to w: a vertex per gate that
// participates in at least one edge, and an edge from gate A to gate B
// whenever an input literal of B equals the output literal of A. Learnt
// gates render with a distinct fill color. This has no functional
// significance -- it exists purely for debugging.
func (f *Finder) WriteDot(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "digraph G {"); err != nil {
		return err
	}

	used := make(map[GateID]bool)
	var writeErr error
	f.store.ForEachLive(func(b GateID, gate OrGate) {
		if writeErr != nil {
			return
		}
		for _, l := range gate.Inputs {
			for _, a := range f.store.ByOutput(l) {
				if a == b {
					continue
				}
				if f.store.Gate(a).Removed {
					continue
				}
				used[a] = true
				used[b] = true
				if _, err := fmt.Fprintf(w, "Gate%d -> Gate%d [arrowsize=\"0.4\"];\n", a, b); err != nil {
					writeErr = err
					return
				}
			}
		}
	})
	if writeErr != nil {
		return writeErr
	}

	for id := range used {
		g := f.store.Gate(id)
		color := "darkseagreen"
		if g.Learnt {
			color = "darkseagreen4"
		}
		if _, err := fmt.Fprintf(w, "Gate%d [shape=\"point\", size=0.8, style=\"filled\", color=\"%s\"];\n", id, color); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}
