package gate

import (
	"strings"
	"testing"

	"github.com/cnfopt/gatefinder/internal/sat"
)

func TestWriteDot_EmitsEdgeBetweenDependentGates(t *testing.T) {
	env := newTestEnv(t, 5)
	store := NewStore()
	finder := NewFinder(env.solver, env.sub, store, DefaultConfig)

	a := store.Add(OrGate{Inputs: []sat.Lit{sat.PosLit(1), sat.PosLit(2)}, Output: sat.PosLit(0)})
	b := store.Add(OrGate{Inputs: []sat.Lit{sat.PosLit(0), sat.PosLit(4)}, Output: sat.PosLit(3), Learnt: true})

	var buf strings.Builder
	if err := finder.WriteDot(&buf); err != nil {
		t.Fatalf("WriteDot(): %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "digraph G {\n") || !strings.HasSuffix(out, "}\n") {
		t.Fatalf("WriteDot(): want a well-formed digraph block, got %q", out)
	}
	wantEdge := "Gate0 -> Gate1 [arrowsize=\"0.4\"];"
	if !strings.Contains(out, wantEdge) {
		t.Errorf("WriteDot(): want edge %q since gate %d's output feeds gate %d's input, got %q", wantEdge, a, b, out)
	}
	if !strings.Contains(out, "Gate0 [shape=\"point\", size=0.8, style=\"filled\", color=\"darkseagreen\"];") {
		t.Errorf("WriteDot(): want a non-learnt vertex for gate 0, got %q", out)
	}
	if !strings.Contains(out, "Gate1 [shape=\"point\", size=0.8, style=\"filled\", color=\"darkseagreen4\"];") {
		t.Errorf("WriteDot(): want a learnt vertex for gate 1, got %q", out)
	}
}

func TestWriteDot_OmitsVerticesWithNoEdges(t *testing.T) {
	env := newTestEnv(t, 3)
	store := NewStore()
	finder := NewFinder(env.solver, env.sub, store, DefaultConfig)

	store.Add(OrGate{Inputs: []sat.Lit{sat.PosLit(1), sat.PosLit(2)}, Output: sat.PosLit(0)})

	var buf strings.Builder
	if err := finder.WriteDot(&buf); err != nil {
		t.Fatalf("WriteDot(): %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "Gate0 [") {
		t.Errorf("WriteDot(): an isolated gate participating in no edges should not get a vertex line, got %q", out)
	}
	if out != "digraph G {\n}\n" {
		t.Errorf("WriteDot() for an isolated gate: want just the empty digraph shell, got %q", out)
	}
}
