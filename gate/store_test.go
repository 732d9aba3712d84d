package gate

import (
	"testing"

	"github.com/cnfopt/gatefinder/internal/sat"
)

func TestStore_Add_SetsDontEliminateOnOutput(t *testing.T) {
	s := NewStore()
	output := sat.PosLit(3)
	g := OrGate{Inputs: []sat.Lit{sat.PosLit(0), sat.PosLit(1)}, Output: output}

	s.Add(g)

	if !s.DontEliminate(output.Var()) {
		t.Errorf("DontEliminate(%v): want true, got false", output.Var())
	}
	if s.DontEliminate(sat.Var(99)) {
		t.Errorf("DontEliminate() for an unrelated var: want false, got true")
	}
}

func TestStore_HasIdenticalGate_DedupsByInputSetIrrespectiveOfOrder(t *testing.T) {
	s := NewStore()
	output := sat.PosLit(0)
	s.Add(OrGate{Inputs: []sat.Lit{sat.PosLit(1), sat.PosLit(2)}, Output: output})

	if !s.HasIdenticalGate(output, []sat.Lit{sat.PosLit(2), sat.PosLit(1)}) {
		t.Errorf("HasIdenticalGate() with reordered inputs: want true, got false")
	}
	if s.HasIdenticalGate(output, []sat.Lit{sat.PosLit(1), sat.PosLit(3)}) {
		t.Errorf("HasIdenticalGate() with a different input set: want false, got true")
	}
}

func TestStore_ByInput_ExcludesLearntGates(t *testing.T) {
	s := NewStore()
	in := sat.PosLit(1)

	s.Add(OrGate{Inputs: []sat.Lit{in}, Output: sat.PosLit(0), Learnt: false})
	s.Add(OrGate{Inputs: []sat.Lit{in}, Output: sat.PosLit(2), Learnt: true})

	if got := len(s.ByInput(in)); got != 1 {
		t.Errorf("ByInput(%v): want 1 non-learnt posting, got %d", in, got)
	}
	if got := len(s.ByOutput(sat.PosLit(2))); got != 1 {
		t.Errorf("ByOutput() for the learnt gate's own output: want 1, got %d", got)
	}
}

func TestStore_MarkRemoved_ExcludedFromForEachLive(t *testing.T) {
	s := NewStore()
	id := s.Add(OrGate{Inputs: []sat.Lit{sat.PosLit(1)}, Output: sat.PosLit(0)})
	s.Add(OrGate{Inputs: []sat.Lit{sat.PosLit(2)}, Output: sat.PosLit(3)})

	s.MarkRemoved(id)

	if got := s.NumLive(); got != 1 {
		t.Errorf("NumLive() after MarkRemoved: want 1, got %d", got)
	}
	s.ForEachLive(func(gotID GateID, _ OrGate) {
		if gotID == id {
			t.Errorf("ForEachLive() visited removed gate %d", id)
		}
	})
}

func TestStore_Clear_PreservesDontEliminateButEmptiesIndexes(t *testing.T) {
	s := NewStore()
	output := sat.PosLit(0)
	s.Add(OrGate{Inputs: []sat.Lit{sat.PosLit(1)}, Output: output})

	s.Clear(nil)

	if got := s.NumLive(); got != 0 {
		t.Errorf("NumLive() after Clear: want 0, got %d", got)
	}
	if !s.DontEliminate(output.Var()) {
		t.Errorf("DontEliminate(%v) after Clear: want true (persists per spec), got false", output.Var())
	}
}
