package dfa

import (
	"errors"
	"testing"

	"github.com/coregx/glushkondfa/expr"
)

type recordingEmitter struct {
	visited []StateID
}

func (r *recordingEmitter) EmitState(d *DFA, s *State) error {
	r.visited = append(r.visited, s.ID())
	return nil
}

func TestEmitVisitsEveryStateInOrder(t *testing.T) {
	d := mustBuild(t, "cat|dog", DefaultOptions())
	rec := &recordingEmitter{}

	if err := Emit(d, rec); err != nil {
		t.Fatalf("Emit: %v", err)
	}
	if len(rec.visited) != d.Len() {
		t.Fatalf("Emit visited %d states, want %d", len(rec.visited), d.Len())
	}
	for i, id := range rec.visited {
		if int(id) != i {
			t.Errorf("visited[%d] = %d, want %d (id order)", i, id, i)
		}
	}
}

type failingEmitter struct{}

func (failingEmitter) EmitState(d *DFA, s *State) error {
	return errors.New("boom")
}

func TestEmitStopsOnError(t *testing.T) {
	d := mustBuild(t, "abc", DefaultOptions())
	if err := Emit(d, failingEmitter{}); err == nil {
		t.Fatal("expected Emit to propagate the emitter's error")
	}
}

func TestEmitRefusesIncompleteDFA(t *testing.T) {
	tree, err := expr.Compile("[a-z]{0,20}x", expr.SyntaxFlags)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	d, buildErr := Build(tree, DefaultOptions().WithStateLimit(2))
	if buildErr == nil {
		t.Fatal("expected a state-limit error for this pattern with StateLimit=2")
	}
	if err := Emit(d, &recordingEmitter{}); err == nil {
		t.Fatal("Emit on an incomplete DFA should return an error")
	}
}
