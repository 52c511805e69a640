package dfa

// Emitter is the output contract spec.md §6 reserves for an external JIT
// backend: given a built DFA, it consumes each state's transition row (or
// the optimizer's AlterTrans summary, when available) and produces
// executable code or a serialized table. This package ships no concrete
// implementation — JIT/SSFA generation is explicitly out of scope — only
// this interface and the read-only accessors it needs (State.Transitions,
// State.Accept, State.AlterTransition, State.InlineLevel, StateLabel).
type Emitter interface {
	// EmitState is called once per reachable state, in id order.
	EmitState(d *DFA, s *State) error
}

// Emit drives emitter over every state of d, in id order. Returns an error
// from EmitState without visiting further states, or ErrStateLimitExceeded
// if d is incomplete (an external emitter cannot safely codegen a partial
// automaton).
func Emit(d *DFA, emitter Emitter) error {
	if !d.complete {
		return ErrStateLimitExceeded
	}
	for _, s := range d.states {
		if err := emitter.EmitState(d, s); err != nil {
			return err
		}
	}
	return nil
}
