// Package workflow provides the status state-machine engine shared by every
// administrable entity type. Each entity declares a single table mapping a
// state to its presentation metadata (label, color) and its allowed successor
// states; the engine and the API layer both consume that table, so the
// transition graph exists exactly once.
package workflow

import (
	"context"
	"errors"
	"fmt"
	"sort"

	loopfsm "github.com/looplab/fsm"

	"github.com/backoffice/backend/internal/domain/shared"
)

// State is a status value of an administrable entity.
type State string

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// StateSpec declares one state: its presentation metadata and the set of
// states it may transition to. An empty Next marks a terminal state.
type StateSpec struct {
	Label string
	Color string
	Next  []State
}

// ErrAlreadyInState is returned by Step when the entity is already in the
// requested state. Callers treat it as a no-op success and must skip the
// transition's side effects so they apply exactly once.
var ErrAlreadyInState = errors.New("entity already in requested state")

// Machine is an immutable transition graph for one entity type.
type Machine struct {
	name    string
	initial State
	states  map[State]StateSpec
	events  []loopfsm.EventDesc
}

// NewMachine builds a machine from a declarative state table. It panics if
// the table is inconsistent (undeclared initial state or successor), since
// machines are package-level declarations and a bad table is a programming
// error, not a runtime condition.
func NewMachine(name string, initial State, states map[State]StateSpec) *Machine {
	if _, ok := states[initial]; !ok {
		panic(fmt.Sprintf("workflow %s: initial state %q not declared", name, initial))
	}
	for from, spec := range states {
		for _, to := range spec.Next {
			if _, ok := states[to]; !ok {
				panic(fmt.Sprintf("workflow %s: %q lists undeclared successor %q", name, from, to))
			}
		}
	}
	return &Machine{
		name:    name,
		initial: initial,
		states:  states,
		events:  buildEvents(states),
	}
}

// buildEvents converts the state table into looplab/fsm event descriptors:
// one event per destination state, sourced from every state that allows it.
func buildEvents(states map[State]StateSpec) []loopfsm.EventDesc {
	grouped := make(map[State][]string)
	for from, spec := range states {
		for _, to := range spec.Next {
			grouped[to] = append(grouped[to], string(from))
		}
	}
	dsts := make([]State, 0, len(grouped))
	for dst := range grouped {
		dsts = append(dsts, dst)
	}
	sort.Slice(dsts, func(i, j int) bool { return dsts[i] < dsts[j] })

	out := make([]loopfsm.EventDesc, 0, len(dsts))
	for _, dst := range dsts {
		srcs := grouped[dst]
		sort.Strings(srcs)
		out = append(out, loopfsm.EventDesc{
			Name: eventName(dst),
			Src:  srcs,
			Dst:  string(dst),
		})
	}
	return out
}

func eventName(to State) string {
	return "to_" + string(to)
}

// Name returns the machine name (the entity type it governs)
func (m *Machine) Name() string {
	return m.name
}

// Initial returns the state assigned to newly created entities
func (m *Machine) Initial() State {
	return m.initial
}

// Spec returns the declared spec for a state
func (m *Machine) Spec(s State) (StateSpec, bool) {
	spec, ok := m.states[s]
	return spec, ok
}

// Label returns the presentation label for a state, or the raw state value
// when the state is not declared.
func (m *Machine) Label(s State) string {
	if spec, ok := m.states[s]; ok {
		return spec.Label
	}
	return string(s)
}

// Color returns the presentation color for a state
func (m *Machine) Color(s State) string {
	if spec, ok := m.states[s]; ok {
		return spec.Color
	}
	return ""
}

// IsValid reports whether s is one of the machine's declared states
func (m *Machine) IsValid(s State) bool {
	_, ok := m.states[s]
	return ok
}

// IsTerminal reports whether s has no outgoing transitions
func (m *Machine) IsTerminal(s State) bool {
	spec, ok := m.states[s]
	return ok && len(spec.Next) == 0
}

// CanTransition reports whether (from, to) is an edge of the graph
func (m *Machine) CanTransition(from, to State) bool {
	spec, ok := m.states[from]
	if !ok {
		return false
	}
	for _, next := range spec.Next {
		if next == to {
			return true
		}
	}
	return false
}

// States returns all declared states in lexical order
func (m *Machine) States() []State {
	out := make([]State, 0, len(m.states))
	for s := range m.states {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Transition validates a transition without an explicit context. It exists
// for aggregate methods, which perform no I/O during validation.
func (m *Machine) Transition(current, target State) error {
	return m.Step(context.Background(), current, target)
}

// Step validates a transition from current to target. It returns
// ErrAlreadyInState when current == target (idempotent re-invocation) and an
// InvalidTransitionError when (current, target) is not an edge of the graph.
// The fsm instance is created per call because looplab/fsm tracks the current
// state internally; the entity row, not the machine, owns the state.
func (m *Machine) Step(ctx context.Context, current, target State) error {
	if current == target {
		return ErrAlreadyInState
	}
	if !m.IsValid(current) || !m.IsValid(target) {
		return &shared.InvalidTransitionError{Entity: m.name, From: string(current), To: string(target)}
	}

	machine := loopfsm.NewFSM(string(current), m.events, nil)
	if err := machine.Event(ctx, eventName(target)); err != nil {
		var invalidEvent loopfsm.InvalidEventError
		var unknownEvent loopfsm.UnknownEventError
		if errors.As(err, &invalidEvent) || errors.As(err, &unknownEvent) {
			return &shared.InvalidTransitionError{Entity: m.name, From: string(current), To: string(target)}
		}
		return err
	}
	return nil
}
