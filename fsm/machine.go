package fsm

import (
	"errors"
	"fmt"
)

// ErrUnknownState is raised (as a panic) when a machine is asked to enter an id
// that was never registered. It always indicates a composer bug.
var ErrUnknownState = errors.New("fsm: unknown state")

// State is a single node of a Machine. C is the shared context every state of
// the machine receives.
type State[C any] interface {
	Enter(ctx C)
	Tick(ctx C)
	Exit(ctx C)
}

// Guard decides whether a declared transition may fire.
type Guard[C any] func(ctx C) bool

// Transition is a declarative, guarded edge between two states.
type Transition[ID comparable, C any] struct {
	From  ID
	To    ID
	Guard Guard[C] // nil = always
}

// TransitionEvent is published after the new state has been entered.
type TransitionEvent[ID comparable] struct {
	Previous ID
	Next     ID
}

type listener[ID comparable] struct {
	id int
	fn func(TransitionEvent[ID])
}

// Machine drives exactly one active state through Enter/Tick/Exit.
type Machine[ID comparable, C any] struct {
	name string

	states      map[ID]State[C]
	transitions map[ID][]Transition[ID, C]

	ctx     C
	current ID
	state   State[C]
	active  bool
	retired bool

	// changes requested while a transition is in flight
	transitioning bool
	pending       []ID

	listeners []listener[ID]
	nextSub   int
}

// New creates an empty machine. The name only shows up in panics and logs.
func New[ID comparable, C any](name string) *Machine[ID, C] {
	return &Machine[ID, C]{
		name:        name,
		states:      make(map[ID]State[C]),
		transitions: make(map[ID][]Transition[ID, C]),
	}
}

// Name returns the machine name.
func (m *Machine[ID, C]) Name() string {
	return m.name
}

// RegisterState inserts or overwrites the state for id.
func (m *Machine[ID, C]) RegisterState(id ID, state State[C]) {
	m.states[id] = state
}

// Has reports whether id was registered.
func (m *Machine[ID, C]) Has(id ID) bool {
	_, ok := m.states[id]
	return ok
}

// Lookup returns the state registered for id.
func (m *Machine[ID, C]) Lookup(id ID) (State[C], bool) {
	state, ok := m.states[id]
	return state, ok
}

// AddTransition declares a guarded transition. Transitions sharing the same
// from id are evaluated in registration order.
func (m *Machine[ID, C]) AddTransition(from, to ID, guard Guard[C]) {
	m.transitions[from] = append(m.transitions[from], Transition[ID, C]{From: from, To: to, Guard: guard})
}

// Transitions returns a copy of the declared transitions leaving from.
func (m *Machine[ID, C]) Transitions(from ID) []Transition[ID, C] {
	list := m.transitions[from]
	out := make([]Transition[ID, C], len(list))
	copy(out, list)
	return out
}

// Initialize enters start and activates the machine. It does nothing on a
// machine that is already active or was deactivated.
func (m *Machine[ID, C]) Initialize(ctx C, start ID) {
	state := m.lookup(start)
	if m.active || m.retired {
		return
	}
	m.ctx = ctx
	m.current = start
	m.state = state
	m.active = true
	state.Enter(ctx)
}

// ChangeState exits the current state, enters next and then notifies
// subscribers. Calls made while inactive or with the current id do nothing.
// A call made from Exit, Enter or a subscriber runs once the transition in
// flight has been published.
func (m *Machine[ID, C]) ChangeState(next ID) {
	if !m.active {
		return
	}
	m.lookup(next)
	if m.transitioning {
		m.pending = append(m.pending, next)
		return
	}

	m.transitioning = true
	defer func() {
		m.transitioning = false
		m.pending = nil
	}()

	m.transition(next)
	for len(m.pending) > 0 {
		next, m.pending = m.pending[0], m.pending[1:]
		m.transition(next)
	}
}

func (m *Machine[ID, C]) transition(next ID) {
	if !m.active || next == m.current {
		return
	}
	target := m.lookup(next)

	previous := m.current
	m.state.Exit(m.ctx)
	m.current = next
	m.state = target
	target.Enter(m.ctx)

	m.publish(TransitionEvent[ID]{Previous: previous, Next: next})
}

// Tick runs the current state once.
func (m *Machine[ID, C]) Tick() {
	if !m.active {
		return
	}
	m.state.Tick(m.ctx)
}

// Evaluate fires the first declared transition of the current state whose
// guard passes. It reports whether a transition fired.
func (m *Machine[ID, C]) Evaluate() bool {
	if !m.active {
		return false
	}
	for _, t := range m.transitions[m.current] {
		if t.Guard != nil && !t.Guard(m.ctx) {
			continue
		}
		if t.To == m.current {
			return false
		}
		m.ChangeState(t.To)
		return true
	}
	return false
}

// Update evaluates declared transitions and ticks the current state when none
// of them fired.
func (m *Machine[ID, C]) Update() {
	if m.Evaluate() {
		return
	}
	m.Tick()
}

// Deactivate exits the current state and stops the machine for good.
func (m *Machine[ID, C]) Deactivate() {
	if !m.active {
		return
	}
	m.active = false
	m.retired = true
	state := m.state
	m.state = nil
	state.Exit(m.ctx)
}

// Current returns the id of the active state. After Deactivate it keeps
// reporting the last state that was active.
func (m *Machine[ID, C]) Current() ID {
	return m.current
}

// IsActive reports whether the machine is initialized and not deactivated.
func (m *Machine[ID, C]) IsActive() bool {
	return m.active
}

// Retired reports whether Deactivate has been called.
func (m *Machine[ID, C]) Retired() bool {
	return m.retired
}

// Context returns the context passed to Initialize.
func (m *Machine[ID, C]) Context() C {
	return m.ctx
}

// Subscribe registers fn for transition notifications and returns a function
// that removes it again.
func (m *Machine[ID, C]) Subscribe(fn func(TransitionEvent[ID])) func() {
	if fn == nil {
		return func() {}
	}
	m.nextSub++
	id := m.nextSub
	m.listeners = append(m.listeners, listener[ID]{id: id, fn: fn})
	return func() {
		for i, l := range m.listeners {
			if l.id == id {
				m.listeners = append(m.listeners[:i:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}

func (m *Machine[ID, C]) publish(ev TransitionEvent[ID]) {
	// snapshot so listeners may unsubscribe while being notified
	listeners := append([]listener[ID](nil), m.listeners...)
	for _, l := range listeners {
		l.fn(ev)
	}
}

func (m *Machine[ID, C]) lookup(id ID) State[C] {
	state, ok := m.states[id]
	if !ok || state == nil {
		panic(fmt.Errorf("%w: machine %q has no state %v", ErrUnknownState, m.name, id))
	}
	return state
}
