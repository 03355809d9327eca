package locomotion

import (
	"github.com/milk9111/playerfsm/component"
	"github.com/milk9111/playerfsm/fsm"
)

// Machine is the locomotion state machine.
type Machine = fsm.Machine[component.LocomotionState, *component.Context]

// Timer is implemented by states that count down a fixed duration.
type Timer interface {
	Remaining() float64
}

// New registers the locomotion states and their input-driven transitions.
// The caller initializes the machine. Dead has no outgoing transition and is
// only reachable through ChangeState from the coordinator.
func New() *Machine {
	m := fsm.New[component.LocomotionState, *component.Context]("locomotion")

	m.RegisterState(component.LocomotionIdle, idleState{})
	m.RegisterState(component.LocomotionMove, moveState{})
	m.RegisterState(component.LocomotionDodge, &dodgeState{m: m})
	m.RegisterState(component.LocomotionHit, &hitState{m: m})
	m.RegisterState(component.LocomotionDead, deadState{})

	// dodge is declared first so it pre-empts movement
	m.AddTransition(component.LocomotionIdle, component.LocomotionDodge, dodgeRequested)
	m.AddTransition(component.LocomotionIdle, component.LocomotionMove, hasMoveInput)
	m.AddTransition(component.LocomotionMove, component.LocomotionDodge, dodgeRequested)
	m.AddTransition(component.LocomotionMove, component.LocomotionIdle, noMoveInput)

	return m
}

func dodgeRequested(ctx *component.Context) bool {
	return ctx.Input().DodgePressed
}

func hasMoveInput(ctx *component.Context) bool {
	return !ctx.Input().Move.IsZero()
}

func noMoveInput(ctx *component.Context) bool {
	return ctx.Input().Move.IsZero()
}

// Remaining returns the countdown of the current state, if it has one.
func Remaining(m *Machine) (float64, bool) {
	if m == nil || !m.IsActive() {
		return 0, false
	}
	state, ok := m.Lookup(m.Current())
	if !ok {
		return 0, false
	}
	timer, ok := state.(Timer)
	if !ok {
		return 0, false
	}
	return timer.Remaining(), true
}
