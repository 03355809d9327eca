package combat

import (
	"github.com/milk9111/playerfsm/component"
	"github.com/milk9111/playerfsm/fsm"
)

// Machine is the combat state machine.
type Machine = fsm.Machine[component.CombatState, *component.Context]

// New registers the combat states. Combat transitions are timer and input
// driven and decided inside the states, so no guards are declared.
func New() *Machine {
	m := fsm.New[component.CombatState, *component.Context]("combat")

	m.RegisterState(component.CombatNone, noneState{m: m})
	m.RegisterState(component.CombatCharging, chargingState{m: m})
	m.RegisterState(component.CombatHolding, holdingState{m: m})
	m.RegisterState(component.CombatAttack, &attackState{m: m})

	return m
}

// AttackRemaining returns the seconds left in the current attack.
func AttackRemaining(m *Machine) (float64, bool) {
	if m == nil || !m.IsActive() || m.Current() != component.CombatAttack {
		return 0, false
	}
	state, ok := m.Lookup(component.CombatAttack)
	if !ok {
		return 0, false
	}
	a, ok := state.(*attackState)
	if !ok {
		return 0, false
	}
	return a.Remaining(), true
}
