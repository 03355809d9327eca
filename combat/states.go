package combat

import "github.com/milk9111/playerfsm/component"

type noneState struct {
	m *Machine
}

type chargingState struct {
	m *Machine
}

type holdingState struct {
	m *Machine
}

type attackState struct {
	m         *Machine
	remaining float64
}

func (s noneState) Enter(ctx *component.Context) {
	if r, ok := ctx.Charge.(component.ChargeResetter); ok {
		r.Reset()
	}
}
func (s noneState) Tick(ctx *component.Context) {
	if !ctx.Input().AttackPressed {
		return
	}
	if ctx.Owner.CanChargeAttack() {
		s.m.ChangeState(component.CombatCharging)
		return
	}
	s.m.ChangeState(component.CombatAttack)
}
func (s noneState) Exit(ctx *component.Context) {}

func (s chargingState) Enter(ctx *component.Context) {
	ctx.Animate("charge")
}
func (s chargingState) Tick(ctx *component.Context) {
	// a charge that completes on the same frame as the release still counts
	if ctx.Charge.IsComplete() {
		s.m.ChangeState(component.CombatHolding)
		return
	}
	if !ctx.Input().AttackHeld {
		s.m.ChangeState(component.CombatAttack)
	}
}
func (s chargingState) Exit(ctx *component.Context) {}

func (s holdingState) Enter(ctx *component.Context) {
	ctx.Animate("charge_hold")
}
func (s holdingState) Tick(ctx *component.Context) {
	// a hold with a max duration releases itself when it runs out
	if !ctx.Input().AttackHeld || ctx.Hold.IsComplete() {
		s.m.ChangeState(component.CombatAttack)
	}
}
func (s holdingState) Exit(ctx *component.Context) {}

func (s *attackState) Enter(ctx *component.Context) {
	s.remaining = ctx.Owner.AttackDuration()
	ctx.Animate("attack")
}
func (s *attackState) Tick(ctx *component.Context) {
	s.remaining -= ctx.Delta
	if s.remaining <= 0 {
		s.m.ChangeState(component.CombatNone)
	}
}
func (s *attackState) Exit(ctx *component.Context) {}

// Remaining returns the seconds left in the attack.
func (s *attackState) Remaining() float64 {
	return s.remaining
}
