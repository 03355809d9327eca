package controller

import (
	"github.com/milk9111/playerfsm/charge"
	"github.com/milk9111/playerfsm/combat"
	"github.com/milk9111/playerfsm/component"
	"github.com/milk9111/playerfsm/fsm"
)

// Executor carries out the commands the binder derives from combat
// transitions. Weapon and skill implementations live behind it.
type Executor interface {
	StartCharging(duration float64)
	ExecuteAttack(charged bool)
	CancelAction(reason component.CancelReason)
}

// NopExecutor ignores every command.
type NopExecutor struct{}

func (NopExecutor) StartCharging(float64)               {}
func (NopExecutor) ExecuteAttack(bool)                  {}
func (NopExecutor) CancelAction(component.CancelReason) {}

// Binder turns combat state changes into domain events and execution
// commands. It only looks at previous/next state pairs.
type Binder struct {
	charging *charge.Manager
	holding  *charge.Manager
	weapon   func() component.Weapon
	exec     Executor
	emit     func(Event)

	// cause is set by the coordinator around a forced cancel.
	cause component.CancelReason

	unsubscribe func()
}

// NewBinder subscribes to m. weapon is read at transition time so weapon
// swaps are picked up.
func NewBinder(m *combat.Machine, charging, holding *charge.Manager, weapon func() component.Weapon, exec Executor, emit func(Event)) *Binder {
	if exec == nil {
		exec = NopExecutor{}
	}
	if emit == nil {
		emit = func(Event) {}
	}
	if weapon == nil {
		weapon = func() component.Weapon { return component.Unarmed{} }
	}
	b := &Binder{
		charging: charging,
		holding:  holding,
		weapon:   weapon,
		exec:     exec,
		emit:     emit,
	}
	b.unsubscribe = m.Subscribe(b.handle)
	return b
}

// Close detaches the binder from its machine.
func (b *Binder) Close() {
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
}

func (b *Binder) noteCause(reason component.CancelReason) {
	b.cause = reason
}

func (b *Binder) handle(ev fsm.TransitionEvent[component.CombatState]) {
	prev, next := ev.Previous, ev.Next

	if prev == component.CombatAttack {
		b.attackEnded(next)
	}

	switch {
	case next == component.CombatAttack:
		charged := prev == component.CombatHolding
		if prev.IsCharge() {
			b.release()
		}
		variant := AttackBasic
		if charged {
			variant = AttackCharged
		}
		b.emit(AttackStarted{Charged: charged, Variant: variant})
		b.exec.ExecuteAttack(charged)

	case next == component.CombatCharging && prev != component.CombatCharging:
		d := b.weapon().ChargeDuration()
		b.charging.Start(charge.KindBasic, d)
		b.emit(ChargeStarted{Duration: d})
		b.exec.StartCharging(d)

	case prev == component.CombatCharging && next == component.CombatHolding:
		b.holding.Start(charge.KindBasic, b.weapon().MaxHold())
		b.emit(ChargeReachedMax{})

	case prev.IsCharge() && next != prev:
		b.cancel(prev)
	}
}

// attackEnded reports the end of an attack. The reason follows from the next
// state alone; a forced exit is told apart by its cause.
func (b *Binder) attackEnded(next component.CombatState) {
	reason := EndFinished
	if next != component.CombatNone {
		reason = EndInterrupted
	}
	b.emit(AttackEnded{Reason: reason, Cause: b.cause})
	if b.cause != component.CancelNone {
		b.exec.CancelAction(b.cause)
	}
}

// release ends the charge and hold operations that fed an attack.
func (b *Binder) release() {
	b.charging.End(charge.KindBasic, component.CancelRelease)
	b.holding.End(charge.KindBasic, component.CancelRelease)
	b.charging.TakeCancel(charge.KindBasic)
	b.holding.TakeCancel(charge.KindBasic)
}

func (b *Binder) cancel(prev component.CombatState) {
	// no-ops when the coordinator already ended them
	b.charging.End(charge.KindBasic, b.cause)
	b.holding.End(charge.KindBasic, b.cause)

	chargeCancel, chargeOK := b.charging.TakeCancel(charge.KindBasic)
	holdCancel, holdOK := b.holding.TakeCancel(charge.KindBasic)

	var (
		ev ChargeCanceled
		ok bool
	)
	switch prev {
	case component.CombatCharging:
		ev, ok = ChargeCanceled{Reason: chargeCancel.Reason, Progress: chargeCancel.Progress}, chargeOK
	case component.CombatHolding:
		// the charge itself was full while holding
		ev, ok = ChargeCanceled{Reason: holdCancel.Reason, Progress: 1}, holdOK
	}

	reason := b.cause
	if ok {
		reason = ev.Reason
		b.emit(ev)
	}
	b.exec.CancelAction(reason)
}
