package controller

import "github.com/milk9111/playerfsm/component"

// EventKind identifies a domain event raised by the binder.
type EventKind int

const (
	EventChargeStarted EventKind = iota + 1
	EventChargeReachedMax
	EventChargeCanceled
	EventAttackStarted
	EventAttackEnded
	EventChargeProgress
)

func (k EventKind) String() string {
	switch k {
	case EventChargeStarted:
		return "charge_started"
	case EventChargeReachedMax:
		return "charge_reached_max"
	case EventChargeCanceled:
		return "charge_canceled"
	case EventAttackStarted:
		return "attack_started"
	case EventAttackEnded:
		return "attack_ended"
	case EventChargeProgress:
		return "charge_progress"
	default:
		return "unknown"
	}
}

// Event is a combat domain event. Apart from ChargeProgress, each fires at
// most once per qualifying combat transition.
type Event interface {
	Kind() EventKind
}

// AttackVariant classifies an attack.
type AttackVariant int

const (
	AttackBasic AttackVariant = iota
	AttackCharged
)

func (v AttackVariant) String() string {
	if v == AttackCharged {
		return "charged"
	}
	return "basic"
}

// EndReason tells how an attack ended.
type EndReason int

const (
	EndFinished EndReason = iota
	EndInterrupted
)

func (r EndReason) String() string {
	if r == EndInterrupted {
		return "interrupted"
	}
	return "finished"
}

type ChargeStarted struct {
	Duration float64
}

type ChargeReachedMax struct{}

type ChargeCanceled struct {
	Reason   component.CancelReason
	Progress float64
}

type AttackStarted struct {
	Charged bool
	Variant AttackVariant
}

type AttackEnded struct {
	Reason EndReason
	// Cause is set when the coordinator cut the attack short.
	Cause component.CancelReason
}

// ChargeProgress is raised every frame a charge or hold advances.
type ChargeProgress struct {
	Hold  bool
	Value float64
}

func (ChargeStarted) Kind() EventKind    { return EventChargeStarted }
func (ChargeReachedMax) Kind() EventKind { return EventChargeReachedMax }
func (ChargeCanceled) Kind() EventKind   { return EventChargeCanceled }
func (AttackStarted) Kind() EventKind    { return EventAttackStarted }
func (AttackEnded) Kind() EventKind      { return EventAttackEnded }
func (ChargeProgress) Kind() EventKind   { return EventChargeProgress }

type subscriber struct {
	id int
	fn func(Event)
}

// bus delivers events synchronously in subscription order.
type bus struct {
	subs []subscriber
	next int
}

func (b *bus) subscribe(fn func(Event)) func() {
	if fn == nil {
		return func() {}
	}
	b.next++
	id := b.next
	b.subs = append(b.subs, subscriber{id: id, fn: fn})
	return func() {
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

func (b *bus) emit(ev Event) {
	subs := append([]subscriber(nil), b.subs...)
	for _, s := range subs {
		s.fn(ev)
	}
}
