package locomotion

import (
	"github.com/milk9111/playerfsm/component"
)

type idleState struct{}

type moveState struct{}

type dodgeState struct {
	m         *Machine
	remaining float64
}

type hitState struct {
	m         *Machine
	remaining float64
}

type deadState struct{}

func (idleState) Enter(ctx *component.Context) {
	ctx.Animate("idle")
	ctx.Movement.Halt()
}
func (idleState) Tick(ctx *component.Context) {}
func (idleState) Exit(ctx *component.Context) {}

func (moveState) Enter(ctx *component.Context) {
	ctx.Animate("move")
}
func (moveState) Tick(ctx *component.Context) {
	in := ctx.Input()
	if in.Move.IsZero() {
		return
	}
	ctx.Movement.Move(in.Move, ctx.Owner.Tuning().MoveSpeed)
}
func (moveState) Exit(ctx *component.Context) {}

func (s *dodgeState) Enter(ctx *component.Context) {
	tuning := ctx.Owner.Tuning()
	s.remaining = tuning.DodgeDuration
	dir := ctx.Input().Move
	if dir.IsZero() {
		dir = ctx.Owner.Facing()
	}
	ctx.Animate("dodge")
	ctx.Movement.StartDodge(dir, tuning.DodgeSpeed)
}
func (s *dodgeState) Tick(ctx *component.Context) {
	s.remaining -= ctx.Delta
	if s.remaining <= 0 {
		s.m.ChangeState(component.LocomotionIdle)
	}
}
func (s *dodgeState) Exit(ctx *component.Context) {
	ctx.Movement.EndDodge()
}

// Remaining returns the seconds left in the dodge.
func (s *dodgeState) Remaining() float64 {
	return s.remaining
}

func (s *hitState) Enter(ctx *component.Context) {
	s.remaining = ctx.Owner.Tuning().HitStunDuration
	ctx.Animate("hit")
	ctx.Movement.Halt()
}
func (s *hitState) Tick(ctx *component.Context) {
	s.remaining -= ctx.Delta
	if s.remaining > 0 {
		return
	}
	if ctx.Input().Move.IsZero() {
		s.m.ChangeState(component.LocomotionIdle)
		return
	}
	s.m.ChangeState(component.LocomotionMove)
}
func (s *hitState) Exit(ctx *component.Context) {}

// Remaining returns the seconds left in the stun.
func (s *hitState) Remaining() float64 {
	return s.remaining
}

func (deadState) Enter(ctx *component.Context) {
	ctx.Animate("dead")
	ctx.Movement.Halt()
}
func (deadState) Tick(ctx *component.Context) {}
func (deadState) Exit(ctx *component.Context) {}
