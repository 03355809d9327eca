package controller

import (
	"log"

	"github.com/milk9111/playerfsm/charge"
	"github.com/milk9111/playerfsm/combat"
	"github.com/milk9111/playerfsm/component"
	"github.com/milk9111/playerfsm/locomotion"
)

// Options configures a Coordinator. Every collaborator is optional.
type Options struct {
	Tuning   component.Tuning
	Weapon   component.Weapon
	Executor Executor
	Body     component.Body
	Movement component.Movement
	Animator component.Animator
	Debug    bool
}

// Coordinator owns the locomotion and combat machines of one actor and runs
// the per-frame pipeline between them.
type Coordinator struct {
	opts   Options
	tuning component.Tuning
	weapon component.Weapon

	// input is what collaborators pushed; frame is input after this frame's
	// filtering and is what the states read.
	input  component.Input
	frame  component.Input
	facing component.Vec2

	canCharge bool
	paused    bool
	dead      bool
	locks     component.ActionLock

	ctx      *component.Context
	loco     *locomotion.Machine
	combat   *combat.Machine
	charging *charge.Manager
	holding  *charge.Manager
	binder   *Binder
	events   bus
}

// NewCoordinator builds the context, both machines and the binder, and
// starts the actor at Idle/None.
func NewCoordinator(opts Options) *Coordinator {
	c := &Coordinator{
		opts:     opts,
		tuning:   opts.Tuning,
		weapon:   opts.Weapon,
		facing:   component.Vec2{X: 1},
		charging: charge.NewManager("charging"),
		holding:  charge.NewManager("holding"),
	}
	if c.weapon == nil {
		c.weapon = component.Unarmed{}
	}
	c.canCharge = c.weapon.CanChargeAttack()

	c.charging.OnProgress(func(p charge.Progress) {
		if p.Kind == charge.KindBasic {
			c.events.emit(ChargeProgress{Value: p.Value})
		}
	})
	c.holding.OnProgress(func(p charge.Progress) {
		if p.Kind == charge.KindBasic {
			c.events.emit(ChargeProgress{Hold: true, Value: p.Value})
		}
	})

	c.ctx = component.NewContext(
		c,
		opts.Body,
		opts.Movement,
		opts.Animator,
		c.charging.View(charge.KindBasic),
		c.holding.View(charge.KindBasic),
	)
	c.build()
	return c
}

func (c *Coordinator) build() {
	c.loco = locomotion.New()
	c.combat = combat.New()
	c.binder = NewBinder(c.combat, c.charging, c.holding, c.Weapon, c.opts.Executor, c.events.emit)

	c.loco.Initialize(c.ctx, component.LocomotionIdle)
	c.combat.Initialize(c.ctx, component.CombatNone)
}

// Reset puts the actor back at Idle/None with fresh machines. Used to respawn
// after death.
func (c *Coordinator) Reset() {
	if c.binder != nil {
		c.binder.Close()
	}
	respawn := c.loco.Retired()
	c.combat.Deactivate()
	c.loco.Deactivate()
	c.charging.Reset()
	c.holding.Reset()
	c.charging.TakeCancel(charge.KindBasic)
	c.holding.TakeCancel(charge.KindBasic)

	c.input = component.Input{}
	c.frame = component.Input{}
	c.locks = component.ActionLock{}
	c.paused = false
	c.dead = false
	c.ctx.Delta = 0

	c.build()
	if respawn {
		c.logf("controller: respawned")
		return
	}
	c.logf("controller: reset")
}

// Update runs one frame of dt seconds.
func (c *Coordinator) Update(dt float64) {
	c.locks.Tick(dt)
	c.canCharge = c.weapon.CanChargeAttack()
	c.ctx.Delta = dt

	if !c.paused && !c.dead {
		c.charging.Tick(dt)
		c.holding.Tick(dt)

		c.applyPolicies()

		c.loco.Update()
		c.combat.Update()
	}

	c.input.ConsumePresses()
}

func (c *Coordinator) applyPolicies() {
	c.frame = c.input
	if c.locks.Locked(component.ActionMove) {
		c.frame.Move = component.Vec2{}
	}
	if c.locks.Locked(component.ActionDash) {
		c.frame.DodgePressed = false
	}
	if c.locks.Locked(component.ActionBasicAttack) {
		c.frame.AttackPressed = false
	}

	loco := c.loco.Current()
	if loco == component.LocomotionDodge && c.combat.Current() != component.CombatNone {
		c.cancelCombat(component.CancelDodge, true)
	}
	if c.frame.DodgePressed && c.combat.Current().IsCharge() {
		c.cancelCombat(component.CancelDodge, false)
	}
	if loco == component.LocomotionDodge || loco == component.LocomotionHit {
		c.frame.ClearAttack()
	}
}

// cancelCombat ends any charge and hold with reason and sends combat to None.
// An attack in flight is only interrupted when includeAttack is set.
func (c *Coordinator) cancelCombat(reason component.CancelReason, includeAttack bool) {
	if !c.combat.IsActive() {
		return
	}
	cur := c.combat.Current()
	if cur == component.CombatNone || (cur == component.CombatAttack && !includeAttack) {
		return
	}

	c.binder.noteCause(reason)
	defer c.binder.noteCause(component.CancelNone)

	if cur.IsCharge() {
		c.charging.End(charge.KindBasic, reason)
		c.holding.End(charge.KindBasic, reason)
	}
	c.combat.ChangeState(component.CombatNone)
	c.logf("controller: combat %s canceled (%s)", cur, reason)
}

// Input API

func (c *Coordinator) SetMoveInput(x, y float64) {
	c.input.Move = component.Vec2{X: x, Y: y}
	if !c.input.Move.IsZero() {
		c.facing = c.input.Move.Normalized()
	}
}

func (c *Coordinator) PressDodge() {
	c.input.DodgePressed = true
}

func (c *Coordinator) PressAttack() {
	c.input.AttackPressed = true
	c.input.AttackHeld = true
}

func (c *Coordinator) SetAttackHeld(held bool) {
	c.input.AttackHeld = held
}

// CancelAttackInput is sent when the attack input was canceled, e.g. the
// button released.
func (c *Coordinator) CancelAttackInput() {
	c.input.AttackHeld = false
}

// Force API

func (c *Coordinator) ForceHit() bool {
	return c.ApplyForceState(component.ForceHit)
}

func (c *Coordinator) ForceDead() bool {
	return c.ApplyForceState(component.ForceDead)
}

// ApplyForceState requests an external transition. Priority is Dead > Pause >
// Hit: nothing is accepted once dead, only Dead is accepted while paused, and
// Hit is rejected while already stunned.
func (c *Coordinator) ApplyForceState(t component.ForceStateType) bool {
	switch {
	case t == component.ForceNone:
		return false
	case c.dead:
		c.logf("controller: reject force %s: dead", t)
		return false
	case c.paused && t != component.ForceDead:
		c.logf("controller: reject force %s: paused", t)
		return false
	}

	switch t {
	case component.ForceHit:
		if c.loco.Current() == component.LocomotionHit {
			c.logf("controller: reject force hit: already hit")
			return false
		}
		c.cancelCombat(component.CancelReasonFor(t), false)
		c.loco.ChangeState(component.LocomotionHit)
	case component.ForcePause:
		c.setPaused(true)
	case component.ForceDead:
		// an attack in flight just exits on Deactivate
		c.cancelCombat(component.CancelReasonFor(t), false)
		c.loco.ChangeState(component.LocomotionDead)
		c.dead = true
		c.combat.Deactivate()
		c.loco.Deactivate()
		c.logf("controller: dead, machines deactivated")
	default:
		return false
	}
	return true
}

// SetPaused gates the pipeline. Pausing cancels a charge or hold in progress.
func (c *Coordinator) SetPaused(paused bool) {
	c.setPaused(paused)
}

func (c *Coordinator) setPaused(paused bool) {
	if paused == c.paused {
		return
	}
	if paused {
		c.cancelCombat(component.CancelPause, false)
	}
	c.paused = paused
	c.logf("controller: paused=%v", paused)
}

func (c *Coordinator) IsPaused() bool { return c.paused }
func (c *Coordinator) IsDead() bool   { return c.dead }

// Action locks

// LockActions locks flags for at least duration seconds.
func (c *Coordinator) LockActions(flags component.ActionFlags, duration float64) {
	c.locks.Lock(flags, duration)
}

func (c *Coordinator) IsActionLocked(flag component.ActionFlags) bool {
	return c.locks.Locked(flag)
}

// LockedActions returns every currently locked flag.
func (c *Coordinator) LockedActions() component.ActionFlags {
	return c.locks.Flags()
}

// AcquireTransitionLock holds flags until ReleaseTransitionLock, e.g. for the
// length of a scene transition.
func (c *Coordinator) AcquireTransitionLock(flags component.ActionFlags) {
	c.locks.Acquire(flags)
}

func (c *Coordinator) ReleaseTransitionLock() {
	c.locks.Release()
}

// Accessors

func (c *Coordinator) LocomotionState() component.LocomotionState { return c.loco.Current() }
func (c *Coordinator) CombatState() component.CombatState         { return c.combat.Current() }
func (c *Coordinator) ChargeValue() float64                       { return c.charging.Value(charge.KindBasic) }
func (c *Coordinator) HoldValue() float64                         { return c.holding.Value(charge.KindBasic) }
func (c *Coordinator) Context() *component.Context                { return c.ctx }

// ChargeElapsed returns the seconds spent charging the current attack.
func (c *Coordinator) ChargeElapsed() float64 {
	return c.charging.Elapsed(charge.KindBasic)
}

// LocomotionExits lists the states the current locomotion state declares
// input-driven transitions to, in evaluation order.
func (c *Coordinator) LocomotionExits() []component.LocomotionState {
	var out []component.LocomotionState
	for _, t := range c.loco.Transitions(c.loco.Current()) {
		out = append(out, t.To)
	}
	return out
}

// DodgeRemaining returns the seconds left in the current dodge.
func (c *Coordinator) DodgeRemaining() (float64, bool) {
	if c.loco.Current() != component.LocomotionDodge {
		return 0, false
	}
	return locomotion.Remaining(c.loco)
}

// AttackRemaining returns the seconds left in the current attack.
func (c *Coordinator) AttackRemaining() (float64, bool) {
	return combat.AttackRemaining(c.combat)
}

// Subscribe registers fn for domain events and returns a func that removes it.
func (c *Coordinator) Subscribe(fn func(Event)) func() {
	return c.events.subscribe(fn)
}

func (c *Coordinator) SetTuning(t component.Tuning) {
	c.tuning = t
}

// SetWeapon swaps the equipped weapon. Capability is re-read next frame.
func (c *Coordinator) SetWeapon(w component.Weapon) {
	if w == nil {
		w = component.Unarmed{}
	}
	c.weapon = w
}

func (c *Coordinator) Weapon() component.Weapon {
	return c.weapon
}

// component.Owner

func (c *Coordinator) Input() component.Input   { return c.frame }
func (c *Coordinator) Facing() component.Vec2   { return c.facing }
func (c *Coordinator) CanChargeAttack() bool    { return c.canCharge }
func (c *Coordinator) AttackDuration() float64  { return c.weapon.AttackDuration() }
func (c *Coordinator) Tuning() component.Tuning { return c.tuning }

func (c *Coordinator) logf(format string, args ...any) {
	if c.opts.Debug {
		log.Printf(format, args...)
	}
}

var _ component.Owner = (*Coordinator)(nil)
