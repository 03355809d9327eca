package locomotion

import (
	"testing"

	"github.com/milk9111/playerfsm/component"
	"github.com/milk9111/playerfsm/fsm"
)

const testDelta = 0.125

type fakeOwner struct {
	input  component.Input
	tuning component.Tuning
}

func (o *fakeOwner) Input() component.Input   { return o.input }
func (o *fakeOwner) Facing() component.Vec2   { return component.Vec2{X: 1} }
func (o *fakeOwner) CanChargeAttack() bool    { return false }
func (o *fakeOwner) AttackDuration() float64  { return 0 }
func (o *fakeOwner) Tuning() component.Tuning { return o.tuning }
func (o *fakeOwner) consume()                 { o.input.ConsumePresses() }

func (o *fakeOwner) press(dodge bool, x, y float64) {
	o.input = component.Input{DodgePressed: dodge, Move: component.Vec2{X: x, Y: y}}
}

type fakeMovement struct {
	moves     int
	dodges    int
	dodgeEnds int
	halts     int
	lastDir   component.Vec2
	lastSpeed float64
}

func (m *fakeMovement) Move(dir component.Vec2, speed float64) {
	m.moves++
	m.lastDir = dir
	m.lastSpeed = speed
}
func (m *fakeMovement) StartDodge(dir component.Vec2, speed float64) {
	m.dodges++
	m.lastDir = dir
	m.lastSpeed = speed
}
func (m *fakeMovement) EndDodge() { m.dodgeEnds++ }
func (m *fakeMovement) Halt()     { m.halts++ }

type fixture struct {
	m      *Machine
	owner  *fakeOwner
	move   *fakeMovement
	ctx    *component.Context
	events []fsm.TransitionEvent[component.LocomotionState]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		m: New(),
		owner: &fakeOwner{tuning: component.Tuning{
			MoveSpeed:       200,
			DodgeSpeed:      500,
			DodgeDuration:   0.5,
			HitStunDuration: 0.25,
		}},
		move: &fakeMovement{},
	}
	f.ctx = component.NewContext(f.owner, nil, f.move, nil, nil, nil)
	f.ctx.Delta = testDelta
	f.m.Subscribe(func(ev fsm.TransitionEvent[component.LocomotionState]) {
		f.events = append(f.events, ev)
	})
	f.m.Initialize(f.ctx, component.LocomotionIdle)
	return f
}

func (f *fixture) frame() {
	f.m.Update()
	f.owner.consume()
}

func TestIdleStaysIdleWithoutInput(t *testing.T) {
	f := newFixture(t)
	f.frame()
	if f.m.Current() != component.LocomotionIdle {
		t.Fatalf("expected idle, got %s", f.m.Current())
	}
	if len(f.events) != 0 {
		t.Fatalf("expected no transitions, got %v", f.events)
	}
}

func TestInputTransitions(t *testing.T) {
	cases := []struct {
		name  string
		start component.LocomotionState
		dodge bool
		x, y  float64
		want  component.LocomotionState
	}{
		{"idle_to_move", component.LocomotionIdle, false, 1, 0, component.LocomotionMove},
		{"idle_dodge_preempts_move", component.LocomotionIdle, true, 1, 0, component.LocomotionDodge},
		{"idle_dodge_without_move", component.LocomotionIdle, true, 0, 0, component.LocomotionDodge},
		{"move_to_idle", component.LocomotionMove, false, 0, 0, component.LocomotionIdle},
		{"move_dodge", component.LocomotionMove, true, 0, 1, component.LocomotionDodge},
		{"move_keeps_moving", component.LocomotionMove, false, 0, -1, component.LocomotionMove},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			f.m.ChangeState(c.start)
			f.owner.press(c.dodge, c.x, c.y)
			f.frame()
			if f.m.Current() != c.want {
				t.Fatalf("expected %s, got %s", c.want, f.m.Current())
			}
		})
	}
}

func TestMoveRequestsMovementEveryTick(t *testing.T) {
	f := newFixture(t)
	f.owner.press(false, 1, 0)
	f.frame() // idle -> move
	for i := 0; i < 3; i++ {
		f.owner.press(false, 1, 0)
		f.frame()
	}
	if f.move.moves != 3 {
		t.Fatalf("expected 3 move requests, got %d", f.move.moves)
	}
	if f.move.lastSpeed != 200 {
		t.Fatalf("expected move speed 200, got %v", f.move.lastSpeed)
	}
}

func TestDodgeCountdownReturnsToIdle(t *testing.T) {
	f := newFixture(t)
	f.owner.press(false, 1, 0)
	f.frame()
	f.owner.press(true, 1, 0)
	f.frame()

	if f.m.Current() != component.LocomotionDodge {
		t.Fatalf("expected dodge, got %s", f.m.Current())
	}
	remaining, ok := Remaining(f.m)
	if !ok || remaining != 0.5 {
		t.Fatalf("expected dodge countdown 0.5, got %v %v", remaining, ok)
	}
	if f.move.dodges != 1 {
		t.Fatalf("expected dodge motion to start once, got %d", f.move.dodges)
	}

	f.events = nil
	frames := int(0.5 / testDelta)
	for i := 0; i < frames-1; i++ {
		f.owner.press(false, 0, 0)
		f.frame()
		if f.m.Current() != component.LocomotionDodge {
			t.Fatalf("dodge ended early on frame %d", i)
		}
	}
	f.frame()

	if f.m.Current() != component.LocomotionIdle {
		t.Fatalf("expected idle after dodge, got %s", f.m.Current())
	}
	want := fsm.TransitionEvent[component.LocomotionState]{Previous: component.LocomotionDodge, Next: component.LocomotionIdle}
	if len(f.events) != 1 || f.events[0] != want {
		t.Fatalf("expected exactly %v, got %v", want, f.events)
	}
	if f.move.dodgeEnds != 1 {
		t.Fatalf("dodge motion should end on exit, got %d", f.move.dodgeEnds)
	}
}

func TestDodgeUsesFacingWithoutInput(t *testing.T) {
	f := newFixture(t)
	f.owner.press(true, 0, 0)
	f.frame()
	if f.move.lastDir != (component.Vec2{X: 1}) {
		t.Fatalf("expected facing direction, got %v", f.move.lastDir)
	}
}

func TestHitRecovery(t *testing.T) {
	cases := []struct {
		name string
		x    float64
		want component.LocomotionState
	}{
		{"to_idle", 0, component.LocomotionIdle},
		{"to_move", 1, component.LocomotionMove},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			f := newFixture(t)
			f.m.ChangeState(component.LocomotionHit)
			f.owner.press(true, c.x, 0)
			f.frame()
			if f.m.Current() != component.LocomotionHit {
				t.Fatalf("hit ignores input while stunned, got %s", f.m.Current())
			}
			f.owner.press(false, c.x, 0)
			f.frame()
			if f.m.Current() != c.want {
				t.Fatalf("expected %s, got %s", c.want, f.m.Current())
			}
		})
	}
}

func TestDeadIsTerminal(t *testing.T) {
	f := newFixture(t)
	f.m.ChangeState(component.LocomotionDead)
	for i := 0; i < 10; i++ {
		f.owner.press(true, 1, 1)
		f.frame()
	}
	if f.m.Current() != component.LocomotionDead {
		t.Fatalf("dead must never be left, got %s", f.m.Current())
	}
	if len(f.m.Transitions(component.LocomotionDead)) != 0 {
		t.Fatalf("dead must not declare outgoing transitions")
	}
}
