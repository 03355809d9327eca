package skill

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/milk9111/playerfsm/component"
	"github.com/milk9111/playerfsm/prefabs"
)

type fakeTarget struct {
	locks  component.ActionLock
	combat component.CombatState
	loco   component.LocomotionState
	dead   bool
}

func (f *fakeTarget) LockActions(flags component.ActionFlags, d float64) { f.locks.Lock(flags, d) }
func (f *fakeTarget) IsActionLocked(flag component.ActionFlags) bool     { return f.locks.Locked(flag) }
func (f *fakeTarget) CombatState() component.CombatState                 { return f.combat }
func (f *fakeTarget) LocomotionState() component.LocomotionState         { return f.loco }
func (f *fakeTarget) IsDead() bool                                       { return f.dead }

var testSkills = []prefabs.SkillSpec{
	{Name: "whirl", Script: "whirl.tengo"},
	{Name: "guard", Script: "guard.tengo"},
}

func newRunner(t *testing.T, target *fakeTarget) *Runner {
	t.Helper()
	r, err := NewRunner(target, testSkills)
	if err != nil {
		t.Fatalf("runner: %v", err)
	}
	return r
}

func TestWhirlLocksMovement(t *testing.T) {
	target := &fakeTarget{}
	r := newRunner(t, target)

	ok, err := r.CastByName("whirl")
	if err != nil || !ok {
		t.Fatalf("expected cast to succeed, got %v %v", ok, err)
	}
	want := component.ActionMove | component.ActionDash | component.ActionSkill
	if target.locks.Flags() != want {
		t.Fatalf("expected %s, got %s", want, target.locks.Flags())
	}
	if target.locks.Remaining() != 0.5 {
		t.Fatalf("expected 0.5s lock, got %v", target.locks.Remaining())
	}
	if slot, ok := r.CurrentSkill(); !ok || slot != 0 {
		t.Fatalf("expected whirl as current skill, got %d %v", slot, ok)
	}

	ok, err = r.Cast(1)
	if err != nil || ok {
		t.Fatalf("skill lock should refuse a second cast, got %v %v", ok, err)
	}
}

func TestCastRefusals(t *testing.T) {
	cases := []struct {
		name   string
		target fakeTarget
		skill  string
	}{
		{"whirl_while_attacking", fakeTarget{combat: component.CombatAttack}, "whirl"},
		{"whirl_while_dead", fakeTarget{dead: true}, "whirl"},
		{"guard_while_dodging", fakeTarget{loco: component.LocomotionDodge}, "guard"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			target := c.target
			r := newRunner(t, &target)
			ok, err := r.CastByName(c.skill)
			if err != nil {
				t.Fatalf("unexpected error %v", err)
			}
			if ok {
				t.Fatalf("cast should be refused")
			}
			if target.locks.Flags() != component.ActionNone {
				t.Fatalf("refused cast must not lock, got %s", target.locks.Flags())
			}
			if _, ok := r.CurrentSkill(); ok {
				t.Fatalf("refused cast must not set a current skill")
			}
		})
	}
}

func TestGuardUsesSlotIndex(t *testing.T) {
	target := &fakeTarget{}
	r := newRunner(t, target)
	if ok, err := r.Cast(1); err != nil || !ok {
		t.Fatalf("expected guard to cast, got %v %v", ok, err)
	}
	if target.locks.Remaining() != 1.0 {
		t.Fatalf("expected 1s lock for slot 1, got %v", target.locks.Remaining())
	}
	if !target.locks.Locked(component.ActionBasicAttack) {
		t.Fatalf("guard should lock basic attacks")
	}
}

func TestCurrentSkillClearsWithLock(t *testing.T) {
	target := &fakeTarget{}
	r := newRunner(t, target)
	if _, err := r.Cast(0); err != nil {
		t.Fatal(err)
	}
	target.locks.Tick(0.25)
	r.Update()
	if _, ok := r.CurrentSkill(); !ok {
		t.Fatalf("skill should still be running")
	}
	target.locks.Tick(0.25)
	r.Update()
	if _, ok := r.CurrentSkill(); ok {
		t.Fatalf("skill should be cleared once the lock ran out")
	}
}

func TestUnknownSkill(t *testing.T) {
	r := newRunner(t, &fakeTarget{})
	if _, err := r.Cast(7); !errors.Is(err, ErrUnknownSkill) {
		t.Fatalf("expected ErrUnknownSkill, got %v", err)
	}
	if _, err := r.CastByName("nope"); !errors.Is(err, ErrUnknownSkill) {
		t.Fatalf("expected ErrUnknownSkill, got %v", err)
	}
}

func TestScriptErrors(t *testing.T) {
	dir := t.TempDir()
	old := prefabs.Dir
	prefabs.Dir = dir
	t.Cleanup(func() { prefabs.Dir = old })

	if err := os.MkdirAll(filepath.Join(dir, "scripts"), 0o755); err != nil {
		t.Fatal(err)
	}
	write := func(name, src string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, "scripts", name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("broken.tengo", "cast := func(engine, skill) {")
	write("badflag.tengo", "cast := func(engine, skill) { return engine.lock_actions(\"fly\", 1) }")

	target := &fakeTarget{}
	r := newRunner(t, target)
	if err := r.Load([]prefabs.SkillSpec{{Name: "broken", Script: "broken.tengo"}}); err == nil {
		t.Fatalf("expected a compile error")
	}
	if len(r.Skills()) != len(testSkills) {
		t.Fatalf("failed load must keep the previous skills")
	}

	if err := r.Load([]prefabs.SkillSpec{{Name: "badflag", Script: "badflag.tengo"}}); err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := r.Cast(0); err == nil {
		t.Fatalf("expected a runtime error for an unknown action")
	}
}
