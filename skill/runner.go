package skill

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/playerfsm/component"
	"github.com/milk9111/playerfsm/prefabs"
)

var ErrUnknownSkill = errors.New("skill: unknown skill")

// Target is the part of the actor controller a skill script may touch.
type Target interface {
	LockActions(flags component.ActionFlags, duration float64)
	IsActionLocked(flag component.ActionFlags) bool
	CombatState() component.CombatState
	LocomotionState() component.LocomotionState
	IsDead() bool
}

const castDispatchScript = `
__result = cast(__engine, __skill)
`

// Skill is one compiled skill script.
type Skill struct {
	Name     string
	Index    int
	script   string
	compiled *tengo.Compiled
}

// Runner casts scripted skills against a Target.
type Runner struct {
	target Target
	skills []*Skill

	// current is the skill whose lock is still running.
	current    int
	hasCurrent bool
}

// NewRunner compiles every skill in specs.
func NewRunner(target Target, specs []prefabs.SkillSpec) (*Runner, error) {
	r := &Runner{target: target}
	if err := r.Load(specs); err != nil {
		return nil, err
	}
	return r, nil
}

// Load replaces the skill set. The old set is kept when any script fails to
// compile.
func (r *Runner) Load(specs []prefabs.SkillSpec) error {
	skills := make([]*Skill, 0, len(specs))
	for i, spec := range specs {
		s, err := compile(i, spec)
		if err != nil {
			return err
		}
		skills = append(skills, s)
	}
	r.skills = skills
	r.hasCurrent = false
	return nil
}

func compile(index int, spec prefabs.SkillSpec) (*Skill, error) {
	src, err := prefabs.LoadScript(spec.Script)
	if err != nil {
		return nil, fmt.Errorf("skill: load %s: %w", spec.Script, err)
	}

	script := tengo.NewScript([]byte(string(src) + "\n" + castDispatchScript))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__skill", map[string]any{})
	_ = script.Add("__result", false)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("skill: compile %s: %w", spec.Script, err)
	}
	return &Skill{
		Name:     spec.Name,
		Index:    index,
		script:   spec.Script,
		compiled: compiled,
	}, nil
}

// Skills returns the loaded skills in slot order.
func (r *Runner) Skills() []*Skill {
	return r.skills
}

// Cast runs the skill in slot index. It reports whether the script accepted
// the cast.
func (r *Runner) Cast(index int) (bool, error) {
	if index < 0 || index >= len(r.skills) {
		return false, fmt.Errorf("%w: slot %d", ErrUnknownSkill, index)
	}
	s := r.skills[index]

	skill := &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"name":  &tengo.String{Value: s.Name},
		"index": &tengo.Int{Value: int64(s.Index)},
	}}
	if err := s.compiled.Set("__engine", r.engine()); err != nil {
		return false, err
	}
	if err := s.compiled.Set("__skill", skill); err != nil {
		return false, err
	}
	if err := s.compiled.Set("__result", false); err != nil {
		return false, err
	}
	if err := s.compiled.Run(); err != nil {
		return false, fmt.Errorf("skill: run %s: %w", s.script, err)
	}

	ok := s.compiled.Get("__result").Bool()
	if ok {
		r.current = index
		r.hasCurrent = true
	}
	return ok, nil
}

// CastByName casts the skill called name.
func (r *Runner) CastByName(name string) (bool, error) {
	for _, s := range r.skills {
		if s.Name == name {
			return r.Cast(s.Index)
		}
	}
	return false, fmt.Errorf("%w: %q", ErrUnknownSkill, name)
}

// Update clears the current skill once its skill lock ran out.
func (r *Runner) Update() {
	if r.hasCurrent && !r.target.IsActionLocked(component.ActionSkill) {
		r.hasCurrent = false
	}
}

// CurrentSkill returns the slot of the skill still running, if any.
func (r *Runner) CurrentSkill() (int, bool) {
	return r.current, r.hasCurrent
}

func (r *Runner) engine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["lock_actions"] = &tengo.UserFunction{Name: "lock_actions", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 2 {
			return tengo.FalseValue, nil
		}
		flags, err := objectToFlags(args[0])
		if err != nil {
			return nil, err
		}
		duration, ok := objectToFloat(args[1])
		if !ok || duration <= 0 || flags == component.ActionNone {
			return tengo.FalseValue, nil
		}
		r.target.LockActions(flags, duration)
		return tengo.TrueValue, nil
	}}

	values["is_locked"] = &tengo.UserFunction{Name: "is_locked", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		flags, err := objectToFlags(args[0])
		if err != nil {
			return nil, err
		}
		if r.target.IsActionLocked(flags) {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["combat_state"] = &tengo.UserFunction{Name: "combat_state", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: r.target.CombatState().String()}, nil
	}}

	values["locomotion_state"] = &tengo.UserFunction{Name: "locomotion_state", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.String{Value: r.target.LocomotionState().String()}, nil
	}}

	values["is_dead"] = &tengo.UserFunction{Name: "is_dead", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if r.target.IsDead() {
			return tengo.TrueValue, nil
		}
		return tengo.FalseValue, nil
	}}

	values["current_skill"] = &tengo.UserFunction{Name: "current_skill", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if !r.hasCurrent {
			return tengo.UndefinedValue, nil
		}
		return &tengo.Int{Value: int64(r.current)}, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		log.Printf("skill: %s", strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectToFlags(obj tengo.Object) (component.ActionFlags, error) {
	var names []string
	switch v := obj.(type) {
	case *tengo.Array:
		for _, item := range v.Value {
			names = append(names, objectAsString(item))
		}
	case *tengo.ImmutableArray:
		for _, item := range v.Value {
			names = append(names, objectAsString(item))
		}
	default:
		names = append(names, objectAsString(obj))
	}

	var flags component.ActionFlags
	for _, name := range names {
		f, ok := component.ParseActionFlag(name)
		if !ok {
			return 0, fmt.Errorf("skill: unknown action %q", name)
		}
		flags |= f
	}
	return flags, nil
}

func objectToFloat(obj tengo.Object) (float64, bool) {
	switch v := obj.(type) {
	case *tengo.Float:
		return v.Value, true
	case *tengo.Int:
		return float64(v.Value), true
	default:
		return 0, false
	}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
