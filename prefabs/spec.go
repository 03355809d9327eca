package prefabs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/playerfsm/component"
	"gopkg.in/yaml.v3"
)

// ActorFile is the tuning file read by LoadActorSpec.
const ActorFile = "actor.yaml"

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type ActorSpec struct {
	Name    string       `yaml:"name"`
	Health  int          `yaml:"health"`
	Tuning  TuningSpec   `yaml:"tuning"`
	Weapons []WeaponSpec `yaml:"weapons"`
	Skills  []SkillSpec  `yaml:"skills"`
}

type TuningSpec struct {
	MoveSpeed       float64 `yaml:"move_speed"`
	DodgeSpeed      float64 `yaml:"dodge_speed"`
	DodgeDuration   float64 `yaml:"dodge_duration"`
	HitStunDuration float64 `yaml:"hit_stun_duration"`
}

type WeaponSpec struct {
	Name           string  `yaml:"name"`
	Chargeable     bool    `yaml:"chargeable"`
	ChargeDuration float64 `yaml:"charge_duration"`
	MaxHold        float64 `yaml:"max_hold"`
	AttackDuration float64 `yaml:"attack_duration"`
}

type SkillSpec struct {
	Name   string `yaml:"name"`
	Script string `yaml:"script"`
}

// LoadActorSpec reads and validates actor.yaml.
func LoadActorSpec() (*ActorSpec, error) {
	spec, err := LoadSpec[ActorSpec](ActorFile)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", ActorFile, err)
	}
	return &spec, nil
}

// ParseActorSpec decodes and validates an actor spec from data.
func ParseActorSpec(data []byte) (*ActorSpec, error) {
	var spec ActorSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal actor: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

func (s *ActorSpec) Validate() error {
	if s == nil {
		return fmt.Errorf("%w: nil actor", ErrInvalidSpec)
	}
	t := s.Tuning
	if t.MoveSpeed < 0 || t.DodgeSpeed < 0 || t.DodgeDuration < 0 || t.HitStunDuration < 0 {
		return fmt.Errorf("%w: tuning values must not be negative", ErrInvalidSpec)
	}

	seen := make(map[string]bool, len(s.Weapons))
	for i, w := range s.Weapons {
		name := strings.TrimSpace(w.Name)
		if name == "" {
			return fmt.Errorf("%w: weapon %d has no name", ErrInvalidSpec, i)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate weapon %q", ErrInvalidSpec, name)
		}
		seen[name] = true
		if w.AttackDuration < 0 || w.ChargeDuration < 0 {
			return fmt.Errorf("%w: weapon %q has a negative duration", ErrInvalidSpec, name)
		}
		if w.Chargeable && w.ChargeDuration == 0 {
			return fmt.Errorf("%w: chargeable weapon %q needs a charge_duration", ErrInvalidSpec, name)
		}
	}

	for i, sk := range s.Skills {
		if strings.TrimSpace(sk.Name) == "" || strings.TrimSpace(sk.Script) == "" {
			return fmt.Errorf("%w: skill %d needs a name and a script", ErrInvalidSpec, i)
		}
	}
	return nil
}

func (t TuningSpec) Tuning() component.Tuning {
	return component.Tuning{
		MoveSpeed:       t.MoveSpeed,
		DodgeSpeed:      t.DodgeSpeed,
		DodgeDuration:   t.DodgeDuration,
		HitStunDuration: t.HitStunDuration,
	}
}
