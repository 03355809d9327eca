package prefabs

import "github.com/milk9111/playerfsm/component"

// Weapon adapts a WeaponSpec to component.Weapon.
type Weapon struct {
	spec WeaponSpec
}

func NewWeapon(spec WeaponSpec) *Weapon {
	return &Weapon{spec: spec}
}

func (w *Weapon) Name() string            { return w.spec.Name }
func (w *Weapon) CanChargeAttack() bool   { return w.spec.Chargeable }
func (w *Weapon) ChargeDuration() float64 { return w.spec.ChargeDuration }
func (w *Weapon) MaxHold() float64        { return w.spec.MaxHold }
func (w *Weapon) AttackDuration() float64 { return w.spec.AttackDuration }

// Loadout is the ordered list of weapons the actor cycles through.
type Loadout struct {
	weapons []component.Weapon
	index   int
}

// NewLoadout builds a loadout from specs. An empty list yields a loadout
// holding only component.Unarmed.
func NewLoadout(specs []WeaponSpec) *Loadout {
	l := &Loadout{}
	for _, s := range specs {
		l.weapons = append(l.weapons, NewWeapon(s))
	}
	if len(l.weapons) == 0 {
		l.weapons = []component.Weapon{component.Unarmed{}}
	}
	return l
}

func (l *Loadout) Current() component.Weapon {
	return l.weapons[l.index]
}

// Next equips the following weapon, wrapping around.
func (l *Loadout) Next() component.Weapon {
	l.index = (l.index + 1) % len(l.weapons)
	return l.Current()
}

// Select equips the weapon called name.
func (l *Loadout) Select(name string) (component.Weapon, bool) {
	for i, w := range l.weapons {
		if w.Name() == name {
			l.index = i
			return w, true
		}
	}
	return nil, false
}

func (l *Loadout) Len() int { return len(l.weapons) }

var _ component.Weapon = (*Weapon)(nil)
