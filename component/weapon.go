package component

// Weapon is the read-only capability view of the equipped weapon.
type Weapon interface {
	Name() string
	CanChargeAttack() bool
	// ChargeDuration is the time needed to reach a full charge.
	ChargeDuration() float64
	// MaxHold is how long a full charge can be held; <= 0 means forever.
	MaxHold() float64
	AttackDuration() float64
}

// Unarmed is used when no weapon is equipped.
type Unarmed struct {
	Duration float64
}

func (Unarmed) Name() string              { return "unarmed" }
func (Unarmed) CanChargeAttack() bool     { return false }
func (Unarmed) ChargeDuration() float64   { return 0 }
func (Unarmed) MaxHold() float64          { return 0 }
func (u Unarmed) AttackDuration() float64 { return u.Duration }
