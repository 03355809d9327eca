package component

// LocomotionState identifies a state of the locomotion machine.
type LocomotionState int

const (
	LocomotionIdle LocomotionState = iota
	LocomotionMove
	LocomotionDodge
	LocomotionHit
	LocomotionDead
)

func (s LocomotionState) String() string {
	switch s {
	case LocomotionIdle:
		return "idle"
	case LocomotionMove:
		return "move"
	case LocomotionDodge:
		return "dodge"
	case LocomotionHit:
		return "hit"
	case LocomotionDead:
		return "dead"
	default:
		return "unknown"
	}
}

// CombatState identifies a state of the combat machine.
type CombatState int

const (
	CombatNone CombatState = iota
	CombatCharging
	CombatHolding
	CombatAttack
)

func (s CombatState) String() string {
	switch s {
	case CombatNone:
		return "none"
	case CombatCharging:
		return "charging"
	case CombatHolding:
		return "holding"
	case CombatAttack:
		return "attack"
	default:
		return "unknown"
	}
}

// IsCharge reports whether s is one of the charge-up states.
func (s CombatState) IsCharge() bool {
	return s == CombatCharging || s == CombatHolding
}
