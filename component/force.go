package component

// ForceStateType is an externally requested transition. Priority is
// Dead > Pause > Hit.
type ForceStateType int

const (
	ForceNone ForceStateType = iota
	ForceHit
	ForcePause
	ForceDead
)

func (f ForceStateType) String() string {
	switch f {
	case ForceHit:
		return "hit"
	case ForcePause:
		return "pause"
	case ForceDead:
		return "dead"
	default:
		return "none"
	}
}

// CancelReason explains why a charge or hold was stopped.
type CancelReason int

const (
	CancelNone CancelReason = iota
	CancelDodge
	CancelHit
	CancelPause
	CancelDead
	// CancelRelease ends an operation because the attack it fed was executed.
	CancelRelease
	CancelManual
)

func (r CancelReason) String() string {
	switch r {
	case CancelDodge:
		return "dodge"
	case CancelHit:
		return "hit"
	case CancelPause:
		return "pause"
	case CancelDead:
		return "dead"
	case CancelRelease:
		return "release"
	case CancelManual:
		return "manual"
	default:
		return "none"
	}
}

// CancelReasonFor maps a force request to the cancel reason it applies to an
// in-progress charge.
func CancelReasonFor(f ForceStateType) CancelReason {
	switch f {
	case ForceHit:
		return CancelHit
	case ForcePause:
		return CancelPause
	case ForceDead:
		return CancelDead
	default:
		return CancelNone
	}
}
