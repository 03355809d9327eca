package component

import "strings"

// ActionFlags is a bitset of player actions that can be locked.
type ActionFlags uint8

const (
	ActionMove ActionFlags = 1 << iota
	ActionBasicAttack
	ActionDash
	ActionSkill

	ActionNone ActionFlags = 0
	ActionAll             = ActionMove | ActionBasicAttack | ActionDash | ActionSkill
)

var actionNames = []struct {
	flag ActionFlags
	name string
}{
	{ActionMove, "move"},
	{ActionBasicAttack, "basic_attack"},
	{ActionDash, "dash"},
	{ActionSkill, "skill"},
}

// Has reports whether every bit of flag is set.
func (f ActionFlags) Has(flag ActionFlags) bool {
	return flag != 0 && f&flag == flag
}

func (f ActionFlags) String() string {
	if f == 0 {
		return "none"
	}
	parts := make([]string, 0, len(actionNames))
	for _, a := range actionNames {
		if f&a.flag != 0 {
			parts = append(parts, a.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseActionFlag returns the flag for a name such as "dash" or "basic_attack".
func ParseActionFlag(name string) (ActionFlags, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "all" {
		return ActionAll, true
	}
	for _, a := range actionNames {
		if a.name == name {
			return a.flag, true
		}
	}
	return 0, false
}

// ActionLock merges a timed lock, which decays on its own, with a transition
// lock that is held until released.
type ActionLock struct {
	timed      ActionFlags
	remaining  float64
	transition ActionFlags
}

// Lock merges flags into the timed lock and extends the countdown to at least
// duration seconds.
func (l *ActionLock) Lock(flags ActionFlags, duration float64) {
	if l == nil || flags == 0 || duration <= 0 {
		return
	}
	l.timed |= flags
	if duration > l.remaining {
		l.remaining = duration
	}
}

// Tick advances the timed lock by dt seconds.
func (l *ActionLock) Tick(dt float64) {
	if l == nil || l.timed == 0 {
		return
	}
	l.remaining -= dt
	if l.remaining <= 0 {
		l.remaining = 0
		l.timed = 0
	}
}

// Acquire sets the transition lock.
func (l *ActionLock) Acquire(flags ActionFlags) {
	if l == nil {
		return
	}
	l.transition |= flags
}

// Release clears the transition lock.
func (l *ActionLock) Release() {
	if l == nil {
		return
	}
	l.transition = 0
}

// Locked reports whether flag is set in either source.
func (l *ActionLock) Locked(flag ActionFlags) bool {
	if l == nil {
		return false
	}
	return (l.timed | l.transition).Has(flag)
}

// Flags returns the merged bitset.
func (l *ActionLock) Flags() ActionFlags {
	if l == nil {
		return 0
	}
	return l.timed | l.transition
}

// Remaining returns the seconds left on the timed lock.
func (l *ActionLock) Remaining() float64 {
	if l == nil {
		return 0
	}
	return l.remaining
}
