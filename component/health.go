package component

// Forcer receives the force transitions Health requests.
type Forcer interface {
	ForceHit() bool
	ForceDead() bool
}

// Health tracks hit points and asks the actor controller to enter Hit or Dead
// when damage lands. It never changes actor state on its own.
type Health struct {
	Max     int
	Current int
	// Invulnerable is the seconds left during which damage is ignored.
	Invulnerable float64

	target Forcer

	OnDamage func(h *Health, amount int)
	OnDeath  func(h *Health)
}

// NewHealth creates a Health with max/current initialized.
func NewHealth(max int, target Forcer) *Health {
	if max <= 0 {
		max = 1
	}
	return &Health{Max: max, Current: max, target: target}
}

// IsAlive reports whether any hit points are left.
func (h *Health) IsAlive() bool {
	return h != nil && h.Current > 0
}

// ApplyDamage removes amount hit points unless invulnerable or already dead.
// Returns true if damage was applied. A damaged actor is forced into Hit, a
// killed one into Dead.
func (h *Health) ApplyDamage(amount int) bool {
	if h == nil || !h.IsAlive() || h.Invulnerable > 0 || amount <= 0 {
		return false
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	if h.OnDamage != nil {
		h.OnDamage(h, amount)
	}

	if h.Current == 0 {
		if h.target != nil {
			h.target.ForceDead()
		}
		if h.OnDeath != nil {
			h.OnDeath(h)
		}
		return true
	}
	if h.target != nil {
		h.target.ForceHit()
	}
	return true
}

// Heal restores health up to Max. The dead stay dead.
func (h *Health) Heal(amount int) {
	if h == nil || !h.IsAlive() || amount <= 0 {
		return
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}

// StartInvulnerability ignores damage for duration seconds.
func (h *Health) StartInvulnerability(duration float64) {
	if h == nil || duration <= h.Invulnerable {
		return
	}
	h.Invulnerable = duration
}

// Tick advances the invulnerability timer by dt seconds.
func (h *Health) Tick(dt float64) {
	if h == nil || h.Invulnerable <= 0 {
		return
	}
	h.Invulnerable -= dt
	if h.Invulnerable < 0 {
		h.Invulnerable = 0
	}
}

// Revive restores full health.
func (h *Health) Revive() {
	if h == nil {
		return
	}
	h.Current = h.Max
	h.Invulnerable = 0
}
