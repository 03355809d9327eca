package component

import "math"

// Vec2 is a plain 2D vector used for movement input and directions.
type Vec2 struct {
	X, Y float64
}

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Len returns the vector length.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalized returns v scaled to unit length, or the zero vector.
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Input stores the actor's input for the current frame. Press flags are
// one-frame and are cleared at the end of every frame.
type Input struct {
	Move          Vec2
	DodgePressed  bool
	AttackPressed bool
	AttackHeld    bool
}

// ConsumePresses clears the one-frame flags.
func (in *Input) ConsumePresses() {
	in.DodgePressed = false
	in.AttackPressed = false
}

// ClearAttack drops any pending attack input for this frame.
func (in *Input) ClearAttack() {
	in.AttackPressed = false
	in.AttackHeld = false
}
