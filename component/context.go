package component

// Owner is the read-only view of the actor that states consult.
type Owner interface {
	Input() Input
	// Facing is the last non-zero movement direction.
	Facing() Vec2
	CanChargeAttack() bool
	AttackDuration() float64
	Tuning() Tuning
}

// Body is the physics body of the actor.
type Body interface {
	Velocity() Vec2
	SetVelocity(v Vec2)
	Stop()
}

// Movement executes locomotion requests.
type Movement interface {
	Move(dir Vec2, speed float64)
	StartDodge(dir Vec2, speed float64)
	EndDodge()
	Halt()
}

// Animator plays named animations.
type Animator interface {
	Play(name string)
}

// ChargeValue is a read-only view of a timed value provider for one kind.
type ChargeValue interface {
	Value() float64
	IsComplete() bool
	IsActive() bool
}

// ChargeResetter is implemented by charge values that can be cleared without
// raising events.
type ChargeResetter interface {
	Reset()
}

// Tuning holds the timing and speed values the states read.
type Tuning struct {
	MoveSpeed       float64
	DodgeSpeed      float64
	DodgeDuration   float64
	HitStunDuration float64
}

// Context is the per-actor bundle of references passed to every state. It
// owns none of them.
type Context struct {
	Owner    Owner
	Body     Body
	Movement Movement
	Animator Animator
	Charge   ChargeValue
	Hold     ChargeValue

	// Delta is the duration of the current frame in seconds.
	Delta float64
}

// NewContext builds a context and swaps every nil collaborator for a no-op
// implementation.
func NewContext(owner Owner, body Body, movement Movement, animator Animator, charge, hold ChargeValue) *Context {
	ctx := &Context{
		Owner:    owner,
		Body:     body,
		Movement: movement,
		Animator: animator,
		Charge:   charge,
		Hold:     hold,
	}
	if ctx.Owner == nil {
		ctx.Owner = NopOwner{}
	}
	if ctx.Body == nil {
		ctx.Body = &NopBody{}
	}
	if ctx.Movement == nil {
		ctx.Movement = BodyMovement{Body: ctx.Body}
	}
	if ctx.Animator == nil {
		ctx.Animator = NopAnimator{}
	}
	if ctx.Charge == nil {
		ctx.Charge = ZeroCharge{}
	}
	if ctx.Hold == nil {
		ctx.Hold = ZeroCharge{}
	}
	return ctx
}

// Animate plays an animation when an animator is attached.
func (c *Context) Animate(name string) {
	if c == nil || c.Animator == nil {
		return
	}
	c.Animator.Play(name)
}

// Input returns the owner's input for this frame.
func (c *Context) Input() Input {
	if c == nil || c.Owner == nil {
		return Input{}
	}
	return c.Owner.Input()
}

// NopOwner reports no input and zero tuning.
type NopOwner struct{}

func (NopOwner) Input() Input            { return Input{} }
func (NopOwner) Facing() Vec2            { return Vec2{X: 1} }
func (NopOwner) CanChargeAttack() bool   { return false }
func (NopOwner) AttackDuration() float64 { return 0 }
func (NopOwner) Tuning() Tuning          { return Tuning{} }

// NopBody stores a velocity and nothing else.
type NopBody struct {
	V Vec2
}

func (b *NopBody) Velocity() Vec2     { return b.V }
func (b *NopBody) SetVelocity(v Vec2) { b.V = v }
func (b *NopBody) Stop()              { b.V = Vec2{} }

// BodyMovement drives a Body directly by setting its velocity.
type BodyMovement struct {
	Body Body
}

func (m BodyMovement) Move(dir Vec2, speed float64) {
	n := dir.Normalized()
	m.Body.SetVelocity(Vec2{X: n.X * speed, Y: n.Y * speed})
}

func (m BodyMovement) StartDodge(dir Vec2, speed float64) {
	m.Move(dir, speed)
}

func (m BodyMovement) EndDodge() {
	m.Body.Stop()
}

func (m BodyMovement) Halt() {
	m.Body.Stop()
}

// NopAnimator ignores animation requests.
type NopAnimator struct{}

func (NopAnimator) Play(string) {}

// ZeroCharge is the charge value used when no provider is configured.
type ZeroCharge struct{}

func (ZeroCharge) Value() float64   { return 0 }
func (ZeroCharge) IsComplete() bool { return false }
func (ZeroCharge) IsActive() bool   { return false }
