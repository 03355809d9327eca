package physics

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/playerfsm/component"
)

const (
	collisionTypeSolid cp.CollisionType = iota + 1
	collisionTypeActor
)

// World is a top-down chipmunk space enclosed by four walls.
type World struct {
	space  *cp.Space
	width  float64
	height float64
	walls  []*cp.Shape
}

func NewWorld(width, height float64) *World {
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})

	w := &World{space: space, width: width, height: height}
	w.addWalls()
	return w
}

func (w *World) addWalls() {
	if w.width <= 0 || w.height <= 0 {
		return
	}
	thickness := 1.0
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: w.width, Y: 0}},
		{a: cp.Vector{X: 0, Y: w.height}, b: cp.Vector{X: w.width, Y: w.height}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: w.height}},
		{a: cp.Vector{X: w.width, Y: 0}, b: cp.Vector{X: w.width, Y: w.height}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(w.space.StaticBody, seg.a, seg.b, thickness)
		shape.SetFriction(0)
		shape.SetCollisionType(collisionTypeSolid)
		w.space.AddShape(shape)
		w.walls = append(w.walls, shape)
	}
}

// Step advances the simulation by dt seconds.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	w.space.Step(dt)
}

func (w *World) Space() *cp.Space { return w.space }

func (w *World) Size() (float64, float64) { return w.width, w.height }

// NewActorBody adds a circular body for an actor at (x, y).
func (w *World) NewActorBody(x, y, radius float64) *Body {
	mass := 1.0
	body := cp.NewBody(mass, cp.INFINITY)
	body.SetPosition(cp.Vector{X: x, Y: y})

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0)
	shape.SetElasticity(0)
	shape.SetCollisionType(collisionTypeActor)

	w.space.AddBody(body)
	w.space.AddShape(shape)
	return &Body{body: body, shape: shape, radius: radius}
}

// Remove takes b out of the space.
func (w *World) Remove(b *Body) {
	if b == nil || b.body == nil {
		return
	}
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
	b.body = nil
	b.shape = nil
}

// Body is a chipmunk body that implements component.Body and
// component.Movement.
type Body struct {
	body    *cp.Body
	shape   *cp.Shape
	radius  float64
	dodging bool
}

func (b *Body) Velocity() component.Vec2 {
	if b.body == nil {
		return component.Vec2{}
	}
	v := b.body.Velocity()
	return component.Vec2{X: v.X, Y: v.Y}
}

func (b *Body) SetVelocity(v component.Vec2) {
	if b.body == nil {
		return
	}
	b.body.SetVelocityVector(cp.Vector{X: v.X, Y: v.Y})
}

func (b *Body) Stop() {
	b.SetVelocity(component.Vec2{})
}

func (b *Body) Position() component.Vec2 {
	if b.body == nil {
		return component.Vec2{}
	}
	p := b.body.Position()
	return component.Vec2{X: p.X, Y: p.Y}
}

// SetPosition teleports the body and clears its velocity.
func (b *Body) SetPosition(p component.Vec2) {
	if b.body == nil {
		return
	}
	b.body.SetPosition(cp.Vector{X: p.X, Y: p.Y})
	b.dodging = false
	b.Stop()
}

func (b *Body) Radius() float64 { return b.radius }

// IsDodging reports whether a dodge burst is in progress.
func (b *Body) IsDodging() bool { return b.dodging }

// Move sets the velocity towards dir. Ignored during a dodge.
func (b *Body) Move(dir component.Vec2, speed float64) {
	if b.dodging {
		return
	}
	b.SetVelocity(scale(dir, speed))
}

// StartDodge applies a fixed velocity burst that lasts until EndDodge.
func (b *Body) StartDodge(dir component.Vec2, speed float64) {
	b.dodging = true
	b.SetVelocity(scale(dir, speed))
}

func (b *Body) EndDodge() {
	b.dodging = false
	b.Stop()
}

func (b *Body) Halt() {
	b.dodging = false
	b.Stop()
}

func scale(dir component.Vec2, speed float64) component.Vec2 {
	n := dir.Normalized()
	return component.Vec2{X: n.X * speed, Y: n.Y * speed}
}

var (
	_ component.Body     = (*Body)(nil)
	_ component.Movement = (*Body)(nil)
)
