package input

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const stickDeadzone = 0.2

// Sink receives the actor input every frame. controller.Coordinator
// implements it.
type Sink interface {
	SetMoveInput(x, y float64)
	PressDodge()
	PressAttack()
	SetAttackHeld(held bool)
	CancelAttackInput()
}

// Frame is the input read for one frame.
type Frame struct {
	MoveX, MoveY   float64
	Dodge          bool
	AttackPressed  bool
	AttackHeld     bool
	AttackReleased bool

	NextWeapon bool
	// Skill is the pressed skill slot, -1 when none.
	Skill int

	Pause   bool
	Hit     bool
	Kill    bool
	Respawn bool
}

var skillKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

// Read polls the keyboard and the first standard gamepad.
func Read() Frame {
	f := Frame{Skill: -1}

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		f.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		f.MoveX += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		f.MoveY -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		f.MoveY += 1
	}

	f.Dodge = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	f.AttackPressed = inpututil.IsKeyJustPressed(ebiten.KeyJ) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	f.AttackHeld = ebiten.IsKeyPressed(ebiten.KeyJ) || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	f.AttackReleased = inpututil.IsKeyJustReleased(ebiten.KeyJ) || inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	f.NextWeapon = inpututil.IsKeyJustPressed(ebiten.KeyTab)
	f.Pause = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
	f.Hit = inpututil.IsKeyJustPressed(ebiten.KeyH)
	f.Kill = inpututil.IsKeyJustPressed(ebiten.KeyK)
	f.Respawn = inpututil.IsKeyJustPressed(ebiten.KeyR)
	for i, k := range skillKeys {
		if inpututil.IsKeyJustPressed(k) {
			f.Skill = i
			break
		}
	}

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			f.MoveX, f.MoveY = lx, ly
		}

		f.Dodge = f.Dodge || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		f.AttackPressed = f.AttackPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)
		f.AttackHeld = f.AttackHeld || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightLeft)
		f.AttackReleased = f.AttackReleased || inpututil.IsStandardGamepadButtonJustReleased(id, ebiten.StandardGamepadButtonRightLeft)
		f.NextWeapon = f.NextWeapon || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightTop)
		f.Pause = f.Pause || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
		if f.Skill < 0 && inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontTopLeft) {
			f.Skill = 0
		}
		if f.Skill < 0 && inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonFrontTopRight) {
			f.Skill = 1
		}
	}

	return f
}

// Apply pushes the actor part of f into s.
func Apply(f Frame, s Sink) {
	s.SetMoveInput(f.MoveX, f.MoveY)
	if f.Dodge {
		s.PressDodge()
	}
	if f.AttackPressed {
		s.PressAttack()
	}
	if f.AttackReleased && !f.AttackHeld {
		s.CancelAttackInput()
		return
	}
	s.SetAttackHeld(f.AttackHeld)
}
