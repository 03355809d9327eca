package input

import "testing"

type recSink struct {
	x, y     float64
	dodges   int
	attacks  int
	held     bool
	canceled int
}

func (s *recSink) SetMoveInput(x, y float64) { s.x, s.y = x, y }
func (s *recSink) PressDodge()               { s.dodges++ }
func (s *recSink) PressAttack()              { s.attacks++; s.held = true }
func (s *recSink) SetAttackHeld(held bool)   { s.held = held }
func (s *recSink) CancelAttackInput()        { s.canceled++; s.held = false }

func TestApply(t *testing.T) {
	cases := []struct {
		name     string
		frame    Frame
		dodges   int
		attacks  int
		held     bool
		canceled int
	}{
		{"idle", Frame{Skill: -1}, 0, 0, false, 0},
		{"dodge", Frame{Dodge: true, Skill: -1}, 1, 0, false, 0},
		{"press", Frame{AttackPressed: true, AttackHeld: true, Skill: -1}, 0, 1, true, 0},
		{"hold", Frame{AttackHeld: true, Skill: -1}, 0, 0, true, 0},
		{"release", Frame{AttackReleased: true, Skill: -1}, 0, 0, false, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s := &recSink{}
			Apply(c.frame, s)
			if s.dodges != c.dodges || s.attacks != c.attacks || s.held != c.held || s.canceled != c.canceled {
				t.Fatalf("unexpected sink state %+v", s)
			}
		})
	}
}

func TestApplyMovement(t *testing.T) {
	s := &recSink{x: 5, y: 5}
	Apply(Frame{MoveX: -1, MoveY: 0.5, Skill: -1}, s)
	if s.x != -1 || s.y != 0.5 {
		t.Fatalf("expected (-1, 0.5), got (%v, %v)", s.x, s.y)
	}
	Apply(Frame{Skill: -1}, s)
	if s.x != 0 || s.y != 0 {
		t.Fatalf("movement should be cleared every frame")
	}
}
