package component

import "testing"

func TestAnimationAdvances(t *testing.T) {
	cases := []struct {
		name  string
		loop  bool
		ticks int
		frame int
	}{
		{"first_frame", false, 4, 0},
		{"second_frame", false, 5, 1},
		{"clamped", false, 50, 2},
		{"wraps", true, 15, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			// 12 fps is 5 ticks per frame
			a := NewAnimation("swing", 3, 12, c.loop)
			for i := 0; i < c.ticks; i++ {
				a.Update()
			}
			if a.Frame() != c.frame {
				t.Fatalf("expected frame %d, got %d", c.frame, a.Frame())
			}
		})
	}
}

func TestAnimationDone(t *testing.T) {
	a := NewAnimation("hit", 2, 60, false)
	if a.Done() {
		t.Fatalf("should not be done on the first frame")
	}
	a.Update()
	if !a.Done() {
		t.Fatalf("expected done on the last frame")
	}
	a.Reset()
	if a.Done() || a.Frame() != 0 {
		t.Fatalf("reset should rewind")
	}
}

func TestAnimationSetPlay(t *testing.T) {
	idle := NewAnimation("idle", 4, 60, true)
	dodge := NewAnimation("dodge", 4, 60, false)
	s := NewAnimationSet(idle, dodge)

	s.Update()
	if s.Current() != nil {
		t.Fatalf("expected no clip before Play")
	}

	s.Play("dodge")
	s.Update()
	s.Update()
	if s.Current() != dodge || dodge.Frame() != 2 {
		t.Fatalf("expected dodge at frame 2, got %v", dodge.Frame())
	}

	s.Play("dodge")
	if dodge.Frame() != 2 {
		t.Fatalf("replaying the current clip must not restart it")
	}

	s.Play("missing")
	if s.Current() != dodge {
		t.Fatalf("unknown clip should keep the current one")
	}

	s.Play("idle")
	s.Play("dodge")
	if dodge.Frame() != 0 {
		t.Fatalf("switching back should restart the clip")
	}
}
