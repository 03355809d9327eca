package component

import "math"

// Animation is a frame counter for a named clip. Frames advance at FPS on a
// fixed 60 tick per second update.
type Animation struct {
	Name       string
	FrameCount int
	FPS        int
	Loop       bool

	current     int
	tick        int
	ticksPerFrm int
}

// NewAnimation creates an Animation. `fps` defaults to 12 if <= 0 and a
// frameCount below 1 is treated as a single frame.
func NewAnimation(name string, frameCount, fps int, loop bool) *Animation {
	if fps <= 0 {
		fps = 12
	}
	if frameCount < 1 {
		frameCount = 1
	}
	return &Animation{
		Name:        name,
		FrameCount:  frameCount,
		FPS:         fps,
		Loop:        loop,
		ticksPerFrm: int(math.Max(1, math.Round(60.0/float64(fps)))),
	}
}

// Update advances the animation by one tick.
func (a *Animation) Update() {
	if a == nil || a.FrameCount <= 1 {
		return
	}
	a.tick++
	if a.tick >= a.ticksPerFrm {
		a.tick = 0
		a.current++
		if a.current >= a.FrameCount {
			if a.Loop {
				a.current = 0
			} else {
				a.current = a.FrameCount - 1
			}
		}
	}
}

// Reset sets the animation back to the first frame.
func (a *Animation) Reset() {
	if a == nil {
		return
	}
	a.current = 0
	a.tick = 0
}

func (a *Animation) Frame() int { return a.current }

// Done reports whether a non-looping animation sits on its last frame.
func (a *Animation) Done() bool {
	return a != nil && !a.Loop && a.current == a.FrameCount-1
}

// AnimationSet is an Animator over a fixed set of clips. Playing the clip
// that is already running does not restart it.
type AnimationSet struct {
	clips   map[string]*Animation
	current *Animation
}

func NewAnimationSet(clips ...*Animation) *AnimationSet {
	s := &AnimationSet{clips: make(map[string]*Animation, len(clips))}
	for _, c := range clips {
		if c != nil {
			s.clips[c.Name] = c
		}
	}
	return s
}

// Play switches to the named clip. Unknown names keep the current clip.
func (s *AnimationSet) Play(name string) {
	next, ok := s.clips[name]
	if !ok || next == s.current {
		return
	}
	next.Reset()
	s.current = next
}

func (s *AnimationSet) Update() { s.current.Update() }

// Current returns the running clip, or nil before the first Play.
func (s *AnimationSet) Current() *Animation { return s.current }

var _ Animator = (*AnimationSet)(nil)
