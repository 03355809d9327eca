package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"path/filepath"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/playerfsm/component"
	"github.com/milk9111/playerfsm/config"
	"github.com/milk9111/playerfsm/controller"
	"github.com/milk9111/playerfsm/input"
	"github.com/milk9111/playerfsm/physics"
	"github.com/milk9111/playerfsm/prefabs"
	"github.com/milk9111/playerfsm/skill"
)

const actorRadius = 8

type Game struct {
	cfg    config.Config
	frames int

	spec    *prefabs.ActorSpec
	world   *physics.World
	body    *physics.Body
	ctrl    *controller.Coordinator
	health  *component.Health
	loadout *prefabs.Loadout
	skills  *skill.Runner
	watcher *prefabs.Watcher

	anim    *component.AnimationSet
	fx      *weaponFX
	feed    *eventFeed
	pauseUI *ebitenui.UI
}

func NewGame(cfg config.Config) (*Game, error) {
	prefabs.Dir = cfg.PrefabDir
	spec, err := prefabs.LoadActorSpec()
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:  cfg,
		spec: spec,
		anim: newActorAnimations(),
		fx:   &weaponFX{debug: cfg.Debug},
		feed: newEventFeed(8),
	}

	g.world = physics.NewWorld(float64(cfg.Width), float64(cfg.Height))
	g.body = g.world.NewActorBody(float64(cfg.Width)/2, float64(cfg.Height)/2, actorRadius)

	g.loadout = prefabs.NewLoadout(spec.Weapons)
	if cfg.Weapon != "" {
		if _, ok := g.loadout.Select(cfg.Weapon); !ok {
			log.Printf("playground: unknown weapon %q, using %s", cfg.Weapon, g.loadout.Current().Name())
		}
	}

	g.ctrl = controller.NewCoordinator(controller.Options{
		Tuning:   spec.Tuning.Tuning(),
		Weapon:   g.loadout.Current(),
		Executor: g.fx,
		Body:     g.body,
		Movement: g.body,
		Animator: g.anim,
		Debug:    cfg.Debug,
	})
	g.ctrl.Subscribe(g.feed.push)

	g.health = component.NewHealth(spec.Health, g.ctrl)
	g.health.OnDamage = func(h *component.Health, amount int) {
		h.StartInvulnerability(g.spec.Tuning.HitStunDuration)
	}

	g.skills, err = skill.NewRunner(g.ctrl, spec.Skills)
	if err != nil {
		return nil, err
	}

	if cfg.HotReload {
		dirs := []string{cfg.PrefabDir, filepath.Join(cfg.PrefabDir, "scripts")}
		w, err := prefabs.NewWatcher(0, dirs...)
		if err != nil {
			log.Printf("playground: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.pauseUI = NewPauseUI(g)
	return g, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.frames++
	dt := g.cfg.Delta()

	g.drainWatcher()

	f := input.Read()
	if f.Pause && !g.ctrl.IsDead() {
		g.ctrl.SetPaused(!g.ctrl.IsPaused())
	}
	if g.ctrl.IsPaused() {
		g.pauseUI.Update()
	}

	if f.Respawn && g.ctrl.IsDead() {
		g.respawn()
	}
	if f.Hit {
		g.health.ApplyDamage(1)
	}
	if f.Kill {
		g.health.ApplyDamage(g.health.Current)
	}
	if f.NextWeapon {
		g.ctrl.SetWeapon(g.loadout.Next())
	}
	if f.Skill >= 0 && f.Skill < len(g.skills.Skills()) && !g.ctrl.IsPaused() {
		if _, err := g.skills.Cast(f.Skill); err != nil {
			log.Printf("playground: %v", err)
		}
	}

	input.Apply(f, g.ctrl)
	g.ctrl.Update(dt)
	g.skills.Update()

	if !g.ctrl.IsPaused() {
		g.anim.Update()
		g.health.Tick(dt)
		g.fx.tick(dt)
		g.world.Step(dt)
	}
	return nil
}

func (g *Game) respawn() {
	g.ctrl.Reset()
	g.health.Revive()
	g.body.SetPosition(component.Vec2{X: float64(g.cfg.Width) / 2, Y: float64(g.cfg.Height) / 2})
	g.feed.clear()
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Changes:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(change)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("playground: watch: %v", err)
			}
		default:
			return
		}
	}
}

func (g *Game) reload(change prefabs.Change) {
	if change.Asset == prefabs.AssetActor {
		spec, err := prefabs.LoadActorSpec()
		if err != nil {
			log.Printf("playground: reload %s: %v", change.Name, err)
			return
		}
		g.spec = spec

		name := g.loadout.Current().Name()
		g.loadout = prefabs.NewLoadout(spec.Weapons)
		g.loadout.Select(name)

		g.ctrl.SetTuning(spec.Tuning.Tuning())
		g.ctrl.SetWeapon(g.loadout.Current())
		g.health.Max = spec.Health
		if g.health.Current > g.health.Max {
			g.health.Current = g.health.Max
		}
	}

	if err := g.skills.Load(g.spec.Skills); err != nil {
		log.Printf("playground: reload skills: %v", err)
		return
	}
	log.Printf("playground: reloaded %s %s", change.Asset, change.Name)
}

var stateColors = map[component.LocomotionState]color.NRGBA{
	component.LocomotionIdle:  {R: 0x80, G: 0xc0, B: 0xff, A: 0xff},
	component.LocomotionMove:  {R: 0x40, G: 0xa0, B: 0xff, A: 0xff},
	component.LocomotionDodge: {R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	component.LocomotionHit:   {R: 0xff, G: 0x60, B: 0x40, A: 0xff},
	component.LocomotionDead:  {R: 0x50, G: 0x50, B: 0x50, A: 0xff},
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.NRGBA{R: 0x18, G: 0x18, B: 0x20, A: 0xff})

	p := g.body.Position()
	clr := stateColors[g.ctrl.LocomotionState()]
	if g.health.Invulnerable > 0 && g.frames%6 < 3 {
		clr.A = 0x60
	}
	vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), actorRadius, clr, true)
	g.drawFrameMarker(screen, p)
	if g.fx.flash > 0 {
		r := float32(actorRadius * 2)
		if g.fx.charged {
			r *= 1.6
		}
		vector.StrokeCircle(screen, float32(p.X), float32(p.Y), r, 2, color.NRGBA{R: 0xff, G: 0xd0, B: 0x40, A: 0xff}, true)
	}

	drawHUD(screen, g)

	if g.ctrl.IsPaused() {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

func newActorAnimations() *component.AnimationSet {
	return component.NewAnimationSet(
		component.NewAnimation("idle", 4, 6, true),
		component.NewAnimation("move", 8, 12, true),
		component.NewAnimation("dodge", 6, 24, false),
		component.NewAnimation("hit", 3, 12, false),
		component.NewAnimation("dead", 1, 1, false),
		component.NewAnimation("charge", 8, 16, true),
		component.NewAnimation("charge_hold", 2, 8, true),
		component.NewAnimation("attack", 5, 20, false),
	)
}

// drawFrameMarker spins a dot around the actor, one step per clip frame.
func (g *Game) drawFrameMarker(screen *ebiten.Image, p component.Vec2) {
	clip := g.anim.Current()
	if clip == nil || clip.FrameCount <= 1 {
		return
	}
	angle := 2 * math.Pi * float64(clip.Frame()) / float64(clip.FrameCount)
	x := p.X + math.Cos(angle)*(actorRadius+4)
	y := p.Y + math.Sin(angle)*(actorRadius+4)
	vector.DrawFilledCircle(screen, float32(x), float32(y), 2, color.White, true)
}

// weaponFX executes weapon commands as a short visual flash.
type weaponFX struct {
	debug   bool
	flash   float64
	charged bool
}

func (w *weaponFX) StartCharging(d float64) {
	if w.debug {
		log.Printf("weapon: charging for %.2fs", d)
	}
}

func (w *weaponFX) ExecuteAttack(charged bool) {
	w.flash = 0.15
	w.charged = charged
	if w.debug {
		log.Printf("weapon: attack charged=%v", charged)
	}
}

func (w *weaponFX) CancelAction(reason component.CancelReason) {
	w.flash = 0
	if w.debug {
		log.Printf("weapon: cancel (%s)", reason)
	}
}

func (w *weaponFX) tick(dt float64) {
	if w.flash > 0 {
		w.flash -= dt
	}
}

// eventFeed keeps the most recent domain events for the HUD.
type eventFeed struct {
	max   int
	lines []string
	// progress bars
	charge, hold float64
}

func newEventFeed(max int) *eventFeed {
	return &eventFeed{max: max}
}

func (f *eventFeed) push(ev controller.Event) {
	switch e := ev.(type) {
	case controller.ChargeProgress:
		if e.Hold {
			f.hold = e.Value
		} else {
			f.charge = e.Value
		}
		return
	case controller.ChargeStarted:
		f.charge, f.hold = 0, 0
		f.add(fmt.Sprintf("charge started (%.2fs)", e.Duration))
	case controller.ChargeReachedMax:
		f.add("charge full")
	case controller.ChargeCanceled:
		f.charge, f.hold = 0, 0
		f.add(fmt.Sprintf("charge canceled: %s at %.0f%%", e.Reason, e.Progress*100))
	case controller.AttackStarted:
		f.charge, f.hold = 0, 0
		f.add(fmt.Sprintf("attack: %s", e.Variant))
	case controller.AttackEnded:
		if e.Cause != component.CancelNone {
			f.add(fmt.Sprintf("attack ended: %s (%s)", e.Reason, e.Cause))
			return
		}
		f.add(fmt.Sprintf("attack ended: %s", e.Reason))
	}
}

func (f *eventFeed) add(line string) {
	f.lines = append(f.lines, line)
	if len(f.lines) > f.max {
		f.lines = f.lines[len(f.lines)-f.max:]
	}
}

func (f *eventFeed) clear() {
	f.lines = nil
	f.charge, f.hold = 0, 0
}

var _ controller.Executor = (*weaponFX)(nil)
