package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	hudBarWidth  = 80
	hudBarHeight = 4
)

var (
	chargeColor = color.NRGBA{R: 0xff, G: 0xd0, B: 0x40, A: 0xff}
	holdColor   = color.NRGBA{R: 0xff, G: 0x80, B: 0x20, A: 0xff}
	barBack     = color.NRGBA{R: 0x30, G: 0x30, B: 0x30, A: 0xff}
)

func drawHUD(screen *ebiten.Image, g *Game) {
	status := fmt.Sprintf("FPS %.0f  hp %d/%d  weapon %s", ebiten.ActualFPS(), g.health.Current, g.health.Max, g.ctrl.Weapon().Name())
	ebitenutil.DebugPrintAt(screen, status, 4, 2)

	anim := "-"
	if clip := g.anim.Current(); clip != nil {
		anim = fmt.Sprintf("%s:%d", clip.Name, clip.Frame())
	}
	state := fmt.Sprintf("loco %s  combat %s  anim %s", g.ctrl.LocomotionState(), g.ctrl.CombatState(), anim)
	ebitenutil.DebugPrintAt(screen, state, 4, 16)

	locks := g.ctrl.LockedActions().String()
	if slot, ok := g.skills.CurrentSkill(); ok {
		locks += fmt.Sprintf("  skill %s", g.skills.Skills()[slot].Name)
	}
	ebitenutil.DebugPrintAt(screen, "locks "+locks, 4, 30)

	drawBar(screen, 4, 48, g.feed.charge, chargeColor)
	drawBar(screen, 4, 48+hudBarHeight+2, g.feed.hold, holdColor)
	if g.ctrl.CombatState().IsCharge() {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%.2fs", g.ctrl.ChargeElapsed()), hudBarWidth+8, 42)
	}

	if g.cfg.Debug {
		exits := g.ctrl.LocomotionExits()
		names := make([]string, len(exits))
		for i, s := range exits {
			names[i] = s.String()
		}
		ebitenutil.DebugPrintAt(screen, "exits "+strings.Join(names, ","), 4, 64)

		y := 78
		for _, line := range g.feed.lines {
			ebitenutil.DebugPrintAt(screen, line, 4, y)
			y += 14
		}
	}

	if g.ctrl.IsDead() {
		ebitenutil.DebugPrintAt(screen, "dead - press R to respawn", g.cfg.Width/2-75, g.cfg.Height/2+20)
	}
}

func drawBar(screen *ebiten.Image, x, y int, value float64, clr color.Color) {
	vector.DrawFilledRect(screen, float32(x), float32(y), hudBarWidth, hudBarHeight, barBack, false)
	if value <= 0 {
		return
	}
	if value > 1 {
		value = 1
	}
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(hudBarWidth*value), hudBarHeight, clr, false)
}
