package main

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/parrycore/component"
	"golang.org/x/image/colornames"
)

const (
	bodyRadius = 0.35 * unit
	barWidth   = 48
	barHeight  = 5
)

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Darkslategray)

	for _, enemy := range g.enc.Enemies() {
		g.drawEnemy(screen, enemy)
	}
	g.drawHero(screen, g.enc.Hero())
	g.drawHUD(screen)
	g.panel.Draw(screen)
}

func (g *Game) drawHero(screen *ebiten.Image, hero *component.Combatant) {
	x, y := screenPos(hero)
	body := color.Color(colornames.Crimson)
	if hero.IsInvulnerable(g.now) {
		body = color.NRGBA{R: 0xdc, G: 0x14, B: 0x3c, A: 0x60}
	}
	if hero.IsDead() {
		body = colornames.Dimgray
	}
	vector.FillCircle(screen, x, y, bodyRadius, body, true)

	switch {
	case hero.CanParry(g.now):
		vector.StrokeCircle(screen, x, y, bodyRadius+6, 3, colornames.Cyan, true)
	case hero.IsBlocking():
		vector.StrokeCircle(screen, x, y, bodyRadius+6, 3, colornames.Lightgrey, true)
	case hero.State == component.StateStaggered:
		vector.StrokeCircle(screen, x, y, bodyRadius+6, 2, colornames.Violet, true)
	}
	g.drawSwing(screen, hero, x, y)
	drawBars(screen, hero, x, y)
}

func (g *Game) drawEnemy(screen *ebiten.Image, enemy *component.Combatant) {
	x, y := screenPos(enemy)
	body := color.Color(colornames.Orange)
	if enemy.Enemy != nil && enemy.Enemy.Class != nil {
		if c, ok := g.tables.Colors[enemy.Enemy.Class.Name]; ok {
			body = c
		}
	}
	vector.FillCircle(screen, x, y, bodyRadius, body, true)
	if enemy.State == component.StateStaggered {
		vector.StrokeCircle(screen, x, y, bodyRadius+6, 2, colornames.Violet, true)
	}
	g.drawSwing(screen, enemy, x, y)
	drawBars(screen, enemy, x, y)
	ebitenutil.DebugPrintAt(screen, enemy.Name, int(x)-barWidth/2, int(y+bodyRadius)+4)
}

// drawSwing shows the reach of an attack in progress. Windup is amber and the
// active window is red.
func (g *Game) drawSwing(screen *ebiten.Image, c *component.Combatant, x, y float32) {
	if c.Pattern == nil {
		return
	}
	r := float32(c.Pattern.Range * unit)
	switch c.State {
	case component.StateWindup:
		progress := float32(g.now-c.AttackStartMs) / float32(max(c.Pattern.TelegraphMs, 1))
		vector.StrokeCircle(screen, x, y, r, 1, colornames.Gold, true)
		vector.StrokeCircle(screen, x, y, r*min(progress, 1), 2, colornames.Gold, true)
	case component.StateActive:
		vector.StrokeCircle(screen, x, y, r, 3, colornames.Red, true)
	}
}

func drawBars(screen *ebiten.Image, c *component.Combatant, x, y float32) {
	left := x - barWidth/2
	top := y - bodyRadius - 2*barHeight - 6
	bar(screen, left, top, float32(c.Stats.HealthRatio()), colornames.Limegreen)
	bar(screen, left, top+barHeight+2, float32(c.Stats.PostureRatio()), colornames.Gold)
}

func bar(screen *ebiten.Image, x, y, ratio float32, clr color.Color) {
	vector.FillRect(screen, x, y, barWidth, barHeight, color.RGBA{A: 0xa0}, false)
	vector.FillRect(screen, x, y, barWidth*ratio, barHeight, clr, false)
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	hero := g.enc.Hero()
	var b strings.Builder
	fmt.Fprintf(&b, "t=%dms  TPS %.0f  hero %s  hp %.0f/%.0f  posture %.0f/%.0f\n",
		g.now, ebiten.ActualTPS(), hero.State, hero.Stats.HP, hero.Stats.MaxHP, hero.Stats.Posture, hero.Stats.MaxPosture)
	fmt.Fprintf(&b, "WASD move  J attack  K parry  L block  Space dodge  R restart  P pause\n")
	if g.paused {
		b.WriteString("PAUSED\n")
	}
	if g.enc.Over() {
		if hero.IsDead() {
			b.WriteString("You died. R to restart.\n")
		} else {
			b.WriteString("Arena cleared. R to restart.\n")
		}
	}
	ebitenutil.DebugPrint(screen, b.String())

	for i, line := range g.feed {
		ebitenutil.DebugPrintAt(screen, line, 8, baseHeight-16*(len(g.feed)-i)-8)
	}
}

func screenPos(c *component.Combatant) (float32, float32) {
	p := c.Position()
	return float32(p.X * unit), float32(p.Y * unit)
}
