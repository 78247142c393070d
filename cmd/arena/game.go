package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/parrycore/component"
	"github.com/milk9111/parrycore/prefabs"
	"github.com/milk9111/parrycore/system"
)

const (
	baseWidth  = 1280
	baseHeight = 720
	tps        = 60
	tickMs     = 1000 / tps

	// pixels per world unit
	unit = 64.0

	feedSize = 8
)

type Game struct {
	classes []string
	seed    int64
	debug   bool

	tables  *prefabs.Tables
	enc     *system.Encounter
	mover   *system.KinematicMover
	watcher *prefabs.Watcher

	input  *Input
	panel  *StatsPanel
	now    int64
	feed   []string
	paused bool
}

func NewGame(classes []string, seed int64, watch, debug bool) (*Game, error) {
	tables, err := prefabs.LoadTables()
	if err != nil {
		return nil, err
	}
	if len(classes) == 0 {
		classes = tables.ClassNames[:1]
	}
	panel, err := NewStatsPanel()
	if err != nil {
		return nil, err
	}
	g := &Game{
		panel:   panel,
		classes: classes,
		seed:    seed,
		debug:   debug,
		tables:  tables,
		input:   NewInput(),
	}
	if err := g.reset(); err != nil {
		return nil, err
	}
	if watch {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			log.Printf("prefabs: hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

// reset starts a fresh encounter with the current tables.
func (g *Game) reset() error {
	g.mover = system.NewKinematicMover()
	opts := []system.Option{
		system.WithRand(rand.New(rand.NewSource(g.seed))),
		system.WithMover(g.mover),
		system.WithScripts(prefabs.LoadScript),
		system.WithSink(component.EventSinkFunc(g.consume)),
	}
	if g.debug {
		opts = append(opts, system.WithLogger(log.New(os.Stderr, "", log.LstdFlags)))
	}
	enc, err := system.NewEncounter(g.tables.Patterns, g.tables.Tuning, g.tables.Hero, &component.FixedPlacement{At: arenaCenter()}, opts...)
	if err != nil {
		return err
	}

	points := make([]system.SpawnPoint, 0, len(g.classes))
	for i, name := range g.classes {
		x := arenaCenter().X + 4 + float64(i)*1.5
		y := arenaCenter().Y + float64(i%2*2-1)*float64(i)
		points = append(points, system.At(name, x, y))
	}
	if _, err := enc.Spawn(g.tables.Classes, points...); err != nil {
		log.Printf("arena: %v", err)
	}

	g.enc = enc
	g.now = 0
	g.feed = nil
	return nil
}

func arenaCenter() cp.Vector {
	return cp.Vector{X: baseWidth / unit / 2, Y: baseHeight / unit / 2}
}

func (g *Game) Update() error {
	g.input.Update()
	g.pollReload()
	g.panel.Refresh(g.enc.Enemies(), g.enc.Tuning())
	g.panel.Update()

	if g.input.Restart {
		if err := g.reset(); err != nil {
			return err
		}
	}
	if g.input.Pause {
		g.paused = !g.paused
	}
	if g.paused {
		return nil
	}

	g.now += tickMs
	g.applyInput()
	g.enc.Tick(g.now, tickMs)
	g.mover.Integrate(tickMs)
	if n := g.enc.RemoveDead(); n > 0 {
		g.pushFeed(fmt.Sprintf("%d down", n))
	}
	return nil
}

func (g *Game) applyInput() {
	in := g.input
	hero := g.enc.Hero()
	if in.Attack {
		g.enc.RequestAttack(g.now)
	}
	if in.Parry {
		g.enc.RequestParry(g.now)
	}
	if in.Dodge {
		g.enc.RequestDodge(g.now)
	}
	g.enc.SetBlocking(in.Block)

	// the hero may only walk while free to act
	if hero.IsDead() || !(hero.State == component.StateIdle || hero.State == component.StatePursuing) {
		g.mover.Stop(hero)
		return
	}
	if in.Move == (cp.Vector{}) {
		g.mover.Stop(hero)
		return
	}
	speed := g.tables.HeroMoveSpeed
	if in.Block {
		speed /= 2
	}
	g.mover.Steer(hero, in.Move.Normalize(), speed)
}

// pollReload applies pending tuning changes between ticks.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(change)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("prefabs: watch: %v", err)
		default:
			return
		}
	}
}

// reload rebuilds every table after any change, since classes reference
// patterns and scripts across files.
func (g *Game) reload(change prefabs.Change) {
	tables, err := prefabs.LoadTables()
	if err == nil {
		err = g.enc.ReloadTables(tables.Patterns, tables.Tuning, tables.Hero, tables.Classes)
	}
	if err != nil {
		log.Printf("prefabs: reload after %s: %v", change.File, err)
		g.pushFeed("reload failed: " + change.File)
		return
	}
	g.tables = tables
	g.pushFeed(fmt.Sprintf("reloaded %s (%s)", change.Table, change.File))
}

func (g *Game) consume(events []component.CombatEvent) {
	for _, evt := range events {
		switch evt.Type {
		case component.EventAttackStarted, component.EventParryStarted:
			continue
		}
		g.pushFeed(describe(evt))
	}
}

func describe(evt component.CombatEvent) string {
	switch evt.Type {
	case component.EventHit:
		return fmt.Sprintf("%5d %d hit %d for %.0f (%s)", evt.AtMs, evt.AttackerID, evt.TargetID, evt.Damage, evt.Pattern)
	case component.EventParrySuccess:
		return fmt.Sprintf("%5d PARRY %s of %d", evt.AtMs, evt.Pattern, evt.AttackerID)
	case component.EventBlocked, component.EventEvaded:
		return fmt.Sprintf("%5d %d %s %s", evt.AtMs, evt.TargetID, evt.Type, evt.Pattern)
	default:
		return fmt.Sprintf("%5d %d %s", evt.AtMs, evt.TargetID, evt.Type)
	}
}

func (g *Game) pushFeed(line string) {
	g.feed = append(g.feed, line)
	if len(g.feed) > feedSize {
		g.feed = g.feed[len(g.feed)-feedSize:]
	}
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	err := g.watcher.Close()
	g.watcher = nil
	return err
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}

var _ ebiten.LayoutFer = (*Game)(nil)
