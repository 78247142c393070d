package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/parrycore/component"
	"github.com/milk9111/parrycore/prefabs"
	"github.com/milk9111/parrycore/system"
	"golang.design/x/clipboard"
)

type options struct {
	runs       int
	ticks      int
	tickMs     int64
	seedBase   int64
	seedStep   int64
	class      string
	enemies    int
	parrySkill float64
	verbose    bool
}

type runStats struct {
	runIndex int
	seed     int64
	heroID   int

	endMs    int64
	heroWon  bool
	heroDied bool
	heroHP   float64

	parries       int
	hitsTaken     int
	hitsDealt     int
	blocks        int
	enemyStaggers int
	heroStaggers  int
	kills         int
	damageDealt   float64
	damageTaken   float64
}

func main() {
	var opts options
	var copyReport bool

	flag.IntVar(&opts.runs, "runs", 5, "number of headless duels")
	flag.IntVar(&opts.ticks, "ticks", 3750, "max ticks per duel")
	flag.Int64Var(&opts.tickMs, "tick-ms", 16, "simulated milliseconds per tick")
	flag.Int64Var(&opts.seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&opts.seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&opts.class, "class", "samurai", "enemy class from enemies.yaml")
	flag.IntVar(&opts.enemies, "enemies", 1, "enemies per duel")
	flag.Float64Var(&opts.parrySkill, "parry-skill", 0.6, "chance the bot hero parries a telegraphed attack")
	flag.BoolVar(&opts.verbose, "v", false, "log encounter diagnostics")
	flag.BoolVar(&copyReport, "copy", false, "copy the report to the clipboard")
	flag.Parse()

	if err := opts.validate(); err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(2)
	}

	tables, err := prefabs.LoadTables()
	if err != nil {
		log.Fatalf("load tables: %v", err)
	}

	all := make([]runStats, 0, opts.runs)
	for i := 0; i < opts.runs; i++ {
		seed := opts.seedBase + int64(i)*opts.seedStep
		stats, err := runDuel(tables, opts, i+1, seed)
		if err != nil {
			log.Fatalf("run %d: %v", i+1, err)
		}
		all = append(all, stats)
	}

	report := formatReport(opts, all)
	fmt.Print(report)

	if copyReport {
		if err := clipboard.Init(); err != nil {
			log.Printf("clipboard unavailable: %v", err)
			return
		}
		clipboard.Write(clipboard.FmtText, []byte(report))
		fmt.Println("(report copied to clipboard)")
	}
}

func (o options) validate() error {
	switch {
	case o.runs <= 0:
		return fmt.Errorf("-runs must be > 0")
	case o.ticks <= 0:
		return fmt.Errorf("-ticks must be > 0")
	case o.tickMs <= 0:
		return fmt.Errorf("-tick-ms must be > 0")
	case o.enemies <= 0:
		return fmt.Errorf("-enemies must be > 0")
	case o.parrySkill < 0 || o.parrySkill > 1:
		return fmt.Errorf("-parry-skill must be in [0,1]")
	}
	return nil
}

func runDuel(tables *prefabs.Tables, opts options, runIndex int, seed int64) (runStats, error) {
	stats := runStats{runIndex: runIndex, seed: seed}
	cls, err := tables.Class(opts.class)
	if err != nil {
		return stats, err
	}

	mover := system.NewKinematicMover()
	encOpts := []system.Option{
		system.WithRand(rand.New(rand.NewSource(seed))),
		system.WithMover(mover),
		system.WithScripts(prefabs.LoadScript),
		system.WithSink(component.EventSinkFunc(func(events []component.CombatEvent) {
			stats.record(events)
		})),
	}
	if opts.verbose {
		encOpts = append(encOpts, system.WithLogger(log.New(os.Stderr, fmt.Sprintf("run%d ", runIndex), log.Lmsgprefix)))
	}

	enc, err := system.NewEncounter(tables.Patterns, tables.Tuning, tables.Hero, &component.FixedPlacement{}, encOpts...)
	if err != nil {
		return stats, err
	}
	stats.heroID = enc.Hero().ID
	for i := 0; i < opts.enemies; i++ {
		// stagger the enemies left and right in front of the hero
		x := 3.0 + float64(i)
		y := float64(i%2*2-1) * float64(i) * 0.8
		if _, err := enc.AddEnemy(cls, &component.FixedPlacement{At: cp.Vector{X: x, Y: y}}); err != nil {
			return stats, err
		}
	}

	bot := newHeroBot(enc, rand.New(rand.NewSource(seed^0x5eed)), opts.parrySkill)
	var now int64
	for tick := 0; tick < opts.ticks && !enc.Over(); tick++ {
		now = int64(tick) * opts.tickMs
		bot.act(now)
		enc.Tick(now, opts.tickMs)
		mover.Integrate(opts.tickMs)
	}

	hero := enc.Hero()
	stats.endMs = now
	stats.heroHP = hero.Stats.HP
	stats.heroDied = hero.IsDead()
	stats.heroWon = !stats.heroDied && enc.Over()
	return stats, nil
}

func (s *runStats) record(events []component.CombatEvent) {
	for _, evt := range events {
		heroTarget := evt.TargetID == s.heroID
		switch evt.Type {
		case component.EventParrySuccess:
			s.parries++
		case component.EventHit:
			if heroTarget {
				s.hitsTaken++
				s.damageTaken += evt.Damage
			} else {
				s.hitsDealt++
				s.damageDealt += evt.Damage
			}
		case component.EventBlocked:
			s.blocks++
		case component.EventStaggered:
			if heroTarget {
				s.heroStaggers++
			} else {
				s.enemyStaggers++
			}
		case component.EventDeath:
			if !heroTarget {
				s.kills++
			}
		}
	}
}

func formatReport(opts options, all []runStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "=== Duel Report ===\n")
	fmt.Fprintf(&b, "class=%s enemies=%d runs=%d ticks=%d tick_ms=%d seed_base=%d seed_step=%d parry_skill=%.2f\n\n",
		opts.class, opts.enemies, opts.runs, opts.ticks, opts.tickMs, opts.seedBase, opts.seedStep, opts.parrySkill)

	wins := 0
	var parries, hitsTaken, hitsDealt, staggers int
	var endMs int64
	for _, s := range all {
		outcome := "timeout"
		switch {
		case s.heroWon:
			outcome = "hero_won"
			wins++
		case s.heroDied:
			outcome = "hero_died"
		}
		fmt.Fprintf(&b, "run %d seed=%d outcome=%s t=%dms hero_hp=%.1f parries=%d blocks=%d hits_dealt=%d (%.1f) hits_taken=%d (%.1f) enemy_staggers=%d hero_staggers=%d kills=%d\n",
			s.runIndex, s.seed, outcome, s.endMs, s.heroHP, s.parries, s.blocks,
			s.hitsDealt, s.damageDealt, s.hitsTaken, s.damageTaken, s.enemyStaggers, s.heroStaggers, s.kills)
		parries += s.parries
		hitsTaken += s.hitsTaken
		hitsDealt += s.hitsDealt
		staggers += s.enemyStaggers
		endMs += s.endMs
	}

	n := float64(len(all))
	if n == 0 {
		return b.String()
	}
	fmt.Fprintf(&b, "\n--- aggregate ---\n")
	fmt.Fprintf(&b, "win_rate=%.2f avg_duration=%.0fms avg_parries=%.2f avg_hits_dealt=%.2f avg_hits_taken=%.2f avg_enemy_staggers=%.2f\n",
		float64(wins)/n, float64(endMs)/n, float64(parries)/n, float64(hitsDealt)/n, float64(hitsTaken)/n, float64(staggers)/n)
	return b.String()
}
