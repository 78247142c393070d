package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/parrycore/component"
	"github.com/stretchr/testify/require"
)

// seq is a Roller that replays fixed values and then repeats the last one.
type seq struct {
	vals []float64
	i    int
}

func rolls(v ...float64) *seq { return &seq{vals: v} }

func (s *seq) Float64() float64 {
	if len(s.vals) == 0 {
		return 0.99
	}
	v := s.vals[min(s.i, len(s.vals)-1)]
	s.i++
	return v
}

type steer struct {
	id    int
	dir   cp.Vector
	speed float64
}

type recordingMover struct {
	steers []steer
	stops  []int
}

func (m *recordingMover) Steer(c *component.Combatant, dir cp.Vector, speed float64) {
	m.steers = append(m.steers, steer{id: c.ID, dir: dir, speed: speed})
}

func (m *recordingMover) Stop(c *component.Combatant) {
	m.stops = append(m.stops, c.ID)
}

func testPatterns(t *testing.T) *component.PatternTable {
	t.Helper()
	table, err := component.NewPatternTable(
		component.AttackPattern{Name: "enemy_strike", Kind: component.PatternQuick, TelegraphMs: 450, ActiveMs: 160, RecoverMs: 500, ParryWindowMs: 160, Damage: 16, PostureDamage: 25, Range: 1},
		component.AttackPattern{Name: "hero_slash", Kind: component.PatternHero, TelegraphMs: 120, ActiveMs: 100, RecoverMs: 200, Damage: 12, PostureDamage: 20, Range: 1},
		component.AttackPattern{Name: "q", Kind: component.PatternQuick, TelegraphMs: 300, ActiveMs: 100, RecoverMs: 300, ParryWindowMs: 100, Damage: 8, PostureDamage: 10, Range: 1},
		component.AttackPattern{Name: "c", Kind: component.PatternComboStarter, TelegraphMs: 400, ActiveMs: 120, RecoverMs: 300, ParryWindowMs: 120, Damage: 10, PostureDamage: 15, Range: 1},
		component.AttackPattern{Name: "h", Kind: component.PatternHeavy, TelegraphMs: 700, ActiveMs: 200, RecoverMs: 600, ParryWindowMs: 150, Damage: 25, PostureDamage: 40, Range: 1.2},
	)
	require.NoError(t, err)
	return table
}

func testClass() *component.EnemyClass {
	return &component.EnemyClass{
		Name:              "samurai",
		MaxHP:             80,
		MaxPosture:        100,
		MoveSpeed:         2.4,
		AttackRange:       0.9,
		PursuitRange:      6,
		RetreatRange:      3,
		CooldownMs:        1000,
		ComboCooldownMs:   300,
		MaxCombo:          3,
		Aggression:        0.7,
		StaggerMs:         900,
		PostureDecayPerMs: 0.02,
		RetreatMs:         800,
		Quick:             "enemy_strike",
		Heavy:             "enemy_strike",
		ComboStarter:      "enemy_strike",
	}
}

// mixedClass uses distinct patterns so pattern choice is observable.
func mixedClass() *component.EnemyClass {
	cls := testClass()
	cls.Name = "ninja"
	cls.Quick = "q"
	cls.ComboStarter = "c"
	cls.Heavy = "h"
	return cls
}

func at(x, y float64) *component.FixedPlacement {
	return &component.FixedPlacement{At: cp.Vector{X: x, Y: y}}
}

// newDuel builds an encounter with the hero at the origin and one enemy at
// x. Rolls default to 0.99: quick attacks never win the roll and hits never
// trigger a retreat.
func newDuel(t *testing.T, x float64, opts ...Option) (*Encounter, *component.Combatant) {
	t.Helper()
	opts = append([]Option{WithRand(rolls())}, opts...)
	enc, err := NewEncounter(testPatterns(t), component.DefaultTuning(), component.DefaultHeroConfig(), at(0, 0), opts...)
	require.NoError(t, err)
	enemy, err := enc.AddEnemy(testClass(), at(x, 0))
	require.NoError(t, err)
	return enc, enemy
}

func eventTypes(events []component.CombatEvent) []component.CombatEventType {
	out := make([]component.CombatEventType, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}

func countType(events []component.CombatEvent, typ component.CombatEventType) int {
	n := 0
	for _, e := range events {
		if e.Type == typ {
			n++
		}
	}
	return n
}

// collector is an EventSink that keeps every tick's batch.
type collector struct {
	batches [][]component.CombatEvent
}

func (c *collector) Consume(events []component.CombatEvent) {
	c.batches = append(c.batches, events)
}

func (c *collector) all() []component.CombatEvent {
	var out []component.CombatEvent
	for _, b := range c.batches {
		out = append(out, b...)
	}
	return out
}
