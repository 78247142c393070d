package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostureBreakOncePerCrossing(t *testing.T) {
	_, enemy := newPair()
	p := NewPosturePolicy(nil)

	breaks := 0
	for i := 0; i < 10; i++ {
		if p.Apply(int64(i), enemy, 30) {
			breaks++
		}
		require.LessOrEqual(t, enemy.Stats.Posture, enemy.Stats.MaxPosture)
	}
	assert.Equal(t, 1, breaks)
	assert.Equal(t, []CombatEventType{EventStaggered}, eventTypes(p.Emitter.Drain()))

	enemy.Advance(3+enemy.StaggerMs, p.Emitter)
	require.Equal(t, StateIdle, enemy.State)
	assert.True(t, p.Apply(2000, enemy, 200), "a fresh crossing breaks again")
}

func TestPostureDecay(t *testing.T) {
	cases := []struct {
		name       string
		setup      func(c *Combatant)
		threatened bool
		want       float64
	}{
		{"decays", func(c *Combatant) {}, false, 50 - 0.02*100},
		{"threatened_holds", func(c *Combatant) {}, true, 50},
		{"staggered_holds", func(c *Combatant) { c.Stagger(0, nil) }, false, 50},
		{"floored", func(c *Combatant) { c.Stats.Posture = 1 }, false, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, enemy := newPair()
			enemy.Stats.Posture = 50
			c.setup(enemy)
			NewPosturePolicy(nil).Decay(enemy, 100, c.threatened)
			assert.InDelta(t, c.want, enemy.Stats.Posture, 1e-9)
		})
	}
}

func TestPostureDecayRatesDifferByRole(t *testing.T) {
	hero, enemy := newPair()
	hero.Stats.Posture = 50
	enemy.Stats.Posture = 50
	p := NewPosturePolicy(nil)
	p.Update(0, 100, []*Combatant{hero, enemy})
	assert.InDelta(t, 47.0, hero.Stats.Posture, 1e-9)
	assert.InDelta(t, 48.0, enemy.Stats.Posture, 1e-9)
}

func TestThreatened(t *testing.T) {
	hero, enemy := newPair()
	all := []*Combatant{hero, enemy}
	assert.False(t, Threatened(hero, all))

	swingTo(enemy, enemyStrike(), 0, 100)
	assert.True(t, Threatened(hero, all))
	assert.False(t, Threatened(enemy, all), "own attack is not a threat")

	enemy.MarkResolved(hero.ID)
	assert.False(t, Threatened(hero, all))
}

func TestPostureDamagedCombatantSkipsDecayThatTick(t *testing.T) {
	hero, enemy := newPair()
	p := NewPosturePolicy(nil)
	p.Apply(0, enemy, 20)
	hero.Stats.Posture = 20
	all := []*Combatant{hero, enemy}

	p.Update(0, 16, all)
	assert.Equal(t, 20.0, enemy.Stats.Posture)
	assert.InDelta(t, 20-0.03*16, hero.Stats.Posture, 1e-9)

	p.Update(16, 16, all)
	assert.InDelta(t, 20-0.02*16, enemy.Stats.Posture, 1e-9)
}
