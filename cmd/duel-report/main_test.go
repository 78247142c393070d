package main

import (
	"testing"

	"github.com/milk9111/parrycore/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() options {
	return options{runs: 1, ticks: 3000, tickMs: 16, seedBase: 7, seedStep: 1, class: "samurai", enemies: 1, parrySkill: 1}
}

func TestRunDuelIsDeterministic(t *testing.T) {
	tables, err := prefabs.LoadTables()
	require.NoError(t, err)

	a, err := runDuel(tables, testOptions(), 1, 7)
	require.NoError(t, err)
	b, err := runDuel(tables, testOptions(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestParrySkillDrivesParries(t *testing.T) {
	tables, err := prefabs.LoadTables()
	require.NoError(t, err)

	opts := testOptions()
	skilled, err := runDuel(tables, opts, 1, 7)
	require.NoError(t, err)

	opts.parrySkill = 0
	clumsy, err := runDuel(tables, opts, 1, 7)
	require.NoError(t, err)

	assert.Positive(t, skilled.parries)
	assert.Zero(t, clumsy.parries)
}

func TestRunDuelUnknownClass(t *testing.T) {
	tables, err := prefabs.LoadTables()
	require.NoError(t, err)

	opts := testOptions()
	opts.class = "dragon"
	_, err = runDuel(tables, opts, 1, 7)
	assert.ErrorContains(t, err, "dragon")
}

func TestOptionsValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(o *options)
		ok     bool
	}{
		{"defaults", func(o *options) {}, true},
		{"no_runs", func(o *options) { o.runs = 0 }, false},
		{"no_ticks", func(o *options) { o.ticks = -1 }, false},
		{"zero_tick", func(o *options) { o.tickMs = 0 }, false},
		{"no_enemies", func(o *options) { o.enemies = 0 }, false},
		{"skill_range", func(o *options) { o.parrySkill = 1.5 }, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o := testOptions()
			c.mutate(&o)
			if c.ok {
				assert.NoError(t, o.validate())
			} else {
				assert.Error(t, o.validate())
			}
		})
	}
}

func TestFormatReport(t *testing.T) {
	all := []runStats{
		{runIndex: 1, seed: 7, heroWon: true, endMs: 4000, heroHP: 52, parries: 3, hitsDealt: 8},
		{runIndex: 2, seed: 8, heroDied: true, endMs: 6000, hitsTaken: 7},
	}
	report := formatReport(testOptions(), all)
	assert.Contains(t, report, "=== Duel Report ===")
	assert.Contains(t, report, "run 1 seed=7 outcome=hero_won")
	assert.Contains(t, report, "run 2 seed=8 outcome=hero_died")
	assert.Contains(t, report, "win_rate=0.50 avg_duration=5000ms avg_parries=1.50")
}
