package prefabs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadEmbeddedTables(t *testing.T) {
	tables, err := LoadTables()
	require.NoError(t, err)

	assert.Equal(t, []string{"goblin", "samurai", "ninja", "sentinel"}, tables.ClassNames)
	assert.Equal(t, "hero_slash", tables.Hero.Attack)
	assert.Equal(t, int64(160), tables.Hero.ParryWindowMs)
	assert.Equal(t, 2.0, tables.Tuning.ParryPostureMultiplier)

	ninja, err := tables.Class("ninja")
	require.NoError(t, err)
	assert.Equal(t, "ninja_picker.tengo", ninja.Script)
	assert.Contains(t, tables.Colors, "samurai")

	for _, name := range tables.ClassNames {
		cls := tables.Classes[name]
		for _, p := range []string{cls.Quick, cls.Heavy, cls.ComboStarter} {
			pat := tables.Patterns.MustGet(p)
			assert.GreaterOrEqual(t, pat.Range, cls.AttackRange, "%s: %s must reach from attack range", name, p)
		}
	}

	_, err = tables.Class("dragon")
	assert.Error(t, err)
}

func decode[T any](t *testing.T, src string) T {
	t.Helper()
	var out T
	require.NoError(t, yaml.Unmarshal([]byte(src), &out))
	return out
}

func TestBuildTablesReportsEveryProblem(t *testing.T) {
	patterns := decode[PatternsSpec](t, `
patterns:
  - {name: slash, kind: hero, telegraph_ms: 100, active_ms: 100, recover_ms: 100, damage: 10, posture_damage: 10, range: 1}
  - {name: poke, kind: quick, telegraph_ms: 300, active_ms: 100, recover_ms: 100, parry_window_ms: 80, damage: 5, posture_damage: 5, range: 1}
`)
	hero := decode[HeroFileSpec](t, `
hero: {max_hp: 100, max_posture: 100, attack: kick, parry_window_ms: 160, stagger_ms: 1000}
`)
	enemies := decode[EnemiesSpec](t, `
enemies:
  - {name: imp, max_hp: 10, max_posture: 10, attack_range: 1, pursuit_range: 5, max_combo: 2, aggression: 0.5, stagger_ms: 500, quick: poke, heavy: poke, combo_starter: poke}
  - {name: imp, max_hp: 10, max_posture: 10, attack_range: 1, pursuit_range: 5, max_combo: 2, aggression: 0.5, stagger_ms: 500, quick: poke, heavy: poke, combo_starter: poke}
  - {name: brute, max_hp: 10, max_posture: 10, attack_range: 1, pursuit_range: 5, max_combo: 2, aggression: 0.5, stagger_ms: 500, quick: poke, heavy: smash, combo_starter: poke}
`)

	_, err := BuildTables(patterns, hero, enemies)
	require.Error(t, err)
	assert.ErrorContains(t, err, "kick")
	assert.ErrorContains(t, err, `duplicate enemy "imp"`)
	assert.ErrorContains(t, err, "smash")
}

func TestBuildTablesRejectsBadPatterns(t *testing.T) {
	patterns := decode[PatternsSpec](t, `
patterns:
  - {name: slash, kind: hero, telegraph_ms: 100, active_ms: 50, parry_window_ms: 80, damage: 10, range: 1}
`)
	_, err := BuildTables(patterns, HeroFileSpec{}, EnemiesSpec{})
	assert.ErrorContains(t, err, PatternsFile)
}

func TestTuningOverlay(t *testing.T) {
	spec := decode[HeroFileSpec](t, "tuning: {block_factor: 0.5}\n")
	tuning := spec.Tuning.Tuning()
	assert.Equal(t, 0.5, tuning.BlockFactor)
	assert.Equal(t, 2.0, tuning.ParryPostureMultiplier, "unset fields keep the defaults")
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		in      string
		wantErr bool
	}{
		{`"#aa0000"`, false},
		{`"00aa00ff"`, false},
		{`"#abc"`, true},
		{`[1, 2]`, true},
		{`"#zz0000"`, true},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			var col YAMLColor
			err := yaml.Unmarshal([]byte(c.in), &col)
			if c.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			_, _, _, a := col.RGBA()
			assert.Equal(t, uint32(0xffff), a)
		})
	}
}

func TestCleanPaths(t *testing.T) {
	assert.Equal(t, "scripts/ninja_picker.tengo", cleanScriptPath("prefabs/scripts/ninja_picker.tengo"))
	assert.Equal(t, "scripts/ninja_picker.tengo", cleanScriptPath("ninja_picker.tengo"))
	assert.Equal(t, "enemies.yaml", cleanPrefabPath("prefabs/enemies.yaml"))
	assert.Equal(t, "", cleanScriptPath(""))

	src, err := LoadScript("ninja_picker.tengo")
	require.NoError(t, err)
	assert.Contains(t, string(src), "ninja_flurry")
}
