package system

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const heavyAtTwo = `
if combo >= 2 && distance < 1 {
	pattern = "h"
}
`

func TestPatternScriptPick(t *testing.T) {
	s, err := CompilePatternScript("heavy.tengo", []byte(heavyAtTwo))
	require.NoError(t, err)

	name, err := s.Pick(PickInput{Combo: 2, Distance: 0.5, Fallback: "q"})
	require.NoError(t, err)
	assert.Equal(t, "h", name)

	name, err = s.Pick(PickInput{Combo: 1, Distance: 0.5, Fallback: "q"})
	require.NoError(t, err)
	assert.Equal(t, "q", name, "pattern resets to the fallback every run")
}

func TestPatternScriptErrors(t *testing.T) {
	_, err := CompilePatternScript("broken.tengo", []byte(`pattern = (`))
	assert.ErrorContains(t, err, "broken.tengo")

	s, err := CompilePatternScript("div.tengo", []byte(`pattern = 1 / combo`))
	require.NoError(t, err)
	_, err = s.Pick(PickInput{Combo: 0, Fallback: "q"})
	assert.Error(t, err)
}

func TestScriptCacheLoadsOnce(t *testing.T) {
	loads := 0
	cache := NewScriptCache(func(path string) ([]byte, error) {
		loads++
		if path == "missing.tengo" {
			return nil, errors.New("not found")
		}
		return []byte(heavyAtTwo), nil
	})

	a, err := cache.Get("ninja.tengo")
	require.NoError(t, err)
	b, err := cache.Get("ninja.tengo")
	require.NoError(t, err)
	assert.Same(t, a, b)

	_, err = cache.Get("missing.tengo")
	assert.Error(t, err)
	_, err = cache.Get("missing.tengo")
	assert.Error(t, err)
	assert.Equal(t, 2, loads, "failures are cached too")

	cache.Reset()
	_, err = cache.Get("ninja.tengo")
	require.NoError(t, err)
	assert.Equal(t, 3, loads)
}

func TestPolicyUsesClassScript(t *testing.T) {
	scripts := map[string]string{
		"heavy.tengo":   heavyAtTwo,
		"unknown.tengo": `pattern = "does_not_exist"`,
	}
	load := func(path string) ([]byte, error) {
		src, ok := scripts[path]
		if !ok {
			return nil, errors.New("not found")
		}
		return []byte(src), nil
	}

	cases := []struct {
		name   string
		script string
		combo  int
		want   string
	}{
		{"script_override", "heavy.tengo", 2, "h"},
		{"script_keeps_fallback", "heavy.tengo", 1, "q"},
		{"unknown_pattern_falls_back", "unknown.tengo", 2, "q"},
		{"missing_script_falls_back", "gone.tengo", 2, "q"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cls := mixedClass()
			cls.Script = c.script
			p, _, enemy, _ := newPolicyPair(t, cls, 0.5, rolls(0.1))
			p.Scripts = NewScriptCache(load)
			enemy.Enemy.ComboCount = c.combo - 1

			// the built-in rule picks quick and bumps the combo to c.combo
			assert.Equal(t, c.want, p.choosePattern(enemy, 0.5).Name)
		})
	}
}
