package prefabs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	prev := Dir
	Dir = dir
	t.Cleanup(func() { Dir = prev })
	return dir
}

func TestDiskOverrideWins(t *testing.T) {
	dir := useDir(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, "scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, HeroFile), []byte("hero: {max_hp: 150}\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", "ninja_picker.tengo"), []byte("pattern = fallback\n"), 0o644))

	data, err := Load(HeroFile)
	require.NoError(t, err)
	assert.Equal(t, "hero: {max_hp: 150}\n", string(data))

	src, err := LoadScript("ninja_picker.tengo")
	require.NoError(t, err)
	assert.Equal(t, "pattern = fallback\n", string(src))

	embedded, err := Load(PatternsFile)
	require.NoError(t, err)
	assert.Contains(t, string(embedded), "hero_slash", "missing overrides fall back to the embedded table")
}

func TestUnreadableOverrideIsAnError(t *testing.T) {
	dir := useDir(t)
	require.NoError(t, os.Mkdir(filepath.Join(dir, EnemiesFile), 0o755))

	_, err := Load(EnemiesFile)
	assert.Error(t, err)
	_, err = LoadTables()
	assert.ErrorContains(t, err, EnemiesFile)
}
