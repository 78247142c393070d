package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTuningChange(t *testing.T) {
	cases := []struct {
		name   string
		op     fsnotify.Op
		want   Table
		wantOK bool
	}{
		{"prefabs/enemies.yaml", fsnotify.Write, TableEnemies, true},
		{"hero.yaml", fsnotify.Create, TableHero, true},
		{"patterns.yaml", fsnotify.Remove, TablePatterns, true},
		{"scripts/ninja_picker.tengo", fsnotify.Rename, TableScript, true},
		{"patterns.yaml", fsnotify.Chmod, 0, false},
		{"other.yaml", fsnotify.Write, 0, false},
		{"notes.txt", fsnotify.Write, 0, false},
		{"enemies.yaml~", fsnotify.Write, 0, false},
	}
	for _, c := range cases {
		t.Run(c.name+"/"+c.op.String(), func(t *testing.T) {
			change, ok := tuningChange(fsnotify.Event{Name: c.name, Op: c.op})
			require.Equal(t, c.wantOK, ok)
			if ok {
				assert.Equal(t, c.want, change.Table)
				assert.Equal(t, filepath.Base(c.name), change.File)
			}
		})
	}
}

func TestTableString(t *testing.T) {
	assert.Equal(t, "enemies", TableEnemies.String())
	assert.Equal(t, "script", TableScript.String())
	assert.Equal(t, "unknown", Table(9).String())
}

// waitFor returns the first published change to table. One save can produce
// several filesystem events, so earlier changes to other tables are skipped.
func waitFor(t *testing.T, w *Watcher, table Table) Change {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case change := <-w.Events:
			if change.Table == table {
				return change
			}
		case err := <-w.Errors:
			t.Fatalf("watch error: %v", err)
		case <-deadline:
			t.Fatalf("no %s change published", table)
		}
	}
}

func TestWatcherPublishesTuningChanges(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "scripts"), 0o755))
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, EnemiesFile), []byte("enemies: []\n"), 0o644))
	assert.Equal(t, EnemiesFile, waitFor(t, w, TableEnemies).File)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", "picker.tengo"), []byte("pattern = fallback\n"), 0o644))
	assert.Equal(t, "picker.tengo", waitFor(t, w, TableScript).File)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close(), "close is idempotent")
}
