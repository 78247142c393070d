package prefabs

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// editors often write a file in several steps; one reload per table per
// window is enough
const watchDebounce = 100 * time.Millisecond

// Table names the tuning source a file belongs to.
type Table int

const (
	TablePatterns Table = iota
	TableHero
	TableEnemies
	TableScript
)

func (t Table) String() string {
	switch t {
	case TablePatterns:
		return "patterns"
	case TableHero:
		return "hero"
	case TableEnemies:
		return "enemies"
	case TableScript:
		return "script"
	}
	return "unknown"
}

// Change is one debounced edit to a tuning file.
type Change struct {
	Table Table
	File  string
}

// Watcher publishes changes to the tuning tables under a prefab directory
// and its scripts/ subdirectory. It never reloads anything itself; the owner
// of the encounter applies reloads between ticks.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

func NewWatcher(dir string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	dirs := []string{dir}
	if info, err := os.Stat(filepath.Join(dir, "scripts")); err == nil && info.IsDir() {
		dirs = append(dirs, filepath.Join(dir, "scripts"))
	}
	for _, d := range dirs {
		if err := w.Add(d); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Events)
	defer close(w.Errors)

	last := make(map[Table]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			change, ok := tuningChange(event)
			if !ok {
				continue
			}
			now := time.Now()
			if t, ok := last[change.Table]; ok && now.Sub(t) < watchDebounce {
				continue
			}
			last[change.Table] = now
			select {
			case w.Events <- change:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

func tuningChange(event fsnotify.Event) (Change, bool) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
		return Change{}, false
	}
	table, ok := classify(event.Name)
	if !ok {
		return Change{}, false
	}
	return Change{Table: table, File: filepath.Base(event.Name)}, true
}

// classify maps a file to the table it feeds. Anything else in the
// directory, including editor backups, is not tuning.
func classify(path string) (Table, bool) {
	base := filepath.Base(filepath.ToSlash(path))
	switch base {
	case PatternsFile:
		return TablePatterns, true
	case HeroFile:
		return TableHero, true
	case EnemiesFile:
		return TableEnemies, true
	}
	if strings.ToLower(filepath.Ext(base)) == ".tengo" {
		return TableScript, true
	}
	return 0, false
}
