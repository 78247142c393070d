package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// PickInput is what a pattern-picker script sees. The script reads these
// globals and may assign a pattern name to `pattern`.
type PickInput struct {
	Class      string
	Aggression float64
	Combo      int
	MaxCombo   int
	Distance   float64
	Roll       float64
	Fallback   string
}

// PatternScript is a compiled tengo pattern picker.
type PatternScript struct {
	path     string
	compiled *tengo.Compiled
}

// CompilePatternScript compiles a picker script. Only side-effect free stdlib
// modules are importable so replays stay deterministic.
func CompilePatternScript(path string, src []byte) (*PatternScript, error) {
	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math", "text"))
	for name, v := range pickGlobals(PickInput{}) {
		if err := script.Add(name, v); err != nil {
			return nil, fmt.Errorf("ai script %s: add %s: %w", path, name, err)
		}
	}
	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("ai script %s: compile: %w", path, err)
	}
	return &PatternScript{path: path, compiled: compiled}, nil
}

func pickGlobals(in PickInput) map[string]any {
	return map[string]any{
		"class":      in.Class,
		"aggression": in.Aggression,
		"combo":      in.Combo,
		"max_combo":  in.MaxCombo,
		"distance":   in.Distance,
		"roll":       in.Roll,
		"fallback":   in.Fallback,
		"pattern":    in.Fallback,
	}
}

// Pick runs the script and returns the pattern it chose, or the fallback
// when it left `pattern` untouched.
func (s *PatternScript) Pick(in PickInput) (string, error) {
	if s == nil || s.compiled == nil {
		return in.Fallback, nil
	}
	for name, v := range pickGlobals(in) {
		if err := s.compiled.Set(name, v); err != nil {
			return "", fmt.Errorf("set %s: %w", name, err)
		}
	}
	if err := s.compiled.Run(); err != nil {
		return "", err
	}
	name := strings.TrimSpace(s.compiled.Get("pattern").String())
	if name == "" {
		return in.Fallback, nil
	}
	return name, nil
}

// ScriptCache loads and compiles picker scripts once per path. Failures are
// cached too so a broken script is reported once, not every decision.
type ScriptCache struct {
	Load   func(path string) ([]byte, error)
	Logger *log.Logger

	scripts map[string]*PatternScript
	failed  map[string]error
}

func NewScriptCache(load func(path string) ([]byte, error)) *ScriptCache {
	return &ScriptCache{
		Load:    load,
		scripts: map[string]*PatternScript{},
		failed:  map[string]error{},
	}
}

// Get returns the compiled script for path.
func (c *ScriptCache) Get(path string) (*PatternScript, error) {
	if c == nil {
		return nil, fmt.Errorf("no script cache")
	}
	if s, ok := c.scripts[path]; ok {
		return s, nil
	}
	if err, ok := c.failed[path]; ok {
		return nil, err
	}
	if c.Load == nil {
		return nil, fmt.Errorf("ai script %s: no loader", path)
	}
	src, err := c.Load(path)
	if err == nil {
		var s *PatternScript
		if s, err = CompilePatternScript(path, src); err == nil {
			c.scripts[path] = s
			return s, nil
		}
	}
	c.failed[path] = err
	if c.Logger != nil {
		c.Logger.Printf("ai: load script %s: %v", path, err)
	}
	return nil, err
}

// Reset drops every cached script so the next Get reloads from the loader.
func (c *ScriptCache) Reset() {
	if c == nil {
		return
	}
	c.scripts = map[string]*PatternScript{}
	c.failed = map[string]error{}
}
