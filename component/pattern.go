package component

import (
	"errors"
	"fmt"
	"sort"
)

// PatternKind tags how the enemy policy uses a pattern.
type PatternKind string

const (
	PatternQuick        PatternKind = "quick"
	PatternHeavy        PatternKind = "heavy"
	PatternComboStarter PatternKind = "combo_starter"
	PatternHero         PatternKind = "hero"
)

// AttackPattern describes one timed attack. Patterns are immutable once
// placed in a PatternTable.
type AttackPattern struct {
	Name          string
	Kind          PatternKind
	TelegraphMs   int64
	ActiveMs      int64
	RecoverMs     int64
	ParryWindowMs int64
	Damage        float64
	PostureDamage float64
	Range         float64
}

// ActiveAt returns the time the attack becomes able to connect.
func (p *AttackPattern) ActiveAt(startMs int64) int64 {
	return startMs + p.TelegraphMs
}

// RecoverAt returns the time the active window closes.
func (p *AttackPattern) RecoverAt(startMs int64) int64 {
	return startMs + p.TelegraphMs + p.ActiveMs
}

// EndAt returns the time the full attack cycle is over.
func (p *AttackPattern) EndAt(startMs int64) int64 {
	return startMs + p.TelegraphMs + p.ActiveMs + p.RecoverMs
}

// Validate checks the timing and damage invariants of a pattern.
func (p AttackPattern) Validate() error {
	var errs []error
	if p.Name == "" {
		errs = append(errs, errors.New("pattern has no name"))
	}
	if p.TelegraphMs < 0 || p.RecoverMs < 0 {
		errs = append(errs, fmt.Errorf("pattern %q: negative telegraph or recover", p.Name))
	}
	if p.ActiveMs <= 0 {
		errs = append(errs, fmt.Errorf("pattern %q: active_ms must be > 0", p.Name))
	}
	if p.ParryWindowMs < 0 || p.ParryWindowMs > p.ActiveMs {
		errs = append(errs, fmt.Errorf("pattern %q: parry_window_ms %d outside [0, active_ms %d]", p.Name, p.ParryWindowMs, p.ActiveMs))
	}
	if p.Damage < 0 || p.PostureDamage < 0 {
		errs = append(errs, fmt.Errorf("pattern %q: negative damage", p.Name))
	}
	if p.Range <= 0 {
		errs = append(errs, fmt.Errorf("pattern %q: range must be > 0", p.Name))
	}
	return errors.Join(errs...)
}

// PatternTable is a validated, name-indexed set of attack patterns.
type PatternTable struct {
	patterns map[string]*AttackPattern
}

// NewPatternTable validates every pattern and rejects duplicate names.
func NewPatternTable(patterns ...AttackPattern) (*PatternTable, error) {
	t := &PatternTable{patterns: make(map[string]*AttackPattern, len(patterns))}
	var errs []error
	for _, p := range patterns {
		if err := p.Validate(); err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := t.patterns[p.Name]; dup {
			errs = append(errs, fmt.Errorf("pattern %q defined twice", p.Name))
			continue
		}
		pat := p
		t.patterns[p.Name] = &pat
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return t, nil
}

// Get looks up a pattern by name.
func (t *PatternTable) Get(name string) (*AttackPattern, bool) {
	if t == nil {
		return nil, false
	}
	p, ok := t.patterns[name]
	return p, ok
}

// MustGet looks up a pattern and panics when it is missing. Callers must only
// use names that passed Require at startup.
func (t *PatternTable) MustGet(name string) *AttackPattern {
	p, ok := t.Get(name)
	if !ok {
		panic(fmt.Sprintf("component: unknown attack pattern %q", name))
	}
	return p
}

// Require returns an error naming every missing pattern.
func (t *PatternTable) Require(names ...string) error {
	var errs []error
	for _, n := range names {
		if _, ok := t.Get(n); !ok {
			errs = append(errs, fmt.Errorf("unknown attack pattern %q", n))
		}
	}
	return errors.Join(errs...)
}

// Names returns the sorted pattern names.
func (t *PatternTable) Names() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.patterns))
	for n := range t.patterns {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of patterns.
func (t *PatternTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.patterns)
}
