package prefabs

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/milk9111/parrycore/component"
)

// Tables is everything an encounter needs from the tuning files.
type Tables struct {
	Patterns      *component.PatternTable
	Tuning        component.CombatTuning
	Hero          component.HeroConfig
	HeroMoveSpeed float64
	Classes       map[string]*component.EnemyClass
	// ClassNames keeps the file order of enemies.yaml.
	ClassNames []string
	Colors     map[string]color.Color
}

// LoadTables reads and validates patterns.yaml, hero.yaml and enemies.yaml.
func LoadTables() (*Tables, error) {
	patterns, err := LoadPatternsSpec()
	if err != nil {
		return nil, err
	}
	hero, err := LoadHeroSpec()
	if err != nil {
		return nil, err
	}
	enemies, err := LoadEnemiesSpec()
	if err != nil {
		return nil, err
	}
	return BuildTables(patterns, hero, enemies)
}

// BuildTables validates decoded specs and converts them to the combat
// records. Every problem is reported, not only the first.
func BuildTables(patterns PatternsSpec, hero HeroFileSpec, enemies EnemiesSpec) (*Tables, error) {
	list := make([]component.AttackPattern, 0, len(patterns.Patterns))
	for _, p := range patterns.Patterns {
		list = append(list, p.Pattern())
	}
	table, err := component.NewPatternTable(list...)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", PatternsFile, err)
	}

	t := &Tables{
		Patterns:      table,
		Tuning:        hero.Tuning.Tuning(),
		Hero:          hero.Hero.Config(),
		HeroMoveSpeed: hero.Hero.MoveSpeed,
		Classes:       make(map[string]*component.EnemyClass, len(enemies.Enemies)),
		Colors:        make(map[string]color.Color, len(enemies.Enemies)),
	}

	var errs []error
	if err := t.Hero.Validate(table); err != nil {
		errs = append(errs, fmt.Errorf("prefabs: %s: %w", HeroFile, err))
	}
	for _, spec := range enemies.Enemies {
		cls := spec.Class()
		if _, dup := t.Classes[cls.Name]; dup {
			errs = append(errs, fmt.Errorf("prefabs: %s: duplicate enemy %q", EnemiesFile, cls.Name))
			continue
		}
		if err := cls.Validate(table); err != nil {
			errs = append(errs, fmt.Errorf("prefabs: %s: %w", EnemiesFile, err))
			continue
		}
		if cls.Script != "" {
			if _, err := LoadScript(cls.Script); err != nil {
				errs = append(errs, fmt.Errorf("prefabs: %s: enemy %q script: %w", EnemiesFile, cls.Name, err))
				continue
			}
		}
		t.Classes[cls.Name] = cls
		t.ClassNames = append(t.ClassNames, cls.Name)
		if spec.Color.Color != nil {
			t.Colors[cls.Name] = spec.Color.Color
		}
	}
	if len(t.Classes) == 0 {
		errs = append(errs, fmt.Errorf("prefabs: %s: no enemy classes", EnemiesFile))
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return t, nil
}

// Class returns the named enemy class.
func (t *Tables) Class(name string) (*component.EnemyClass, error) {
	if t == nil {
		return nil, fmt.Errorf("prefabs: tables not loaded")
	}
	cls, ok := t.Classes[name]
	if !ok {
		return nil, fmt.Errorf("prefabs: unknown enemy class %q", name)
	}
	return cls, nil
}
