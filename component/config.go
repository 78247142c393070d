package component

import (
	"errors"
	"fmt"
)

// CombatTuning holds the encounter-wide resolution multipliers.
type CombatTuning struct {
	ParryPostureMultiplier float64
	BlockFactor            float64
	ExecuteMultiplier      float64
}

func DefaultTuning() CombatTuning {
	return CombatTuning{
		ParryPostureMultiplier: 2.0,
		BlockFactor:            0.7,
		ExecuteMultiplier:      3.0,
	}
}

// HeroConfig is the tuning record for the player character.
type HeroConfig struct {
	MaxHP             float64
	MaxPosture        float64
	Attack            string
	ParryWindowMs     int64
	ParryCooldownMs   int64
	AttackCooldownMs  int64
	DodgeMs           int64
	DodgeCooldownMs   int64
	StaggerMs         int64
	PostureDecayPerMs float64
	ChainWindowMs     int64
	ChainBonus        float64
	ChainMax          int
}

func DefaultHeroConfig() HeroConfig {
	return HeroConfig{
		MaxHP:             100,
		MaxPosture:        100,
		Attack:            "hero_slash",
		ParryWindowMs:     160,
		ParryCooldownMs:   500,
		AttackCooldownMs:  0,
		DodgeMs:           250,
		DodgeCooldownMs:   600,
		StaggerMs:         1000,
		PostureDecayPerMs: 0.03,
		ChainWindowMs:     2000,
		ChainBonus:        0.1,
		ChainMax:          5,
	}
}

// EnemyClass is the single config record every enemy type is built from.
// Behavior stays in the policy; only data differs between classes.
type EnemyClass struct {
	Name              string
	MaxHP             float64
	MaxPosture        float64
	MoveSpeed         float64
	AttackRange       float64
	PursuitRange      float64
	RetreatRange      float64
	CooldownMs        int64
	ComboCooldownMs   int64
	MaxCombo          int
	Aggression        float64
	StaggerMs         int64
	PostureDecayPerMs float64
	RetreatMs         int64
	Quick             string
	Heavy             string
	ComboStarter      string
	Script            string
}

// Validate checks ranges and that every referenced pattern exists.
func (c *EnemyClass) Validate(patterns *PatternTable) error {
	if c == nil {
		return errors.New("nil enemy class")
	}
	var errs []error
	if c.Name == "" {
		errs = append(errs, errors.New("enemy class has no name"))
	}
	if c.MaxHP <= 0 || c.MaxPosture <= 0 {
		errs = append(errs, fmt.Errorf("enemy %q: max_hp and max_posture must be > 0", c.Name))
	}
	if c.AttackRange <= 0 || c.PursuitRange < c.AttackRange {
		errs = append(errs, fmt.Errorf("enemy %q: need 0 < attack_range <= pursuit_range", c.Name))
	}
	if c.Aggression < 0 || c.Aggression > 1 {
		errs = append(errs, fmt.Errorf("enemy %q: aggression %.2f outside [0,1]", c.Name, c.Aggression))
	}
	if c.MaxCombo <= 0 {
		errs = append(errs, fmt.Errorf("enemy %q: max_combo must be > 0", c.Name))
	}
	if c.StaggerMs <= 0 {
		errs = append(errs, fmt.Errorf("enemy %q: stagger_ms must be > 0", c.Name))
	}
	if err := patterns.Require(c.Quick, c.Heavy, c.ComboStarter); err != nil {
		errs = append(errs, fmt.Errorf("enemy %q: %w", c.Name, err))
	} else {
		for _, name := range []string{c.Quick, c.Heavy, c.ComboStarter} {
			if p := patterns.MustGet(name); p.Range < c.AttackRange {
				errs = append(errs, fmt.Errorf("enemy %q: pattern %q range %.2f is shorter than attack_range %.2f", c.Name, name, p.Range, c.AttackRange))
			}
		}
	}
	return errors.Join(errs...)
}

// Validate checks the hero record against the pattern table.
func (h HeroConfig) Validate(patterns *PatternTable) error {
	var errs []error
	if h.MaxHP <= 0 || h.MaxPosture <= 0 {
		errs = append(errs, errors.New("hero: max_hp and max_posture must be > 0"))
	}
	if h.ParryWindowMs <= 0 {
		errs = append(errs, errors.New("hero: parry_window_ms must be > 0"))
	}
	if h.StaggerMs <= 0 {
		errs = append(errs, errors.New("hero: stagger_ms must be > 0"))
	}
	if err := patterns.Require(h.Attack); err != nil {
		errs = append(errs, fmt.Errorf("hero: %w", err))
	}
	return errors.Join(errs...)
}
