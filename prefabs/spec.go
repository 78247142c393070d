package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/parrycore/component"
	"gopkg.in/yaml.v3"
)

const (
	PatternsFile = "patterns.yaml"
	HeroFile     = "hero.yaml"
	EnemiesFile  = "enemies.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type PatternSpec struct {
	Name          string  `yaml:"name"`
	Kind          string  `yaml:"kind"`
	TelegraphMs   int64   `yaml:"telegraph_ms"`
	ActiveMs      int64   `yaml:"active_ms"`
	RecoverMs     int64   `yaml:"recover_ms"`
	ParryWindowMs int64   `yaml:"parry_window_ms"`
	Damage        float64 `yaml:"damage"`
	PostureDamage float64 `yaml:"posture_damage"`
	Range         float64 `yaml:"range"`
}

func (s PatternSpec) Pattern() component.AttackPattern {
	return component.AttackPattern{
		Name:          s.Name,
		Kind:          component.PatternKind(s.Kind),
		TelegraphMs:   s.TelegraphMs,
		ActiveMs:      s.ActiveMs,
		RecoverMs:     s.RecoverMs,
		ParryWindowMs: s.ParryWindowMs,
		Damage:        s.Damage,
		PostureDamage: s.PostureDamage,
		Range:         s.Range,
	}
}

type PatternsSpec struct {
	Patterns []PatternSpec `yaml:"patterns"`
}

func LoadPatternsSpec() (PatternsSpec, error) {
	return LoadSpec[PatternsSpec](PatternsFile)
}

type TuningSpec struct {
	ParryPostureMultiplier *float64 `yaml:"parry_posture_multiplier"`
	BlockFactor            *float64 `yaml:"block_factor"`
	ExecuteMultiplier      *float64 `yaml:"execute_multiplier"`
}

// Tuning overlays the set fields on the defaults.
func (s TuningSpec) Tuning() component.CombatTuning {
	t := component.DefaultTuning()
	if s.ParryPostureMultiplier != nil {
		t.ParryPostureMultiplier = *s.ParryPostureMultiplier
	}
	if s.BlockFactor != nil {
		t.BlockFactor = *s.BlockFactor
	}
	if s.ExecuteMultiplier != nil {
		t.ExecuteMultiplier = *s.ExecuteMultiplier
	}
	return t
}

type HeroSpec struct {
	MaxHP             float64 `yaml:"max_hp"`
	MaxPosture        float64 `yaml:"max_posture"`
	Attack            string  `yaml:"attack"`
	ParryWindowMs     int64   `yaml:"parry_window_ms"`
	ParryCooldownMs   int64   `yaml:"parry_cooldown_ms"`
	AttackCooldownMs  int64   `yaml:"attack_cooldown_ms"`
	DodgeMs           int64   `yaml:"dodge_ms"`
	DodgeCooldownMs   int64   `yaml:"dodge_cooldown_ms"`
	StaggerMs         int64   `yaml:"stagger_ms"`
	PostureDecayPerMs float64 `yaml:"posture_decay_per_ms"`
	ChainWindowMs     int64   `yaml:"chain_window_ms"`
	ChainBonus        float64 `yaml:"chain_bonus"`
	ChainMax          int     `yaml:"chain_max"`
	MoveSpeed         float64 `yaml:"move_speed"`
}

func (s HeroSpec) Config() component.HeroConfig {
	return component.HeroConfig{
		MaxHP:             s.MaxHP,
		MaxPosture:        s.MaxPosture,
		Attack:            s.Attack,
		ParryWindowMs:     s.ParryWindowMs,
		ParryCooldownMs:   s.ParryCooldownMs,
		AttackCooldownMs:  s.AttackCooldownMs,
		DodgeMs:           s.DodgeMs,
		DodgeCooldownMs:   s.DodgeCooldownMs,
		StaggerMs:         s.StaggerMs,
		PostureDecayPerMs: s.PostureDecayPerMs,
		ChainWindowMs:     s.ChainWindowMs,
		ChainBonus:        s.ChainBonus,
		ChainMax:          s.ChainMax,
	}
}

// HeroFileSpec is the layout of hero.yaml.
type HeroFileSpec struct {
	Hero   HeroSpec   `yaml:"hero"`
	Tuning TuningSpec `yaml:"tuning"`
}

func LoadHeroSpec() (HeroFileSpec, error) {
	return LoadSpec[HeroFileSpec](HeroFile)
}

type EnemyClassSpec struct {
	Name              string    `yaml:"name"`
	MaxHP             float64   `yaml:"max_hp"`
	MaxPosture        float64   `yaml:"max_posture"`
	MoveSpeed         float64   `yaml:"move_speed"`
	AttackRange       float64   `yaml:"attack_range"`
	PursuitRange      float64   `yaml:"pursuit_range"`
	RetreatRange      float64   `yaml:"retreat_range"`
	CooldownMs        int64     `yaml:"cooldown_ms"`
	ComboCooldownMs   int64     `yaml:"combo_cooldown_ms"`
	MaxCombo          int       `yaml:"max_combo"`
	Aggression        float64   `yaml:"aggression"`
	StaggerMs         int64     `yaml:"stagger_ms"`
	PostureDecayPerMs float64   `yaml:"posture_decay_per_ms"`
	RetreatMs         int64     `yaml:"retreat_ms"`
	Quick             string    `yaml:"quick"`
	Heavy             string    `yaml:"heavy"`
	ComboStarter      string    `yaml:"combo_starter"`
	Script            string    `yaml:"script"`
	Color             YAMLColor `yaml:"color"`
}

func (s EnemyClassSpec) Class() *component.EnemyClass {
	return &component.EnemyClass{
		Name:              s.Name,
		MaxHP:             s.MaxHP,
		MaxPosture:        s.MaxPosture,
		MoveSpeed:         s.MoveSpeed,
		AttackRange:       s.AttackRange,
		PursuitRange:      s.PursuitRange,
		RetreatRange:      s.RetreatRange,
		CooldownMs:        s.CooldownMs,
		ComboCooldownMs:   s.ComboCooldownMs,
		MaxCombo:          s.MaxCombo,
		Aggression:        s.Aggression,
		StaggerMs:         s.StaggerMs,
		PostureDecayPerMs: s.PostureDecayPerMs,
		RetreatMs:         s.RetreatMs,
		Quick:             s.Quick,
		Heavy:             s.Heavy,
		ComboStarter:      s.ComboStarter,
		Script:            s.Script,
	}
}

type EnemiesSpec struct {
	Enemies []EnemyClassSpec `yaml:"enemies"`
}

func LoadEnemiesSpec() (EnemiesSpec, error) {
	return LoadSpec[EnemiesSpec](EnemiesFile)
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
