package system

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/milk9111/parrycore/component"
)

const heroID = 1

// Encounter owns one hero, its enemies in spawn order, and the shared combat
// services. It is not safe for concurrent use; drive it from one loop.
type Encounter struct {
	patterns *component.PatternTable
	tuning   component.CombatTuning

	hero    *component.Combatant
	enemies []*component.Combatant
	nextID  int

	emitter  *component.CombatEventEmitter
	posture  *component.PosturePolicy
	resolver *component.CombatResolver
	policy   *EnemyPolicy

	sink   component.EventSink
	logger *log.Logger
}

// Option configures an Encounter.
type Option func(*Encounter)

// WithSink sets the collaborator that receives each tick's events.
func WithSink(sink component.EventSink) Option {
	return func(e *Encounter) { e.sink = sink }
}

// WithMover sets the movement collaborator for enemy steering.
func WithMover(m component.Mover) Option {
	return func(e *Encounter) { e.policy.Mover = m }
}

// WithRand replaces the seeded default random source used by the AI.
func WithRand(r Roller) Option {
	return func(e *Encounter) { e.policy.Rand = r }
}

// WithLogger enables diagnostic logging. Encounters are silent by default.
func WithLogger(l *log.Logger) Option {
	return func(e *Encounter) {
		e.logger = l
		e.policy.Logger = l
		if e.policy.Scripts != nil {
			e.policy.Scripts.Logger = l
		}
	}
}

// WithScripts sets where enemy pattern-picker scripts are loaded from.
func WithScripts(load func(path string) ([]byte, error)) Option {
	return func(e *Encounter) {
		e.policy.Scripts = NewScriptCache(load)
		e.policy.Scripts.Logger = e.logger
	}
}

// WithHandler registers a synchronous handler that sees every event as it is
// emitted, before the end-of-tick drain.
func WithHandler(h component.CombatEventHandler) Option {
	return func(e *Encounter) {
		e.emitter.Handlers = append(e.emitter.Handlers, h)
	}
}

// NewEncounter creates an encounter with the hero at the given placement.
func NewEncounter(patterns *component.PatternTable, tuning component.CombatTuning, hero component.HeroConfig, at component.Placement, opts ...Option) (*Encounter, error) {
	if patterns == nil {
		return nil, fmt.Errorf("encounter: pattern table is nil")
	}
	if err := hero.Validate(patterns); err != nil {
		return nil, fmt.Errorf("encounter: %w", err)
	}
	emitter := &component.CombatEventEmitter{}
	posture := component.NewPosturePolicy(emitter)
	e := &Encounter{
		patterns: patterns,
		tuning:   tuning,
		hero:     component.NewHero(heroID, hero, at),
		nextID:   heroID + 1,
		emitter:  emitter,
		posture:  posture,
		resolver: component.NewCombatResolver(tuning, posture),
		policy:   NewEnemyPolicy(patterns, nil, rand.New(rand.NewSource(1))),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(e)
		}
	}
	return e, nil
}

// AddEnemy spawns an enemy of the given class. Enemies resolve in the order
// they were added.
func (e *Encounter) AddEnemy(class *component.EnemyClass, at component.Placement) (*component.Combatant, error) {
	if e == nil {
		return nil, fmt.Errorf("encounter is nil")
	}
	if err := class.Validate(e.patterns); err != nil {
		return nil, fmt.Errorf("encounter: %w", err)
	}
	c := component.NewEnemy(e.nextID, class, at)
	e.nextID++
	e.enemies = append(e.enemies, c)
	e.logf("encounter: spawned %s id=%d", class.Name, c.ID)
	return c, nil
}

// Hero returns the player combatant.
func (e *Encounter) Hero() *component.Combatant {
	if e == nil {
		return nil
	}
	return e.hero
}

// Enemies returns the enemies in spawn order. The slice is shared; do not
// modify it.
func (e *Encounter) Enemies() []*component.Combatant {
	if e == nil {
		return nil
	}
	return e.enemies
}

// Patterns returns the active pattern table.
func (e *Encounter) Patterns() *component.PatternTable {
	if e == nil {
		return nil
	}
	return e.patterns
}

// Tuning returns the active resolution multipliers.
func (e *Encounter) Tuning() component.CombatTuning {
	return e.tuning
}

// Enemy finds an enemy by ID.
func (e *Encounter) Enemy(id int) *component.Combatant {
	if e == nil {
		return nil
	}
	for _, c := range e.enemies {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// RemoveDead drops dead enemies, keeping the order of the survivors, and
// returns how many were removed.
func (e *Encounter) RemoveDead() int {
	if e == nil {
		return 0
	}
	kept := e.enemies[:0]
	removed := 0
	for _, c := range e.enemies {
		if c.IsDead() {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	clear(e.enemies[len(kept):])
	e.enemies = kept
	return removed
}

// Over reports whether the hero died or no enemy is left standing.
func (e *Encounter) Over() bool {
	if e == nil || e.hero.IsDead() {
		return true
	}
	for _, c := range e.enemies {
		if !c.IsDead() {
			return false
		}
	}
	return true
}

// RequestParry opens the hero's parry window. Ineligible requests are
// ignored.
func (e *Encounter) RequestParry(now int64) bool {
	if e == nil {
		return false
	}
	return e.hero.RequestParry(now, e.emitter)
}

// RequestAttack starts the hero's configured attack. Ineligible requests are
// ignored.
func (e *Encounter) RequestAttack(now int64) bool {
	if e == nil {
		return false
	}
	p, ok := e.patterns.Get(e.hero.Hero.Config.Attack)
	if !ok {
		return false
	}
	return e.hero.RequestAttack(now, p, e.emitter)
}

// RequestDodge starts the hero's invulnerability frames.
func (e *Encounter) RequestDodge(now int64) bool {
	if e == nil {
		return false
	}
	return e.hero.RequestDodge(now)
}

// SetBlocking raises or lowers the hero's guard.
func (e *Encounter) SetBlocking(on bool) {
	if e == nil {
		return
	}
	e.hero.SetBlocking(on)
}

// ReloadTables swaps in new tuning between ticks. Attacks already in flight
// finish with the pattern they started with. Enemies pick up the class of the
// same name; enemies whose class disappeared keep the old one.
func (e *Encounter) ReloadTables(patterns *component.PatternTable, tuning component.CombatTuning, hero component.HeroConfig, classes map[string]*component.EnemyClass) error {
	if e == nil {
		return fmt.Errorf("encounter is nil")
	}
	if patterns == nil {
		return fmt.Errorf("reload: pattern table is nil")
	}
	if err := hero.Validate(patterns); err != nil {
		return fmt.Errorf("reload: %w", err)
	}
	for name, cls := range classes {
		if err := cls.Validate(patterns); err != nil {
			return fmt.Errorf("reload: class %s: %w", name, err)
		}
	}
	for _, c := range e.enemies {
		if c.Enemy == nil || c.Enemy.Class == nil {
			continue
		}
		if _, ok := classes[c.Enemy.Class.Name]; !ok {
			if err := c.Enemy.Class.Validate(patterns); err != nil {
				return fmt.Errorf("reload: enemy %d keeps class %s: %w", c.ID, c.Enemy.Class.Name, err)
			}
		}
	}

	e.patterns = patterns
	e.tuning = tuning
	e.resolver.Tuning = tuning
	e.policy.Patterns = patterns
	if e.policy.Scripts != nil {
		e.policy.Scripts.Reset()
	}

	h := e.hero
	h.Hero.Config = hero
	h.StaggerMs = hero.StaggerMs
	h.PostureDecayPerMs = hero.PostureDecayPerMs
	h.Stats.MaxHP = hero.MaxHP
	h.Stats.MaxPosture = hero.MaxPosture
	h.Stats.HP = min(h.Stats.HP, hero.MaxHP)
	h.Stats.Posture = min(h.Stats.Posture, hero.MaxPosture)

	for _, c := range e.enemies {
		if c.Enemy == nil || c.Enemy.Class == nil {
			continue
		}
		cls, ok := classes[c.Enemy.Class.Name]
		if !ok {
			continue
		}
		c.Enemy.Class = cls
		c.StaggerMs = cls.StaggerMs
		c.PostureDecayPerMs = cls.PostureDecayPerMs
		c.Stats.MaxHP = cls.MaxHP
		c.Stats.MaxPosture = cls.MaxPosture
		c.Stats.HP = min(c.Stats.HP, cls.MaxHP)
		c.Stats.Posture = min(c.Stats.Posture, cls.MaxPosture)
	}
	e.logf("encounter: reloaded %d patterns, %d classes", patterns.Len(), len(classes))
	return nil
}

func (e *Encounter) logf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Printf(format, args...)
	}
}
