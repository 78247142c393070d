package component

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// State is the closed set of combatant states.
type State int

const (
	StateIdle State = iota
	StatePursuing
	StateRetreating
	StateWindup
	StateActive
	StateRecover
	StateParrying
	StateStaggered
	StateDead
)

var stateNames = [...]string{
	StateIdle:       "idle",
	StatePursuing:   "pursuing",
	StateRetreating: "retreating",
	StateWindup:     "windup",
	StateActive:     "active",
	StateRecover:    "recover",
	StateParrying:   "parrying",
	StateStaggered:  "staggered",
	StateDead:       "dead",
}

// AllStates lists every state in declaration order.
var AllStates = []State{
	StateIdle,
	StatePursuing,
	StateRetreating,
	StateWindup,
	StateActive,
	StateRecover,
	StateParrying,
	StateStaggered,
	StateDead,
}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// InAttackCycle reports whether the state belongs to windup/active/recover.
func (s State) InAttackCycle() bool {
	return s == StateWindup || s == StateActive || s == StateRecover
}

// HeroState is the hero-only part of a combatant.
type HeroState struct {
	Config HeroConfig

	ParryActive         bool
	ParryWindowEndMs    int64
	Blocking            bool
	InvulnerableUntilMs int64

	ChainCount  int
	LastHitAtMs int64

	NextParryAtMs  int64
	NextAttackAtMs int64
	NextDodgeAtMs  int64
}

// EnemyState is the enemy-only part of a combatant.
type EnemyState struct {
	Class            *EnemyClass
	Aggression       float64
	ComboCount       int
	NextDecisionAtMs int64
	RetreatUntilMs   int64
}

// Combatant is one participant of an encounter.
type Combatant struct {
	ID               int
	Name             string
	Role             Role
	Stats            CombatStats
	State            State
	StateEnteredAtMs int64
	Placement        Placement

	Pattern       *AttackPattern
	AttackStartMs int64

	StaggerMs         int64
	PostureDecayPerMs float64

	Hero  *HeroState
	Enemy *EnemyState

	resolved map[int]struct{}
}

// NewHero creates the player combatant in idle with full stats.
func NewHero(id int, cfg HeroConfig, at Placement) *Combatant {
	return &Combatant{
		ID:                id,
		Name:              "hero",
		Role:              RoleHero,
		Stats:             NewCombatStats(cfg.MaxHP, cfg.MaxPosture),
		State:             StateIdle,
		Placement:         at,
		StaggerMs:         cfg.StaggerMs,
		PostureDecayPerMs: cfg.PostureDecayPerMs,
		Hero:              &HeroState{Config: cfg},
	}
}

// NewEnemy creates an enemy of the given class in idle with full stats.
func NewEnemy(id int, class *EnemyClass, at Placement) *Combatant {
	if class == nil {
		return nil
	}
	return &Combatant{
		ID:                id,
		Name:              class.Name,
		Role:              RoleEnemy,
		Stats:             NewCombatStats(class.MaxHP, class.MaxPosture),
		State:             StateIdle,
		Placement:         at,
		StaggerMs:         class.StaggerMs,
		PostureDecayPerMs: class.PostureDecayPerMs,
		Enemy: &EnemyState{
			Class:      class,
			Aggression: class.Aggression,
		},
	}
}

// Position reads the current position from the placement collaborator.
func (c *Combatant) Position() cp.Vector {
	if c == nil || c.Placement == nil {
		return cp.Vector{}
	}
	return c.Placement.Position()
}

// IsDead reports whether the combatant reached the terminal state.
func (c *Combatant) IsDead() bool {
	return c == nil || c.State == StateDead
}

func (c *Combatant) enter(s State, at int64) {
	c.State = s
	c.StateEnteredAtMs = at
}

// Advance applies every time-driven transition that is due at now. Several
// boundaries may be crossed in one call when now jumps far ahead, except
// that entering active always ends the call: an attack spends at least one
// tick in active so it can resolve.
func (c *Combatant) Advance(now int64, em *CombatEventEmitter) {
	if c == nil || c.State == StateDead {
		return
	}
	if !c.Stats.IsAlive() {
		c.Kill(now, em)
		return
	}
	for i := 0; i <= len(stateNames); i++ {
		if !c.step(now, em) {
			return
		}
	}
}

func (c *Combatant) step(now int64, em *CombatEventEmitter) bool {
	switch c.State {
	case StateIdle, StatePursuing:
		return false
	case StateRetreating:
		if c.Enemy == nil {
			c.enter(StateIdle, now)
			return true
		}
		if now >= c.Enemy.RetreatUntilMs {
			c.enter(StateIdle, c.Enemy.RetreatUntilMs)
			c.holdDecision(c.Enemy.RetreatUntilMs)
			return true
		}
		return false
	case StateWindup:
		if c.Pattern == nil {
			c.finishAttack(now)
			return true
		}
		if at := c.Pattern.ActiveAt(c.AttackStartMs); now >= at {
			c.enter(StateActive, at)
			return false
		}
		return false
	case StateActive:
		if c.Pattern == nil {
			c.finishAttack(now)
			return true
		}
		if at := c.Pattern.RecoverAt(c.AttackStartMs); now >= at {
			c.enter(StateRecover, at)
			return true
		}
		return false
	case StateRecover:
		if c.Pattern == nil {
			c.finishAttack(now)
			return true
		}
		if at := c.Pattern.EndAt(c.AttackStartMs); now >= at {
			c.finishAttack(at)
			return true
		}
		return false
	case StateParrying:
		if c.Hero == nil {
			c.enter(StateIdle, now)
			return true
		}
		if now >= c.Hero.ParryWindowEndMs {
			c.Hero.ParryActive = false
			c.enter(StateIdle, c.Hero.ParryWindowEndMs)
			return true
		}
		return false
	case StateStaggered:
		end := c.StateEnteredAtMs + c.StaggerMs
		if now < end {
			return false
		}
		c.Stats.ResetPosture()
		c.enter(StateIdle, end)
		c.holdDecision(end)
		em.Emit(CombatEvent{Type: EventStaggerRecovered, TargetID: c.ID, AtMs: end})
		return true
	case StateDead:
		return false
	}
	return false
}

// holdDecision keeps an enemy from attacking until a full cooldown after
// at. A later schedule already in place is kept.
func (c *Combatant) holdDecision(at int64) {
	if c.Enemy == nil || c.Enemy.Class == nil {
		return
	}
	c.Enemy.NextDecisionAtMs = max(c.Enemy.NextDecisionAtMs, at+c.Enemy.Class.CooldownMs)
}

// finishAttack returns to idle and schedules the next allowed attack.
func (c *Combatant) finishAttack(at int64) {
	c.Pattern = nil
	c.resolved = nil
	c.enter(StateIdle, at)
	if c.Hero != nil {
		c.Hero.NextAttackAtMs = at + c.Hero.Config.AttackCooldownMs
	}
	if c.Enemy != nil && c.Enemy.Class != nil {
		cooldown := c.Enemy.Class.CooldownMs
		if c.Enemy.ComboCount > 0 {
			cooldown = c.Enemy.Class.ComboCooldownMs
		}
		c.Enemy.NextDecisionAtMs = at + cooldown
	}
}

// StartAttack enters windup with the given pattern. Only idle or pursuing
// combatants may start an attack.
func (c *Combatant) StartAttack(now int64, p *AttackPattern, em *CombatEventEmitter) bool {
	if c == nil || p == nil || c.IsDead() {
		return false
	}
	if c.State != StateIdle && c.State != StatePursuing {
		return false
	}
	c.Pattern = p
	c.AttackStartMs = now
	c.resolved = nil
	c.enter(StateWindup, now)
	pos := c.Position()
	em.Emit(CombatEvent{Type: EventAttackStarted, AttackerID: c.ID, TargetID: c.ID, Pattern: p.Name, AtMs: now, PosX: pos.X, PosY: pos.Y})
	return true
}

// RequestAttack is the hero's gated attack input.
func (c *Combatant) RequestAttack(now int64, p *AttackPattern, em *CombatEventEmitter) bool {
	if c == nil || c.Hero == nil || now < c.Hero.NextAttackAtMs {
		return false
	}
	return c.StartAttack(now, p, em)
}

// RequestParry opens the hero's parry window.
func (c *Combatant) RequestParry(now int64, em *CombatEventEmitter) bool {
	if c == nil || c.Hero == nil || c.IsDead() {
		return false
	}
	if c.State != StateIdle && c.State != StatePursuing {
		return false
	}
	if now < c.Hero.NextParryAtMs {
		return false
	}
	h := c.Hero
	h.ParryActive = true
	h.ParryWindowEndMs = now + h.Config.ParryWindowMs
	h.NextParryAtMs = now + h.Config.ParryCooldownMs
	c.enter(StateParrying, now)
	em.Emit(CombatEvent{Type: EventParryStarted, TargetID: c.ID, AtMs: now})
	return true
}

// RequestDodge grants the hero a short invulnerability window.
func (c *Combatant) RequestDodge(now int64) bool {
	if c == nil || c.Hero == nil || c.IsDead() {
		return false
	}
	if c.State != StateIdle && c.State != StatePursuing {
		return false
	}
	if now < c.Hero.NextDodgeAtMs {
		return false
	}
	c.Hero.InvulnerableUntilMs = now + c.Hero.Config.DodgeMs
	c.Hero.NextDodgeAtMs = now + c.Hero.Config.DodgeCooldownMs
	return true
}

// SetBlocking records whether the hero is holding the guard input.
func (c *Combatant) SetBlocking(on bool) {
	if c == nil || c.Hero == nil {
		return
	}
	c.Hero.Blocking = on
}

// CanParry reports whether an incoming attack at now would be parried.
// The window is closed once now passes ParryWindowEndMs.
func (c *Combatant) CanParry(now int64) bool {
	return c != nil && c.Hero != nil && c.State == StateParrying && c.Hero.ParryActive && now <= c.Hero.ParryWindowEndMs
}

// IsBlocking reports whether the guard is up. Guarding only works while the
// hero is otherwise free to act.
func (c *Combatant) IsBlocking() bool {
	if c == nil || c.Hero == nil || !c.Hero.Blocking {
		return false
	}
	return c.State == StateIdle || c.State == StatePursuing
}

// IsInvulnerable reports whether dodge frames are running.
func (c *Combatant) IsInvulnerable(now int64) bool {
	return c != nil && c.Hero != nil && now < c.Hero.InvulnerableUntilMs
}

// HasResolved reports whether the current attack already resolved against
// the defender.
func (c *Combatant) HasResolved(defenderID int) bool {
	if c == nil || c.resolved == nil {
		return false
	}
	_, ok := c.resolved[defenderID]
	return ok
}

// MarkResolved consumes the current attack for the defender.
func (c *Combatant) MarkResolved(defenderID int) {
	if c == nil {
		return
	}
	if c.resolved == nil {
		c.resolved = make(map[int]struct{}, 1)
	}
	c.resolved[defenderID] = struct{}{}
}

// Threatens reports whether the combatant has a pending attack that can
// still land on target.
func (c *Combatant) Threatens(target *Combatant) bool {
	if c == nil || target == nil || c == target || c.IsDead() || c.Role == target.Role {
		return false
	}
	if c.State != StateWindup && c.State != StateActive {
		return false
	}
	return !c.HasResolved(target.ID)
}

// Stagger pre-empts the current state with staggered. It does nothing for
// dead or already staggered combatants and reports whether it took effect.
func (c *Combatant) Stagger(now int64, em *CombatEventEmitter) bool {
	if c == nil || c.IsDead() || c.State == StateStaggered {
		return false
	}
	c.Pattern = nil
	c.resolved = nil
	if c.Hero != nil {
		c.Hero.ParryActive = false
	}
	c.enter(StateStaggered, now)
	pos := c.Position()
	em.Emit(CombatEvent{Type: EventStaggered, TargetID: c.ID, AtMs: now, PosX: pos.X, PosY: pos.Y})
	return true
}

// Kill moves the combatant to the terminal dead state and emits died once.
func (c *Combatant) Kill(now int64, em *CombatEventEmitter) {
	if c == nil || c.State == StateDead {
		return
	}
	c.Stats.HP = 0
	c.Pattern = nil
	c.resolved = nil
	if c.Hero != nil {
		c.Hero.ParryActive = false
	}
	c.enter(StateDead, now)
	pos := c.Position()
	em.Emit(CombatEvent{Type: EventDeath, TargetID: c.ID, AtMs: now, PosX: pos.X, PosY: pos.Y})
}

// SetLocomotion switches between the free movement states (idle, pursuing,
// retreating). Entering the current state again keeps its timer.
func (c *Combatant) SetLocomotion(s State, now int64) bool {
	if c == nil || c.IsDead() || s == c.State {
		return false
	}
	switch s {
	case StateIdle, StatePursuing, StateRetreating:
	default:
		return false
	}
	switch c.State {
	case StateIdle, StatePursuing, StateRetreating:
	default:
		return false
	}
	if c.State == StateRetreating {
		c.holdDecision(now)
	}
	c.enter(s, now)
	return true
}

// StartRetreat backs an enemy off until the given time. Mid-attack enemies
// commit to their swing and ignore the request.
func (c *Combatant) StartRetreat(now, until int64) bool {
	if c == nil || c.Enemy == nil || c.IsDead() {
		return false
	}
	switch c.State {
	case StateIdle, StatePursuing, StateRecover:
	default:
		return false
	}
	c.Pattern = nil
	c.resolved = nil
	c.Enemy.RetreatUntilMs = until
	c.enter(StateRetreating, now)
	return true
}
