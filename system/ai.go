package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/parrycore/common"
	"github.com/milk9111/parrycore/component"
)

const (
	hitAggressionStep    = 0.1
	parryAggressionStep  = 0.2
	minParriedAggression = 0.3
	retreatChance        = 0.3
)

// Roller supplies uniform values in [0,1). *rand.Rand satisfies it.
type Roller interface {
	Float64() float64
}

// EnemyPolicy is the threshold-based decision layer above the enemy state
// machine, plus the reactive aggression rules.
type EnemyPolicy struct {
	Patterns *component.PatternTable
	Mover    component.Mover
	Rand     Roller
	Scripts  *ScriptCache
	Logger   *log.Logger
}

// NewEnemyPolicy creates a policy. A nil mover is allowed for headless use.
func NewEnemyPolicy(patterns *component.PatternTable, mover component.Mover, rng Roller) *EnemyPolicy {
	return &EnemyPolicy{
		Patterns: patterns,
		Mover:    mover,
		Rand:     rng,
	}
}

// Decide picks the next action for an enemy that is not mid-attack.
func (p *EnemyPolicy) Decide(now int64, enemy, hero *component.Combatant, em *component.CombatEventEmitter) {
	if p == nil || enemy == nil || enemy.Enemy == nil || enemy.Enemy.Class == nil {
		return
	}
	if enemy.IsDead() {
		p.stop(enemy)
		return
	}
	cls := enemy.Enemy.Class

	switch enemy.State {
	case component.StateRetreating:
		p.retreat(now, enemy, hero)
		return
	case component.StateIdle, component.StatePursuing:
	default:
		p.stop(enemy)
		return
	}

	if hero == nil || hero.IsDead() {
		enemy.SetLocomotion(component.StateIdle, now)
		p.stop(enemy)
		return
	}

	dist := common.Distance(enemy.Position(), hero.Position())
	switch {
	case dist > cls.PursuitRange:
		enemy.SetLocomotion(component.StateIdle, now)
		p.stop(enemy)
	case dist > cls.AttackRange:
		enemy.SetLocomotion(component.StatePursuing, now)
		p.steer(enemy, common.Direction(enemy.Position(), hero.Position()), cls.MoveSpeed)
	default:
		p.stop(enemy)
		if now < enemy.Enemy.NextDecisionAtMs {
			enemy.SetLocomotion(component.StateIdle, now)
			return
		}
		pattern := p.choosePattern(enemy, dist)
		if pattern == nil {
			return
		}
		enemy.StartAttack(now, pattern, em)
	}
}

func (p *EnemyPolicy) retreat(now int64, enemy, hero *component.Combatant) {
	cls := enemy.Enemy.Class
	if hero == nil || hero.IsDead() {
		enemy.SetLocomotion(component.StateIdle, now)
		p.stop(enemy)
		return
	}
	if common.Distance(enemy.Position(), hero.Position()) >= cls.RetreatRange {
		enemy.SetLocomotion(component.StateIdle, now)
		p.stop(enemy)
		return
	}
	p.steer(enemy, common.Direction(hero.Position(), enemy.Position()), cls.MoveSpeed)
}

// choosePattern applies the combo/aggression rule and then the class script,
// if any.
func (p *EnemyPolicy) choosePattern(enemy *component.Combatant, dist float64) *component.AttackPattern {
	st := enemy.Enemy
	cls := st.Class

	var name string
	var r float64
	if st.ComboCount >= cls.MaxCombo {
		st.ComboCount = 0
		name = cls.Heavy
	} else {
		r = p.roll()
		if r < st.Aggression {
			name = cls.Quick
		} else {
			name = cls.ComboStarter
		}
		st.ComboCount++
	}

	if cls.Script != "" {
		name = p.scripted(enemy, dist, r, name)
	}
	return p.Patterns.MustGet(name)
}

func (p *EnemyPolicy) scripted(enemy *component.Combatant, dist, roll float64, fallback string) string {
	if p.Scripts == nil {
		return fallback
	}
	cls := enemy.Enemy.Class
	script, err := p.Scripts.Get(cls.Script)
	if err != nil {
		return fallback
	}
	name, err := script.Pick(PickInput{
		Class:      cls.Name,
		Aggression: enemy.Enemy.Aggression,
		Combo:      enemy.Enemy.ComboCount,
		MaxCombo:   cls.MaxCombo,
		Distance:   dist,
		Roll:       roll,
		Fallback:   fallback,
	})
	if err != nil {
		p.logf("ai: enemy=%d script %s: %v", enemy.ID, cls.Script, err)
		return fallback
	}
	if _, ok := p.Patterns.Get(name); !ok {
		p.logf("ai: enemy=%d script %s picked unknown pattern %q", enemy.ID, cls.Script, name)
		return fallback
	}
	return name
}

// Observe adapts aggression and combo state to the events of a tick.
func (p *EnemyPolicy) Observe(now int64, enemy *component.Combatant, events []component.CombatEvent, em *component.CombatEventEmitter) {
	if p == nil || enemy == nil || enemy.Enemy == nil || enemy.IsDead() {
		return
	}
	st := enemy.Enemy
	for _, evt := range events {
		switch evt.Type {
		case component.EventHit:
			if evt.TargetID != enemy.ID || enemy.IsDead() {
				continue
			}
			st.ComboCount = 0
			st.Aggression = min(1, st.Aggression+hitAggressionStep)
			if p.roll() < retreatChance && st.Class != nil {
				enemy.StartRetreat(now, now+st.Class.RetreatMs)
			}
		case component.EventParrySuccess:
			if evt.AttackerID != enemy.ID {
				continue
			}
			st.ComboCount = 0
			st.Aggression = max(minParriedAggression, st.Aggression-parryAggressionStep)
			enemy.Stagger(now, em)
		}
	}
}

func (p *EnemyPolicy) roll() float64 {
	if p.Rand == nil {
		return 0
	}
	return p.Rand.Float64()
}

func (p *EnemyPolicy) steer(enemy *component.Combatant, dir cp.Vector, speed float64) {
	if p.Mover != nil {
		p.Mover.Steer(enemy, dir, speed)
	}
}

func (p *EnemyPolicy) stop(enemy *component.Combatant) {
	if p.Mover != nil {
		p.Mover.Stop(enemy)
	}
}

func (p *EnemyPolicy) logf(format string, args ...any) {
	if p.Logger != nil {
		p.Logger.Printf(format, args...)
	}
}
