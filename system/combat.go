package system

import (
	"github.com/milk9111/parrycore/component"
)

// Tick advances the encounter to now. The order is fixed: AI decisions,
// state timers, attack resolution (hero first, then enemies in spawn order),
// posture break and decay, AI adaptation, and finally the event drain. The
// drained events are handed to the sink and returned.
func (e *Encounter) Tick(now, dtMs int64) []component.CombatEvent {
	if e == nil {
		return nil
	}
	if dtMs < 0 {
		dtMs = 0
	}
	hero := e.hero

	for _, enemy := range e.enemies {
		e.policy.Decide(now, enemy, hero, e.emitter)
	}

	hero.Advance(now, e.emitter)
	for _, enemy := range e.enemies {
		enemy.Advance(now, e.emitter)
	}

	e.resolveCombat(now)

	all := e.combatants()
	e.posture.Update(now, dtMs, all)

	events := e.emitter.Drain()
	if len(events) > 0 {
		for _, enemy := range e.enemies {
			e.policy.Observe(now, enemy, events, e.emitter)
		}
		// adaptation can stagger an enemy that was just parried
		events = append(events, e.emitter.Drain()...)
	}
	for _, evt := range events {
		if evt.Type == component.EventHit && evt.TargetID == hero.ID {
			e.logf("encounter: hero took %.1f from %d (%s) at %d", evt.Damage, evt.AttackerID, evt.Pattern, evt.AtMs)
		}
	}

	if e.sink != nil {
		e.sink.Consume(events)
	}
	return events
}

// resolveCombat resolves every attack that is in its active window.
func (e *Encounter) resolveCombat(now int64) {
	hero := e.hero
	if hero.State == component.StateActive {
		e.resolver.Resolve(now, hero, e.enemies)
	}
	defenders := []*component.Combatant{hero}
	for _, enemy := range e.enemies {
		if enemy.State != component.StateActive {
			continue
		}
		e.resolver.Resolve(now, enemy, defenders)
	}
}

func (e *Encounter) combatants() []*component.Combatant {
	all := make([]*component.Combatant, 0, len(e.enemies)+1)
	all = append(all, e.hero)
	return append(all, e.enemies...)
}
