package main

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/parrycore/common"
	"github.com/milk9111/parrycore/component"
	"github.com/milk9111/parrycore/system"
)

// parryLeadMs is how early the bot presses parry before an attack goes
// active. It must stay below the hero's parry window.
const parryLeadMs = 60

// heroBot plays the hero: it rolls once per telegraphed attack to decide
// whether to parry, guards otherwise, and swings at enemies in reach.
type heroBot struct {
	enc   *system.Encounter
	rng   system.Roller
	skill float64

	// attack start time per enemy already judged by the bot
	judged map[int]int64
	parry  map[int]bool
}

func newHeroBot(enc *system.Encounter, rng system.Roller, skill float64) *heroBot {
	return &heroBot{
		enc:    enc,
		rng:    rng,
		skill:  skill,
		judged: map[int]int64{},
		parry:  map[int]bool{},
	}
}

func (b *heroBot) act(now int64) {
	hero := b.enc.Hero()
	if hero.IsDead() {
		return
	}

	threatened := false
	for _, enemy := range b.enc.Enemies() {
		if enemy.State != component.StateWindup || enemy.Pattern == nil {
			continue
		}
		if start, ok := b.judged[enemy.ID]; !ok || start != enemy.AttackStartMs {
			b.judged[enemy.ID] = enemy.AttackStartMs
			b.parry[enemy.ID] = b.rng.Float64() < b.skill
		}
		activeAt := enemy.Pattern.ActiveAt(enemy.AttackStartMs)
		if now < activeAt-parryLeadMs {
			continue
		}
		threatened = true
		if b.parry[enemy.ID] {
			b.enc.RequestParry(now)
		}
	}
	b.enc.SetBlocking(threatened)
	if threatened {
		return
	}

	target := b.nearest(hero.Position())
	if target == nil {
		return
	}
	reach := b.enc.Patterns().MustGet(hero.Hero.Config.Attack).Range
	if common.Distance(hero.Position(), target.Position()) <= reach {
		b.enc.RequestAttack(now)
	}
}

func (b *heroBot) nearest(from cp.Vector) *component.Combatant {
	var best *component.Combatant
	bestDist := 0.0
	for _, enemy := range b.enc.Enemies() {
		if enemy.IsDead() {
			continue
		}
		d := common.Distance(from, enemy.Position())
		if best == nil || d < bestDist {
			best, bestDist = enemy, d
		}
	}
	return best
}
