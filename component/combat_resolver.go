package component

import "github.com/milk9111/parrycore/common"

// CombatResolver decides hit, parry, block and evade outcomes for attacks in
// their active window. It is the only code that applies attack damage.
type CombatResolver struct {
	Emitter *CombatEventEmitter
	Posture *PosturePolicy
	Tuning  CombatTuning
}

// NewCombatResolver creates a resolver that shares the posture policy's
// emitter.
func NewCombatResolver(tuning CombatTuning, posture *PosturePolicy) *CombatResolver {
	if posture == nil {
		posture = NewPosturePolicy(nil)
	}
	return &CombatResolver{
		Emitter: posture.Emitter,
		Posture: posture,
		Tuning:  tuning,
	}
}

// Resolve applies the attacker's active attack to every eligible defender
// and returns the events it produced. Each defender is resolved at most once
// per attack instance.
func (r *CombatResolver) Resolve(now int64, attacker *Combatant, defenders []*Combatant) []CombatEvent {
	if r == nil || attacker == nil || attacker.IsDead() || attacker.State != StateActive || attacker.Pattern == nil {
		return nil
	}
	p := attacker.Pattern
	from := attacker.Position()
	before := r.Emitter.Pending()

	for _, d := range defenders {
		if d == nil || d == attacker || d.IsDead() || d.Role == attacker.Role {
			continue
		}
		if attacker.HasResolved(d.ID) {
			continue
		}
		if common.Distance(from, d.Position()) > p.Range {
			continue
		}
		attacker.MarkResolved(d.ID)
		r.resolveOne(now, attacker, d, p)

		// a parry can break the attacker's posture and cancel the swing
		if attacker.IsDead() || attacker.State != StateActive {
			break
		}
	}
	return r.Emitter.Since(before)
}

func (r *CombatResolver) resolveOne(now int64, attacker, d *Combatant, p *AttackPattern) {
	pos := d.Position()
	evt := CombatEvent{AttackerID: attacker.ID, TargetID: d.ID, Pattern: p.Name, AtMs: now, PosX: pos.X, PosY: pos.Y}
	parryable := now <= p.ActiveAt(attacker.AttackStartMs)+p.ParryWindowMs

	switch {
	case parryable && d.CanParry(now):
		amount := p.PostureDamage * r.Tuning.ParryPostureMultiplier
		evt.Type = EventParrySuccess
		evt.PostureDamage = amount
		r.Emitter.Emit(evt)
		r.Posture.Apply(now, attacker, amount)

	case d.IsInvulnerable(now):
		evt.Type = EventEvaded
		r.Emitter.Emit(evt)

	case d.IsBlocking():
		amount := p.PostureDamage * r.Tuning.BlockFactor
		evt.Type = EventBlocked
		evt.PostureDamage = amount
		r.Emitter.Emit(evt)
		r.Posture.Apply(now, d, amount)

	default:
		dmg := p.Damage * r.chainMultiplier(now, attacker)
		if d.Role == RoleEnemy && d.State == StateStaggered && r.Tuning.ExecuteMultiplier > 0 {
			dmg *= r.Tuning.ExecuteMultiplier
		}
		d.Stats.ApplyDamage(dmg)
		evt.Type = EventHit
		evt.Damage = dmg
		evt.PostureDamage = p.PostureDamage
		r.Emitter.Emit(evt)
		if !d.Stats.IsAlive() {
			d.Kill(now, r.Emitter)
			return
		}
		r.Posture.Apply(now, d, p.PostureDamage)
	}
}

// chainMultiplier scales consecutive hero hits landed within the chain
// window. Enemy attacks always use 1.
func (r *CombatResolver) chainMultiplier(now int64, attacker *Combatant) float64 {
	h := attacker.Hero
	if h == nil {
		return 1
	}
	cfg := h.Config
	if h.ChainCount > 0 && now-h.LastHitAtMs <= cfg.ChainWindowMs {
		h.ChainCount++
	} else {
		h.ChainCount = 1
	}
	if cfg.ChainMax > 0 && h.ChainCount > cfg.ChainMax {
		h.ChainCount = cfg.ChainMax
	}
	h.LastHitAtMs = now
	return 1 + cfg.ChainBonus*float64(h.ChainCount-1)
}
