package component

// PosturePolicy owns posture decay and posture-break detection.
type PosturePolicy struct {
	Emitter *CombatEventEmitter

	// combatants that took posture damage since the last Update
	touched map[*Combatant]struct{}
}

// NewPosturePolicy creates a policy; a nil emitter gets a fresh buffer.
func NewPosturePolicy(emitter *CombatEventEmitter) *PosturePolicy {
	if emitter == nil {
		emitter = &CombatEventEmitter{}
	}
	return &PosturePolicy{Emitter: emitter}
}

// Apply adds posture damage and staggers the combatant when it breaks.
// It reports whether a new stagger started.
func (p *PosturePolicy) Apply(now int64, c *Combatant, amount float64) bool {
	if p == nil || c == nil || c.IsDead() {
		return false
	}
	c.Stats.AddPosture(amount)
	if p.touched == nil {
		p.touched = make(map[*Combatant]struct{})
	}
	p.touched[c] = struct{}{}
	return p.Check(now, c)
}

// Check staggers a combatant whose posture is at its maximum. A combatant
// that is already staggered only gets clamped.
func (p *PosturePolicy) Check(now int64, c *Combatant) bool {
	if p == nil || c == nil || c.IsDead() || !c.Stats.PostureBroken() {
		return false
	}
	c.Stats.Posture = c.Stats.MaxPosture
	return c.Stagger(now, p.Emitter)
}

// Decay lowers posture by the combatant's per-ms rate. Staggered, dead and
// threatened combatants keep their posture.
func (p *PosturePolicy) Decay(c *Combatant, dtMs int64, threatened bool) {
	if c == nil || c.IsDead() || c.State == StateStaggered || threatened || dtMs <= 0 {
		return
	}
	c.Stats.DecayPosture(c.PostureDecayPerMs * float64(dtMs))
}

// Update runs break detection and then decay for every combatant, in order.
// Combatants that took posture damage since the previous Update skip decay
// for this tick.
func (p *PosturePolicy) Update(now, dtMs int64, all []*Combatant) {
	if p == nil {
		return
	}
	for _, c := range all {
		if c == nil || c.IsDead() {
			continue
		}
		p.Check(now, c)
		_, hit := p.touched[c]
		p.Decay(c, dtMs, hit || Threatened(c, all))
	}
	clear(p.touched)
}

// Threatened reports whether any opposing combatant has an unresolved attack
// in windup or active against c.
func Threatened(c *Combatant, all []*Combatant) bool {
	for _, other := range all {
		if other.Threatens(c) {
			return true
		}
	}
	return false
}
