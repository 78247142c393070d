package component

import "github.com/milk9111/parrycore/common"

// CombatStats holds health and posture for one combatant.
type CombatStats struct {
	HP         float64
	MaxHP      float64
	Posture    float64
	MaxPosture float64
}

// NewCombatStats creates stats with full health and empty posture.
func NewCombatStats(maxHP, maxPosture float64) CombatStats {
	if maxHP <= 0 {
		maxHP = 1
	}
	if maxPosture <= 0 {
		maxPosture = 1
	}
	return CombatStats{HP: maxHP, MaxHP: maxHP, MaxPosture: maxPosture}
}

// IsAlive reports whether any health remains.
func (s *CombatStats) IsAlive() bool {
	return s != nil && s.HP > 0
}

// ApplyDamage removes health, floored at 0, and returns the amount removed.
func (s *CombatStats) ApplyDamage(amount float64) float64 {
	if s == nil || amount <= 0 || s.HP <= 0 {
		return 0
	}
	before := s.HP
	s.HP = common.Clamp(s.HP-amount, 0, s.MaxHP)
	return before - s.HP
}

// Heal restores health up to MaxHP. Dead stats stay dead.
func (s *CombatStats) Heal(amount float64) {
	if s == nil || amount <= 0 || s.HP <= 0 {
		return
	}
	s.HP = common.Clamp(s.HP+amount, 0, s.MaxHP)
}

// AddPosture raises posture, clamped to MaxPosture. It reports whether
// posture is now at its maximum.
func (s *CombatStats) AddPosture(amount float64) bool {
	if s == nil {
		return false
	}
	if amount > 0 {
		s.Posture = common.Clamp(s.Posture+amount, 0, s.MaxPosture)
	}
	return s.PostureBroken()
}

// DecayPosture lowers posture, floored at 0.
func (s *CombatStats) DecayPosture(amount float64) {
	if s == nil || amount <= 0 {
		return
	}
	s.Posture = common.Clamp(s.Posture-amount, 0, s.MaxPosture)
}

// ResetPosture empties the posture meter.
func (s *CombatStats) ResetPosture() {
	if s == nil {
		return
	}
	s.Posture = 0
}

// PostureBroken reports whether posture has reached its maximum.
func (s *CombatStats) PostureBroken() bool {
	return s != nil && s.Posture >= s.MaxPosture
}

// HealthRatio returns HP/MaxHP in [0,1] for health bars.
func (s *CombatStats) HealthRatio() float64 {
	if s == nil || s.MaxHP <= 0 {
		return 0
	}
	return s.HP / s.MaxHP
}

// PostureRatio returns Posture/MaxPosture in [0,1].
func (s *CombatStats) PostureRatio() float64 {
	if s == nil || s.MaxPosture <= 0 {
		return 0
	}
	return s.Posture / s.MaxPosture
}
