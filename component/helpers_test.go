package component

import "github.com/jakecoffman/cp"

func at(x, y float64) *FixedPlacement {
	return &FixedPlacement{At: cp.Vector{X: x, Y: y}}
}

func enemyStrike() *AttackPattern {
	return &AttackPattern{
		Name:          "enemy_strike",
		Kind:          PatternQuick,
		TelegraphMs:   450,
		ActiveMs:      160,
		RecoverMs:     500,
		ParryWindowMs: 160,
		Damage:        16,
		PostureDamage: 25,
		Range:         1,
	}
}

func heroSlash() *AttackPattern {
	return &AttackPattern{
		Name:          "hero_slash",
		Kind:          PatternHero,
		TelegraphMs:   120,
		ActiveMs:      100,
		RecoverMs:     200,
		ParryWindowMs: 0,
		Damage:        12,
		PostureDamage: 20,
		Range:         1,
	}
}

func testClass() *EnemyClass {
	return &EnemyClass{
		Name:              "samurai",
		MaxHP:             80,
		MaxPosture:        100,
		MoveSpeed:         2.4,
		AttackRange:       0.9,
		PursuitRange:      6,
		RetreatRange:      3,
		CooldownMs:        1000,
		ComboCooldownMs:   300,
		MaxCombo:          3,
		Aggression:        0.7,
		StaggerMs:         900,
		PostureDecayPerMs: 0.02,
		RetreatMs:         800,
		Quick:             "enemy_strike",
		Heavy:             "enemy_strike",
		ComboStarter:      "enemy_strike",
	}
}

func newPair() (*Combatant, *Combatant) {
	hero := NewHero(1, DefaultHeroConfig(), at(0, 0))
	enemy := NewEnemy(2, testClass(), at(0.5, 0))
	return hero, enemy
}

// swingTo starts an attack at start and advances it to now, taking as many
// ticks as the active hold needs.
func swingTo(c *Combatant, p *AttackPattern, start, now int64) {
	c.StartAttack(start, p, nil)
	for i := 0; i < 3; i++ {
		c.Advance(now, nil)
	}
}

func eventTypes(events []CombatEvent) []CombatEventType {
	out := make([]CombatEventType, 0, len(events))
	for _, e := range events {
		out = append(out, e.Type)
	}
	return out
}
