package component

import "github.com/jakecoffman/cp"

// Placement exposes a combatant's position. It is owned by the movement or
// rendering layer; combat code only reads it.
type Placement interface {
	Position() cp.Vector
}

// Mover receives movement intents from the enemy policy.
type Mover interface {
	Steer(c *Combatant, dir cp.Vector, speed float64)
	Stop(c *Combatant)
}

// EventSink consumes the events drained at the end of every tick.
type EventSink interface {
	Consume(events []CombatEvent)
}

// EventSinkFunc adapts a function to EventSink.
type EventSinkFunc func(events []CombatEvent)

func (f EventSinkFunc) Consume(events []CombatEvent) {
	if f != nil {
		f(events)
	}
}

// FixedPlacement is a plain point for headless runs and tests.
type FixedPlacement struct {
	At cp.Vector
}

func (p *FixedPlacement) Position() cp.Vector {
	if p == nil {
		return cp.Vector{}
	}
	return p.At
}

// MoveTo sets the point.
func (p *FixedPlacement) MoveTo(v cp.Vector) {
	if p == nil {
		return
	}
	p.At = v
}
