package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/parrycore/component"
)

// KinematicMover is a Mover for runs without a physics layer. Steering sets a
// velocity in units per second and Integrate moves FixedPlacements by it.
type KinematicMover struct {
	velocity map[*component.Combatant]cp.Vector
	order    []*component.Combatant
}

func NewKinematicMover() *KinematicMover {
	return &KinematicMover{velocity: map[*component.Combatant]cp.Vector{}}
}

func (m *KinematicMover) Steer(c *component.Combatant, dir cp.Vector, speed float64) {
	if c == nil {
		return
	}
	if _, ok := m.velocity[c]; !ok {
		m.order = append(m.order, c)
	}
	m.velocity[c] = dir.Mult(speed)
}

func (m *KinematicMover) Stop(c *component.Combatant) {
	if _, ok := m.velocity[c]; ok {
		m.velocity[c] = cp.Vector{}
	}
}

// Velocity returns the last steering velocity of c.
func (m *KinematicMover) Velocity(c *component.Combatant) cp.Vector {
	return m.velocity[c]
}

// Integrate moves every steered combatant, in the order they were first
// steered. Dead combatants and non-fixed placements are left alone.
func (m *KinematicMover) Integrate(dtMs int64) {
	if dtMs <= 0 {
		return
	}
	dt := float64(dtMs) / 1000
	for _, c := range m.order {
		p, ok := c.Placement.(*component.FixedPlacement)
		if !ok || c.IsDead() {
			continue
		}
		p.MoveTo(p.At.Add(m.velocity[c].Mult(dt)))
	}
}

// Forget drops combatants that were removed from the encounter.
func (m *KinematicMover) Forget(c *component.Combatant) {
	if _, ok := m.velocity[c]; !ok {
		return
	}
	delete(m.velocity, c)
	for i, o := range m.order {
		if o == c {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}
