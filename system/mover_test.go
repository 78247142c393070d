package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/parrycore/component"
	"github.com/stretchr/testify/assert"
)

func TestKinematicMover(t *testing.T) {
	m := NewKinematicMover()
	enemy := component.NewEnemy(2, testClass(), at(0, 0))

	m.Steer(enemy, cp.Vector{X: 1}, 2)
	m.Integrate(500)
	assert.InDelta(t, 1.0, enemy.Position().X, 1e-9)

	m.Stop(enemy)
	m.Integrate(500)
	assert.InDelta(t, 1.0, enemy.Position().X, 1e-9)

	m.Steer(enemy, cp.Vector{Y: -1}, 4)
	enemy.Kill(0, nil)
	m.Integrate(500)
	assert.Equal(t, cp.Vector{X: 1}, enemy.Position(), "dead combatants stay put")

	m.Forget(enemy)
	assert.Equal(t, cp.Vector{}, m.Velocity(enemy))
}

func TestPursuitClosesDistance(t *testing.T) {
	m := NewKinematicMover()
	enc, enemy := newDuel(t, 4, WithMover(m))

	for now := int64(0); now < 3000 && enemy.State != component.StateWindup; now += 16 {
		enc.Tick(now, 16)
		m.Integrate(16)
	}
	assert.Equal(t, component.StateWindup, enemy.State)
	assert.LessOrEqual(t, enemy.Position().X, testClass().AttackRange)
}
