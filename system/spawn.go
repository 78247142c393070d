package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/parrycore/component"
)

// SpawnPoint places one enemy of a named class.
type SpawnPoint struct {
	Class     string
	Placement component.Placement
}

// At is a convenience for a spawn point on a fixed position.
func At(class string, x, y float64) SpawnPoint {
	return SpawnPoint{Class: class, Placement: &component.FixedPlacement{At: cp.Vector{X: x, Y: y}}}
}

// Spawn adds one enemy per point, in order. Points naming an unknown class
// are skipped and reported together in the returned error; the enemies that
// could be spawned are still added.
func (e *Encounter) Spawn(classes map[string]*component.EnemyClass, points ...SpawnPoint) ([]*component.Combatant, error) {
	if e == nil {
		return nil, fmt.Errorf("encounter is nil")
	}
	spawned := make([]*component.Combatant, 0, len(points))
	var errs []error
	for i, pt := range points {
		cls := lookupClass(classes, pt.Class)
		if cls == nil {
			errs = append(errs, fmt.Errorf("spawn %d: unknown enemy class %q", i, pt.Class))
			continue
		}
		c, err := e.AddEnemy(cls, pt.Placement)
		if err != nil {
			errs = append(errs, fmt.Errorf("spawn %d: %w", i, err))
			continue
		}
		spawned = append(spawned, c)
	}
	return spawned, errors.Join(errs...)
}

// lookupClass matches class names case-insensitively, so level data may
// write "Samurai" for the samurai class.
func lookupClass(classes map[string]*component.EnemyClass, name string) *component.EnemyClass {
	name = strings.TrimSpace(name)
	if cls, ok := classes[name]; ok {
		return cls
	}
	for key, cls := range classes {
		if strings.EqualFold(key, name) {
			return cls
		}
	}
	return nil
}
