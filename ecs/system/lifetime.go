package system

import (
	"github.com/tbrandt/blastpad/ecs"
	"github.com/tbrandt/blastpad/ecs/component"
)

// LifetimeSystem counts down per-entity lifetimes and destroys entities
// that expire. Destroying an entity the sweeper already removed is a
// no-op, the two systems never race.
type LifetimeSystem struct{}

func NewLifetimeSystem() *LifetimeSystem {
	return &LifetimeSystem{}
}

func (s *LifetimeSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.LifetimeComponent, func(e ecs.Entity, l *component.Lifetime) {
		l.Ticks--
		if l.Ticks <= 0 {
			w.DestroyEntity(e)
		}
	})
}
