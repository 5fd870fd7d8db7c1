package entity

import (
	"image/color"
	"math/rand"

	"github.com/jakecoffman/cp"

	"github.com/tbrandt/blastpad/ecs"
	"github.com/tbrandt/blastpad/ecs/component"
)

// NewFragment spawns one piece of TNT debris at pos with a lifetime in
// update ticks. The lifetime system destroys it even if nothing else
// touches the world again.
func NewFragment(w *ecs.World, pos cp.Vector, ttlTicks int, rng *rand.Rand) ecs.Entity {
	if ttlTicks < 1 {
		ttlTicks = 1
	}

	e := w.CreateEntity()
	_ = ecs.Add(w, e, component.TransformComponent, component.Transform{X: pos.X, Y: pos.Y})
	_ = ecs.Add(w, e, component.FragmentComponent, component.Fragment{})
	_ = ecs.Add(w, e, component.LifetimeComponent, component.Lifetime{Ticks: ttlTicks})
	_ = ecs.Add(w, e, component.ShapeComponent, component.Shape{
		Kind: component.ShapeCircle,
		Fill: color.NRGBA{R: 0xff, G: uint8(120 + rng.Intn(100)), B: 0x30, A: 0xff},
	})
	_ = ecs.Add(w, e, component.PhysicsBodyComponent, component.PhysicsBody{
		Radius:     2 + rng.Float64()*3,
		Mass:       0.2,
		Friction:   0.4,
		Elasticity: 0.4,
	})
	return e
}
