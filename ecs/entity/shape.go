package entity

import (
	"image/color"
	"math/rand"

	"github.com/jakecoffman/cp"

	"github.com/tbrandt/blastpad/common"
	"github.com/tbrandt/blastpad/ecs"
	"github.com/tbrandt/blastpad/ecs/component"
	"github.com/tbrandt/blastpad/prefabs"
)

// NewShape places a rectangle or circle rigid body at pos. A non-positive
// size falls back to the tuned default. When snap is on the position is
// quantized to the grid independently per axis before the body is built.
func NewShape(w *ecs.World, pos cp.Vector, kind component.ShapeKind, size float64, snap bool, tune *prefabs.Tuning, rng *rand.Rand) ecs.Entity {
	if size <= 0 {
		size = tune.Spawn.DefaultSize
	}
	if snap {
		pos.X = common.Snap(pos.X, tune.Spawn.Grid)
		pos.Y = common.Snap(pos.Y, tune.Spawn.Grid)
	}

	e := w.CreateEntity()
	_ = ecs.Add(w, e, component.TransformComponent, component.Transform{X: pos.X, Y: pos.Y})
	_ = ecs.Add(w, e, component.ShapeComponent, component.Shape{Kind: kind, Fill: randomShapeColor(rng)})

	pb := component.PhysicsBody{Mass: 1, Friction: 0.6, Elasticity: 0.2}
	if kind == component.ShapeCircle {
		pb.Radius = size / 2
	} else {
		pb.Width = size
		pb.Height = size
	}
	_ = ecs.Add(w, e, component.PhysicsBodyComponent, pb)
	return e
}

// randomShapeColor picks a saturated-ish fill so stacked shapes stay
// distinguishable against the dark canvas.
func randomShapeColor(rng *rand.Rand) color.NRGBA {
	return color.NRGBA{
		R: uint8(70 + rng.Intn(180)),
		G: uint8(70 + rng.Intn(180)),
		B: uint8(70 + rng.Intn(180)),
		A: 0xff,
	}
}
