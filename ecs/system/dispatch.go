package system

import (
	"math/rand"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/rs/zerolog"

	"github.com/tbrandt/blastpad/ecs"
	"github.com/tbrandt/blastpad/ecs/component"
	"github.com/tbrandt/blastpad/ecs/entity"
	"github.com/tbrandt/blastpad/prefabs"
)

// Dispatcher executes classified actions against the world. It is the
// only place gesture outcomes touch entities, so the classifier and the
// systems stay decoupled.
type Dispatcher struct {
	physics  *PhysicsSystem
	exploder *Exploder
	tools    *ToolState
	tuning   *prefabs.Tuning
	rng      *rand.Rand
	log      zerolog.Logger
}

func NewDispatcher(physics *PhysicsSystem, exploder *Exploder, tools *ToolState, tuning *prefabs.Tuning, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		physics:  physics,
		exploder: exploder,
		tools:    tools,
		tuning:   tuning,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
		log:      log.With().Str("system", "dispatch").Logger(),
	}
}

// SetTuning swaps the tuning sheet (prefab hot reload).
func (d *Dispatcher) SetTuning(t *prefabs.Tuning) {
	if t != nil {
		d.tuning = t
	}
}

func (d *Dispatcher) Apply(w *ecs.World, actions []Action) {
	for _, a := range actions {
		switch a.Kind {
		case ActionDetonate:
			d.exploder.Detonate(w, a.Target)
		case ActionSpawnShape:
			entity.NewShape(w, a.Pos, d.tools.Shape, d.tools.Size, d.tools.Snap, d.tuning, d.rng)
		case ActionErase:
			d.Erase(w, a.Pos)
		case ActionGrabStart:
			d.physics.StartGrab(w, a.Target, a.Pos)
		case ActionGrabEnd:
			d.physics.EndGrab(w)
		case ActionAreaBlast:
			d.exploder.AreaBlast(w, a.Pos)
		case ActionSpawnWeapon:
			entity.NewWeapon(w, a.Pos, a.Weapon)
			d.log.Debug().Str("weapon", string(a.Weapon)).Float64("x", a.Pos.X).Float64("y", a.Pos.Y).Msg("weapon placed")
		}
	}
}

// Erase removes at most one dynamic entity whose center lies within the
// eraser radius of pos, preferring the most recently created. The radius
// tracks the toolbar size setting so a bigger brush erases from farther
// away. Returns whether something was erased.
func (d *Dispatcher) Erase(w *ecs.World, pos cp.Vector) bool {
	radius := d.tools.Size
	if radius <= 0 {
		radius = d.tuning.Spawn.DefaultSize
	}

	ents := w.Entities()
	for i := len(ents) - 1; i >= 0; i-- {
		e := ents[i]
		pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
		if !ok || pb.Static {
			continue
		}
		center := cp.Vector{}
		if pb.Body != nil {
			center = pb.Body.Position()
		} else if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
			center = cp.Vector{X: t.X, Y: t.Y}
		}
		if center.Distance(pos) <= radius {
			w.DestroyEntity(e)
			return true
		}
	}
	return false
}
