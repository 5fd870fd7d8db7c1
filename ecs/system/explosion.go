package system

import (
	"math"
	"math/rand"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/rs/zerolog"

	"github.com/tbrandt/blastpad/common"
	"github.com/tbrandt/blastpad/ecs"
	"github.com/tbrandt/blastpad/ecs/component"
	"github.com/tbrandt/blastpad/ecs/entity"
	"github.com/tbrandt/blastpad/prefabs"
)

// The tuning sheet expresses blast strength in the toy's own unit scale;
// these constants map it onto Chipmunk impulses (velocity delta in px/s
// per unit of force at the epicenter) and angular velocity (rad/s).
const (
	impulseScale = 4000.0
	spinScale    = 20.0
)

// DetonationHook lets a loaded script rewrite detonation parameters
// before dispatch.
type DetonationHook interface {
	Adjust(weapon string, force, radius float64, fragments int) (float64, float64, int, error)
}

// Exploder implements the explosion model: radial impulses with linear
// falloff, plus weapon-type detonation dispatch.
type Exploder struct {
	physics *PhysicsSystem
	tuning  *prefabs.Tuning
	rng     *rand.Rand
	hook    DetonationHook
	log     zerolog.Logger
}

func NewExploder(physics *PhysicsSystem, tuning *prefabs.Tuning, log zerolog.Logger) *Exploder {
	return &Exploder{
		physics: physics,
		tuning:  tuning,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		log:     log.With().Str("system", "explosion").Logger(),
	}
}

// SetTuning swaps the tuning sheet (prefab hot reload).
func (x *Exploder) SetTuning(t *prefabs.Tuning) {
	if t != nil {
		x.tuning = t
	}
}

// SetHook installs or clears the scripted detonation hook.
func (x *Exploder) SetHook(h DetonationHook) {
	x.hook = h
}

// Falloff is the linear decay factor of blast force with distance: 1 at
// the epicenter, 0 at and beyond the radius.
func Falloff(distance, radius float64) float64 {
	if radius <= 0 || distance >= radius {
		return 0
	}
	if distance <= 0 {
		return 1
	}
	return 1 - distance/radius
}

// Explode applies a radial impulse to every non-static body within
// radius of the epicenter. Bodies at or beyond the radius are untouched.
// The direction divisor is floored at the configured distance floor so a
// body sitting exactly on the epicenter cannot divide by zero.
func (x *Exploder) Explode(w *ecs.World, epicenter cp.Vector, force, radius float64) {
	if radius <= 0 {
		return
	}
	floor := x.tuning.Blast.DistanceFloor
	if floor <= 0 {
		floor = 1
	}
	ecs.ForEach(w, component.PhysicsBodyComponent, func(e ecs.Entity, pb *component.PhysicsBody) {
		if pb.Body == nil || pb.Static {
			return
		}
		delta := pb.Body.Position().Sub(epicenter)
		distance := delta.Length()
		falloff := Falloff(distance, radius)
		if falloff <= 0 {
			return
		}
		denom := math.Max(distance, floor)
		scale := force * impulseScale * falloff * pb.Body.Mass() / denom
		pb.Body.ApplyImpulseAtWorldPoint(delta.Mult(scale), pb.Body.Position())

		spin := (x.rng.Float64()*2 - 1) * x.tuning.Blast.Spin * spinScale * falloff
		pb.Body.SetAngularVelocity(pb.Body.AngularVelocity() + spin)
	})
}

// AreaBlast is the weak explosion triggered by a double tap.
func (x *Exploder) AreaBlast(w *ecs.World, pos cp.Vector) {
	x.Explode(w, pos, x.tuning.Blast.TapForce, x.tuning.Blast.DefaultRadius)
	x.log.Debug().Float64("x", pos.X).Float64("y", pos.Y).Msg("area blast")
}

// Detonate converts a weapon entity into its explosion effect and removes
// it. The Detonating latch is set before any force application or removal,
// so a second call for the same gesture (duplicate listener delivery,
// double tap on the weapon itself) is a no-op. Returns whether this call
// performed the detonation.
func (x *Exploder) Detonate(w *ecs.World, e ecs.Entity) bool {
	wp, ok := ecs.Get(w, e, component.WeaponComponent)
	if !ok || wp.Detonating {
		return false
	}
	wp.Detonating = true
	wtype := wp.Type

	pos := cp.Vector{}
	if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
		pos = cp.Vector{X: t.X, Y: t.Y}
	}
	if pb, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok && pb.Body != nil && !pb.Static {
		pos = pb.Body.Position()
	}

	spec := x.tuning.Weapon(wtype)
	force, radius, fragments := spec.Force, spec.Radius, spec.Fragments
	if x.hook != nil {
		f, r, n, err := x.hook.Adjust(string(wtype), force, radius, fragments)
		if err != nil {
			x.log.Warn().Err(err).Str("weapon", string(wtype)).Msg("detonation hook failed")
		} else {
			force, radius, fragments = f, r, n
		}
	}

	x.Explode(w, pos, force, radius)
	if wtype == component.WeaponTNT {
		x.spawnFragments(w, pos, fragments)
	}
	w.DestroyEntity(e)

	x.log.Info().
		Str("weapon", string(wtype)).
		Float64("x", pos.X).Float64("y", pos.Y).
		Float64("force", force).Float64("radius", radius).
		Msg("detonated")
	return true
}

func (x *Exploder) spawnFragments(w *ecs.World, epicenter cp.Vector, count int) {
	frag := x.tuning.Fragments
	for i := 0; i < count; i++ {
		jx := (x.rng.Float64() - 0.5) * frag.Jitter
		jy := (x.rng.Float64() - 0.5) * frag.Jitter
		units := frag.TTLMinUnits + x.rng.Float64()*(frag.TTLMaxUnits-frag.TTLMinUnits)
		entity.NewFragment(w, cp.Vector{X: epicenter.X + jx, Y: epicenter.Y + jy}, common.UnitsToTicks(units), x.rng)
	}
}

// ClearAll removes every non-static entity from the world. Fragments and
// weapons go too; their pending lifetimes and sweep checks tolerate it.
func ClearAll(w *ecs.World) int {
	removed := 0
	ecs.ForEach(w, component.PhysicsBodyComponent, func(e ecs.Entity, pb *component.PhysicsBody) {
		if pb.Static {
			return
		}
		if w.DestroyEntity(e) {
			removed++
		}
	})
	return removed
}
