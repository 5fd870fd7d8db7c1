package system

import (
	"math"
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/rs/zerolog"

	"github.com/tbrandt/blastpad/common"
	"github.com/tbrandt/blastpad/ecs"
	"github.com/tbrandt/blastpad/ecs/component"
	"github.com/tbrandt/blastpad/ecs/entity"
	"github.com/tbrandt/blastpad/prefabs"
)

func newTestRig() (*ecs.World, *PhysicsSystem, *Exploder, *prefabs.Tuning, *rand.Rand) {
	w := ecs.NewWorld()
	tuning := prefabs.DefaultTuning()
	physics := NewPhysicsSystem(1280, 720, zerolog.Nop())
	exploder := NewExploder(physics, tuning, zerolog.Nop())
	return w, physics, exploder, tuning, rand.New(rand.NewSource(1))
}

func TestFalloff(t *testing.T) {
	cases := []struct {
		name     string
		distance float64
		radius   float64
		want     float64
	}{
		{"epicenter", 0, 160, 1},
		{"half", 80, 160, 0.5},
		{"at_radius", 160, 160, 0},
		{"beyond_radius", 400, 160, 0},
		{"zero_radius", 0, 0, 0},
		{"negative_distance", -5, 160, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Falloff(c.distance, c.radius); math.Abs(got-c.want) > 1e-9 {
				t.Fatalf("Falloff(%v, %v) = %v, want %v", c.distance, c.radius, got, c.want)
			}
		})
	}
}

func TestExplodeBeyondRadiusUntouched(t *testing.T) {
	w, physics, exploder, _, rng := newTestRig()
	e := entity.NewShape(w, cp.Vector{X: 500, Y: 100}, component.ShapeRectangle, 40, false, exploder.tuning, rng)
	physics.Update(w)

	pb, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
	before := pb.Body.Velocity()
	beforeAng := pb.Body.AngularVelocity()

	exploder.Explode(w, cp.Vector{X: 100, Y: 100}, 0.09, 160) // distance 400

	if got := pb.Body.Velocity(); got != before {
		t.Fatalf("velocity changed for body beyond radius: %v -> %v", before, got)
	}
	if got := pb.Body.AngularVelocity(); got != beforeAng {
		t.Fatalf("angular velocity changed for body beyond radius")
	}
}

func TestExplodePushesOutward(t *testing.T) {
	w, physics, exploder, _, rng := newTestRig()
	e := entity.NewShape(w, cp.Vector{X: 160, Y: 100}, component.ShapeCircle, 40, false, exploder.tuning, rng)
	physics.Update(w)

	pb, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
	exploder.Explode(w, cp.Vector{X: 100, Y: 100}, 0.09, 200)

	if vx := pb.Body.Velocity().X; vx <= 0 {
		t.Fatalf("body left of blast should be pushed right, vx = %v", vx)
	}
}

func TestExplodeCloserIsStronger(t *testing.T) {
	w, physics, exploder, _, rng := newTestRig()
	near := entity.NewShape(w, cp.Vector{X: 140, Y: 100}, component.ShapeCircle, 40, false, exploder.tuning, rng)
	far := entity.NewShape(w, cp.Vector{X: 260, Y: 100}, component.ShapeCircle, 40, false, exploder.tuning, rng)
	physics.Update(w)

	exploder.Explode(w, cp.Vector{X: 100, Y: 100}, 0.09, 300)

	nearPB, _ := ecs.Get(w, near, component.PhysicsBodyComponent)
	farPB, _ := ecs.Get(w, far, component.PhysicsBodyComponent)
	if nearPB.Body.Velocity().X <= farPB.Body.Velocity().X {
		t.Fatalf("near body (%v) should outpace far body (%v)", nearPB.Body.Velocity().X, farPB.Body.Velocity().X)
	}
}

func TestExplodeAtEpicenterStaysFinite(t *testing.T) {
	w, physics, exploder, _, rng := newTestRig()
	e := entity.NewShape(w, cp.Vector{X: 100, Y: 100}, component.ShapeCircle, 40, false, exploder.tuning, rng)
	physics.Update(w)

	exploder.Explode(w, cp.Vector{X: 100, Y: 100}, 0.09, 160)

	pb, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
	v := pb.Body.Velocity()
	if math.IsNaN(v.X) || math.IsNaN(v.Y) || math.IsInf(v.X, 0) || math.IsInf(v.Y, 0) {
		t.Fatalf("body at epicenter got non-finite velocity %v", v)
	}
}

func TestDetonateRemovesWeaponOnce(t *testing.T) {
	w, _, exploder, _, _ := newTestRig()
	e := entity.NewWeapon(w, cp.Vector{X: 400, Y: 300}, component.WeaponBomb)

	if !exploder.Detonate(w, e) {
		t.Fatalf("first detonation should fire")
	}
	if w.IsAlive(e) {
		t.Fatalf("weapon should be removed by its own detonation")
	}
	if exploder.Detonate(w, e) {
		t.Fatalf("second detonation of the same weapon should be a no-op")
	}
}

func TestDetonateLatchedWeaponDoesNothing(t *testing.T) {
	w, _, exploder, _, _ := newTestRig()
	e := entity.NewWeapon(w, cp.Vector{X: 400, Y: 300}, component.WeaponTNT)
	wp, _ := ecs.Get(w, e, component.WeaponComponent)
	wp.Detonating = true

	if exploder.Detonate(w, e) {
		t.Fatalf("latched weapon must not detonate again")
	}
	if !w.IsAlive(e) {
		t.Fatalf("latched weapon must not be removed by the rejected call")
	}
	if n := ecs.Count(w, component.FragmentComponent); n != 0 {
		t.Fatalf("latched TNT spawned %d fragments", n)
	}
}

func TestTNTFragments(t *testing.T) {
	w, _, exploder, tuning, _ := newTestRig()
	epicenter := cp.Vector{X: 400, Y: 300}
	e := entity.NewWeapon(w, epicenter, component.WeaponTNT)

	if !exploder.Detonate(w, e) {
		t.Fatalf("TNT should detonate")
	}

	want := tuning.Weapon(component.WeaponTNT).Fragments
	if got := ecs.Count(w, component.FragmentComponent); got != want {
		t.Fatalf("spawned %d fragments, want %d", got, want)
	}

	half := tuning.Fragments.Jitter / 2
	minTicks := common.UnitsToTicks(tuning.Fragments.TTLMinUnits)
	maxTicks := common.UnitsToTicks(tuning.Fragments.TTLMaxUnits)
	ecs.ForEach(w, component.FragmentComponent, func(fe ecs.Entity, _ *component.Fragment) {
		tr, _ := ecs.Get(w, fe, component.TransformComponent)
		if math.Abs(tr.X-epicenter.X) > half || math.Abs(tr.Y-epicenter.Y) > half {
			t.Fatalf("fragment at (%v, %v) outside jitter box around %v", tr.X, tr.Y, epicenter)
		}
		lt, ok := ecs.Get(w, fe, component.LifetimeComponent)
		if !ok {
			t.Fatalf("fragment missing lifetime")
		}
		if lt.Ticks < minTicks || lt.Ticks > maxTicks {
			t.Fatalf("fragment lifetime %d outside [%d, %d]", lt.Ticks, minTicks, maxTicks)
		}
	})
}

func TestBombSpawnsNoFragments(t *testing.T) {
	w, _, exploder, _, _ := newTestRig()
	e := entity.NewWeapon(w, cp.Vector{X: 400, Y: 300}, component.WeaponBomb)
	exploder.Detonate(w, e)
	if n := ecs.Count(w, component.FragmentComponent); n != 0 {
		t.Fatalf("bomb spawned %d fragments", n)
	}
}

type doublingHook struct{}

func (doublingHook) Adjust(weapon string, force, radius float64, fragments int) (float64, float64, int, error) {
	return force * 2, radius, 0, nil
}

func TestDetonateHookOverridesFragments(t *testing.T) {
	w, _, exploder, _, _ := newTestRig()
	exploder.SetHook(doublingHook{})
	e := entity.NewWeapon(w, cp.Vector{X: 400, Y: 300}, component.WeaponTNT)
	exploder.Detonate(w, e)
	if n := ecs.Count(w, component.FragmentComponent); n != 0 {
		t.Fatalf("hook zeroed fragments but %d spawned", n)
	}
}

func TestClearAll(t *testing.T) {
	w, _, _, tuning, rng := newTestRig()
	entity.NewShape(w, cp.Vector{X: 100, Y: 100}, component.ShapeRectangle, 40, false, tuning, rng)
	entity.NewShape(w, cp.Vector{X: 200, Y: 100}, component.ShapeCircle, 40, false, tuning, rng)
	entity.NewWeapon(w, cp.Vector{X: 300, Y: 100}, component.WeaponGrenade)

	if n := ClearAll(w); n != 3 {
		t.Fatalf("ClearAll removed %d, want 3", n)
	}
	if len(w.Entities()) != 0 {
		t.Fatalf("entities remain after ClearAll")
	}
}
