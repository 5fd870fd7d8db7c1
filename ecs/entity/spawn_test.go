package entity

import (
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"

	"github.com/tbrandt/blastpad/ecs"
	"github.com/tbrandt/blastpad/ecs/component"
	"github.com/tbrandt/blastpad/prefabs"
)

func TestNewShapeSnapAndDefaults(t *testing.T) {
	cases := []struct {
		name   string
		pos    cp.Vector
		kind   component.ShapeKind
		size   float64
		snap   bool
		wantX  float64
		wantY  float64
		radius float64
		width  float64
	}{
		{"snapped_rect", cp.Vector{X: 157, Y: 243}, component.ShapeRectangle, 40, true, 160, 240, 0, 40},
		{"unsnapped_rect", cp.Vector{X: 157, Y: 243}, component.ShapeRectangle, 40, false, 157, 243, 0, 40},
		{"circle_uses_half_size", cp.Vector{X: 100, Y: 100}, component.ShapeCircle, 50, false, 100, 100, 25, 0},
		{"zero_size_defaults", cp.Vector{X: 100, Y: 100}, component.ShapeRectangle, 0, false, 100, 100, 0, 40},
	}

	tuning := prefabs.DefaultTuning()
	rng := rand.New(rand.NewSource(1))
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := ecs.NewWorld()
			e := NewShape(w, c.pos, c.kind, c.size, c.snap, tuning, rng)

			tr, ok := ecs.Get(w, e, component.TransformComponent)
			if !ok {
				t.Fatalf("shape has no transform")
			}
			if tr.X != c.wantX || tr.Y != c.wantY {
				t.Fatalf("spawned at (%v, %v), want (%v, %v)", tr.X, tr.Y, c.wantX, c.wantY)
			}
			pb, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
			if pb.Radius != c.radius || pb.Width != c.width {
				t.Fatalf("collider radius %v width %v, want %v / %v", pb.Radius, pb.Width, c.radius, c.width)
			}
		})
	}
}

func TestNewWeaponUnknownTypeFallsBack(t *testing.T) {
	w := ecs.NewWorld()
	e := NewWeapon(w, cp.Vector{X: 100, Y: 100}, component.WeaponType("railgun"))

	wp, ok := ecs.Get(w, e, component.WeaponComponent)
	if !ok {
		t.Fatalf("weapon component missing")
	}
	if wp.Type != component.WeaponBomb {
		t.Fatalf("unknown type became %q, want bomb", wp.Type)
	}
}

func TestNewFragmentClampsTTL(t *testing.T) {
	w := ecs.NewWorld()
	rng := rand.New(rand.NewSource(1))
	e := NewFragment(w, cp.Vector{X: 100, Y: 100}, 0, rng)

	lt, ok := ecs.Get(w, e, component.LifetimeComponent)
	if !ok {
		t.Fatalf("fragment has no lifetime")
	}
	if lt.Ticks != 1 {
		t.Fatalf("ttl = %d, want clamp to 1", lt.Ticks)
	}
}
