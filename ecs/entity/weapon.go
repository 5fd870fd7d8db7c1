package entity

import (
	"image/color"

	"github.com/jakecoffman/cp"

	"github.com/tbrandt/blastpad/ecs"
	"github.com/tbrandt/blastpad/ecs/component"
)

type weaponLook struct {
	fill    color.NRGBA
	outline color.NRGBA
	radius  float64
	boxSize float64
}

var weaponLooks = map[component.WeaponType]weaponLook{
	component.WeaponBomb:    {fill: color.NRGBA{R: 0x2b, G: 0x2b, B: 0x2e, A: 0xff}, outline: color.NRGBA{R: 0xff, G: 0x8c, B: 0x00, A: 0xff}, radius: 16},
	component.WeaponGrenade: {fill: color.NRGBA{R: 0x2f, G: 0x5e, B: 0x2f, A: 0xff}, outline: color.NRGBA{R: 0x8f, G: 0xd1, B: 0x6f, A: 0xff}, radius: 11},
	component.WeaponTNT:     {fill: color.NRGBA{R: 0xc0, G: 0x2a, B: 0x2a, A: 0xff}, outline: color.NRGBA{R: 0x5e, G: 0x10, B: 0x10, A: 0xff}, boxSize: 26},
}

// NewWeapon places a weapon body at pos with the fixed look and collider
// for its type. Weapon drops are never grid-snapped.
func NewWeapon(w *ecs.World, pos cp.Vector, wtype component.WeaponType) ecs.Entity {
	look, ok := weaponLooks[wtype]
	if !ok {
		look = weaponLooks[component.WeaponBomb]
		wtype = component.WeaponBomb
	}

	e := w.CreateEntity()
	_ = ecs.Add(w, e, component.TransformComponent, component.Transform{X: pos.X, Y: pos.Y})
	_ = ecs.Add(w, e, component.WeaponComponent, component.Weapon{Type: wtype, Fill: look.fill, Outline: look.outline})

	pb := component.PhysicsBody{Mass: 2, Friction: 0.7, Elasticity: 0.1}
	if look.boxSize > 0 {
		pb.Width = look.boxSize
		pb.Height = look.boxSize
	} else {
		pb.Radius = look.radius
	}
	_ = ecs.Add(w, e, component.PhysicsBodyComponent, pb)
	return e
}
